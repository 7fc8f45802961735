package document

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/adilaitelhoucine1/gestion-des-documents/internal/auth"
)

type fakeStorage struct {
	mu    sync.Mutex
	saves int
	fail  error
}

func (f *fakeStorage) Save(ctx context.Context, filename, contentType string, content io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return "", f.fail
	}
	f.saves++
	_, _ = io.Copy(io.Discard, content)
	return "/uploads/" + filename, nil
}

func newTestService(t *testing.T, files *fakeStorage) (*Service, *auth.MemoryUsers) {
	t.Helper()
	users := auth.NewMemoryUsers()
	err := users.Create(context.Background(), &auth.User{
		Email:        "user1@example.com",
		PasswordHash: "x",
		FullName:     "Uploader",
		SocietyID:    "soc-1",
		Active:       true,
		Roles:        []auth.Role{auth.RoleSociete},
	})
	if err != nil {
		t.Fatalf("create uploader: %v", err)
	}
	err = users.Create(context.Background(), &auth.User{
		Email:        "comptable1@example.com",
		PasswordHash: "x",
		FullName:     "Comptable",
		Active:       true,
		Roles:        []auth.Role{auth.RoleComptable},
	})
	if err != nil {
		t.Fatalf("create accountant: %v", err)
	}
	return NewService(NewInMemory(), users, files), users
}

func upload(t *testing.T, svc *Service, email string) *Document {
	t.Helper()
	doc, err := svc.Upload(context.Background(), validUploadRequest(), validFile(), email)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	return doc
}

func TestUploadCreatesPendingDocument(t *testing.T) {
	files := &fakeStorage{}
	svc, _ := newTestService(t, files)

	doc := upload(t, svc, "user1@example.com")
	if doc.ID == "" {
		t.Fatal("missing document id")
	}
	if doc.Statut != StatusPending {
		t.Fatalf("new document status = %q", doc.Statut)
	}
	if doc.SocieteID != "soc-1" {
		t.Fatalf("society = %q", doc.SocieteID)
	}
	if doc.UploadePar != "user1@example.com" {
		t.Fatalf("uploader = %q", doc.UploadePar)
	}
	if doc.CheminFichier == "" {
		t.Fatal("missing storage locator")
	}
	if doc.DateValidation != nil || doc.ValidePar != "" {
		t.Fatal("fresh document carries validation fields")
	}
	if files.saves != 1 {
		t.Fatalf("storage saves = %d", files.saves)
	}
}

func TestUploadRejectsInvalidMetadataBeforeStorage(t *testing.T) {
	files := &fakeStorage{}
	svc, _ := newTestService(t, files)

	req := validUploadRequest()
	req.NumeroPiece = ""
	if _, err := svc.Upload(context.Background(), req, validFile(), "user1@example.com"); err == nil {
		t.Fatal("expected validation error")
	}
	if files.saves != 0 {
		t.Fatalf("storage touched on invalid request: %d saves", files.saves)
	}
}

func TestUploadRequiresSociety(t *testing.T) {
	files := &fakeStorage{}
	svc, _ := newTestService(t, files)

	// The accountant has no society and therefore cannot upload.
	_, err := svc.Upload(context.Background(), validUploadRequest(), validFile(), "comptable1@example.com")
	if !errors.Is(err, ErrNoSociety) {
		t.Fatalf("want ErrNoSociety, got %v", err)
	}
	if files.saves != 0 {
		t.Fatalf("storage touched before society check: %d saves", files.saves)
	}
}

func TestUploadUnknownUploader(t *testing.T) {
	svc, _ := newTestService(t, &fakeStorage{})
	_, err := svc.Upload(context.Background(), validUploadRequest(), validFile(), "ghost@example.com")
	if !errors.Is(err, ErrUnknownUploader) {
		t.Fatalf("want ErrUnknownUploader, got %v", err)
	}
}

func TestUploadStorageFailure(t *testing.T) {
	files := &fakeStorage{fail: errors.New("bucket unreachable")}
	svc, _ := newTestService(t, files)

	_, err := svc.Upload(context.Background(), validUploadRequest(), validFile(), "user1@example.com")
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("want ErrStorage, got %v", err)
	}

	docs, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("document persisted despite storage failure: %d", len(docs))
	}
}

func TestValidateMovesDocumentBetweenQueues(t *testing.T) {
	svc, _ := newTestService(t, &fakeStorage{})
	doc := upload(t, svc, "user1@example.com")

	pending, err := svc.ListByStatus(context.Background(), StatusPending)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != doc.ID {
		t.Fatalf("pending queue = %v", pending)
	}

	validated, err := svc.Validate(context.Background(), doc.ID, "comptable1@example.com", "ok")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if validated.Statut != StatusValidated {
		t.Fatalf("status = %q", validated.Statut)
	}
	if validated.ValidePar != "comptable1@example.com" {
		t.Fatalf("validator = %q", validated.ValidePar)
	}
	if validated.DateValidation == nil {
		t.Fatal("missing validation date")
	}
	if validated.CommentaireComptable != "ok" {
		t.Fatalf("comment = %q", validated.CommentaireComptable)
	}

	pending, err = svc.ListByStatus(context.Background(), StatusPending)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending queue not drained: %v", pending)
	}
	done, err := svc.ListByStatus(context.Background(), StatusValidated)
	if err != nil {
		t.Fatalf("list validated: %v", err)
	}
	if len(done) != 1 || done[0].ID != doc.ID {
		t.Fatalf("validated queue = %v", done)
	}
}

func TestValidateTwiceFails(t *testing.T) {
	svc, _ := newTestService(t, &fakeStorage{})
	doc := upload(t, svc, "user1@example.com")

	if _, err := svc.Validate(context.Background(), doc.ID, "comptable1@example.com", ""); err != nil {
		t.Fatalf("first validate: %v", err)
	}
	if _, err := svc.Validate(context.Background(), doc.ID, "comptable1@example.com", ""); !errors.Is(err, ErrAlreadyValidated) {
		t.Fatalf("want ErrAlreadyValidated, got %v", err)
	}
}

func TestValidateUnknownDocument(t *testing.T) {
	svc, _ := newTestService(t, &fakeStorage{})
	if _, err := svc.Validate(context.Background(), "missing", "comptable1@example.com", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestValidateConcurrent(t *testing.T) {
	svc, _ := newTestService(t, &fakeStorage{})
	doc := upload(t, svc, "user1@example.com")

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Validate(context.Background(), doc.ID, "comptable1@example.com", "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrAlreadyValidated):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Fatalf("successes = %d, want exactly 1", successes)
	}
	if conflicts != attempts-1 {
		t.Fatalf("conflicts = %d, want %d", conflicts, attempts-1)
	}
}

func TestUploadUsesInjectedClock(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	users := auth.NewMemoryUsers()
	if err := users.Create(context.Background(), &auth.User{
		Email: "user1@example.com", PasswordHash: "x", SocietyID: "soc-1", Active: true,
		Roles: []auth.Role{auth.RoleSociete},
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	svc := NewService(NewInMemory(), users, &fakeStorage{}, WithClock(func() time.Time { return fixed }))

	req := validUploadRequest()
	doc, err := svc.Upload(context.Background(), req, File{
		Name:        "facture.pdf",
		ContentType: "application/pdf",
		Size:        4,
		Content:     bytes.NewReader([]byte("data")),
	}, "user1@example.com")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !doc.DateCreation.Equal(fixed) {
		t.Fatalf("creation time = %v", doc.DateCreation)
	}
}
