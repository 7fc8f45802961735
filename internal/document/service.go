package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adilaitelhoucine1/gestion-des-documents/internal/auth"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/ids"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/storage"
)

// Store is the persistence contract for documents. Validate must apply
// the status check and the status write atomically: of concurrent calls
// on the same document, at most one may succeed.
type Store interface {
	Create(ctx context.Context, d *Document) error
	Find(ctx context.Context, id string) (*Document, error)
	List(ctx context.Context) ([]*Document, error)
	ListByStatus(ctx context.Context, status Status) ([]*Document, error)
	Validate(ctx context.Context, id, validator, comment string, at time.Time) (*Document, error)
}

// Service implements the document lifecycle: upload creates a pending
// document, accountants validate it exactly once.
type Service struct {
	docs  Store
	users auth.UserStore
	files storage.Store
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) Option {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService constructs a Service.
func NewService(docs Store, users auth.UserStore, files storage.Store, opts ...Option) *Service {
	s := &Service{docs: docs, users: users, files: files, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload validates metadata and file, checks the uploader precondition,
// stores the bytes and creates the document in EN_ATTENTE status. The
// uploader must exist, be active and belong to a society; that check
// fails before any document is constructed or any byte is stored.
func (s *Service) Upload(ctx context.Context, req UploadRequest, file File, uploaderEmail string) (*Document, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}

	uploader, err := s.users.FindByEmail(ctx, uploaderEmail)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return nil, ErrUnknownUploader
		}
		return nil, err
	}
	if !uploader.Active || uploader.SocietyID == "" {
		return nil, ErrNoSociety
	}

	locator, err := s.files.Save(ctx, file.Name, file.ContentType, file.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	now := s.now().UTC()
	doc := &Document{
		ID:                 ids.New(),
		NumeroPiece:        req.NumeroPiece,
		Type:               req.Type,
		CategorieComptable: req.CategorieComptable,
		DatePiece:          req.PieceDate(),
		Montant:            req.Montant,
		Fournisseur:        req.Fournisseur,
		ExerciceComptable:  req.ExerciceComptable,
		CheminFichier:      locator,
		NomFichierOriginal: file.Name,
		TypeFichier:        file.ContentType,
		TailleFichier:      file.Size,
		Statut:             StatusPending,
		SocieteID:          uploader.SocietyID,
		UploadePar:         uploader.Email,
		DateCreation:       now,
		DateModification:   now,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// List returns all documents.
func (s *Service) List(ctx context.Context) ([]*Document, error) {
	return s.docs.List(ctx)
}

// ListByStatus returns a snapshot of the documents currently in the
// given status. Pure read, no side effects.
func (s *Service) ListByStatus(ctx context.Context, status Status) ([]*Document, error) {
	return s.docs.ListByStatus(ctx, status)
}

// Validate moves a pending document to VALIDE, recording the validator
// and the validation time. Validating twice is an error, not a no-op:
// the second call fails with ErrAlreadyValidated.
func (s *Service) Validate(ctx context.Context, id, validatorEmail, comment string) (*Document, error) {
	return s.docs.Validate(ctx, id, validatorEmail, comment, s.now().UTC())
}
