package document

import (
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// dateLayout is the wire format of datePiece.
const dateLayout = "2006-01-02"

var exerciceRe = regexp.MustCompile(`^\d{4}$`)

// UploadRequest is the structured metadata part of a document upload.
type UploadRequest struct {
	NumeroPiece        string `json:"numeroPiece"`
	Type               Type   `json:"type"`
	CategorieComptable string `json:"categorieComptable"`
	DatePiece          string `json:"datePiece"`
	Montant            Amount `json:"montant"`
	Fournisseur        string `json:"fournisseur"`
	ExerciceComptable  string `json:"exerciceComptable"`
}

// Validate applies the metadata rules: mandatory piece number and type,
// piece date not in the future, strictly positive amount, four-digit
// fiscal year.
func (r UploadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NumeroPiece, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Type, validation.Required, validation.By(knownType)),
		validation.Field(&r.CategorieComptable, validation.Length(0, 100)),
		validation.Field(&r.DatePiece, validation.Required, validation.Date(dateLayout).Max(time.Now())),
		validation.Field(&r.Montant, validation.Required, validation.By(positiveAmount)),
		validation.Field(&r.Fournisseur, validation.Length(0, 255)),
		validation.Field(&r.ExerciceComptable, validation.Required, validation.Match(exerciceRe)),
	)
}

// PieceDate returns the parsed piece date. Call only after Validate.
func (r UploadRequest) PieceDate() time.Time {
	t, _ := time.Parse(dateLayout, r.DatePiece)
	return t
}

func knownType(value any) error {
	t, _ := value.(Type)
	if !t.Valid() {
		return errors.New("must be a known document type")
	}
	return nil
}

func positiveAmount(value any) error {
	a, _ := value.(Amount)
	if !a.IsPositive() {
		return errors.New("must be greater than zero")
	}
	return nil
}

// MaxFileSize caps uploaded files at 10 MiB.
const MaxFileSize = 10 << 20

var allowedExtensions = map[string]struct{}{
	"pdf": {}, "jpg": {}, "jpeg": {}, "png": {},
}

var allowedContentTypes = map[string]struct{}{
	"application/pdf": {}, "image/jpeg": {}, "image/jpg": {}, "image/png": {},
}

// File describes the binary part of an upload. Content is consumed at
// most once, by the file store.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// File validation failures. All are rejected before any storage or
// persistence is attempted.
var (
	ErrEmptyFile       = errors.New("document: file is empty")
	ErrMissingFilename = errors.New("document: file name is missing")
	ErrFileTooLarge    = errors.New("document: file exceeds the 10MB limit")
	ErrBadExtension    = errors.New("document: file type not allowed, accepted formats: PDF, JPG, JPEG, PNG")
	ErrBadContentType  = errors.New("document: mime type not allowed, accepted formats: PDF and images (JPG, PNG)")
)

// Validate applies the file whitelist rules.
func (f File) Validate() error {
	if f.Content == nil || f.Size == 0 {
		return ErrEmptyFile
	}
	if strings.TrimSpace(f.Name) == "" {
		return ErrMissingFilename
	}
	if f.Size > MaxFileSize {
		return ErrFileTooLarge
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Name), "."))
	if _, ok := allowedExtensions[ext]; !ok {
		return ErrBadExtension
	}
	if _, ok := allowedContentTypes[strings.ToLower(f.ContentType)]; !ok {
		return ErrBadContentType
	}
	return nil
}
