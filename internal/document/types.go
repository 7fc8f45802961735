package document

import (
	"errors"
	"fmt"
	"time"
)

// Status is the lifecycle state of a document. A document is created
// EN_ATTENTE and moves at most once, to VALIDE or REJETE. There is no
// reopen transition.
type Status string

const (
	StatusPending   Status = "EN_ATTENTE"
	StatusValidated Status = "VALIDE"
	StatusRejected  Status = "REJETE"
)

// ParseStatus converts the wire form of a status into the enumeration.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusValidated, StatusRejected:
		return Status(s), nil
	}
	return "", fmt.Errorf("document: unknown status %q", s)
}

// Type classifies the accounting piece a document represents.
type Type string

const (
	TypeFactureAchat   Type = "FACTURE_ACHAT"
	TypeFactureVente   Type = "FACTURE_VENTE"
	TypeTicketCaisse   Type = "TICKET_CAISSE"
	TypeReleveBancaire Type = "RELEVE_BANCAIRE"
	TypeAutre          Type = "AUTRE"
)

// Valid reports whether the type is one of the known document types.
func (t Type) Valid() bool {
	switch t {
	case TypeFactureAchat, TypeFactureVente, TypeTicketCaisse, TypeReleveBancaire, TypeAutre:
		return true
	}
	return false
}

// Document is an accounting piece submitted by a society user. It
// always belongs to exactly one society and was uploaded by exactly one
// user of that society.
type Document struct {
	ID                 string
	NumeroPiece        string
	Type               Type
	CategorieComptable string
	DatePiece          time.Time
	Montant            Amount
	Fournisseur        string
	ExerciceComptable  string

	CheminFichier      string // storage locator returned by the file store
	NomFichierOriginal string
	TypeFichier        string // mime type as submitted
	TailleFichier      int64

	Statut               Status
	DateValidation       *time.Time
	ValidePar            string // validator email, empty until validated
	CommentaireComptable string

	SocieteID  string
	UploadePar string // uploader email

	DateCreation     time.Time
	DateModification time.Time
}

var (
	ErrNotFound         = errors.New("document: not found")
	ErrAlreadyValidated = errors.New("document: already validated")
	ErrNoSociety        = errors.New("document: uploader must be associated with a society")
	ErrUnknownUploader  = errors.New("document: uploader not found")
	ErrStorage          = errors.New("document: file storage failed")
)
