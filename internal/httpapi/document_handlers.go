package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gorilla/mux"

	"github.com/adilaitelhoucine1/gestion-des-documents/internal/audit"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/auth"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/document"
)

// documentView is the wire representation of a document.
type documentView struct {
	ID                   string          `json:"id"`
	NumeroPiece          string          `json:"numeroPiece"`
	Type                 string          `json:"type"`
	CategorieComptable   string          `json:"categorieComptable,omitempty"`
	DatePiece            string          `json:"datePiece"`
	Montant              document.Amount `json:"montant"`
	Fournisseur          string          `json:"fournisseur,omitempty"`
	ExerciceComptable    string          `json:"exerciceComptable"`
	NomFichierOriginal   string          `json:"nomFichierOriginal"`
	TypeFichier          string          `json:"typeFichier,omitempty"`
	TailleFichier        int64           `json:"tailleFichier"`
	Statut               string          `json:"statut"`
	DateValidation       *time.Time      `json:"dateValidation,omitempty"`
	ValidePar            string          `json:"validePar,omitempty"`
	CommentaireComptable string          `json:"commentaireComptable,omitempty"`
	SocieteID            string          `json:"societeId"`
	UploadePar           string          `json:"uploadePar"`
	DateCreation         time.Time       `json:"dateCreation"`
	Message              string          `json:"message,omitempty"`
}

func viewOf(d *document.Document) documentView {
	return documentView{
		ID:                   d.ID,
		NumeroPiece:          d.NumeroPiece,
		Type:                 string(d.Type),
		CategorieComptable:   d.CategorieComptable,
		DatePiece:            d.DatePiece.Format("2006-01-02"),
		Montant:              d.Montant,
		Fournisseur:          d.Fournisseur,
		ExerciceComptable:    d.ExerciceComptable,
		NomFichierOriginal:   d.NomFichierOriginal,
		TypeFichier:          d.TypeFichier,
		TailleFichier:        d.TailleFichier,
		Statut:               string(d.Statut),
		DateValidation:       d.DateValidation,
		ValidePar:            d.ValidePar,
		CommentaireComptable: d.CommentaireComptable,
		SocieteID:            d.SocieteID,
		UploadePar:           d.UploadePar,
		DateCreation:         d.DateCreation,
	}
}

func viewsOf(docs []*document.Document) []documentView {
	views := make([]documentView, 0, len(docs))
	for _, d := range docs {
		views = append(views, viewOf(d))
	}
	return views
}

// handleUpload accepts a multipart form with a "document" JSON part
// holding the metadata and a "file" part holding the bytes.
func (a *API) handleUpload(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	if err := r.ParseMultipartForm(document.MaxFileSize); err != nil {
		writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "invalid multipart form")
		return
	}

	meta := r.FormValue("document")
	if meta == "" {
		writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "document metadata part is required")
		return
	}
	var req document.UploadRequest
	if err := json.Unmarshal([]byte(meta), &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "invalid document metadata")
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "file part is required")
		return
	}
	defer part.Close()

	file := document.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     part,
	}

	doc, err := a.docs.Upload(r.Context(), req, file, principal.Email)
	if err != nil {
		a.handleDocumentError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "document.upload", map[string]any{
		"document_id":  doc.ID,
		"numero_piece": doc.NumeroPiece,
		"societe_id":   doc.SocieteID,
	})

	view := viewOf(doc)
	view.Message = "Document uploade avec succes"
	writeJSON(w, http.StatusCreated, view)
}

func (a *API) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := a.docs.List(r.Context())
	if err != nil {
		a.handleDocumentError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewsOf(docs))
}

// handleListByStatus returns documents in the requested status,
// defaulting to EN_ATTENTE, which is the accountant's work queue.
func (a *API) handleListByStatus(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("statut")
	if raw == "" {
		raw = r.URL.Query().Get("status")
	}
	status := document.StatusPending
	if raw != "" {
		parsed, err := document.ParseStatus(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "INVALID_STATUS", "statut must be one of EN_ATTENTE, VALIDE, REJETE")
			return
		}
		status = parsed
	}
	docs, err := a.docs.ListByStatus(r.Context(), status)
	if err != nil {
		a.handleDocumentError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewsOf(docs))
}

func (a *API) handleValidate(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	id := mux.Vars(r)["id"]
	comment := strings.TrimSpace(r.URL.Query().Get("commentaire"))

	doc, err := a.docs.Validate(r.Context(), id, principal.Email, comment)
	if err != nil {
		a.handleDocumentError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "document.validate", map[string]any{
		"document_id": doc.ID,
		"statut":      string(doc.Statut),
	})

	view := viewOf(doc)
	view.Message = "Document valide avec succes"
	writeJSON(w, http.StatusOK, view)
}

// handleDocumentError maps domain failures to HTTP error bodies.
func (a *API) handleDocumentError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", verrs.Error())
	case errors.Is(err, document.ErrEmptyFile),
		errors.Is(err, document.ErrMissingFilename),
		errors.Is(err, document.ErrFileTooLarge),
		errors.Is(err, document.ErrBadExtension),
		errors.Is(err, document.ErrBadContentType),
		errors.Is(err, document.ErrInvalidAmount):
		writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, document.ErrNoSociety):
		writeError(w, r, http.StatusBadRequest, "NO_SOCIETY", "uploader is not associated with a society")
	case errors.Is(err, document.ErrUnknownUploader):
		writeError(w, r, http.StatusBadRequest, "NO_SOCIETY", "uploader is not associated with a society")
	case errors.Is(err, document.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "document not found")
	case errors.Is(err, document.ErrAlreadyValidated):
		writeError(w, r, http.StatusConflict, "ALREADY_VALIDATED", "document is already validated")
	case errors.Is(err, document.ErrStorage):
		writeError(w, r, http.StatusInternalServerError, "STORAGE_ERROR", "file storage failed")
	default:
		writeError(w, r, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
