package pg

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/adilaitelhoucine1/gestion-des-documents/internal/document"
)

// Documents implements document.Store on PostgreSQL.
type Documents struct {
	db *sql.DB
}

var _ document.Store = (*Documents)(nil)

func NewDocuments(db *sql.DB) *Documents { return &Documents{db: db} }

const documentColumns = `
	id, numero_piece, type, coalesce(categorie_comptable, ''), date_piece,
	montant_centimes, coalesce(fournisseur, ''), exercice_comptable,
	chemin_fichier, nom_fichier_original, coalesce(type_fichier, ''), coalesce(taille_fichier, 0),
	statut, date_validation, coalesce(valide_par, ''), coalesce(commentaire_comptable, ''),
	societe_id, uploade_par, date_creation, coalesce(date_modification, date_creation)`

func (s *Documents) Create(ctx context.Context, d *document.Document) error {
	_, err := s.db.ExecContext(ctx, `
		insert into documents(
			id, numero_piece, type, categorie_comptable, date_piece,
			montant_centimes, fournisseur, exercice_comptable,
			chemin_fichier, nom_fichier_original, type_fichier, taille_fichier,
			statut, societe_id, uploade_par, date_creation, date_modification
		) values ($1,$2,$3,nullif($4,''),$5,$6,nullif($7,''),$8,$9,$10,nullif($11,''),$12,$13,$14,$15,$16,$17)
	`, d.ID, d.NumeroPiece, string(d.Type), d.CategorieComptable, d.DatePiece,
		int64(d.Montant), d.Fournisseur, d.ExerciceComptable,
		d.CheminFichier, d.NomFichierOriginal, d.TypeFichier, d.TailleFichier,
		string(d.Statut), d.SocieteID, d.UploadePar, d.DateCreation, d.DateModification)
	return err
}

func (s *Documents) Find(ctx context.Context, id string) (*document.Document, error) {
	row := s.db.QueryRowContext(ctx, `select`+documentColumns+` from documents where id = $1`, id)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, document.ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *Documents) List(ctx context.Context) ([]*document.Document, error) {
	rows, err := s.db.QueryContext(ctx, `select`+documentColumns+` from documents order by date_creation asc`)
	if err != nil {
		return nil, err
	}
	return collectDocuments(rows)
}

func (s *Documents) ListByStatus(ctx context.Context, status document.Status) ([]*document.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`select`+documentColumns+` from documents where statut = $1 order by date_creation asc`,
		string(status))
	if err != nil {
		return nil, err
	}
	return collectDocuments(rows)
}

// Validate applies the EN_ATTENTE -> VALIDE transition under a row lock
// so that concurrent calls on the same document cannot both succeed.
func (s *Documents) Validate(ctx context.Context, id, validator, comment string, at time.Time) (*document.Document, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var status string
	err = tx.QueryRowContext(ctx, `select statut from documents where id = $1 for update`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, document.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if document.Status(status) == document.StatusValidated {
		return nil, document.ErrAlreadyValidated
	}

	if _, err := tx.ExecContext(ctx, `
		update documents
		set statut = $2, date_validation = $3, valide_par = $4,
			commentaire_comptable = nullif($5, ''), date_modification = $3
		where id = $1
	`, id, string(document.StatusValidated), at, validator, comment); err != nil {
		return nil, err
	}

	row := tx.QueryRowContext(ctx, `select`+documentColumns+` from documents where id = $1`, id)
	doc, err := scanDocument(row)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return doc, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*document.Document, error) {
	var (
		d         document.Document
		docType   string
		montant   int64
		status    string
		validated sql.NullTime
	)
	if err := row.Scan(
		&d.ID, &d.NumeroPiece, &docType, &d.CategorieComptable, &d.DatePiece,
		&montant, &d.Fournisseur, &d.ExerciceComptable,
		&d.CheminFichier, &d.NomFichierOriginal, &d.TypeFichier, &d.TailleFichier,
		&status, &validated, &d.ValidePar, &d.CommentaireComptable,
		&d.SocieteID, &d.UploadePar, &d.DateCreation, &d.DateModification,
	); err != nil {
		return nil, err
	}
	d.Type = document.Type(docType)
	d.Montant = document.Amount(montant)
	d.Statut = document.Status(status)
	if validated.Valid {
		t := validated.Time
		d.DateValidation = &t
	}
	return &d, nil
}

func collectDocuments(rows *sql.Rows) ([]*document.Document, error) {
	defer rows.Close()
	var res []*document.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, doc)
	}
	return res, rows.Err()
}
