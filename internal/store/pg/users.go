package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/adilaitelhoucine1/gestion-des-documents/internal/auth"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/ids"
)

// Users implements auth.UserStore on PostgreSQL.
type Users struct {
	db *sql.DB
}

var _ auth.UserStore = (*Users)(nil)

func NewUsers(db *sql.DB) *Users { return &Users{db: db} }

func (s *Users) Create(ctx context.Context, u *auth.User) error {
	if u.ID == "" {
		u.ID = ids.New()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		insert into utilisateurs(id, email, mot_de_passe, nom_complet, societe_id, actif, date_creation, date_modification)
		values ($1, $2, $3, $4, nullif($5, ''), $6, now(), now())
	`, u.ID, u.Email, u.PasswordHash, u.FullName, u.SocietyID, u.Active); err != nil {
		return err
	}
	for _, role := range u.Roles {
		if _, err := tx.ExecContext(ctx, `
			insert into utilisateur_roles(utilisateur_id, role_id)
			select $1, id from roles where nom = $2
		`, u.ID, string(role)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	row := s.db.QueryRowContext(ctx, `
		select id, email, mot_de_passe, nom_complet, coalesce(societe_id, ''), actif, date_creation, coalesce(date_modification, date_creation)
		from utilisateurs where email = $1
	`, email)
	var u auth.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.SocietyID, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		select r.nom from roles r
		join utilisateur_roles ur on ur.role_id = r.id
		where ur.utilisateur_id = $1
	`, u.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		u.Roles = append(u.Roles, auth.ParseRoles([]string{name})...)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &u, nil
}

// Societies implements auth.SocietyStore on PostgreSQL.
type Societies struct {
	db *sql.DB
}

var _ auth.SocietyStore = (*Societies)(nil)

func NewSocieties(db *sql.DB) *Societies { return &Societies{db: db} }

func (s *Societies) Create(ctx context.Context, soc *auth.Society) error {
	if soc.ID == "" {
		soc.ID = ids.New()
	}
	_, err := s.db.ExecContext(ctx, `
		insert into societes(id, raison_sociale, ice, adresse, telephone, email_contact, actif, date_creation, date_modification)
		values ($1, $2, $3, $4, $5, $6, $7, now(), now())
	`, soc.ID, soc.Name, soc.ICE, soc.Address, soc.Phone, soc.ContactEmail, soc.Active)
	return err
}

func (s *Societies) Find(ctx context.Context, id string) (*auth.Society, error) {
	row := s.db.QueryRowContext(ctx, `
		select id, raison_sociale, ice, coalesce(adresse, ''), coalesce(telephone, ''), email_contact, actif, date_creation, coalesce(date_modification, date_creation)
		from societes where id = $1
	`, id)
	var soc auth.Society
	if err := row.Scan(&soc.ID, &soc.Name, &soc.ICE, &soc.Address, &soc.Phone, &soc.ContactEmail, &soc.Active, &soc.CreatedAt, &soc.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrNotFound
		}
		return nil, err
	}
	return &soc, nil
}
