package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/adilaitelhoucine1/gestion-des-documents/internal/auth"
)

func TestUsersFindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("select id, email, mot_de_passe, nom_complet").
		WithArgs("user1@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "mot_de_passe", "nom_complet", "societe_id", "actif", "date_creation", "date_modification",
		}).AddRow("u-1", "user1@example.com", "hash", "Utilisateur Societe", "soc-1", true, now, now))
	mock.ExpectQuery("select r.nom from roles r").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"nom"}).AddRow("ROLE_SOCIETE"))

	users := NewUsers(db)
	user, err := users.FindByEmail(context.Background(), "user1@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if user.ID != "u-1" || user.SocietyID != "soc-1" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if len(user.Roles) != 1 || user.Roles[0] != auth.RoleSociete {
		t.Fatalf("roles = %v", user.Roles)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUsersFindByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select id, email, mot_de_passe, nom_complet").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	users := NewUsers(db)
	if _, err := users.FindByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, auth.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUsersCreateLinksRoles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("insert into utilisateurs").
		WithArgs(sqlmock.AnyArg(), "comptable1@example.com", "hash", "Comptable Demo", "", true).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("insert into utilisateur_roles").
		WithArgs(sqlmock.AnyArg(), "ROLE_COMPTABLE").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	users := NewUsers(db)
	err = users.Create(context.Background(), &auth.User{
		Email:        "comptable1@example.com",
		PasswordHash: "hash",
		FullName:     "Comptable Demo",
		Active:       true,
		Roles:        []auth.Role{auth.RoleComptable},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
