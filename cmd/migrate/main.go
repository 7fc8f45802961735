package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/adilaitelhoucine1/gestion-des-documents/internal/auth"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/ids"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/migrate"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/store/pg"
)

func main() {
	log.SetFlags(0)
	_ = godotenv.Load()

	var (
		dsn            = flag.String("dsn", os.Getenv("GESDOC_PG_DSN"), "PostgreSQL DSN")
		migrationsPath = flag.String("migrations", "migrations", "Path to SQL migrations")
		seedsPath      = flag.String("seeds", "seeds", "Path to SQL seeds")
	)
	flag.Parse()

	if *dsn == "" {
		log.Fatal("missing DSN: provide via -dsn or GESDOC_PG_DSN")
	}
	if len(flag.Args()) == 0 {
		log.Fatal("usage: migrate [up|down|seed|seed-demo|status]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	mgr := migrate.NewManager(db, *migrationsPath, *seedsPath)

	switch flag.Arg(0) {
	case "up":
		err = mgr.Up(ctx)
	case "down":
		err = mgr.Down(ctx)
	case "seed":
		err = mgr.Seed(ctx)
	case "seed-demo":
		err = seedDemo(ctx, db)
	case "status":
		var history []string
		history, err = mgr.Status(ctx)
		if err == nil {
			for _, item := range history {
				fmt.Println(item)
			}
		}
	default:
		log.Fatalf("unknown command %q", flag.Arg(0))
	}
	if err != nil {
		log.Fatalf("migrate %s: %v", flag.Arg(0), err)
	}
}

// seedDemo creates a demo society and two demo accounts: a society user
// who can upload and an accountant who can validate. It is a no-op when
// the accounts already exist.
func seedDemo(ctx context.Context, db *sql.DB) error {
	users := pg.NewUsers(db)
	societies := pg.NewSocieties(db)

	if _, err := users.FindByEmail(ctx, "user1@example.com"); err == nil {
		log.Println("demo data already present, skipping")
		return nil
	} else if !errors.Is(err, auth.ErrNotFound) {
		return err
	}

	society := &auth.Society{
		ID:           ids.New(),
		Name:         "Al Amane",
		ICE:          "ICE123456",
		ContactEmail: "contact@al-amane.ma",
		Active:       true,
	}
	if err := societies.Create(ctx, society); err != nil {
		return fmt.Errorf("create society: %w", err)
	}

	societeHash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}
	comptableHash, err := auth.HashPassword("secret456")
	if err != nil {
		return err
	}

	societeUser := &auth.User{
		ID:           ids.New(),
		Email:        "user1@example.com",
		PasswordHash: societeHash,
		FullName:     "Utilisateur Societe",
		SocietyID:    society.ID,
		Active:       true,
		Roles:        []auth.Role{auth.RoleSociete},
	}
	if err := users.Create(ctx, societeUser); err != nil {
		return fmt.Errorf("create society user: %w", err)
	}

	comptable := &auth.User{
		ID:           ids.New(),
		Email:        "comptable1@example.com",
		PasswordHash: comptableHash,
		FullName:     "Comptable Demo",
		Active:       true,
		Roles:        []auth.Role{auth.RoleComptable},
	}
	if err := users.Create(ctx, comptable); err != nil {
		return fmt.Errorf("create accountant: %w", err)
	}

	log.Println("demo data seeded")
	return nil
}
