package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/adilaitelhoucine1/gestion-des-documents/internal/auth"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/config"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/document"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/httpapi"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/obs"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/storage"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/store/pg"
)

var (
	version = "1.0.0"
	commit  = "dev"
)

func main() {
	// .env is a development convenience; a missing file is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	obs.Init()
	obs.InitBuildInfo(version, commit)

	var (
		db        *sql.DB
		userStore auth.UserStore
		docStore  document.Store
	)
	if cfg.PostgresDSN != "" {
		store, err := pg.Open(cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer store.Close()
		db = store.DB()
		userStore = pg.NewUsers(db)
		docStore = pg.NewDocuments(db)
	} else {
		// No DSN means in-memory stores, for local development only.
		log.Println("GESDOC_PG_DSN not set, using in-memory stores")
		userStore = auth.NewMemoryUsers()
		docStore = document.NewInMemory()
	}

	var files storage.Store
	if cfg.BucketURL != "" {
		files = storage.NewBucket(cfg.BucketURL, cfg.BucketKey)
	} else {
		files = storage.NewDisk(cfg.UploadDir)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, userStore, auth.WithTokenTTL(cfg.TokenTTL))
	if err != nil {
		log.Fatalf("token service: %v", err)
	}
	creds := auth.NewCredentialVerifier(userStore)
	docs := document.NewService(docStore, userStore, files)

	api := httpapi.New(tokens, creds, docs, httpapi.ReadyProbe{DB: db}, version,
		httpapi.WithCORSOrigins(cfg.CORSOrigins),
		httpapi.WithRateLimit(cfg.RateBurst, cfg.RatePerSec),
		httpapi.WithMaxUploadBytes(cfg.MaxUploadSize+1<<20),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting gestion-documents-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Println("Stopped")
}
