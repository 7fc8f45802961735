package httpapi

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/adilaitelhoucine1/gestion-des-documents/internal/auth"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/document"
	"github.com/adilaitelhoucine1/gestion-des-documents/internal/obs"
)

// ReadyProbe reports readiness, typically by pinging the database.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer. It holds no business state; everything flows
// through the auth and document services.
type API struct {
	router *mux.Router

	tokens *auth.TokenService
	creds  *auth.CredentialVerifier
	docs   *document.Service

	readyProbe ReadyProbe
	version    string

	corsOrigins []string
	rateBurst   int
	ratePerSec  int
	maxBody     int64
}

// APIOption configures the API surface.
type APIOption func(*API)

// WithCORSOrigins sets the origins allowed to call the API from a browser.
func WithCORSOrigins(origins []string) APIOption {
	return func(a *API) {
		if len(origins) > 0 {
			a.corsOrigins = origins
		}
	}
}

// WithRateLimit tunes the per-IP token bucket.
func WithRateLimit(burst, perSecond int) APIOption {
	return func(a *API) {
		if burst > 0 && perSecond > 0 {
			a.rateBurst = burst
			a.ratePerSec = perSecond
		}
	}
}

// WithMaxUploadBytes caps the request body size for uploads.
func WithMaxUploadBytes(n int64) APIOption {
	return func(a *API) {
		if n > 0 {
			a.maxBody = n
		}
	}
}

// New wires the routes. Route registration and middleware assembly are
// kept separate: Handler composes the chain around the bare router.
func New(tokens *auth.TokenService, creds *auth.CredentialVerifier, docs *document.Service, rp ReadyProbe, version string, opts ...APIOption) *API {
	a := &API{
		router:      mux.NewRouter(),
		tokens:      tokens,
		creds:       creds,
		docs:        docs,
		readyProbe:  rp,
		version:     version,
		corsOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		rateBurst:   20,
		ratePerSec:  10,
		maxBody:     document.MaxFileSize + 1<<20,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.router.HandleFunc("/healthz", a.handleHealthz).Methods(http.MethodGet)
	a.router.HandleFunc("/readyz", a.handleReadyz).Methods(http.MethodGet)
	a.router.Handle("/metrics", obs.Handler()).Methods(http.MethodGet)

	a.router.HandleFunc("/api/auth/login", a.handleLogin).Methods(http.MethodPost)

	a.router.HandleFunc("/api/documents/upload", a.handleUpload).Methods(http.MethodPost)
	a.router.HandleFunc("/api/documents", a.handleListDocuments).Methods(http.MethodGet)
	a.router.HandleFunc("/api/documents/comptable/status", a.handleListByStatus).Methods(http.MethodGet)
	a.router.HandleFunc("/api/documents/comptable/valider/{id}", a.handleValidate).Methods(http.MethodGet, http.MethodPost)

	a.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "resource not found")
	})
	a.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	return a
}

// Handler assembles the middleware chain. Order matters: metrics and
// logging see every request, authn attaches the principal before the
// authz guard consults it, and the guard runs before any route handler.
func (a *API) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   a.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           600,
	})

	var h http.Handler = a.router
	h = a.authorize(h)
	h = a.authenticate(h)
	h = c.Handler(h)
	h = MaxBodyBytes(h, a.maxBody)
	h = RateLimit(h, a.rateBurst, a.ratePerSec)
	h = SecurityHeaders(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return obs.Instrument(h)
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "gestion-documents-api",
		"version": a.version,
	})
}

func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}
