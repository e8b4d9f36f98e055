package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/linearmarketingsolutions/website/internal/http/middleware"
	"github.com/linearmarketingsolutions/website/pkg/logging"
)

// ContactPath is where the site's form controller posts submissions.
const ContactPath = "/api/contact"

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	ContactHandler http.Handler
	MetricsHandler http.Handler
	// StaticDir is the directory holding the marketing site; empty disables it.
	StaticDir string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", Health)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// The contact handler owns method dispatch so it can answer preflight and
	// 405 with the JSON envelope.
	if cfg.ContactHandler != nil {
		r.Handle(ContactPath, httpmiddleware.ContactCORS(cfg.ContactHandler))
	}

	if cfg.StaticDir != "" {
		site := http.FileServer(http.Dir(cfg.StaticDir))
		r.With(httpmiddleware.ContentSecurityPolicy()).Handle("/*", site)
	}

	return r
}

// Health reports liveness.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
