package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/campusdrive/campusdrive/internal/dispatch"
	"github.com/campusdrive/campusdrive/internal/observability"
	"github.com/campusdrive/campusdrive/internal/shared"
	"github.com/campusdrive/campusdrive/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	Dispatcher     *dispatch.Dispatcher
	JobHandler     *jobs.Handler
	Metrics        *observability.Metrics

	// UploadsDir, when non-empty, is served read-only under /uploads for
	// the local blob store.
	UploadsDir string
}

// NewRouter constructs the chi.Router with CampusDrive defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Action-based API: both ?action= and path-segment forms are accepted.
	r.HandleFunc("/api", params.Dispatcher.ServeHTTP)
	r.HandleFunc("/api/{action}", params.Dispatcher.ServeHTTP)

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	if params.UploadsDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(params.UploadsDir)))
		r.Handle("/uploads/*", uploadsCacheHandler(fileServer))
	}

	return r
}

// uploadsCacheHandler lets browsers cache photos; keys are immutable so a
// long max-age is safe.
func uploadsCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=86400")
		next.ServeHTTP(w, r)
	})
}
