package handler

import (
	"io/fs"
	"net/http"

	"github.com/Shivanand-hulikatti/activity-signup/internal/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RouterDeps carries what NewRouter needs. Metrics and Static are optional.
type RouterDeps struct {
	Activities *ActivityHandler
	Log        *zap.Logger
	Metrics    *metrics.Metrics
	// Static is served under /static/ and / redirects to its index.html.
	Static     fs.FS
}

// NewRouter builds the chi router with the global middleware stack.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger(d.Log))
	if d.Metrics != nil {
		r.Use(Metrics(d.Metrics))
	}
	r.Use(CORS)

	r.Get("/health", HealthCheck)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Route("/activities", func(r chi.Router) {
		r.Get("/", d.Activities.ListActivities)
		r.Post("/{activity_name}/signup", d.Activities.Signup)
		r.Delete("/{activity_name}/participants", d.Activities.Unregister)
	})

	if d.Static != nil {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
		})
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(d.Static))))
	}

	return r
}
