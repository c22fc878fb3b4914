// Package httptransport assembles the public router: platform middleware
// first, then each domain handler registers its own routes. Business logic
// stays in the services.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	feedbackhandler "prakan/internal/feedback/handler"
	"prakan/internal/platform/metrics"
	"prakan/internal/platform/middleware"
	schemehandler "prakan/internal/scheme/handler"
	wizardhandler "prakan/internal/wizard/handler"
	"prakan/pkg/httputil"
)

const requestTimeout = 30 * time.Second

// Deps carries everything the router needs. Metrics and SubmitLimiter may be
// nil; the corresponding middleware is skipped.
type Deps struct {
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
	Wizard        wizardhandler.Service
	Feedback      feedbackhandler.Service
	SubmitLimiter *middleware.RateLimiter
}

// NewRouter wires middleware and all public endpoints.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.Latency(deps.Metrics))
	}
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)

		schemehandler.New().Register(r)
		wizardhandler.New(deps.Wizard, deps.Logger).Register(r)
		feedbackhandler.New(deps.Feedback, deps.Logger, deps.SubmitLimiter).Register(r)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
