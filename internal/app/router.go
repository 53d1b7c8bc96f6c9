package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/startailors/tailorshop/internal/observability"
	"github.com/startailors/tailorshop/internal/platform/httpx"
	"github.com/startailors/tailorshop/internal/session"
)

// Mounter is implemented by every feature handler.
type Mounter interface {
	MountRoutes(r chi.Router)
}

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger  *slog.Logger
	Config  *Config
	Session *session.Session
	Metrics *observability.Metrics

	AuthHandler      Mounter
	DashboardHandler Mounter
	OrdersHandler    Mounter
	TailorsHandler   Mounter
	PaymentsHandler  Mounter
	ReportsHandler   Mounter
	JobHandler       Mounter
}

// NewRouter constructs the chi.Router with console defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"status":        "ok",
			"authenticated": params.Session.Authenticated(),
		})
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	for _, h := range []Mounter{
		params.AuthHandler,
		params.DashboardHandler,
		params.OrdersHandler,
		params.TailorsHandler,
		params.PaymentsHandler,
		params.ReportsHandler,
		params.JobHandler,
	} {
		if h != nil {
			h.MountRoutes(r)
		}
	}
	return r
}
