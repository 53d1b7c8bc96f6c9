package reports

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/startailors/tailorshop/internal/platform/httpx"
)

// Handler exposes the reports endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the reports handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers reports routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports", h.handleLoad)
	r.Post("/reports/export", h.handleExport)
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.service.Load(r.Context(), Range{From: q.Get("from"), To: q.Get("to")})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report.Search(q.Get("q")))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	export, err := h.service.Export(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, export)
}
