package dashboard

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/startailors/tailorshop/internal/platform/httpx"
)

// Handler exposes the dashboard endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the dashboard handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard", h.handleSnapshot)
	r.Get("/dashboard/stats", h.handleStats)
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	load := h.service.Snapshot
	if r.URL.Query().Get("refresh") == "1" {
		load = h.service.Refresh
	}
	snap, err := load(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, snap)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.BackendStats(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrSignedOut) {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrUnauthorized, err))
		return
	}
	h.logger.Error("dashboard", slog.Any("error", err))
	httpx.RespondError(w, err)
}
