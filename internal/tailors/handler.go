package tailors

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/startailors/tailorshop/internal/api"
	"github.com/startailors/tailorshop/internal/platform/httpx"
	"github.com/startailors/tailorshop/internal/shop"
)

// Handler exposes the workshop endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the workshop handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers tailor and job routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/tailors", h.handleOverview)
	r.Post("/tailors", h.handleAddTailor)
	r.Put("/tailors/{id}/status", h.handleTailorStatus)
	r.Get("/jobs/prefill/{billID}", h.handlePrefill)
	r.Post("/jobs", h.handleAssign)
	r.Put("/jobs/{id}/status", h.handleJobStatus)
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.service.Overview(r.Context())
	if err != nil {
		h.logger.Error("load workshop", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ov)
}

func (h *Handler) handleAddTailor(w http.ResponseWriter, r *http.Request) {
	var in api.TailorInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	t, err := h.service.AddTailor(r.Context(), in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, t)
}

func (h *Handler) handleTailorStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status shop.TailorStatus `json:"status"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.RespondError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.service.SetTailorStatus(r.Context(), id, body.Status); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"id": id, "status": string(body.Status)})
}

func (h *Handler) handlePrefill(w http.ResponseWriter, r *http.Request) {
	draft, err := h.service.Prefill(r.Context(), chi.URLParam(r, "billID"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, draft)
}

func (h *Handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	var d JobDraft
	if err := httpx.DecodeJSON(r, &d); err != nil {
		httpx.RespondError(w, err)
		return
	}
	job, err := h.service.AssignJob(r.Context(), d)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, job)
}

func (h *Handler) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		From shop.JobStatus `json:"from,omitempty"`
		To   shop.JobStatus `json:"status"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.RespondError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.service.UpdateJobStatus(r.Context(), id, body.From, body.To); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"id": id, "status": string(body.To)})
}
