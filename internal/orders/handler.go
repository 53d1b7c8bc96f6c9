package orders

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/startailors/tailorshop/internal/billing"
	"github.com/startailors/tailorshop/internal/platform/httpx"
	"github.com/startailors/tailorshop/internal/shop"
)

// Handler exposes the order endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs the order handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers order routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/orders", h.handleList)
	r.Get("/orders/catalog", h.handleCatalog)
	r.Post("/orders/preview", h.handlePreview)
	r.Post("/orders", h.handleCheckout)
	r.Put("/orders/{id}/status", h.handleStatus)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listing, err := h.service.List(r.Context(), Query{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Sort:   SortKey(q.Get("sort")),
	})
	if err != nil {
		h.logger.Error("list orders", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, listing)
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{"items": billing.Catalog()})
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	var d Draft
	if err := httpx.DecodeJSON(r, &d); err != nil {
		httpx.RespondError(w, err)
		return
	}
	totals := h.service.Preview(d)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"totals": totals,
		"display": map[string]string{
			"subtotal": billing.FormatAmount(totals.Subtotal),
			"total":    billing.FormatAmount(totals.Total),
			"balance":  billing.FormatAmount(totals.Balance),
		},
	})
}

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var d Draft
	if err := httpx.DecodeJSON(r, &d); err != nil {
		httpx.RespondError(w, err)
		return
	}
	receipt, err := h.service.Checkout(r.Context(), d)
	var orphan *OrphanedCustomerError
	if errors.As(err, &orphan) {
		h.logger.Warn("checkout left customer without bill", slog.String("customer_id", orphan.CustomerID), slog.Any("error", err))
		httpx.RespondErrorWith(w, err, map[string]any{
			"customer_id": orphan.CustomerID,
			"customer":    receipt.Customer,
		})
		return
	}
	if err != nil {
		h.logger.Warn("checkout failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, receipt)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.RespondError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.service.UpdateStatus(r.Context(), id, shop.BillStatus(body.Status)); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"id": id, "status": body.Status})
}
