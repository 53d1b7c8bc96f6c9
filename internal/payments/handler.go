package payments

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/startailors/tailorshop/internal/api"
	"github.com/startailors/tailorshop/internal/platform/httpx"
	"github.com/startailors/tailorshop/internal/shop"
)

// Settings reads and writes the payee used for payment QR codes.
type Settings interface {
	UPISettings(ctx context.Context) (shop.UPISettings, error)
	UpdateUPISettings(ctx context.Context, s shop.UPISettings) (api.Ack, error)
}

// Invalidator retires cached views that embed the payee.
type Invalidator interface {
	Bump(ctx context.Context) (int64, error)
}

// Handler exposes the payment QR and UPI settings endpoints.
type Handler struct {
	logger    *slog.Logger
	settings  Settings
	generator Generator
	validator *validator.Validate
	cache     Invalidator
}

// HandlerOption customises the handler.
type HandlerOption func(*Handler)

// WithInvalidator bumps cache after the payee changes.
func WithInvalidator(cache Invalidator) HandlerOption {
	return func(h *Handler) {
		h.cache = cache
	}
}

// NewHandler constructs the payments handler.
func NewHandler(logger *slog.Logger, settings Settings, generator Generator, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{logger: logger, settings: settings, generator: generator, validator: validator.New()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// MountRoutes registers payment routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/payments/qr", h.handleQR)
	r.Put("/settings/upi", h.handleUpdateUPI)
}

func (h *Handler) handleQR(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		httpx.RespondError(w, httpx.Invalid("amount", "must be a non-negative number"))
		return
	}
	upi, err := h.settings.UPISettings(r.Context())
	if err != nil {
		if api.IsAuthFailure(err) {
			httpx.RespondError(w, err)
			return
		}
		h.logger.Warn("load upi settings, using defaults", slog.Any("error", err))
		upi = shop.DefaultUPISettings()
	}
	httpx.JSON(w, http.StatusOK, h.generator.Build(Payment{
		PayeeVPA:  upi.UPIID,
		PayeeName: upi.BusinessName,
		Amount:    amount,
		Note:      q.Get("note"),
	}))
}

type upiForm struct {
	UPIID        string `json:"upi_id" validate:"required"`
	BusinessName string `json:"business_name" validate:"required"`
}

func (h *Handler) handleUpdateUPI(w http.ResponseWriter, r *http.Request) {
	var form upiForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.RespondError(w, err)
		return
	}
	form.UPIID = strings.TrimSpace(form.UPIID)
	form.BusinessName = strings.TrimSpace(form.BusinessName)
	if err := h.validator.Struct(form); err != nil {
		httpx.RespondError(w, httpx.FromValidator(err))
		return
	}
	ack, err := h.settings.UpdateUPISettings(r.Context(), shop.UPISettings{UPIID: form.UPIID, BusinessName: form.BusinessName})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if h.cache != nil {
		if _, err := h.cache.Bump(r.Context()); err != nil {
			h.logger.Warn("retire cached dashboard after upi change", slog.Any("error", err))
		}
	}
	httpx.JSON(w, http.StatusOK, ack)
}
