package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/startailors/tailorshop/internal/api"
	"github.com/startailors/tailorshop/internal/billing"
	"github.com/startailors/tailorshop/internal/platform/httpx"
	"github.com/startailors/tailorshop/internal/shop"
)

// ListLimit is the page size used when loading every bill and job.
const ListLimit = 1000

// Backend is the slice of the API client the order flows need.
type Backend interface {
	ListBills(ctx context.Context, params api.ListParams) ([]shop.Bill, shop.Pagination, error)
	ListJobs(ctx context.Context, params api.ListParams) ([]shop.Job, shop.Pagination, error)
	CreateCustomer(ctx context.Context, in api.CustomerInput) (shop.Customer, error)
	CreateBill(ctx context.Context, in api.BillInput) (shop.Bill, error)
	UpdateBillStatus(ctx context.Context, id string, status shop.BillStatus) (api.Ack, error)
}

// Service implements order listing, checkout and status changes.
type Service struct {
	backend  Backend
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService constructs the order service.
func NewService(backend Backend, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{backend: backend, validate: validator.New(), logger: logger}
}

// CustomerDraft is the customer half of a checkout.
type CustomerDraft struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// DraftItem is one garment line being billed. Measurements may be a JSON
// object or a string holding one.
type DraftItem struct {
	Type         string          `json:"type" validate:"required"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity" validate:"gte=1"`
	Rate         float64         `json:"rate" validate:"gte=0"`
	Measurements json.RawMessage `json:"measurements,omitempty"`
}

// Draft is a bill being written up.
type Draft struct {
	Customer            CustomerDraft `json:"customer"`
	Items               []DraftItem   `json:"items" validate:"required,min=1,dive"`
	Discount            float64       `json:"discount" validate:"gte=0"`
	Advance             float64       `json:"advance" validate:"gte=0"`
	DueDate             string        `json:"due_date,omitempty"`
	SpecialInstructions string        `json:"special_instructions,omitempty"`
	DesignImages        []string      `json:"design_images,omitempty"`
	Drawings            []string      `json:"drawings,omitempty"`
	Signature           string        `json:"signature,omitempty"`
}

func (d *Draft) trim() {
	d.Customer.Name = strings.TrimSpace(d.Customer.Name)
	d.Customer.Phone = strings.TrimSpace(d.Customer.Phone)
	d.Customer.Email = strings.TrimSpace(d.Customer.Email)
	for i := range d.Items {
		d.Items[i].Type = strings.ToLower(strings.TrimSpace(d.Items[i].Type))
	}
}

func (d Draft) lines() []billing.Line {
	lines := make([]billing.Line, len(d.Items))
	for i, item := range d.Items {
		lines[i] = billing.Line{Quantity: float64(item.Quantity), Rate: item.Rate}
	}
	return lines
}

// Preview computes the live totals of a draft. It never fails: invalid
// quantities and rates count as zero.
func (s *Service) Preview(d Draft) billing.Totals {
	return billing.Compute(d.lines(), d.Discount, d.Advance)
}

// Receipt is the outcome of a successful checkout.
type Receipt struct {
	Customer shop.Customer  `json:"customer"`
	Bill     shop.Bill      `json:"bill"`
	Totals   billing.Totals `json:"totals"`
}

// OrphanedCustomerError reports a checkout whose customer was created but
// whose bill was not.
type OrphanedCustomerError struct {
	CustomerID string
	Err        error
}

func (e *OrphanedCustomerError) Error() string {
	return fmt.Sprintf("customer %s was created but the bill was not: %v", e.CustomerID, e.Err)
}

func (e *OrphanedCustomerError) Unwrap() error { return e.Err }

// Checkout validates the draft, creates the customer, then the bill. The two
// calls are not atomic: a bill failure returns *OrphanedCustomerError.
func (s *Service) Checkout(ctx context.Context, d Draft) (Receipt, error) {
	d.trim()
	items, err := s.validateDraft(d)
	if err != nil {
		return Receipt{}, err
	}

	customer, err := s.backend.CreateCustomer(ctx, api.CustomerInput{
		Name:    d.Customer.Name,
		Phone:   d.Customer.Phone,
		Email:   d.Customer.Email,
		Address: d.Customer.Address,
		Notes:   d.Customer.Notes,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("create customer: %w", err)
	}

	bill := shop.Bill{
		CustomerID:          customer.ID,
		CustomerName:        d.Customer.Name,
		CustomerPhone:       d.Customer.Phone,
		CustomerAddress:     d.Customer.Address,
		Items:               items,
		Discount:            d.Discount,
		Advance:             d.Advance,
		Status:              shop.BillPending,
		DueDate:             d.DueDate,
		SpecialInstructions: d.SpecialInstructions,
		DesignImages:        d.DesignImages,
		Drawings:            d.Drawings,
		Signature:           d.Signature,
	}
	bill.Subtotal = billing.Subtotal(bill.Lines())

	created, err := s.backend.CreateBill(ctx, api.NewBillInput(bill))
	if err != nil {
		s.logger.Warn("bill creation failed after customer was created",
			slog.String("customer_id", customer.ID),
			slog.Any("error", err))
		return Receipt{Customer: customer}, &OrphanedCustomerError{CustomerID: customer.ID, Err: err}
	}
	if created.ID == "" {
		created = bill
	}
	return Receipt{
		Customer: customer,
		Bill:     created,
		Totals:   billing.Compute(bill.Lines(), bill.Discount, bill.Advance),
	}, nil
}

func (s *Service) validateDraft(d Draft) ([]shop.BillItem, error) {
	if err := s.validate.Struct(d); err != nil {
		return nil, httpx.FromValidator(err)
	}
	items := make([]shop.BillItem, len(d.Items))
	for i, item := range d.Items {
		if !billing.ValidItemType(item.Type) {
			return nil, httpx.Invalid(fmt.Sprintf("items[%d].type", i), "unknown item type "+item.Type)
		}
		measurements, err := DecodeMeasurements(item.Measurements)
		if err != nil {
			return nil, httpx.Invalid(fmt.Sprintf("items[%d].measurements", i), err.Error())
		}
		items[i] = shop.BillItem{
			Type:         item.Type,
			Description:  strings.TrimSpace(item.Description),
			Quantity:     item.Quantity,
			Rate:         item.Rate,
			Measurements: measurements,
		}
	}
	return items, nil
}

// DecodeMeasurements accepts a JSON object, a JSON string containing an
// object, or nothing.
func DecodeMeasurements(raw json.RawMessage) (map[string]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return map[string]string{}, nil
	}
	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return nil, fmt.Errorf("%w: %v", billing.ErrInvalidMeasurements, err)
		}
		return billing.ParseMeasurements(text)
	}
	return billing.ParseMeasurements(string(trimmed))
}

// UpdateStatus changes a bill's own status.
func (s *Service) UpdateStatus(ctx context.Context, billID string, status shop.BillStatus) error {
	if strings.TrimSpace(billID) == "" {
		return httpx.Invalid("id", "is required")
	}
	if !shop.ValidBillStatus(status) {
		return httpx.Invalid("status", "must be one of: pending in_progress completed")
	}
	if _, err := s.backend.UpdateBillStatus(ctx, billID, status); err != nil {
		return fmt.Errorf("update bill status: %w", err)
	}
	return nil
}

// Listing is a reconciled, filtered and sorted order list.
type Listing struct {
	Orders  []Order `json:"orders"`
	Summary Summary `json:"summary"`
}

// List loads bills and jobs concurrently, reconciles them and applies q. The
// summary covers every order before filtering.
func (s *Service) List(ctx context.Context, q Query) (Listing, error) {
	var (
		bills []shop.Bill
		jobs  []shop.Job
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bills, _, err = s.backend.ListBills(gctx, api.ListParams{Limit: ListLimit})
		if err != nil {
			return fmt.Errorf("list bills: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		jobs, _, err = s.backend.ListJobs(gctx, api.ListParams{Limit: ListLimit})
		if err != nil {
			return fmt.Errorf("list jobs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Listing{}, err
	}
	all := Reconcile(bills, jobs)
	return Listing{Orders: Apply(all, q), Summary: Summarize(all)}, nil
}
