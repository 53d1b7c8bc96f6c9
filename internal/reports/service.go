package reports

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/startailors/tailorshop/internal/api"
	"github.com/startailors/tailorshop/internal/platform/httpx"
	"github.com/startailors/tailorshop/internal/shop"
)

// Backend is the report surface of the API client.
type Backend interface {
	RevenueReport(ctx context.Context, from, to string) ([]shop.RevenuePoint, error)
	CustomerReports(ctx context.Context) ([]shop.CustomerReport, error)
	TailorReports(ctx context.Context) ([]shop.TailorReport, error)
	OutstandingReports(ctx context.Context) ([]shop.OutstandingReport, error)
	ExportReport(ctx context.Context, reportType, format string) (api.Export, error)
}

// Service loads reports.
type Service struct {
	backend  Backend
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs the reports service.
func NewService(backend Backend, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{backend: backend, validate: validator.New(), logger: logger, now: time.Now}
}

// Load fetches the four reports concurrently. Any failure fails the whole
// load. Missing range bounds default to the last thirty days.
func (s *Service) Load(ctx context.Context, rng Range) (Report, error) {
	rng = rng.withDefaults(s.now())
	if !rng.valid() {
		return Report{}, httpx.Invalid("range", "from and to must be YYYY-MM-DD with from on or before to")
	}
	report := Report{Range: rng}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.backend.RevenueReport(gctx, rng.From, rng.To)
		report.Revenue = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.backend.CustomerReports(gctx)
		report.Customers = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.backend.TailorReports(gctx)
		report.Tailors = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.backend.OutstandingReports(gctx)
		report.Outstanding = rows
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("load reports", slog.Any("error", err))
		return Report{}, fmt.Errorf("load reports: %w", err)
	}
	report.Summary = Summarize(report.Revenue, report.Outstanding)
	return report, nil
}

// ExportRequest selects a report and file format.
type ExportRequest struct {
	Type   string `json:"report_type" validate:"required,oneof=revenue customers tailors outstanding"`
	Format string `json:"format" validate:"omitempty,oneof=csv pdf"`
}

// Export asks the backend for a download link. Format defaults to csv.
func (s *Service) Export(ctx context.Context, req ExportRequest) (api.Export, error) {
	req.Type = strings.TrimSpace(req.Type)
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	if req.Format == "" {
		req.Format = "csv"
	}
	if err := s.validate.Struct(req); err != nil {
		return api.Export{}, httpx.FromValidator(err)
	}
	return s.backend.ExportReport(ctx, req.Type, req.Format)
}
