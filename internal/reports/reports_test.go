package reports

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startailors/tailorshop/internal/api"
	"github.com/startailors/tailorshop/internal/platform/httpx"
	"github.com/startailors/tailorshop/internal/shop"
)

type fakeBackend struct {
	mu          sync.Mutex
	from, to    string
	revenue     []shop.RevenuePoint
	customers   []shop.CustomerReport
	tailors     []shop.TailorReport
	outstanding []shop.OutstandingReport
	tailorErr   error
	exported    [][2]string
}

func (f *fakeBackend) RevenueReport(ctx context.Context, from, to string) ([]shop.RevenuePoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.from, f.to = from, to
	return f.revenue, nil
}

func (f *fakeBackend) CustomerReports(ctx context.Context) ([]shop.CustomerReport, error) {
	return f.customers, nil
}

func (f *fakeBackend) TailorReports(ctx context.Context) ([]shop.TailorReport, error) {
	return f.tailors, f.tailorErr
}

func (f *fakeBackend) OutstandingReports(ctx context.Context) ([]shop.OutstandingReport, error) {
	return f.outstanding, nil
}

func (f *fakeBackend) ExportReport(ctx context.Context, reportType, format string) (api.Export, error) {
	f.exported = append(f.exported, [2]string{reportType, format})
	return api.Export{Message: "ok", DownloadURL: "/files/" + reportType + "." + format}, nil
}

func newService(backend Backend) *Service {
	svc := NewService(backend, nil)
	svc.now = func() time.Time { return time.Date(2026, time.April, 30, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestSummarize(t *testing.T) {
	s := Summarize(
		[]shop.RevenuePoint{{Revenue: 3000, Orders: 2}, {Revenue: 1500, Orders: 1}},
		[]shop.OutstandingReport{{OutstandingAmount: 700}, {OutstandingAmount: 300}},
	)
	assert.Equal(t, 4500.0, s.TotalRevenue)
	assert.Equal(t, 3, s.TotalBills)
	assert.Equal(t, 1500.0, s.AvgOrderValue)
	assert.Equal(t, 1000.0, s.TotalOutstanding)

	assert.Zero(t, Summarize(nil, nil).AvgOrderValue)
}

func TestLoadDefaultsRange(t *testing.T) {
	backend := &fakeBackend{revenue: []shop.RevenuePoint{{Revenue: 200, Orders: 4}}}
	report, err := newService(backend).Load(context.Background(), Range{})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-31", backend.from)
	assert.Equal(t, "2026-04-30", backend.to)
	assert.Equal(t, Range{From: "2026-03-31", To: "2026-04-30"}, report.Range)
	assert.Equal(t, 50.0, report.Summary.AvgOrderValue)
}

func TestLoadRejectsInvertedRange(t *testing.T) {
	_, err := newService(&fakeBackend{}).Load(context.Background(), Range{From: "2026-05-01", To: "2026-04-01"})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestLoadFailsOnAnyReport(t *testing.T) {
	backend := &fakeBackend{tailorErr: errors.New("down")}
	_, err := newService(backend).Load(context.Background(), Range{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "down")
}

func TestSearch(t *testing.T) {
	report := Report{
		Customers: []shop.CustomerReport{{Name: "Asha Rao", Phone: "98450"}, {Name: "Vikram", Phone: "90000"}},
		Tailors:   []shop.TailorReport{{Name: "Rashid", Phone: "77777"}},
		Outstanding: []shop.OutstandingReport{
			{CustomerName: "ASHA RAO", Phone: "98450"},
			{CustomerName: "Mohan", Phone: "12345"},
		},
	}

	byName := report.Search(" asha ")
	assert.Len(t, byName.Customers, 1)
	assert.Empty(t, byName.Tailors)
	assert.Len(t, byName.Outstanding, 1)

	byPhone := report.Search("777")
	assert.Len(t, byPhone.Tailors, 1)
	assert.Empty(t, byPhone.Customers)

	assert.Len(t, report.Search("").Customers, 2)
}

func TestExport(t *testing.T) {
	backend := &fakeBackend{}
	svc := newService(backend)

	out, err := svc.Export(context.Background(), ExportRequest{Type: "revenue"})
	require.NoError(t, err)
	assert.Equal(t, "/files/revenue.csv", out.DownloadURL)

	_, err = svc.Export(context.Background(), ExportRequest{Type: "inventory", Format: "pdf"})
	var verr *httpx.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Type")

	_, err = svc.Export(context.Background(), ExportRequest{Type: "tailors", Format: "xlsx"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Format")

	assert.Equal(t, [][2]string{{"revenue", "csv"}}, backend.exported)
}

func TestHandlerExportValidation(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(nil, newService(&fakeBackend{})).MountRoutes(r)

	req := httptest.NewRequest(http.MethodPost, "/reports/export", strings.NewReader(`{"report_type":"bogus"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/reports?q=asha", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"range"`)
}
