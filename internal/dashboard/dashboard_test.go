package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startailors/tailorshop/internal/api"
	"github.com/startailors/tailorshop/internal/payments"
	"github.com/startailors/tailorshop/internal/shop"
)

type fakeBackend struct {
	mu        sync.Mutex
	user      shop.User
	verifyErr error
	customers []shop.Customer
	bills     []shop.Bill
	tailors   []shop.Tailor
	jobs      []shop.Job
	upi       shop.UPISettings
	business  shop.BusinessSettings
	errs      map[string]error
	params    []api.ListParams
	gate      chan struct{}
	entered   chan struct{}
	verifies  atomic.Int32
	loads     atomic.Int32
}

func (f *fakeBackend) record(p api.ListParams) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.params = append(f.params, p)
}

func (f *fakeBackend) Verify(ctx context.Context) (shop.User, error) {
	f.verifies.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user, f.verifyErr
}

func (f *fakeBackend) reject(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifyErr = err
}

func (f *fakeBackend) ListCustomers(ctx context.Context, p api.ListParams) ([]shop.Customer, shop.Pagination, error) {
	f.loads.Add(1)
	f.record(p)
	if f.gate != nil {
		close(f.entered)
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, shop.Pagination{}, ctx.Err()
		}
	}
	return f.customers, shop.Pagination{}, f.errs["customers"]
}

func (f *fakeBackend) ListBills(ctx context.Context, p api.ListParams) ([]shop.Bill, shop.Pagination, error) {
	f.record(p)
	if err := f.errs["bills"]; err != nil {
		return nil, shop.Pagination{}, err
	}
	return f.bills, shop.Pagination{}, nil
}

func (f *fakeBackend) ListTailors(ctx context.Context, p api.ListParams) ([]shop.Tailor, shop.Pagination, error) {
	f.record(p)
	return f.tailors, shop.Pagination{}, f.errs["tailors"]
}

func (f *fakeBackend) ListJobs(ctx context.Context, p api.ListParams) ([]shop.Job, shop.Pagination, error) {
	f.record(p)
	return f.jobs, shop.Pagination{}, f.errs["jobs"]
}

func (f *fakeBackend) UPISettings(ctx context.Context) (shop.UPISettings, error) {
	return f.upi, f.errs["upi"]
}

func (f *fakeBackend) BusinessSettings(ctx context.Context) (shop.BusinessSettings, error) {
	return f.business, f.errs["business"]
}

func (f *fakeBackend) DashboardStats(ctx context.Context) (shop.BackendStats, error) {
	return shop.BackendStats{TotalBills: len(f.bills)}, nil
}

func bill(id string, subtotal, advance float64, status shop.BillStatus) shop.Bill {
	return shop.Bill{ID: id, CustomerName: "Ravi", Subtotal: subtotal, Advance: advance, Status: status}
}

func TestAggregatePendingWithoutJob(t *testing.T) {
	bills := []shop.Bill{bill("b1", 1000, 200, shop.BillPending)}
	stats := Aggregate(nil, bills, nil, nil, time.Now())

	assert.Equal(t, 800.0, stats.OutstandingAmount)
	assert.Equal(t, 1, stats.ActiveOrders)
	assert.Equal(t, 1000.0, stats.TotalRevenue)
}

func TestAggregateOutstandingExcludesNonPending(t *testing.T) {
	bills := []shop.Bill{
		bill("b1", 1000, 200, shop.BillInProgress),
		bill("b2", 1000, 1000, shop.BillPending),
		bill("b3", 500, 0, shop.BillCompleted),
	}
	stats := Aggregate(nil, bills, nil, nil, time.Now())

	assert.Zero(t, stats.OutstandingAmount)
	assert.Equal(t, 2, stats.ActiveOrders)
	assert.Equal(t, 1, stats.CompletedOrders)
	assert.Equal(t, 2500.0, stats.TotalRevenue)
}

func TestAggregateMonthlyRevenueAndCounters(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.Local)
	thisMonth := bill("b1", 400, 0, shop.BillCompleted)
	thisMonth.CreatedAt = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.Local)
	lastYear := bill("b2", 900, 0, shop.BillCompleted)
	lastYear.CreatedAt = time.Date(2025, time.March, 20, 9, 0, 0, 0, time.Local)
	undated := bill("b3", 100, 0, shop.BillCompleted)

	stats := Aggregate(
		[]shop.Customer{{ID: "c1"}, {ID: "c2"}},
		[]shop.Bill{thisMonth, lastYear, undated},
		[]shop.Tailor{{ID: "t1", Status: shop.TailorActive}, {ID: "t2", Status: shop.TailorInactive}},
		[]shop.Job{{Status: shop.JobAssigned}, {Status: shop.JobAcknowledged}, {Status: shop.JobInProgress}},
		now,
	)

	assert.Equal(t, 400.0, stats.MonthlyRevenue)
	assert.Equal(t, 1400.0, stats.TotalRevenue)
	assert.Equal(t, 2, stats.TotalCustomers)
	assert.Equal(t, 1, stats.ActiveTailors)
	assert.Equal(t, 2, stats.PendingJobs)
}

func TestAlertThresholds(t *testing.T) {
	high := Alerts(Stats{PendingJobs: 6})
	require.Len(t, high, 1)
	assert.Equal(t, "pending-jobs", high[0].ID)
	assert.Equal(t, "high", high[0].Priority)
	assert.Equal(t, "6 jobs are waiting for tailor attention", high[0].Message)

	medium := Alerts(Stats{PendingJobs: 3})
	require.Len(t, medium, 1)
	assert.Equal(t, "medium", medium[0].Priority)

	assert.Empty(t, Alerts(Stats{}))
}

func TestOutstandingAlert(t *testing.T) {
	alerts := Alerts(Stats{OutstandingAmount: 25000})
	require.Len(t, alerts, 1)
	assert.Equal(t, "outstanding-payments", alerts[0].ID)
	assert.Equal(t, "payment", alerts[0].Type)
	assert.Equal(t, "high", alerts[0].Priority)
	assert.Equal(t, "₹25,000 in outstanding payments", alerts[0].Message)

	assert.Equal(t, "medium", Alerts(Stats{OutstandingAmount: 20000})[0].Priority)
}

func TestRecentActivity(t *testing.T) {
	bills := []shop.Bill{
		{ID: "1", CustomerName: "Asha", Items: []shop.BillItem{{Type: "shirt"}}},
		{ID: "2", CustomerName: "Ravi"},
		{ID: "3", CustomerName: "Meena"},
		{ID: "4", CustomerName: "Skipped"},
	}
	jobs := []shop.Job{
		{ID: "9", Status: shop.JobCompleted, ItemType: "suit"},
		{ID: "8", Status: shop.JobAssigned, ItemType: "kurta"},
		{ID: "7", Status: shop.JobAssigned, ItemType: "dress"},
	}
	feed := RecentActivity(bills, jobs)

	require.Len(t, feed, 5)
	assert.Equal(t, "bill-1", feed[0].ID)
	assert.Equal(t, "New order from Asha - shirt", feed[0].Message)
	assert.Equal(t, "New order from Ravi - Order", feed[1].Message)
	assert.Equal(t, "job-9", feed[3].ID)
	assert.Equal(t, "Job completed - suit", feed[3].Message)
	assert.Equal(t, "success", feed[3].Status)
	assert.Equal(t, "Job assigned - kurta", feed[4].Message)
	assert.Equal(t, "info", feed[4].Status)
}

func TestLoadBatchCapturesFailures(t *testing.T) {
	backend := &fakeBackend{
		bills: []shop.Bill{bill("b1", 100, 0, shop.BillPending)},
		errs: map[string]error{
			"customers": errors.New("boom"),
			"upi":       errors.New("down"),
		},
	}
	b := LoadBatch(context.Background(), backend)

	assert.False(t, b.Customers.OK())
	assert.NotNil(t, b.Customers.Value)
	assert.Empty(t, b.Customers.Value)
	assert.True(t, b.Bills.OK())
	assert.Len(t, b.Bills.Value, 1)
	assert.Equal(t, shop.DefaultUPISettings(), b.UPI.Value)
	assert.True(t, b.Partial())
	assert.Equal(t, []SourceError{
		{Source: "customers", Message: "boom"},
		{Source: "upi_settings", Message: "down"},
	}, b.Errors())
	for _, p := range backend.params {
		assert.Equal(t, BatchLimit, p.Limit)
	}
}

func TestLoadSignedOut(t *testing.T) {
	backend := &fakeBackend{verifyErr: api.ErrSessionExpired}
	svc := NewService(backend, nil, nil, payments.NewGenerator("", ""), nil)

	_, err := svc.Load(context.Background())
	require.ErrorIs(t, err, ErrSignedOut)
	assert.ErrorIs(t, err, api.ErrSessionExpired)
	assert.Empty(t, backend.params)
}

func TestLoadAssemblesSnapshot(t *testing.T) {
	now := time.Date(2026, time.June, 2, 12, 0, 0, 0, time.Local)
	backend := &fakeBackend{
		user:  shop.User{ID: "u1", Username: "admin"},
		bills: []shop.Bill{bill("b1", 1000, 1000, shop.BillPending), bill("b2", 600, 100, shop.BillPending)},
		jobs:  []shop.Job{{ID: "j1", BillID: "b1", Status: shop.JobCompleted}},
		upi:   shop.UPISettings{UPIID: "alice@upi"},
	}
	svc := NewService(backend, nil, nil, payments.NewGenerator("", ""), nil, WithClock(func() time.Time { return now }))

	snap, err := svc.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Orders, 2)
	assert.Equal(t, "completed", snap.Orders[0].JobStatus)
	assert.Equal(t, "pending", snap.Orders[1].JobStatus)
	assert.Equal(t, 500.0, snap.Stats.OutstandingAmount)
	assert.Equal(t, shop.DefaultBusinessName, snap.UPI.BusinessName)
	assert.Contains(t, snap.QR.URI, "pa=alice%40upi")
	assert.Contains(t, snap.QR.URI, "am=100")
	assert.Equal(t, "Sample Bill Payment", snap.QR.Payment.Note)
	assert.Empty(t, snap.Warning)
	assert.Equal(t, now, snap.GeneratedAt)
}

func TestLoadPartialWarning(t *testing.T) {
	backend := &fakeBackend{errs: map[string]error{"jobs": errors.New("timeout")}}
	svc := NewService(backend, nil, nil, payments.NewGenerator("", ""), nil)

	snap, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PartialWarning, snap.Warning)
	assert.True(t, snap.Partial())
	require.Len(t, snap.Errors, 1)
	assert.Equal(t, "jobs", snap.Errors[0].Source)
	assert.NotNil(t, snap.Jobs)
}
