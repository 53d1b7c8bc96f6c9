package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/startailors/tailorshop/internal/orders"
	"github.com/startailors/tailorshop/internal/payments"
	"github.com/startailors/tailorshop/internal/session"
	"github.com/startailors/tailorshop/internal/shop"
)

const (
	// PartialWarning is shown when any batch sub-request failed.
	PartialWarning = "Partial data loaded. Some features may not work."

	sampleAmount = 100
	sampleNote   = "Sample Bill Payment"
	snapshotKey  = "snapshot"
)

// ErrSignedOut reports that token verification failed and the session was
// cleared.
var ErrSignedOut = errors.New("dashboard: signed out")

// Backend is the API surface the dashboard reads.
type Backend interface {
	Source
	Verify(ctx context.Context) (shop.User, error)
	DashboardStats(ctx context.Context) (shop.BackendStats, error)
}

// Snapshot is one fully assembled dashboard.
type Snapshot struct {
	User        shop.User             `json:"user"`
	Stats       Stats                 `json:"stats"`
	Orders      []orders.Order        `json:"orders"`
	Summary     orders.Summary        `json:"summary"`
	Customers   []shop.Customer       `json:"customers"`
	Tailors     []shop.Tailor         `json:"tailors"`
	Jobs        []shop.Job            `json:"jobs"`
	Alerts      []Alert               `json:"alerts"`
	Activity    []Activity            `json:"activity"`
	UPI         shop.UPISettings      `json:"upi_settings"`
	Business    shop.BusinessSettings `json:"business_settings"`
	QR          payments.QR           `json:"qr"`
	Warning     string                `json:"warning,omitempty"`
	Errors      []SourceError         `json:"errors,omitempty"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// Partial reports whether the snapshot was built from defaults for at least
// one source.
func (s Snapshot) Partial() bool { return s.Warning != "" }

// Service loads and caches dashboard snapshots.
type Service struct {
	backend Backend
	session *session.Session
	cache   *Cache
	qr      payments.Generator
	logger  *slog.Logger
	now     func() time.Time
	group   singleflight.Group
}

// Option customises the service.
type Option func(*Service)

// WithClock overrides the clock used for monthly revenue.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the dashboard service. cache may be nil.
func NewService(backend Backend, sess *session.Session, cache *Cache, qr payments.Generator, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{backend: backend, session: sess, cache: cache, qr: qr, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	sess.OnClear(s.invalidate)
	return s
}

// invalidate retires cached snapshots once the session is gone so the next
// operator never sees them.
func (s *Service) invalidate(ctx context.Context) {
	if _, err := s.cache.Bump(context.WithoutCancel(ctx)); err != nil {
		s.logger.Warn("dashboard cache bump", slog.Any("error", err))
	}
}

// verify checks the token once per dashboard request. Any failure signs the
// operator out.
func (s *Service) verify(ctx context.Context) (shop.User, error) {
	user, err := s.backend.Verify(ctx)
	if err == nil {
		return user, nil
	}
	if s.session != nil {
		if rerr := s.session.Revoke(context.WithoutCancel(ctx), s.session.Token()); rerr != nil {
			s.logger.Warn("revoke session", slog.Any("error", rerr))
		}
	}
	return shop.User{}, fmt.Errorf("%w: %w", ErrSignedOut, err)
}

// Load verifies the session and then builds a fresh snapshot from the
// six-way batch.
func (s *Service) Load(ctx context.Context) (Snapshot, error) {
	user, err := s.verify(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return s.load(ctx, user), nil
}

func (s *Service) load(ctx context.Context, user shop.User) Snapshot {
	batch := LoadBatch(ctx, s.backend)
	snap := Assemble(user, batch, s.qr, s.now())
	if snap.Partial() {
		s.logger.Warn("dashboard loaded partially", slog.Any("errors", snap.Errors))
	}
	return snap
}

// Assemble derives the snapshot from a loaded batch.
func Assemble(user shop.User, b Batch, qr payments.Generator, now time.Time) Snapshot {
	bills := b.Bills.Value
	jobs := b.Jobs.Value
	merged := orders.Reconcile(bills, jobs)
	stats := Aggregate(b.Customers.Value, bills, b.Tailors.Value, jobs, now)

	upi := b.UPI.Value
	if upi.UPIID == "" {
		upi.UPIID = shop.DefaultUPIID
	}
	if upi.BusinessName == "" {
		upi.BusinessName = shop.DefaultBusinessName
	}
	business := b.Business.Value
	if business.BusinessName == "" {
		business.BusinessName = shop.DefaultBusinessName
	}

	snap := Snapshot{
		User:      user,
		Stats:     stats,
		Orders:    merged,
		Summary:   orders.Summarize(merged),
		Customers: b.Customers.Value,
		Tailors:   b.Tailors.Value,
		Jobs:      jobs,
		Alerts:    Alerts(stats),
		Activity:  RecentActivity(bills, jobs),
		UPI:       upi,
		Business:  business,
		QR: qr.Build(payments.Payment{
			PayeeVPA:  upi.UPIID,
			PayeeName: upi.BusinessName,
			Amount:    sampleAmount,
			Note:      sampleNote,
		}),
		Errors:      b.Errors(),
		GeneratedAt: now,
	}
	if len(snap.Errors) > 0 {
		snap.Warning = PartialWarning
	}
	return snap
}

// Snapshot verifies the session and serves the cached snapshot for the
// current cache version, building it on a miss. Concurrent builds are
// collapsed. Partial snapshots are not stored.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	user, err := s.verify(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	key, err := s.cache.BuildKey(ctx, "dashboard", snapshotKey)
	if err != nil {
		s.logger.Warn("dashboard cache version", slog.Any("error", err))
		return s.build(ctx, user, "")
	}
	var snap Snapshot
	hit, err := s.cache.Get(ctx, key, &snap)
	if err != nil {
		s.logger.Warn("dashboard cache read", slog.String("key", key), slog.Any("error", err))
	}
	if hit {
		snap.User = user
		return snap, nil
	}
	return s.build(ctx, user, key)
}

// Refresh verifies the session, retires cached snapshots and builds a new one.
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	user, err := s.verify(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if _, err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("dashboard cache bump", slog.Any("error", err))
	}
	key, err := s.cache.BuildKey(ctx, "dashboard", snapshotKey)
	if err != nil {
		key = ""
	}
	return s.build(ctx, user, key)
}

// build runs the batch once per key. The shared load is detached from the
// caller that started it so joined callers are not cancelled with it.
func (s *Service) build(ctx context.Context, user shop.User, key string) (Snapshot, error) {
	flight := key
	if flight == "" {
		flight = snapshotKey
	}
	ch := s.group.DoChan(flight, func() (any, error) {
		loadCtx := context.WithoutCancel(ctx)
		snap := s.load(loadCtx, user)
		if key != "" && !snap.Partial() {
			if err := s.cache.Put(loadCtx, key, snap); err != nil {
				s.logger.Warn("dashboard cache write", slog.String("key", key), slog.Any("error", err))
			}
		}
		return snap, nil
	})
	select {
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Snapshot{}, res.Err
		}
		snap := res.Val.(Snapshot)
		snap.User = user
		return snap, nil
	}
}

// BackendStats proxies the backend's own dashboard summary.
func (s *Service) BackendStats(ctx context.Context) (shop.BackendStats, error) {
	return s.backend.DashboardStats(ctx)
}
