// Package dashboard assembles the shop dashboard: a verified, six-way batch
// load followed by pure aggregation over the loaded collections.
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/startailors/tailorshop/internal/api"
	"github.com/startailors/tailorshop/internal/shop"
)

// BatchLimit is the page size used for bills and jobs.
const BatchLimit = 1000

// Result is one sub-request of a batch: the value, or its default and the
// error that replaced it.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the sub-request succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

func capture[T any](value T, err error, fallback T) Result[T] {
	if err != nil {
		return Result[T]{Value: fallback, Err: err}
	}
	return Result[T]{Value: value}
}

// Batch is the fixed set of dashboard sub-requests.
type Batch struct {
	Customers Result[[]shop.Customer]
	Bills     Result[[]shop.Bill]
	Tailors   Result[[]shop.Tailor]
	Jobs      Result[[]shop.Job]
	UPI       Result[shop.UPISettings]
	Business  Result[shop.BusinessSettings]
}

// SourceError names a failed sub-request.
type SourceError struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// Errors lists failed sub-requests in fixed order.
func (b Batch) Errors() []SourceError {
	var out []SourceError
	add := func(source string, err error) {
		if err != nil {
			out = append(out, SourceError{Source: source, Message: err.Error()})
		}
	}
	add("customers", b.Customers.Err)
	add("bills", b.Bills.Err)
	add("tailors", b.Tailors.Err)
	add("jobs", b.Jobs.Err)
	add("upi_settings", b.UPI.Err)
	add("business_settings", b.Business.Err)
	return out
}

// Partial reports whether any sub-request failed.
func (b Batch) Partial() bool {
	return len(b.Errors()) > 0
}

// Source is the slice of the API client the batch reads.
type Source interface {
	ListCustomers(ctx context.Context, params api.ListParams) ([]shop.Customer, shop.Pagination, error)
	ListBills(ctx context.Context, params api.ListParams) ([]shop.Bill, shop.Pagination, error)
	ListTailors(ctx context.Context, params api.ListParams) ([]shop.Tailor, shop.Pagination, error)
	ListJobs(ctx context.Context, params api.ListParams) ([]shop.Job, shop.Pagination, error)
	UPISettings(ctx context.Context) (shop.UPISettings, error)
	BusinessSettings(ctx context.Context) (shop.BusinessSettings, error)
}

// LoadBatch runs the six sub-requests concurrently and waits for all of them.
// A failure never cancels its siblings; it is captured and the default is used.
func LoadBatch(ctx context.Context, src Source) Batch {
	var (
		b Batch
		g errgroup.Group
	)
	g.Go(func() error {
		v, _, err := src.ListCustomers(ctx, api.ListParams{Limit: BatchLimit})
		b.Customers = capture(v, err, []shop.Customer{})
		return nil
	})
	g.Go(func() error {
		v, _, err := src.ListBills(ctx, api.ListParams{Limit: BatchLimit})
		b.Bills = capture(v, err, []shop.Bill{})
		return nil
	})
	g.Go(func() error {
		v, _, err := src.ListTailors(ctx, api.ListParams{Limit: BatchLimit})
		b.Tailors = capture(v, err, []shop.Tailor{})
		return nil
	})
	g.Go(func() error {
		v, _, err := src.ListJobs(ctx, api.ListParams{Limit: BatchLimit})
		b.Jobs = capture(v, err, []shop.Job{})
		return nil
	})
	g.Go(func() error {
		v, err := src.UPISettings(ctx)
		b.UPI = capture(v, err, shop.DefaultUPISettings())
		return nil
	})
	g.Go(func() error {
		v, err := src.BusinessSettings(ctx)
		b.Business = capture(v, err, shop.DefaultBusinessSettings())
		return nil
	})
	_ = g.Wait()
	return b
}
