package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/startailors/tailorshop/internal/shop"
)

// Export is the backend's answer to an export request.
type Export struct {
	Message     string `json:"message"`
	DownloadURL string `json:"download_url"`
}

// RevenueReport returns revenue per period between from and to (YYYY-MM-DD).
// Empty bounds let the backend pick its default window.
func (c *Client) RevenueReport(ctx context.Context, from, to string) ([]shop.RevenuePoint, error) {
	q := url.Values{}
	if from != "" {
		q.Set("from_date", from)
	}
	if to != "" {
		q.Set("to_date", to)
	}
	rows, _, err := getList(ctx, c, "reports.revenue", "/reports/revenue", q, "revenue_data", normalizeRevenue)
	return rows, err
}

func (c *Client) CustomerReports(ctx context.Context) ([]shop.CustomerReport, error) {
	rows, _, err := getList(ctx, c, "reports.customers", "/reports/customers", nil, "customer_reports", normalizeCustomerReport)
	return rows, err
}

func (c *Client) TailorReports(ctx context.Context) ([]shop.TailorReport, error) {
	rows, _, err := getList(ctx, c, "reports.tailors", "/reports/tailors", nil, "tailor_reports", normalizeTailorReport)
	return rows, err
}

func (c *Client) OutstandingReports(ctx context.Context) ([]shop.OutstandingReport, error) {
	rows, _, err := getList(ctx, c, "reports.outstanding", "/reports/outstanding", nil, "outstanding_reports", normalizeOutstanding)
	return rows, err
}

// ExportReport asks the backend to render a report file.
func (c *Client) ExportReport(ctx context.Context, reportType, format string) (Export, error) {
	var out Export
	payload := map[string]string{"report_type": reportType, "format": format}
	err := c.send(ctx, "reports.export", http.MethodPost, "/reports/export", payload, &out)
	return out, err
}
