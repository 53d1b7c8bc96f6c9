package api

import (
	"context"
	"net/http"

	"github.com/startailors/tailorshop/internal/shop"
)

// JobItemInput is a garment handed to the tailor.
type JobItemInput struct {
	Type         string            `json:"type"`
	Description  string            `json:"description"`
	Measurements map[string]string `json:"measurements"`
}

// JobInput is the body of job create and update calls. Title and Description
// repeat the item type and instructions for backends that key on them.
type JobInput struct {
	BillID        string         `json:"bill_id,omitempty"`
	TailorID      string         `json:"tailor_id"`
	CustomerName  string         `json:"customer_name"`
	CustomerPhone string         `json:"customer_phone,omitempty"`
	Items         []JobItemInput `json:"items"`
	Instructions  string         `json:"instructions,omitempty"`
	Priority      string         `json:"priority,omitempty"`
	DueDate       string         `json:"due_date,omitempty"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
}

func (c *Client) ListJobs(ctx context.Context, params ListParams) ([]shop.Job, shop.Pagination, error) {
	return getList(ctx, c, "jobs.list", "/jobs", params.values(), "jobs", normalizeJob)
}

func (c *Client) GetJob(ctx context.Context, id string) (shop.Job, error) {
	return fetchOne(ctx, c, "jobs.get", http.MethodGet, entityPath("jobs", id), nil, "job", normalizeJob)
}

func (c *Client) CreateJob(ctx context.Context, in JobInput) (shop.Job, error) {
	return fetchOne(ctx, c, "jobs.create", http.MethodPost, "/jobs", in, "job", normalizeJob)
}

func (c *Client) UpdateJob(ctx context.Context, id string, in JobInput) (Ack, error) {
	return c.ack(ctx, "jobs.update", http.MethodPut, entityPath("jobs", id), in)
}

func (c *Client) DeleteJob(ctx context.Context, id string) (Ack, error) {
	return c.ack(ctx, "jobs.delete", http.MethodDelete, entityPath("jobs", id), nil)
}

func (c *Client) UpdateJobStatus(ctx context.Context, id string, status shop.JobStatus) (Ack, error) {
	return c.ack(ctx, "jobs.status", http.MethodPut, entityPath("jobs", id, "status"),
		map[string]string{"status": string(status)})
}
