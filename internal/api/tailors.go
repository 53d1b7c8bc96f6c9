package api

import (
	"context"
	"net/http"

	"github.com/startailors/tailorshop/internal/shop"
)

// TailorInput is the body of tailor create and update calls.
type TailorInput struct {
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Specialization string `json:"specialization,omitempty"`
	Experience     string `json:"experience,omitempty"`
	Status         string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

func (c *Client) ListTailors(ctx context.Context, params ListParams) ([]shop.Tailor, shop.Pagination, error) {
	return getList(ctx, c, "tailors.list", "/tailors", params.values(), "tailors", normalizeTailor)
}

func (c *Client) GetTailor(ctx context.Context, id string) (shop.Tailor, error) {
	return fetchOne(ctx, c, "tailors.get", http.MethodGet, entityPath("tailors", id), nil, "tailor", normalizeTailor)
}

func (c *Client) CreateTailor(ctx context.Context, in TailorInput) (shop.Tailor, error) {
	return fetchOne(ctx, c, "tailors.create", http.MethodPost, "/tailors", in, "tailor", normalizeTailor)
}

func (c *Client) UpdateTailor(ctx context.Context, id string, in TailorInput) (Ack, error) {
	return c.ack(ctx, "tailors.update", http.MethodPut, entityPath("tailors", id), in)
}

func (c *Client) DeleteTailor(ctx context.Context, id string) (Ack, error) {
	return c.ack(ctx, "tailors.delete", http.MethodDelete, entityPath("tailors", id), nil)
}

func (c *Client) UpdateTailorStatus(ctx context.Context, id string, status shop.TailorStatus) (Ack, error) {
	return c.ack(ctx, "tailors.status", http.MethodPut, entityPath("tailors", id, "status"),
		map[string]string{"status": string(status)})
}

// TailorJobs lists the jobs assigned to one tailor.
func (c *Client) TailorJobs(ctx context.Context, id string, params ListParams) ([]shop.Job, shop.Pagination, error) {
	return getList(ctx, c, "tailors.jobs", entityPath("tailors", id, "jobs"), params.values(), "jobs", normalizeJob)
}

// TailorStats passes the backend's tailor counters through.
func (c *Client) TailorStats(ctx context.Context) (map[string]any, error) {
	out := map[string]any{}
	err := c.get(ctx, "tailors.stats", "/tailors/stats", nil, &out)
	return out, err
}
