package api

import (
	"context"
	"net/http"

	"github.com/startailors/tailorshop/internal/shop"
)

// CustomerInput is the body of customer create and update calls.
type CustomerInput struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

func (c *Client) ListCustomers(ctx context.Context, params ListParams) ([]shop.Customer, shop.Pagination, error) {
	return getList(ctx, c, "customers.list", "/customers", params.values(), "customers", normalizeCustomer)
}

func (c *Client) GetCustomer(ctx context.Context, id string) (shop.Customer, error) {
	return fetchOne(ctx, c, "customers.get", http.MethodGet, entityPath("customers", id), nil, "customer", normalizeCustomer)
}

func (c *Client) CreateCustomer(ctx context.Context, in CustomerInput) (shop.Customer, error) {
	return fetchOne(ctx, c, "customers.create", http.MethodPost, "/customers", in, "customer", normalizeCustomer)
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, in CustomerInput) (Ack, error) {
	return c.ack(ctx, "customers.update", http.MethodPut, entityPath("customers", id), in)
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) (Ack, error) {
	return c.ack(ctx, "customers.delete", http.MethodDelete, entityPath("customers", id), nil)
}

// CustomerStats returns the backend's customer counters.
func (c *Client) CustomerStats(ctx context.Context) (shop.CustomerStats, error) {
	var out shop.CustomerStats
	err := c.get(ctx, "customers.stats", "/customers/stats", nil, &out)
	return out, err
}
