package api

import (
	"context"

	"github.com/startailors/tailorshop/internal/shop"
)

// Health is the backend liveness answer.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DashboardStats returns the backend's own summary counters.
func (c *Client) DashboardStats(ctx context.Context) (shop.BackendStats, error) {
	var out shop.BackendStats
	err := c.get(ctx, "dashboard.stats", "/dashboard/stats", nil, &out)
	return out, err
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	err := c.get(ctx, "health", "/health", nil, &out)
	return out, err
}
