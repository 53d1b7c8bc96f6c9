package api

import (
	"context"
	"net/http"

	"github.com/startailors/tailorshop/internal/shop"
)

func (c *Client) UPISettings(ctx context.Context) (shop.UPISettings, error) {
	return fetchOne(ctx, c, "settings.upi", http.MethodGet, "/settings/upi", nil, "", normalizeUPI)
}

func (c *Client) UpdateUPISettings(ctx context.Context, s shop.UPISettings) (Ack, error) {
	return c.ack(ctx, "settings.upi.update", http.MethodPut, "/settings/upi", s)
}

func (c *Client) BusinessSettings(ctx context.Context) (shop.BusinessSettings, error) {
	return fetchOne(ctx, c, "settings.business", http.MethodGet, "/settings/business", nil, "", normalizeBusiness)
}

func (c *Client) UpdateBusinessSettings(ctx context.Context, s shop.BusinessSettings) (Ack, error) {
	return c.ack(ctx, "settings.business.update", http.MethodPut, "/settings/business", s)
}
