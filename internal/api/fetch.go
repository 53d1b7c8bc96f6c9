package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/startailors/tailorshop/internal/shop"
)

// ListParams are the query parameters shared by the list endpoints. Zero
// values are omitted.
type ListParams struct {
	Search     string
	Status     string
	CustomerID string
	TailorID   string
	Priority   string
	Page       int
	Limit      int
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("search", p.Search)
	set("status", p.Status)
	set("customer_id", p.CustomerID)
	set("tailor_id", p.TailorID)
	set("priority", p.Priority)
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// Ack is the body of mutations that only answer with a message.
type Ack struct {
	Message string `json:"message"`
}

func getList[T any](ctx context.Context, c *Client, op, path string, query url.Values, key string, adapt func(record) T) ([]T, shop.Pagination, error) {
	var body rawBody
	if err := c.get(ctx, op, path, query, &body); err != nil {
		return nil, shop.Pagination{}, err
	}
	var env envelope
	if len(body) > 0 {
		if err := env.decode(body, key); err != nil {
			return nil, shop.Pagination{}, fmt.Errorf("%w: %s: %v", ErrDecode, op, err)
		}
	}
	out := make([]T, 0, len(env.items))
	for _, item := range env.items {
		out = append(out, adapt(item))
	}
	return out, env.page(), nil
}

func fetchOne[T any](ctx context.Context, c *Client, op, method, path string, payload any, key string, adapt func(record) T) (T, error) {
	var body record
	var zero T
	var err error
	if method == http.MethodGet {
		err = c.get(ctx, op, path, nil, &body)
	} else {
		err = c.send(ctx, op, method, path, payload, &body)
	}
	if err != nil {
		return zero, err
	}
	if key == "" {
		return adapt(body), nil
	}
	return adapt(body.unwrap(key)), nil
}

func (c *Client) ack(ctx context.Context, op, method, path string, payload any) (Ack, error) {
	var out Ack
	err := c.send(ctx, op, method, path, payload, &out)
	return out, err
}

func entityPath(collection, id string, suffix ...string) string {
	p := "/" + collection + "/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}
