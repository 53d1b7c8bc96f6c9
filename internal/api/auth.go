package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/startailors/tailorshop/internal/shop"
)

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    shop.User `json:"user"`
}

// Registration creates a backend user.
type Registration struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"`
}

// Login exchanges credentials for a token and establishes the session.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var body record
	payload := map[string]string{"username": username, "password": password}
	if err := c.send(ctx, "auth.login", http.MethodPost, "/auth/login", payload, &body); err != nil {
		return LoginResult{}, err
	}
	out := LoginResult{
		Message: body.str("message"),
		Token:   body.str("token"),
		User:    normalizeUser(body.obj("user")),
	}
	if out.Token != "" && c.session != nil {
		if err := c.session.Establish(ctx, out.Token, out.User); err != nil {
			return out, fmt.Errorf("store session: %w", err)
		}
		out.User, _ = c.session.User()
	}
	return out, nil
}

// Verify checks the current token with the backend.
func (c *Client) Verify(ctx context.Context) (shop.User, error) {
	return fetchOne(ctx, c, "auth.verify", http.MethodGet, "/auth/verify", nil, "user", normalizeUser)
}

// Register creates a user. Role defaults to "user".
func (c *Client) Register(ctx context.Context, reg Registration) (Ack, error) {
	if reg.Role == "" {
		reg.Role = "user"
	}
	return c.ack(ctx, "auth.register", http.MethodPost, "/auth/register", reg)
}

// Logout tears the local session down. The backend keeps no session state.
func (c *Client) Logout(ctx context.Context) error {
	if c.session == nil {
		return nil
	}
	return c.session.Clear(ctx)
}
