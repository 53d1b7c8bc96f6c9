package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/startailors/tailorshop/internal/api"
	"github.com/startailors/tailorshop/internal/platform/httpx"
	"github.com/startailors/tailorshop/internal/shop"
)

// Backend is the auth surface of the API client.
type Backend interface {
	Login(ctx context.Context, username, password string) (api.LoginResult, error)
	Verify(ctx context.Context) (shop.User, error)
	Register(ctx context.Context, reg api.Registration) (api.Ack, error)
	Logout(ctx context.Context) error
}

// Service wraps authentication rules around the backend.
type Service struct {
	backend  Backend
	validate *validator.Validate
}

// NewService constructs a new Service.
func NewService(backend Backend) *Service {
	return &Service{backend: backend, validate: validator.New()}
}

// Login validates credentials and signs in. The session is established by
// the API client on success.
func (s *Service) Login(ctx context.Context, creds Credentials) (api.LoginResult, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if err := s.validate.Struct(creds); err != nil {
		return api.LoginResult{}, httpx.FromValidator(err)
	}
	res, err := s.backend.Login(ctx, creds.Username, creds.Password)
	if errors.Is(err, api.ErrSessionExpired) {
		return api.LoginResult{}, ErrInvalidCredentials
	}
	return res, err
}

// Me returns the user the backend associates with the current token.
func (s *Service) Me(ctx context.Context) (shop.User, error) {
	return s.backend.Verify(ctx)
}

// Register creates a backend user.
func (s *Service) Register(ctx context.Context, reg api.Registration) (api.Ack, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	if err := s.validate.Struct(reg); err != nil {
		return api.Ack{}, httpx.FromValidator(err)
	}
	return s.backend.Register(ctx, reg)
}

// Logout clears the local session.
func (s *Service) Logout(ctx context.Context) error {
	return s.backend.Logout(ctx)
}
