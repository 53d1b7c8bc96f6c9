package auth

import "errors"

// ErrInvalidCredentials is returned when the backend rejects a login.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Credentials are the login form fields.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
