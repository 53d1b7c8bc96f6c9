package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upstreamError struct {
	status int
	msg    string
}

func (e *upstreamError) Error() string   { return e.msg }
func (e *upstreamError) HTTPStatus() int { return e.status }

var errSessionExpired = &upstreamError{status: http.StatusUnauthorized, msg: "Session expired. Please login again."}

func respond(t *testing.T, err error) (int, ProblemDetail) {
	t.Helper()
	rec := httptest.NewRecorder()
	RespondError(rec, err)
	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", Invalid("phone", "is required"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("%w: bad measurements", ErrValidation), http.StatusBadRequest},
		{"session", errSessionExpired, http.StatusUnauthorized},
		{"unauthorized", fmt.Errorf("%w: signed out", ErrUnauthorized), http.StatusUnauthorized},
		{"backend status", fmt.Errorf("create customer: %w", &upstreamError{status: http.StatusConflict, msg: "exists"}), http.StatusConflict},
		{"transport", fmt.Errorf("%w: dial", &upstreamError{status: http.StatusBadGateway, msg: "transport failure"}), http.StatusBadGateway},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"other", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := respond(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.status, body.Status)
		})
	}
}

func TestRespondErrorSessionHint(t *testing.T) {
	_, body := respond(t, errSessionExpired)
	assert.Equal(t, "login", body.Action)
	assert.Equal(t, "Session expired. Please login again.", body.Detail)
}

func TestFromValidatorFields(t *testing.T) {
	type input struct {
		Name  string `validate:"required"`
		Email string `validate:"omitempty,email"`
	}
	err := FromValidator(validator.New().Struct(input{Email: "nope"}))
	require.ErrorIs(t, err, ErrValidation)

	status, body := respond(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, map[string]string{"Name": "is required", "Email": "must be a valid email"}, body.Errors)
}

func TestRespondErrorKeepsUpstreamMessage(t *testing.T) {
	_, body := respond(t, fmt.Errorf("create customer: %w", &upstreamError{status: http.StatusConflict, msg: "Customer with this phone number already exists"}))
	assert.Equal(t, "Customer with this phone number already exists", body.Detail)
	assert.Equal(t, "Conflict", body.Title)
}

func TestRespondErrorWithExtensions(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWith(rec, &upstreamError{status: http.StatusBadRequest, msg: "bad bill"}, map[string]any{
		"customer_id": "c42",
		"status":      "ignored",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "c42", body["customer_id"])
	assert.EqualValues(t, http.StatusBadRequest, body["status"])
	assert.Equal(t, "bad bill", body["detail"])
}
