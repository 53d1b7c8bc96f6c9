// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sentinel errors for the console's own layers.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError carries per-field messages for a rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// StatusCoder is implemented by errors that know the status the console
// should answer with, such as upstream failures.
type StatusCoder interface {
	error
	HTTPStatus() int
}

// Invalid builds a ValidationError for a single field.
func Invalid(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// FromValidator converts validator output into a ValidationError. Other
// errors are wrapped with ErrValidation.
func FromValidator(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return &ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "gte":
		return "must be " + fe.Param() + " or more"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}

// RespondError maps errors to RFC7807 responses. Errors carrying a status
// keep it along with their message; 401 answers with a sign-in hint.
func RespondError(w http.ResponseWriter, err error) {
	RespondErrorWith(w, err, nil)
}

// RespondErrorWith is RespondError with extension members added to the
// problem body.
func RespondErrorWith(w http.ResponseWriter, err error, extensions map[string]any) {
	pd := problemFor(err)
	pd.Extensions = extensions
	write(w, pd)
}

func problemFor(err error) ProblemDetail {
	var verr *ValidationError
	var coded StatusCoder
	switch {
	case errors.As(err, &verr):
		return ProblemDetail{
			Title:  "Validation Failed",
			Status: http.StatusBadRequest,
			Detail: verr.Error(),
			Errors: verr.Fields,
		}
	case errors.Is(err, ErrValidation):
		return problem(http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrUnauthorized):
		return signedOut(err)
	case errors.As(err, &coded):
		status := coded.HTTPStatus()
		if status == http.StatusUnauthorized {
			return signedOut(err)
		}
		return problem(status, http.StatusText(status), coded.Error())
	case errors.Is(err, ErrNotFound):
		return problem(http.StatusNotFound, "Not Found", err.Error())
	default:
		return problem(http.StatusInternalServerError, "Internal Error", "")
	}
}

func signedOut(err error) ProblemDetail {
	return ProblemDetail{
		Type:   "about:blank#signed-out",
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
		Detail: err.Error(),
		Action: "login",
	}
}
