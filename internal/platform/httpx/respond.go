// Package httpx provides HTTP response utilities following RFC7807 problem details.
package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ProblemDetail represents RFC7807 problem details. Extensions are written
// as top-level members next to the standard ones.
type ProblemDetail struct {
	Type       string            `json:"type,omitempty"`
	Title      string            `json:"title"`
	Status     int               `json:"status"`
	Detail     string            `json:"detail,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
	Action     string            `json:"action,omitempty"`
	Extensions map[string]any    `json:"-"`
}

// MarshalJSON flattens Extensions into the problem object. Standard members
// win over extensions with the same name.
func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	type plain ProblemDetail
	base, err := json.Marshal(plain(p))
	if err != nil || len(p.Extensions) == 0 {
		return base, err
	}
	merged := make(map[string]any, len(p.Extensions)+6)
	for k, v := range p.Extensions {
		merged[k] = v
	}
	var std map[string]any
	if err := json.Unmarshal(base, &std); err != nil {
		return nil, err
	}
	for k, v := range std {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Problem sends an RFC7807 problem details response.
func Problem(w http.ResponseWriter, status int, title, detail string) {
	write(w, problem(status, title, detail))
}

func problem(status int, title, detail string) ProblemDetail {
	return ProblemDetail{Title: title, Status: status, Detail: detail}
}

func write(w http.ResponseWriter, pd ProblemDetail) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(pd.Status)
	_ = json.NewEncoder(w).Encode(pd)
}

// DecodeJSON decodes the request body into target. Malformed bodies are
// validation failures.
func DecodeJSON(r *http.Request, target any) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", ErrValidation, err)
	}
	return nil
}
