package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidMeasurements is returned when measurement text is not a JSON object.
var ErrInvalidMeasurements = errors.New("invalid measurements format, expected a JSON object")

// ParseMeasurements decodes a JSON object of label → value. Empty input yields an
// empty map. Non-string values are kept in their JSON text form.
func ParseMeasurements(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]string{}, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMeasurements, err)
	}
	if fields == nil {
		return nil, ErrInvalidMeasurements
	}
	return StringifyMeasurements(fields), nil
}

// StringifyMeasurements flattens decoded JSON values to strings.
func StringifyMeasurements(fields map[string]json.RawMessage) map[string]string {
	out := make(map[string]string, len(fields))
	for label, value := range fields {
		out[label] = rawToString(value)
	}
	return out
}

func rawToString(value json.RawMessage) string {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(value, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	text := strings.TrimSpace(string(value))
	if text == "null" {
		return ""
	}
	return text
}
