package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/startailors/tailorshop/internal/shop"
)

// record is one backend JSON object kept raw until an adapter maps it. The
// backend mixes snake_case and camelCase; lookups take every accepted alias
// and return the first usable value.
type record map[string]json.RawMessage

var null = []byte("null")

func (r record) raw(key string) (json.RawMessage, bool) {
	v, ok := r[key]
	if !ok || len(v) == 0 || bytes.Equal(bytes.TrimSpace(v), null) {
		return nil, false
	}
	return v, true
}

// str returns the first non-empty string among keys. Numbers are rendered in
// their JSON form so numeric identifiers survive.
func (r record) str(keys ...string) string {
	for _, key := range keys {
		v, ok := r.raw(key)
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			if s != "" {
				return s
			}
			continue
		}
		var n json.Number
		if err := json.Unmarshal(v, &n); err == nil {
			return n.String()
		}
	}
	return ""
}

// num returns the first present numeric value among keys. Numeric strings are
// accepted.
func (r record) num(keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := r.raw(key)
		if !ok {
			continue
		}
		var f float64
		if err := json.Unmarshal(v, &f); err == nil {
			return f, true
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func (r record) float(keys ...string) float64 {
	f, _ := r.num(keys...)
	return f
}

func (r record) int(keys ...string) int {
	f, _ := r.num(keys...)
	return int(f)
}

func (r record) bool(keys ...string) bool {
	for _, key := range keys {
		v, ok := r.raw(key)
		if !ok {
			continue
		}
		var b bool
		if err := json.Unmarshal(v, &b); err == nil {
			return b
		}
	}
	return false
}

func (r record) obj(key string) record {
	v, ok := r.raw(key)
	if !ok {
		return nil
	}
	var out record
	if err := json.Unmarshal(v, &out); err != nil {
		return nil
	}
	return out
}

func (r record) list(key string) []record {
	v, ok := r.raw(key)
	if !ok {
		return nil
	}
	var out []record
	if err := json.Unmarshal(v, &out); err != nil {
		return nil
	}
	return out
}

func (r record) strs(key string) []string {
	v, ok := r.raw(key)
	if !ok {
		return nil
	}
	var out []string
	if err := json.Unmarshal(v, &out); err != nil {
		return nil
	}
	return out
}

// texts renders every value of a flat object as a string. Non-string values
// keep their JSON text.
func (r record) texts(keys ...string) map[string]string {
	for _, key := range keys {
		inner := r.obj(key)
		if inner == nil {
			continue
		}
		out := make(map[string]string, len(inner))
		for k, v := range inner {
			var s string
			if err := json.Unmarshal(v, &s); err == nil {
				out[k] = s
				continue
			}
			if bytes.Equal(bytes.TrimSpace(v), null) {
				out[k] = ""
				continue
			}
			out[k] = string(bytes.TrimSpace(v))
		}
		return out
	}
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// time parses the first present timestamp. Zone-less timestamps are read in
// local time, which is how the backend writes them.
func (r record) time(keys ...string) (time.Time, bool) {
	for _, key := range keys {
		s := r.str(key)
		if s == "" {
			continue
		}
		for _, layout := range timeLayouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func (r record) timeValue(keys ...string) time.Time {
	t, _ := r.time(keys...)
	return t
}

func (r record) timePtr(keys ...string) *time.Time {
	t, ok := r.time(keys...)
	if !ok {
		return nil
	}
	return &t
}

// unwrap returns the object nested under key, or r itself when the backend
// answered with the bare entity.
func (r record) unwrap(key string) record {
	if inner := r.obj(key); inner != nil {
		return inner
	}
	return r
}

// envelope is a list response: the entity array under one key plus optional
// pagination. A bare JSON array is accepted too.
type envelope struct {
	items      []record
	pagination record
}

func (e *envelope) decode(raw []byte, key string) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &e.items)
	}
	var body record
	if err := json.Unmarshal(trimmed, &body); err != nil {
		return err
	}
	e.items = body.list(key)
	e.pagination = body.obj("pagination")
	return nil
}

func (e envelope) page() shop.Pagination {
	p := e.pagination
	if p == nil {
		return shop.Pagination{Page: 1, TotalPages: 1, Total: len(e.items)}
	}
	return shop.Pagination{
		Page:       p.int("current_page", "page"),
		TotalPages: p.int("total_pages", "totalPages"),
		Total: p.int("total", "total_customers", "total_bills", "total_tailors",
			"total_jobs", "totalCount"),
		HasNext: p.bool("has_next", "hasNext"),
		HasPrev: p.bool("has_prev", "hasPrev"),
	}
}

// rawBody captures a response body for adapter-driven decoding.
type rawBody []byte

func (b *rawBody) UnmarshalJSON(data []byte) error {
	*b = append((*b)[:0], data...)
	return nil
}
