package orders

import (
	"sort"
	"strings"

	"github.com/startailors/tailorshop/internal/shop"
)

// SortKey orders the order list.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortOldest     SortKey = "oldest"
	SortAmountHigh SortKey = "amount-high"
	SortAmountLow  SortKey = "amount-low"
)

// StatusAll disables the status filter.
const StatusAll = "all"

// Query narrows and orders a reconciled list.
type Query struct {
	Search string  `json:"search"`
	Status string  `json:"status"`
	Sort   SortKey `json:"sort"`
}

// Filter keeps orders whose customer name, bill ID or any item type contains
// the search text (case-insensitive) and whose JobStatus equals Status.
func Filter(orders []Order, q Query) []Order {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	status := strings.TrimSpace(q.Status)
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if term != "" && !matches(o, term) {
			continue
		}
		if status != "" && status != StatusAll && o.JobStatus != status {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matches(o Order, term string) bool {
	if strings.Contains(strings.ToLower(o.CustomerName), term) ||
		strings.Contains(strings.ToLower(o.ID), term) {
		return true
	}
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item.Type), term) {
			return true
		}
	}
	return false
}

// Sort returns a stably sorted copy. Unknown keys keep input order.
func Sort(orders []Order, key SortKey) []Order {
	out := append([]Order(nil), orders...)
	var less func(a, b Order) bool
	switch key {
	case SortNewest:
		less = func(a, b Order) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortOldest:
		less = func(a, b Order) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortAmountHigh:
		less = func(a, b Order) bool { return a.Total() > b.Total() }
	case SortAmountLow:
		less = func(a, b Order) bool { return a.Total() < b.Total() }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Apply filters then sorts, leaving orders untouched.
func Apply(orders []Order, q Query) []Order {
	return Sort(Filter(orders, q), q.Sort)
}

// Summary counts orders by production stage.
type Summary struct {
	Total      int `json:"total"`
	Waiting    int `json:"waiting"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
}

// Summarize buckets orders by JobStatus: waiting covers pending and assigned,
// in progress covers acknowledged and in_progress, done covers completed and
// delivered.
func Summarize(orders []Order) Summary {
	s := Summary{Total: len(orders)}
	for _, o := range orders {
		switch o.JobStatus {
		case DefaultStatus, string(shop.JobAssigned):
			s.Waiting++
		case string(shop.JobAcknowledged), string(shop.JobInProgress):
			s.InProgress++
		case string(shop.JobCompleted), string(shop.JobDelivered):
			s.Done++
		}
	}
	return s
}
