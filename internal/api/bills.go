package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/startailors/tailorshop/internal/billing"
	"github.com/startailors/tailorshop/internal/shop"
)

// BillItemInput is a line item as the backend stores it.
type BillItemInput struct {
	Type         string            `json:"type"`
	Description  string            `json:"description"`
	Quantity     int               `json:"quantity"`
	Price        float64           `json:"price"`
	Total        float64           `json:"total"`
	Measurements map[string]string `json:"measurements"`
}

// BillInput is the body of bill create and update calls. The derived totals
// travel with it because the backend stores them as sent.
type BillInput struct {
	CustomerID          string          `json:"customer_id"`
	CustomerName        string          `json:"customer_name"`
	CustomerPhone       string          `json:"customer_phone,omitempty"`
	CustomerAddress     string          `json:"customer_address,omitempty"`
	Items               []BillItemInput `json:"items"`
	Subtotal            float64         `json:"subtotal"`
	Discount            float64         `json:"discount"`
	Total               float64         `json:"total"`
	Advance             float64         `json:"advance"`
	Balance             float64         `json:"balance"`
	DueDate             string          `json:"due_date,omitempty"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
	DesignImages        []string        `json:"design_images"`
	Drawings            []string        `json:"drawings"`
	Signature           string          `json:"signature,omitempty"`
	Status              string          `json:"status,omitempty"`
}

// NewBillInput converts a bill to its wire form with freshly computed totals.
func NewBillInput(b shop.Bill) BillInput {
	totals := billing.Compute(b.Lines(), b.Discount, b.Advance)
	in := BillInput{
		CustomerID:          b.CustomerID,
		CustomerName:        b.CustomerName,
		CustomerPhone:       b.CustomerPhone,
		CustomerAddress:     b.CustomerAddress,
		Items:               make([]BillItemInput, 0, len(b.Items)),
		Subtotal:            totals.Subtotal,
		Discount:            totals.Discount,
		Total:               totals.Total,
		Advance:             totals.Advance,
		Balance:             totals.Balance,
		DueDate:             b.DueDate,
		SpecialInstructions: b.SpecialInstructions,
		DesignImages:        nonNil(b.DesignImages),
		Drawings:            nonNil(b.Drawings),
		Signature:           b.Signature,
		Status:              string(b.Status),
	}
	for _, item := range b.Items {
		measurements := item.Measurements
		if measurements == nil {
			measurements = map[string]string{}
		}
		in.Items = append(in.Items, BillItemInput{
			Type:         item.Type,
			Description:  item.Description,
			Quantity:     item.Quantity,
			Price:        item.Rate,
			Total:        item.Total(),
			Measurements: measurements,
		})
	}
	return in
}

// BillSearch narrows GET /bills/search.
type BillSearch struct {
	CustomerName string
	Phone        string
	Status       string
	FromDate     string
	ToDate       string
}

func (s BillSearch) values() url.Values {
	q := url.Values{}
	for key, value := range map[string]string{
		"customer_name": s.CustomerName,
		"phone":         s.Phone,
		"status":        s.Status,
		"from_date":     s.FromDate,
		"to_date":       s.ToDate,
	} {
		if value != "" {
			q.Set(key, value)
		}
	}
	return q
}

func (c *Client) ListBills(ctx context.Context, params ListParams) ([]shop.Bill, shop.Pagination, error) {
	return getList(ctx, c, "bills.list", "/bills", params.values(), "bills", normalizeBill)
}

func (c *Client) GetBill(ctx context.Context, id string) (shop.Bill, error) {
	return fetchOne(ctx, c, "bills.get", http.MethodGet, entityPath("bills", id), nil, "bill", normalizeBill)
}

func (c *Client) CreateBill(ctx context.Context, in BillInput) (shop.Bill, error) {
	return fetchOne(ctx, c, "bills.create", http.MethodPost, "/bills", in, "bill", normalizeBill)
}

func (c *Client) UpdateBill(ctx context.Context, id string, in BillInput) (Ack, error) {
	return c.ack(ctx, "bills.update", http.MethodPut, entityPath("bills", id), in)
}

func (c *Client) DeleteBill(ctx context.Context, id string) (Ack, error) {
	return c.ack(ctx, "bills.delete", http.MethodDelete, entityPath("bills", id), nil)
}

// UpdateBillStatus sets the bill's own status.
func (c *Client) UpdateBillStatus(ctx context.Context, id string, status shop.BillStatus) (Ack, error) {
	return c.ack(ctx, "bills.status", http.MethodPut, entityPath("bills", id, "status"),
		map[string]string{"status": string(status)})
}

// BillStats returns the backend's bill counters for an optional date range.
// The shape is backend-defined and passed through.
func (c *Client) BillStats(ctx context.Context, from, to string) (map[string]any, error) {
	q := url.Values{}
	if from != "" {
		q.Set("from_date", from)
	}
	if to != "" {
		q.Set("to_date", to)
	}
	out := map[string]any{}
	err := c.get(ctx, "bills.stats", "/bills/stats", q, &out)
	return out, err
}

func (c *Client) SearchBills(ctx context.Context, s BillSearch) ([]shop.Bill, error) {
	bills, _, err := getList(ctx, c, "bills.search", "/bills/search", s.values(), "bills", normalizeBill)
	return bills, err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
