// Package payments builds UPI payment links and the QR image URLs that
// render them.
package payments

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultEndpoint = "https://api.qrserver.com/v1/create-qr-code/"
	DefaultSize     = "200x200"
	currency        = "INR"
)

// Payment is one UPI collect request.
type Payment struct {
	PayeeVPA  string  `json:"payee"`
	PayeeName string  `json:"payee_name"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"note,omitempty"`
}

// escape percent-encodes s the way browsers' encodeURIComponent does for the
// characters UPI IDs and names contain.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// BuildURI renders upi://pay?pa=..&pn=..&am=..&cu=INR[&tn=..]. The amount
// uses its shortest decimal form (250, 99.5).
func BuildURI(p Payment) string {
	var b strings.Builder
	b.WriteString("upi://pay?pa=")
	b.WriteString(escape(p.PayeeVPA))
	b.WriteString("&pn=")
	b.WriteString(escape(p.PayeeName))
	b.WriteString("&am=")
	b.WriteString(strconv.FormatFloat(p.Amount, 'f', -1, 64))
	b.WriteString("&cu=")
	b.WriteString(currency)
	if p.Note != "" {
		b.WriteString("&tn=")
		b.WriteString(escape(p.Note))
	}
	return b.String()
}

// Generator points payment links at an external QR rendering service.
type Generator struct {
	Endpoint string
	Size     string
}

// NewGenerator applies defaults for empty settings.
func NewGenerator(endpoint, size string) Generator {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if size == "" {
		size = DefaultSize
	}
	return Generator{Endpoint: endpoint, Size: size}
}

// ImageURL returns the QR image URL for p, or "" when the payee is empty.
func (g Generator) ImageURL(p Payment) string {
	if strings.TrimSpace(p.PayeeVPA) == "" {
		return ""
	}
	return g.Endpoint + "?size=" + escape(g.Size) + "&data=" + escape(BuildURI(p))
}

// QR pairs a payment with its link and image.
type QR struct {
	Payment  Payment `json:"payment"`
	URI      string  `json:"uri,omitempty"`
	ImageURL string  `json:"image_url"`
}

// Build returns the QR for p. Both URI and ImageURL are empty without a payee.
func (g Generator) Build(p Payment) QR {
	img := g.ImageURL(p)
	if img == "" {
		return QR{Payment: p}
	}
	return QR{Payment: p, URI: BuildURI(p), ImageURL: img}
}
