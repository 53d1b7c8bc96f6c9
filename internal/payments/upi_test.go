package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startailors/tailorshop/internal/api"
	"github.com/startailors/tailorshop/internal/shop"
)

func TestBuildURI(t *testing.T) {
	uri := BuildURI(Payment{PayeeVPA: "alice@upi", PayeeName: "Alice Tailors", Amount: 250})
	assert.Equal(t, "upi://pay?pa=alice%40upi&pn=Alice%20Tailors&am=250&cu=INR", uri)
	assert.Contains(t, uri, "pa=alice%40upi")
	assert.Contains(t, uri, "am=250")

	uri = BuildURI(Payment{PayeeVPA: "shop@paytm", PayeeName: "STAR TAILORS", Amount: 99.5, Note: "Bill #007"})
	assert.True(t, strings.HasSuffix(uri, "&am=99.5&cu=INR&tn=Bill%20%23007"), uri)
}

func TestImageURL(t *testing.T) {
	g := NewGenerator("", "")
	img := g.ImageURL(Payment{PayeeVPA: "alice@upi", PayeeName: "Alice", Amount: 250})
	require.True(t, strings.HasPrefix(img, DefaultEndpoint+"?size=200x200&data="))

	parsed, err := url.Parse(img)
	require.NoError(t, err)
	assert.Equal(t, "upi://pay?pa=alice%40upi&pn=Alice&am=250&cu=INR", parsed.Query().Get("data"))
}

func TestImageURLEmptyPayee(t *testing.T) {
	g := NewGenerator("", "")
	for _, amount := range []float64{0, 250, 1e6} {
		assert.Empty(t, g.ImageURL(Payment{PayeeVPA: "", PayeeName: "Alice", Amount: amount}))
	}
	assert.Empty(t, g.ImageURL(Payment{PayeeVPA: "   ", Amount: 10}))
	qr := g.Build(Payment{Amount: 10})
	assert.Empty(t, qr.URI)
	assert.Empty(t, qr.ImageURL)
}

type fakeSettings struct {
	upi     shop.UPISettings
	err     error
	updated *shop.UPISettings
}

func (f *fakeSettings) UPISettings(ctx context.Context) (shop.UPISettings, error) {
	return f.upi, f.err
}

func (f *fakeSettings) UpdateUPISettings(ctx context.Context, s shop.UPISettings) (api.Ack, error) {
	f.updated = &s
	return api.Ack{Message: "UPI settings updated successfully"}, nil
}

type fakeInvalidator struct {
	bumps int64
}

func (f *fakeInvalidator) Bump(ctx context.Context) (int64, error) {
	f.bumps++
	return f.bumps, nil
}

func serve(t *testing.T, settings Settings, method, target, body string, opts ...HandlerOption) *httptest.ResponseRecorder {
	t.Helper()
	router := chi.NewRouter()
	NewHandler(nil, settings, NewGenerator("", ""), opts...).MountRoutes(router)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestHandleQR(t *testing.T) {
	rec := serve(t, &fakeSettings{upi: shop.UPISettings{UPIID: "alice@upi", BusinessName: "Alice"}}, http.MethodGet, "/payments/qr?amount=250&note=Advance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var qr QR
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &qr))
	assert.Equal(t, "upi://pay?pa=alice%40upi&pn=Alice&am=250&cu=INR&tn=Advance", qr.URI)

	rec = serve(t, &fakeSettings{err: errors.New("boom")}, http.MethodGet, "/payments/qr?amount=100", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &qr))
	assert.Equal(t, shop.DefaultUPIID, qr.Payment.PayeeVPA)

	rec = serve(t, &fakeSettings{err: api.ErrSessionExpired}, http.MethodGet, "/payments/qr?amount=100", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	for _, amount := range []string{"abc", "-5", "NaN", "Inf", "+Inf", "-Inf"} {
		rec = serve(t, &fakeSettings{}, http.MethodGet, "/payments/qr?amount="+amount, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, amount)
	}
}

func TestHandleUpdateUPI(t *testing.T) {
	settings := &fakeSettings{}
	cache := &fakeInvalidator{}
	rec := serve(t, settings, http.MethodPut, "/settings/upi", `{"upi_id":" shop@okaxis ","business_name":"Star"}`, WithInvalidator(cache))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, settings.updated)
	assert.Equal(t, "shop@okaxis", settings.updated.UPIID)
	assert.EqualValues(t, 1, cache.bumps)

	rec = serve(t, settings, http.MethodPut, "/settings/upi", `{"upi_id":"","business_name":"Star"}`, WithInvalidator(cache))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.EqualValues(t, 1, cache.bumps)
}
