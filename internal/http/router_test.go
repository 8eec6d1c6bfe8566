package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahirash.com/app/internal/http/clientcookie"
	"mahirash.com/app/internal/mailer"
	"mahirash.com/app/internal/modules/catalog"
	"mahirash.com/app/internal/modules/checkout"
	"mahirash.com/app/internal/modules/orders"
	"mahirash.com/app/internal/modules/showcase"
	"mahirash.com/app/internal/storage"
)

func init() { gin.SetMode(gin.TestMode) }

const cookieName = "mahirash_client"

func amt(s string) catalog.Amount {
	return catalog.Amount{Value: decimal.RequireFromString(s), Set: true}
}

type memOrders struct{ created []orders.Order }

func (m *memOrders) Create(ctx context.Context, o *orders.Order) error {
	orders.Prepare(o, time.Now())
	m.created = append(m.created, *o)
	return nil
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	src    *catalog.Memory
	orders *memOrders
	mail   *mailer.Mock
	cookie *http.Cookie
}

func newServer(t *testing.T) *testServer {
	src := catalog.NewMemory(
		catalog.RawProduct{ID: "oud", Brand: "Mahirash", Name: "Oud Noir", Category: "unisex", Badge: "Bestseller",
			Price: amt("100"),
			Sizes: []catalog.RawSize{
				{Kind: catalog.SizeObject, Size: "10ml", Price: amt("100")},
				{Kind: catalog.SizeObject, Size: "50ml", Price: amt("400"), OldPrice: amt("500")},
			}},
		catalog.RawProduct{ID: "rose", Brand: "Atelier", Name: "Rose Veil", Category: "women", Price: amt("1500"),
			Sizes: []catalog.RawSize{{Kind: catalog.SizeObject, Size: "100ml", Price: amt("1500"), OutOfStock: true}}},
		catalog.RawProduct{ID: "mist", Brand: "Mahirash", Name: "Body Mist", Category: "women", Price: amt("250")},
	)
	svc := catalog.NewService(src, nil, "50ml")
	ords := &memOrders{}
	mail := &mailer.Mock{}

	rot := showcase.NewRotator(svc, showcase.Config{Sizes: []string{"100ml", "50ml"}, Window: 2}, nil)
	rot.Reload(context.Background())

	r := NewRouter(Deps{
		Catalog:  svc,
		Checkout: checkout.NewService(svc, ords, checkout.Options{Mail: mail, From: "orders@mahirash.test", Currency: "INR"}),
		Showcase: rot,
		State:    storage.NewMemory(),
		Cookie:   clientcookie.New([]byte("test-secret"), cookieName, false),
		Currency: "INR",
	})
	return &testServer{t: t, router: r, src: src, orders: ords, mail: mail}
}

// do sends a request with the current client cookie and keeps any cookie the
// server issues.
func (s *testServer) do(method, path string, body any) (int, map[string]any) {
	s.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName && c.Value != "" {
			s.cookie = c
		}
	}
	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func TestHealthz(t *testing.T) {
	s := newServer(t)
	code, body := s.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestListProducts(t *testing.T) {
	s := newServer(t)

	code, body := s.do(http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 3, body["count"])
	first := body["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "50ml", first["variant"].(map[string]any)["size"], "service preferred size")

	code, body = s.do(http.MethodGet, "/api/products?category=women&in_stock=true", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["count"])

	code, body = s.do(http.MethodGet, "/api/products?size=10ml", nil)
	require.Equal(t, http.StatusOK, code)
	first = body["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "10ml", first["variant"].(map[string]any)["size"], "size filter is the first hint")

	code, body = s.do(http.MethodGet, "/api/products?sort=cheapest&min_price=abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["fields"], "sort")
}

func TestListProductsSizeFilterIgnoresCase(t *testing.T) {
	s := newServer(t)

	code, body := s.do(http.MethodGet, "/api/products?size=10ML&max_price=150", nil)
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 1, body["count"])
	v := body["items"].([]any)[0].(map[string]any)["variant"].(map[string]any)
	assert.Equal(t, "10ml", v["size"])
	assert.Equal(t, "₹100.00", v["price_label"])

	code, body = s.do(http.MethodGet, "/api/products?size=50ML&max_price=150", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["count"], "priced by the 50ml variant")
}

func TestProductDetail(t *testing.T) {
	s := newServer(t)

	code, body := s.do(http.MethodGet, "/api/products/oud?size=10ml", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "10ml", body["variant"].(map[string]any)["size"])
	assert.Len(t, body["variants"], 2)

	code, body = s.do(http.MethodGet, "/api/products/oud", nil)
	require.Equal(t, http.StatusOK, code)
	v := body["variant"].(map[string]any)
	assert.Equal(t, "50ml", v["size"])
	assert.EqualValues(t, 20, v["discount"])
	assert.Equal(t, "₹400.00", v["price_label"])

	code, body = s.do(http.MethodGet, "/api/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.NotEmpty(t, body["request_id"])
}

func TestSizes(t *testing.T) {
	s := newServer(t)
	code, body := s.do(http.MethodGet, "/api/sizes", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"10ml", "50ml", "100ml"}, body["sizes"])
}

func TestShowcase(t *testing.T) {
	s := newServer(t)
	code, body := s.do(http.MethodGet, "/api/showcase", nil)
	require.Equal(t, http.StatusOK, code)
	cards := body["cards"].([]any)
	require.Len(t, cards, 1, "only badged products are featured")
	assert.Equal(t, "50ml", cards[0].(map[string]any)["variant"].(map[string]any)["size"])
}

func TestCartFlow(t *testing.T) {
	s := newServer(t)

	code, body := s.do(http.MethodPost, "/api/cart/items", gin.H{"product_id": "oud"})
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, s.cookie, "client cookie issued")
	assert.Equal(t, true, body["drawer_open"])
	notice := body["notice"].(map[string]any)
	assert.EqualValues(t, 3000, notice["ttl_ms"])
	assert.Equal(t, "50ml", body["line"].(map[string]any)["variant"].(map[string]any)["size"])

	code, _ = s.do(http.MethodPost, "/api/cart/items", gin.H{"product_id": "oud", "size": "10ml", "qty": 2})
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodPost, "/api/cart/items", gin.H{"product_id": "oud", "size": "10ml"})
	require.Equal(t, http.StatusOK, code)

	code, body = s.do(http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["lines"], 2)
	assert.EqualValues(t, 4, body["count"])
	assert.Equal(t, "₹700.00", body["total_label"])

	code, body = s.do(http.MethodPatch, "/api/cart/items", gin.H{"product_id": "oud", "size": "10ml", "qty": 5})
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 6, body["count"])

	code, _ = s.do(http.MethodDelete, "/api/cart/items?product_id=oud&size=10ml", nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodDelete, "/api/cart/items?product_id=oud&size=10ml", nil)
	require.Equal(t, http.StatusOK, code, "removing twice is harmless")

	code, body = s.do(http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["lines"], 1)

	s.cookie = nil
	_, body = s.do(http.MethodGet, "/api/cart", nil)
	assert.Empty(t, body["lines"], "new client starts empty")
}

func TestCartValidation(t *testing.T) {
	s := newServer(t)

	cases := []struct {
		name   string
		method string
		body   gin.H
		status int
		field  string
	}{
		{"missing product", http.MethodPost, gin.H{"qty": 1}, http.StatusBadRequest, "product_id"},
		{"quantity too large", http.MethodPost, gin.H{"product_id": "oud", "qty": 150}, http.StatusBadRequest, "qty"},
		{"unknown size", http.MethodPost, gin.H{"product_id": "oud", "size": "5ml"}, http.StatusBadRequest, "size"},
		{"unknown product", http.MethodPost, gin.H{"product_id": "ghost"}, http.StatusNotFound, ""},
		{"zero quantity update", http.MethodPatch, gin.H{"product_id": "oud", "size": "10ml", "qty": 0}, http.StatusBadRequest, "qty"},
		{"absent line update", http.MethodPatch, gin.H{"product_id": "oud", "size": "10ml", "qty": 2}, http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := s.do(tc.method, "/api/cart/items", tc.body)
			assert.Equal(t, tc.status, code)
			if tc.field != "" {
				assert.Contains(t, body["fields"], tc.field)
			}
		})
	}
}

func TestOutOfStockCanBeCarted(t *testing.T) {
	s := newServer(t)
	code, body := s.do(http.MethodPost, "/api/cart/items", gin.H{"product_id": "rose"})
	require.Equal(t, http.StatusOK, code)
	v := body["line"].(map[string]any)["variant"].(map[string]any)
	assert.Equal(t, true, v["out_of_stock"])
	assert.Equal(t, "₹1,500.00", body["cart"].(map[string]any)["total_label"])
}

func TestWishlistFlow(t *testing.T) {
	s := newServer(t)

	code, body := s.do(http.MethodPost, "/api/wishlist/toggle", gin.H{"product_id": "rose"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["in_wishlist"])

	_, body = s.do(http.MethodGet, "/api/wishlist/rose", nil)
	assert.Equal(t, true, body["in_wishlist"])

	code, body = s.do(http.MethodPost, "/api/wishlist/toggle", gin.H{"product_id": "rose"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["in_wishlist"])

	code, _ = s.do(http.MethodPost, "/api/wishlist/toggle", gin.H{"product_id": "ghost"})
	assert.Equal(t, http.StatusNotFound, code)

	s.do(http.MethodPost, "/api/wishlist/toggle", gin.H{"product_id": "mist"})
	code, body = s.do(http.MethodDelete, "/api/wishlist/mist", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["count"])
}

func TestCheckout(t *testing.T) {
	s := newServer(t)
	customer := gin.H{"name": "Asha", "email": "asha@example.com", "address": "12 MG Road, Pune"}

	code, _ := s.do(http.MethodPost, "/api/checkout", customer)
	assert.Equal(t, http.StatusBadRequest, code, "empty cart")

	s.do(http.MethodPost, "/api/cart/items", gin.H{"product_id": "oud", "size": "10ml", "qty": 2})
	s.do(http.MethodPost, "/api/cart/items", gin.H{"product_id": "mist"})

	code, body := s.do(http.MethodPost, "/api/checkout", gin.H{"name": "Asha", "email": "not-an-email", "address": "x"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["fields"], "email")

	code, body = s.do(http.MethodPost, "/api/checkout", customer)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "₹450.00", body["total_label"])
	assert.Len(t, body["items"], 2)
	require.Len(t, s.orders.created, 1)
	assert.Len(t, s.mail.Sent(), 1)

	_, body = s.do(http.MethodGet, "/api/cart", nil)
	assert.Empty(t, body["lines"], "cart cleared")
}

func TestCheckoutRejectsSoldOut(t *testing.T) {
	s := newServer(t)
	s.do(http.MethodPost, "/api/cart/items", gin.H{"product_id": "rose"})

	code, body := s.do(http.MethodPost, "/api/checkout", gin.H{"name": "Asha", "email": "asha@example.com", "address": "Pune"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, map[string]any{"rose/100ml": checkout.ReasonOutOfStock}, body["fields"])
	assert.Empty(t, s.orders.created)

	_, body = s.do(http.MethodGet, "/api/cart", nil)
	assert.Len(t, body["lines"], 1, "cart kept")
}

func TestUnknownRoute(t *testing.T) {
	s := newServer(t)
	code, body := s.do(http.MethodGet, "/api/nothing", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.NotEmpty(t, body["error"])
}
