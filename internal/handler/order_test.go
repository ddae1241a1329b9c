package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokanbd/order-intake/internal/domain/order"
)

// --- Mock implementations ---

type mockOrderRepo struct {
	created []*order.Order
	err     error
}

func (m *mockOrderRepo) Create(_ context.Context, o *order.Order) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.created = append(m.created, o)
	return "doc-" + strconv.Itoa(len(m.created)), nil
}

func (m *mockOrderRepo) Each(_ context.Context, _ func(*order.Order) error) error {
	return nil
}

// --- Helpers ---

func newTestHandler(repo *mockOrderRepo) *Handler {
	return New(order.NewService(repo))
}

func doRequest(h *Handler, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/order", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.PlaceOrder(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func assertCORSHeaders(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
}

const validBody = `{
	"name": "Rahim",
	"phone": "017XXXXXXXX",
	"address": "Dhaka",
	"product_id": "P1",
	"product_name": "Shirt",
	"total_price": 500,
	"payment_method": "bKash"
}`

// --- Tests ---

func TestPlaceOrder_MethodNotAllowed(t *testing.T) {
	repo := &mockOrderRepo{}
	h := newTestHandler(repo)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			w := doRequest(h, method, validBody)

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.Equal(t, "Method Not Allowed. Use POST.", decodeBody(t, w)["message"])
			assertCORSHeaders(t, w)
		})
	}
	assert.Empty(t, repo.created)
}

func TestPlaceOrder_InvalidJSON(t *testing.T) {
	repo := &mockOrderRepo{}
	h := newTestHandler(repo)

	for _, body := range []string{"", "{", `"just a string"`, `{"name": }`} {
		w := doRequest(h, http.MethodPost, body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid JSON format in request body.", decodeBody(t, w)["message"])
		assertCORSHeaders(t, w)
	}
	assert.Empty(t, repo.created)
}

func TestPlaceOrder_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"no name", `{"phone":"017","address":"Dhaka","product_id":"P1","payment_method":"bKash"}`},
		{"empty phone", `{"name":"Rahim","phone":"","address":"Dhaka","product_id":"P1","payment_method":"bKash"}`},
		{"null address", `{"name":"Rahim","phone":"017","address":null,"product_id":"P1","payment_method":"bKash"}`},
		{"no payment method", `{"name":"Rahim","phone":"017","address":"Dhaka","product_id":"P1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockOrderRepo{}
			h := newTestHandler(repo)

			w := doRequest(h, http.MethodPost, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Missing required order fields.", decodeBody(t, w)["message"])
			assertCORSHeaders(t, w)
			assert.Empty(t, repo.created, "nothing may be persisted on validation failure")
		})
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	repo := &mockOrderRepo{}
	h := newTestHandler(repo)

	w := doRequest(h, http.MethodPost, validBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assertCORSHeaders(t, w)

	body := decodeBody(t, w)
	assert.Equal(t, "Order placed successfully and saved to Firestore.", body["message"])
	assert.Equal(t, "doc-1", body["orderId"])

	require.Len(t, repo.created, 1)
	o := repo.created[0]
	assert.Equal(t, "Rahim", o.CustomerName)
	assert.Equal(t, "017XXXXXXXX", o.CustomerPhone)
	assert.Equal(t, "Dhaka", o.DeliveryAddress)
	assert.Equal(t, "P1", o.Product.ID)
	assert.Equal(t, "Shirt", o.Product.Name)
	require.True(t, o.Product.Price.Valid)
	assert.Equal(t, "500", o.Product.Price.Decimal.String())
	assert.Equal(t, "bKash", o.PaymentMethod)
	assert.Equal(t, order.PaymentStatusPending, o.PaymentStatus)
	assert.Equal(t, order.StatusNew, o.Status)
}

func TestPlaceOrder_OptionalFieldsAbsent(t *testing.T) {
	repo := &mockOrderRepo{}
	h := newTestHandler(repo)

	w := doRequest(h, http.MethodPost,
		`{"name":"Rahim","phone":"017","address":"Dhaka","product_id":"P1","payment_method":"Nagad"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, repo.created, 1)
	assert.Empty(t, repo.created[0].Product.Name)
	assert.False(t, repo.created[0].Product.Price.Valid)
}

func TestPlaceOrder_UnknownFieldsIgnored(t *testing.T) {
	repo := &mockOrderRepo{}
	h := newTestHandler(repo)

	w := doRequest(h, http.MethodPost,
		`{"name":"Rahim","phone":"017","address":"Dhaka","product_id":"P1","payment_method":"bKash","coupon":"X","qty":3}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, repo.created, 1)
}

func TestPlaceOrder_PersistenceFailure(t *testing.T) {
	repo := &mockOrderRepo{err: errors.New("deadline exceeded")}
	h := newTestHandler(repo)

	w := doRequest(h, http.MethodPost, validBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assertCORSHeaders(t, w)

	body := decodeBody(t, w)
	assert.Equal(t, "Failed to save order to database.", body["message"])
	require.Contains(t, body, "error")
	assert.Contains(t, body["error"], "deadline exceeded")
	assert.NotContains(t, body, "orderId")
}

func TestPlaceOrder_ResubmissionCreatesDistinctRecords(t *testing.T) {
	repo := &mockOrderRepo{}
	h := newTestHandler(repo)

	w1 := doRequest(h, http.MethodPost, validBody)
	w2 := doRequest(h, http.MethodPost, validBody)

	require.Equal(t, http.StatusOK, w1.Code)
	require.Equal(t, http.StatusOK, w2.Code)

	id1 := decodeBody(t, w1)["orderId"]
	id2 := decodeBody(t, w2)["orderId"]
	assert.NotEqual(t, id1, id2)
	assert.Len(t, repo.created, 2)
}

func TestDecodeOrderRequest_FractionalPrice(t *testing.T) {
	req, err := decodeOrderRequest([]byte(`{"name":"a","total_price":499.99}`))
	require.NoError(t, err)
	require.True(t, req.TotalPrice.Valid)
	assert.Equal(t, "499.99", req.TotalPrice.Decimal.String())
}
