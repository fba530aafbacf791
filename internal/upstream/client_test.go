package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/domain"
)

func TestLogin_ReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "john@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]string{"token": "abc.def.ghi"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	token, err := c.Login(context.Background(), "john@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestDo_ForbiddenClassifiesAsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "access denied"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Cart(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "access denied", err.Error())
}

func TestDo_ServerErrorKeepsMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "quantity must be positive"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.AddToCart(context.Background(), 1, -2)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "quantity must be positive", err.Error())
}

func TestBearer_TokenSourceAndContextOverride(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(func() string { return "stored-token" }))

	_, err := c.Cart(context.Background())
	require.NoError(t, err)

	_, err = c.Cart(WithToken(context.Background(), "request-token"))
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, "Bearer stored-token", seen[0])
	assert.Equal(t, "Bearer request-token", seen[1])
}

func TestProducts_QueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "10", q.Get("size"))
		assert.Equal(t, "id,desc", q.Get("sort"))
		assert.Equal(t, "mango", q.Get("search"))

		json.NewEncoder(w).Encode(domain.ProductPage{
			Content:       []domain.Product{{ID: 7, Name: "Mango", Price: 80, MRP: 100}},
			Page:          2,
			TotalElements: 21,
			TotalPages:    3,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	page, err := c.Products(context.Background(), ListParams{Page: 2, Search: "mango"})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Mango", page.Content[0].Name)
	assert.Equal(t, 80.0, page.Content[0].Price)
	assert.Equal(t, 100.0, page.Content[0].MRP)
}

func TestVerifyPayment_PayloadShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/payment/verify-payment", r.URL.Path)

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "razorpayOrderId")
		assert.Contains(t, body, "razorpayPaymentId")
		assert.Contains(t, body, "razorpaySignature")
		assert.Contains(t, body, "checkoutRequest")

		json.NewEncoder(w).Encode(domain.Order{OrderID: 42, Status: domain.OrderStatusPlaced})
	}))
	defer srv.Close()

	c := New(srv.URL)
	order, err := c.VerifyPayment(context.Background(),
		domain.PaymentSignature{GatewayOrderID: "rzp_1", PaymentID: "pay_1", Signature: "sig"},
		domain.CheckoutRequest{FullName: "John Doe", PaymentMode: domain.PaymentModeUPI},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(42), order.OrderID)
}

func TestInvoice_BinaryPassthrough(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake invoice")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders/42/invoice", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	}))
	defer srv.Close()

	c := New(srv.URL)
	data, contentType, err := c.Invoice(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, pdf, data)
	assert.Equal(t, "application/pdf", contentType)
}

func TestChat_ReplyAndSuggestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		json.NewEncoder(w).Encode(domain.ChatReply{
			Reply:       "We deliver within 24 hours.",
			Suggestions: []string{"Payment options", "Return policy"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	reply, err := c.Chat(context.Background(), "Delivery time?")
	require.NoError(t, err)
	assert.Equal(t, "We deliver within 24 hours.", reply.Reply)
	assert.Len(t, reply.Suggestions, 2)
}
