package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		KeyID:     "key_test",
		KeySecret: "secret_test",
		BaseURL:   srv.URL,
	})
	return client, srv
}

func TestCreateGatewayOrder_Success(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_test", user)
		assert.Equal(t, "secret_test", pass)

		var req createOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(15000), req.Amount)
		assert.Equal(t, "INR", req.Currency)

		json.NewEncoder(w).Encode(map[string]string{"id": "order_test_1"})
	})

	id, err := client.CreateGatewayOrder(context.Background(), 15000, "INR", "order_rcpt_1")
	require.NoError(t, err)
	assert.Equal(t, "order_test_1", id)
}

func TestCreateGatewayOrder_GatewayError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad auth"}`, http.StatusUnauthorized)
	})

	id, err := client.CreateGatewayOrder(context.Background(), 100, "INR", "rcpt")
	assert.ErrorIs(t, err, ErrGatewayRequest)
	assert.Empty(t, id)
}

func TestCreateGatewayOrder_MissingOrderID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	})

	_, err := client.CreateGatewayOrder(context.Background(), 100, "INR", "rcpt")
	assert.ErrorIs(t, err, ErrGatewayRequest)
}

func TestCreateGatewayOrder_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := client.CreateGatewayOrder(ctx, 100, "INR", "rcpt")
		require.Error(t, err)
	}

	// breaker is open now, the backend must not be hit again
	_, err := client.CreateGatewayOrder(ctx, 100, "INR", "rcpt")
	require.Error(t, err)
	assert.Equal(t, 5, calls)
}

func TestConfigEnabled(t *testing.T) {
	assert.True(t, Config{KeyID: "k", KeySecret: "s"}.Enabled())
	assert.False(t, Config{KeyID: "k"}.Enabled())
	assert.False(t, Config{KeySecret: "s"}.Enabled())
	assert.False(t, Config{}.Enabled())
}
