package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	gateway := NewGateway(Config{KeyID: "key", KeySecret: "secret"}, zerolog.Nop())

	valid := sign("secret", "order_1", "pay_1")
	assert.NoError(t, gateway.VerifySignature("order_1", "pay_1", valid))
}

func TestVerifySignatureMismatch(t *testing.T) {
	gateway := NewGateway(Config{KeyID: "key", KeySecret: "secret"}, zerolog.Nop())

	// Signature computed over different identifiers
	wrong := sign("secret", "order_1", "pay_2")
	assert.ErrorIs(t, gateway.VerifySignature("order_1", "pay_1", wrong), ErrSignatureMismatch)

	// Signature computed with a different key
	forged := sign("other-secret", "order_1", "pay_1")
	assert.ErrorIs(t, gateway.VerifySignature("order_1", "pay_1", forged), ErrSignatureMismatch)
}

func TestDisabledGateway(t *testing.T) {
	gateway := NewGateway(Config{}, zerolog.Nop())

	_, err := gateway.CreateOrder(context.Background(), 500, "INR", "order_1_1")
	assert.ErrorIs(t, err, ErrNotConfigured)

	err = gateway.VerifySignature("order_1", "pay_1", "sig")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		// Amounts are converted to the smallest currency unit
		assert.Equal(t, float64(50000), payload["amount"])
		assert.Equal(t, "INR", payload["currency"])

		json.NewEncoder(w).Encode(Order{
			ID:       "order_test_1",
			Amount:   50000,
			Currency: "INR",
			Receipt:  payload["receipt"].(string),
			Status:   "created",
		})
	}))
	defer server.Close()

	gateway := NewGateway(Config{KeyID: "key", KeySecret: "secret", BaseURL: server.URL}, zerolog.Nop())

	order, err := gateway.CreateOrder(context.Background(), 500, "INR", "order_1_1")
	require.NoError(t, err)
	assert.Equal(t, "order_test_1", order.ID)
	assert.Equal(t, "created", order.Status)
}

func TestCreateOrderGatewayRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	gateway := NewGateway(Config{KeyID: "key", KeySecret: "secret", BaseURL: server.URL}, zerolog.Nop())

	_, err := gateway.CreateOrder(context.Background(), 500, "INR", "order_1_1")
	assert.ErrorIs(t, err, ErrOrderCreationError)
}
