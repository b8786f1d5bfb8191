// Package payment wraps the external payment gateway behind a narrow port.
// The gateway is either configured or disabled, decided once at
// construction; callers never probe credentials themselves.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Gateway errors
var (
	ErrNotConfigured      = errors.New("payment gateway not configured")
	ErrSignatureMismatch  = errors.New("payment signature mismatch")
	ErrOrderCreationError = errors.New("failed to create payment order")
)

// Order represents a payment order created at the gateway
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway is the payment port consumed by the payment service
type Gateway interface {
	// CreateOrder creates an order at the gateway. Amount is in the major
	// currency unit; the gateway converts to its smallest unit.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error)

	// VerifySignature checks the HMAC-SHA256 signature the gateway computed
	// over "orderID|paymentID" against the shared key secret.
	VerifySignature(orderID, paymentID, signature string) error
}

// Config holds gateway credentials and endpoint
type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
}

// NewGateway returns a configured gateway, or a disabled one whose every
// method reports ErrNotConfigured when credentials are absent.
func NewGateway(cfg Config, logger zerolog.Logger) Gateway {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		logger.Warn().Msg("Payment gateway credentials not configured, payment features disabled")
		return &disabledGateway{}
	}
	return &httpGateway{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   cfg.BaseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
		logger:    logger,
	}
}

// httpGateway talks to a Razorpay-style orders API
type httpGateway struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
	logger    zerolog.Logger
}

func (g *httpGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	// The gateway expects amounts in the smallest currency unit (paise)
	payload := map[string]interface{}{
		"amount":          amount * 100,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error().Err(err).Msg("Payment gateway request failed")
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		g.logger.Error().
			Int("status", resp.StatusCode).
			Str("body", string(respBody)).
			Msg("Payment gateway rejected order creation")
		return nil, ErrOrderCreationError
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}

	return &order, nil
}

func (g *httpGateway) VerifySignature(orderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}

// disabledGateway reports the unconfigured state on every call
type disabledGateway struct{}

func (g *disabledGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	return nil, ErrNotConfigured
}

func (g *disabledGateway) VerifySignature(orderID, paymentID, signature string) error {
	return ErrNotConfigured
}
