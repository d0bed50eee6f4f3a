package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

var ErrGatewayRequest = errors.New("gateway request failed")

// Gateway is the slice of the payment provider the checkout flow consumes:
// creating a payment session for an amount, and checking callback signatures.
type Gateway interface {
	CreateGatewayOrder(ctx context.Context, amountSubunits int64, currency, receipt string) (string, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
	KeyID() string
}

type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Timeout   time.Duration
}

// Enabled reports whether both gateway credentials are present. Without them
// the online-payment path stays off; cash on delivery is unaffected.
func (c Config) Enabled() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[string]
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.razorpay.com/v1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	settings := gobreaker.Settings{
		Name:    "payment-gateway",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    gobreaker.NewCircuitBreaker[string](settings),
	}
}

func (c *Client) KeyID() string {
	return c.cfg.KeyID
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// CreateGatewayOrder opens a payment session for the given amount in currency
// subunits. The call runs behind a circuit breaker so a dead gateway fails
// fast instead of holding every checkout for the full timeout.
func (c *Client) CreateGatewayOrder(ctx context.Context, amountSubunits int64, currency, receipt string) (string, error) {
	return c.breaker.Execute(func() (string, error) {
		return c.createOrder(ctx, amountSubunits, currency, receipt)
	})
}

func (c *Client) createOrder(ctx context.Context, amountSubunits int64, currency, receipt string) (string, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   amountSubunits,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return "", fmt.Errorf("marshal gateway order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGatewayRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrGatewayRequest, resp.StatusCode, payload)
	}

	var created createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode gateway response: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("%w: response missing order id", ErrGatewayRequest)
	}

	return created.ID, nil
}

func (c *Client) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	return VerifySignature(gatewayOrderID, paymentID, signature, c.cfg.KeySecret)
}

var _ Gateway = (*Client)(nil)
