// Package wallet records completed wallet top-ups with the merchant backend.
package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BrandonKowalski/navkit/pkg/navkit/constants"
	_ "github.com/BrandonKowalski/navkit/pkg/navkit/internal" // CA roots for the HTTP client
)

// ErrReconcileFailed is returned when the backend did not accept a top-up.
var ErrReconcileFailed = errors.New("wallet: failed to record top-up")

// ServiceError wraps errors with the backend's context.
type ServiceError struct {
	Err        error
	Message    string
	StatusCode int
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Err.Error() + ": " + e.Message
	}
	return e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// TopUp is a completed payment to credit to the user's wallet.
type TopUp struct {
	SessionID   string `json:"session_id"`
	OrderID     string `json:"order_id"`
	AmountCents int64  `json:"amount_cents"`
	Outcome     string `json:"outcome"`
}

// Receipt is the backend's answer to a recorded top-up.
type Receipt struct {
	TransactionID string `json:"transaction_id"`
	BalanceCents  int64  `json:"balance_cents"`
}

// Client talks to the merchant wallet API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a wallet client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: constants.WalletRequestTimeout,
		},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// RecordTopUp credits a top-up.
// POST /api/v1/wallet/topups
//
// The session ID doubles as idempotency key so a retried call cannot credit
// twice.
func (c *Client) RecordTopUp(ctx context.Context, topUp TopUp) (*Receipt, error) {
	if c == nil {
		return nil, &ServiceError{Err: ErrReconcileFailed, Message: "wallet not configured"}
	}
	if topUp.SessionID == "" {
		topUp.SessionID = uuid.NewString()
	}

	body, err := json.Marshal(topUp)
	if err != nil {
		return nil, &ServiceError{Err: ErrReconcileFailed, Message: "marshal payload: " + err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/wallet/topups", bytes.NewReader(body))
	if err != nil {
		return nil, &ServiceError{Err: ErrReconcileFailed, Message: "create request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Idempotency-Key", topUp.SessionID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ServiceError{Err: ErrReconcileFailed, Message: "request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &ServiceError{
			Err:        ErrReconcileFailed,
			Message:    fmt.Sprintf("backend returned status %d after %s: %s", resp.StatusCode, time.Since(start).Round(time.Millisecond), strings.TrimSpace(string(msg))),
			StatusCode: resp.StatusCode,
		}
	}

	var receipt Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, &ServiceError{Err: ErrReconcileFailed, Message: "decode receipt: " + err.Error(), StatusCode: resp.StatusCode}
	}
	return &receipt, nil
}
