package vektopay

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"sync/atomic"
)

type checkoutSessionWire struct {
	CustomerID       string  `json:"customer_id"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	PriceID          string  `json:"price_id,omitempty"`
	Quantity         int     `json:"quantity,omitempty"`
	ExpiresInSeconds int     `json:"expires_in_seconds,omitempty"`
	SuccessURL       string  `json:"success_url,omitempty"`
	CancelURL        string  `json:"cancel_url,omitempty"`
}

// parseFlexNumber accepts the two encodings the gateway uses for
// expires_at: a JSON number, or a numeric string. A value that does not
// parse to a finite number is a validation failure, never a silently
// wrong timestamp.
func parseFlexNumber(raw json.RawMessage) (float64, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errors.New("non-finite value")
	}
	return f, nil
}

// CreateCheckoutSession opens a hosted checkout session for a customer.
func (c *Client) CreateCheckoutSession(ctx context.Context, input CheckoutSessionInput) (*CheckoutSessionResponse, error) {
	const op = "checkout_session"

	body := checkoutSessionWire{
		CustomerID:       input.CustomerID,
		Amount:           input.Amount,
		Currency:         input.Currency,
		PriceID:          input.PriceID,
		Quantity:         input.Quantity,
		ExpiresInSeconds: input.ExpiresInSeconds,
		SuccessURL:       input.SuccessURL,
		CancelURL:        input.CancelURL,
	}
	statusCode, payload, err := c.do(ctx, op, http.MethodPost, "/v1/checkout-sessions", body, authAPIKey, nil)
	if err != nil {
		return nil, err
	}
	if !is2xx(statusCode) {
		return nil, c.gatewayError(op, statusCode, payload)
	}

	var wire struct {
		ID        string          `json:"id"`
		Token     string          `json:"token"`
		ExpiresAt json.RawMessage `json:"expires_at"`
	}
	if err := c.decodeBody(op, payload, &wire); err != nil {
		return nil, err
	}
	if wire.ID == "" || wire.Token == "" || len(wire.ExpiresAt) == 0 {
		return nil, c.protocolError(op)
	}
	expiresAt, err := parseFlexNumber(wire.ExpiresAt)
	if err != nil {
		atomic.AddInt64(&c.metrics.ProtocolErrors, 1)
		return nil, &ProtocolError{Op: op, Code: "checkout_session_invalid_expires_at"}
	}

	return &CheckoutSessionResponse{
		ID:        wire.ID,
		Token:     wire.Token,
		ExpiresAt: expiresAt,
	}, nil
}

type cardCaptureSessionWire struct {
	CustomerID       string `json:"customer_id"`
	ExpiresInSeconds int    `json:"expires_in_seconds,omitempty"`
	SuccessURL       string `json:"success_url,omitempty"`
	CancelURL        string `json:"cancel_url,omitempty"`
}

// CreateCardCaptureSession opens a hosted card-capture session. The
// returned URL hosts the capture form; the session expires at ExpiresAt.
func (c *Client) CreateCardCaptureSession(ctx context.Context, input CardCaptureSessionInput) (*CardCaptureSessionResponse, error) {
	const op = "card_capture_session"

	body := cardCaptureSessionWire{
		CustomerID:       input.CustomerID,
		ExpiresInSeconds: input.ExpiresInSeconds,
		SuccessURL:       input.SuccessURL,
		CancelURL:        input.CancelURL,
	}
	statusCode, payload, err := c.do(ctx, op, http.MethodPost, "/v1/card-capture-sessions", body, authAPIKey, nil)
	if err != nil {
		return nil, err
	}
	if !is2xx(statusCode) {
		return nil, c.gatewayError(op, statusCode, payload)
	}

	var wire struct {
		ID        string `json:"id"`
		URL       string `json:"url"`
		ExpiresAt string `json:"expires_at"`
	}
	if err := c.decodeBody(op, payload, &wire); err != nil {
		return nil, err
	}
	if wire.ID == "" || wire.URL == "" || wire.ExpiresAt == "" {
		return nil, c.protocolError(op)
	}

	return &CardCaptureSessionResponse{
		ID:        wire.ID,
		URL:       wire.URL,
		ExpiresAt: wire.ExpiresAt,
	}, nil
}
