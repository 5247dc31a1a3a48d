package vektopay

import (
	"context"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Polling defaults. The cadence is fixed; there is no backoff.
const (
	DefaultPollInterval = 3 * time.Second
	DefaultPollTimeout  = 120 * time.Second
)

// PollOption configures a single PollPaymentStatus call.
type PollOption func(*pollConfig)

type pollConfig struct {
	interval time.Duration
	timeout  time.Duration
}

// WithPollInterval sets the fixed delay between status requests.
// Default is 3 seconds.
func WithPollInterval(d time.Duration) PollOption {
	return func(c *pollConfig) {
		c.interval = d
	}
}

// WithPollTimeout sets the wall-clock budget for the whole poll,
// measured from the first iteration. Default is 120 seconds. The value
// is honored literally: a zero timeout means the deadline has already
// passed and the poll fails before issuing any request.
func WithPollTimeout(d time.Duration) PollOption {
	return func(c *pollConfig) {
		c.timeout = d
	}
}

// Request and response wire shapes for the unified payment surface.
// Key names follow the gateway's snake_case contract.

type paymentCustomerWire struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	DocType    string `json:"doc_type"`
	DocNumber  string `json:"doc_number"`
}

type paymentItemWire struct {
	PriceID  string `json:"price_id"`
	Quantity int    `json:"quantity"`
}

type paymentMethodWire struct {
	Type         PaymentMethodType `json:"type"`
	Token        string            `json:"token,omitempty"`
	CardID       string            `json:"card_id,omitempty"`
	CVCToken     string            `json:"cvc_token,omitempty"`
	Installments int               `json:"installments,omitempty"`
}

type paymentRequestWire struct {
	CustomerID    string               `json:"customer_id,omitempty"`
	Customer      *paymentCustomerWire `json:"customer,omitempty"`
	Items         []paymentItemWire    `json:"items,omitempty"`
	Amount        float64              `json:"amount,omitempty"`
	Currency      string               `json:"currency,omitempty"`
	CouponCode    string               `json:"coupon_code,omitempty"`
	Mode          PaymentMode          `json:"mode,omitempty"`
	WebhookURL    string               `json:"webhook_url,omitempty"`
	PaymentMethod paymentMethodWire    `json:"payment_method"`
}

type challengeWire struct {
	URL string `json:"url"`
}

type paymentResponseWire struct {
	PaymentID      string         `json:"payment_id"`
	Status         Status         `json:"status"`
	PaymentStatus  MethodStatus   `json:"payment_status"`
	SubscriptionID *string        `json:"subscription_id"`
	Amount         *float64       `json:"amount"`
	Currency       *string        `json:"currency"`
	Challenge      *challengeWire `json:"challenge"`
}

type paymentStatusWire struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
}

func paymentWireFromInput(input PaymentInput) paymentRequestWire {
	wire := paymentRequestWire{
		CustomerID: input.CustomerID,
		Amount:     input.Amount,
		Currency:   input.Currency,
		CouponCode: input.CouponCode,
		Mode:       input.Mode,
		WebhookURL: input.WebhookURL,
		PaymentMethod: paymentMethodWire{
			Type:         input.PaymentMethod.Type,
			Token:        input.PaymentMethod.Token,
			CardID:       input.PaymentMethod.CardID,
			CVCToken:     input.PaymentMethod.CVCToken,
			Installments: input.PaymentMethod.Installments,
		},
	}
	if input.Customer != nil {
		wire.Customer = &paymentCustomerWire{
			ExternalID: input.Customer.ExternalID,
			Name:       input.Customer.Name,
			Email:      input.Customer.Email,
			DocType:    input.Customer.DocType,
			DocNumber:  input.Customer.DocNumber,
		}
	}
	for _, item := range input.Items {
		wire.Items = append(wire.Items, paymentItemWire{
			PriceID:  item.PriceID,
			Quantity: item.Quantity,
		})
	}
	return wire
}

// CreatePayment submits a payment to the unified surface. There is no
// retry: the request is issued once and whatever status the gateway
// assigned at submission time comes back, possibly already terminal for
// instant methods, or ACTION_REQUIRED when step-up auth is needed.
func (c *Client) CreatePayment(ctx context.Context, input PaymentInput) (*PaymentResponse, error) {
	return c.createPayment(ctx, input, nil)
}

// createPayment is the single submission path shared by the unified and
// legacy surfaces. The legacy charge adapter threads its Idempotency-Key
// header through extra.
func (c *Client) createPayment(ctx context.Context, input PaymentInput, extra map[string]string) (*PaymentResponse, error) {
	const op = "payment"

	statusCode, payload, err := c.do(ctx, op, http.MethodPost, "/v1/payments", paymentWireFromInput(input), authAPIKey, extra)
	if err != nil {
		return nil, err
	}
	if !is2xx(statusCode) {
		return nil, c.gatewayError(op, statusCode, payload)
	}

	var wire paymentResponseWire
	if err := c.decodeBody(op, payload, &wire); err != nil {
		return nil, err
	}
	if wire.PaymentID == "" || wire.Status == "" {
		return nil, c.protocolError(op)
	}
	if _, known := knownStatuses[wire.Status]; !known {
		return nil, c.protocolError(op)
	}

	result := &PaymentResponse{
		PaymentID:      wire.PaymentID,
		Status:         wire.Status,
		PaymentStatus:  wire.PaymentStatus,
		SubscriptionID: wire.SubscriptionID,
		Amount:         wire.Amount,
		Currency:       wire.Currency,
	}
	if wire.Challenge != nil && wire.Challenge.URL != "" {
		result.Challenge = &Challenge{URL: wire.Challenge.URL, Method: ChallengeRedirect}
	}

	c.logger.Info("payment submitted",
		zap.String("payment_id", result.PaymentID),
		zap.String("status", string(result.Status)),
	)
	return result, nil
}

// GetPaymentStatus performs a single status lookup with no side effects
// beyond the read.
func (c *Client) GetPaymentStatus(ctx context.Context, paymentID string) (*PaymentStatusResponse, error) {
	const op = "payment_status"

	statusCode, payload, err := c.do(ctx, op, http.MethodGet, "/v1/payments/"+url.PathEscape(paymentID)+"/status", nil, authAPIKey, nil)
	if err != nil {
		return nil, err
	}
	if !is2xx(statusCode) {
		return nil, c.gatewayError(op, statusCode, payload)
	}

	var wire paymentStatusWire
	if err := c.decodeBody(op, payload, &wire); err != nil {
		return nil, err
	}
	if wire.ID == "" || wire.Status == "" {
		return nil, c.protocolError(op)
	}
	if _, known := knownStatuses[wire.Status]; !known {
		return nil, c.protocolError(op)
	}

	return &PaymentStatusResponse{ID: wire.ID, Status: wire.Status}, nil
}

// PollPaymentStatus re-queries the payment at a fixed cadence until a
// terminal status is observed, the wall-clock timeout elapses, or ctx is
// cancelled, whichever comes first. Cancellation and the deadline are
// checked at the top of every iteration, before the next status request
// is issued; a context cancelled mid-wait also cuts the interval short.
//
// The returned status is always terminal. A non-terminal outcome is
// only ever reported as ErrPollTimeout or ErrPollAborted.
func (c *Client) PollPaymentStatus(ctx context.Context, paymentID string, opts ...PollOption) (*PaymentStatusResponse, error) {
	cfg := pollConfig{
		interval: DefaultPollInterval,
		timeout:  DefaultPollTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.interval <= 0 {
		cfg.interval = DefaultPollInterval
	}

	atomic.AddInt64(&c.metrics.PollsStarted, 1)
	deadline := c.clock.Now().Add(cfg.timeout)

	for {
		select {
		case <-ctx.Done():
			return nil, ErrPollAborted
		default:
		}
		if !c.clock.Now().Before(deadline) {
			c.logger.Warn("poll timed out",
				zap.String("payment_id", paymentID),
				zap.Duration("timeout", cfg.timeout),
			)
			return nil, ErrPollTimeout
		}

		status, err := c.GetPaymentStatus(ctx, paymentID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ErrPollAborted
			}
			return nil, err
		}
		if status.Status.Terminal() {
			atomic.AddInt64(&c.metrics.PollsCompleted, 1)
			c.logger.Info("poll reached terminal status",
				zap.String("payment_id", paymentID),
				zap.String("status", string(status.Status)),
			)
			return status, nil
		}

		c.logger.Debug("payment still pending",
			zap.String("payment_id", paymentID),
			zap.String("status", string(status.Status)),
		)

		select {
		case <-ctx.Done():
			return nil, ErrPollAborted
		case <-c.clock.After(cfg.interval):
		}
	}
}
