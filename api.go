// Package vektopay is the Go client for the Vektopay payment gateway.
//
// The client drives a payment from submission through an optional
// authentication challenge to a terminal outcome, and exposes the
// auxiliary flows (customers, checkout sessions, card capture) the
// gateway offers around that lifecycle.
//
// Basic Usage:
//
//	client := vektopay.New("sk_live_...", "https://api.vektopay.com")
//
//	result, err := client.CreatePayment(ctx, vektopay.PaymentInput{
//		CustomerID: "cus_123",
//		Amount:     4990,
//		Currency:   "BRL",
//		PaymentMethod: vektopay.PaymentMethodInput{
//			Type:   vektopay.MethodCreditCard,
//			CardID: "card_456",
//		},
//	})
//	if err != nil {
//		return err
//	}
//
//	if !result.Status.Terminal() {
//		final, err := client.PollPaymentStatus(ctx, result.PaymentID)
//		...
//	}
//
// Challenges:
//
// When a payment comes back with StatusActionRequired the gateway expects
// the payer to complete a step-up authentication flow. Configure a Surface
// and hand the challenge to OpenChallenge:
//
//	client := vektopay.New(key, baseURL, vektopay.WithSurface(surface))
//
//	handle, err := client.OpenChallenge(*result.Challenge)
//	if err != nil {
//		return err
//	}
//	defer handle.Close()
//
// Dashboard Operations:
//
// Customer management is dashboard-scoped and authenticates with a bearer
// token instead of the API key. Construct the client with WithBearerToken
// or those calls fail with ErrBearerTokenRequired before any request is
// made.
//
// Concurrency:
//
// A Client holds only immutable configuration. All methods are safe for
// concurrent use; each call is an independent request/response exchange
// with no shared state beyond the underlying http.Client.
package vektopay

// Status is a payment lifecycle status as reported by the gateway.
type Status string

// Payment lifecycle statuses.
const (
	StatusPaid              Status = "PAID"
	StatusFailed            Status = "FAILED"
	StatusActionRequired    Status = "ACTION_REQUIRED"
	StatusSubmitted         Status = "SUBMITTED"
	StatusPending           Status = "PENDING"
	StatusPendingChallenge  Status = "PENDING_CHALLENGE"
	StatusProcessingGateway Status = "PROCESSING_GATEWAY"
	StatusAuthorized        Status = "AUTHORIZED"
	StatusCaptured          Status = "CAPTURED"
	StatusCanceled          Status = "CANCELED"
)

// Terminal reports whether no further status transition can occur.
// Polling stops as soon as a terminal status is observed.
func (s Status) Terminal() bool {
	switch s {
	case StatusPaid, StatusFailed, StatusCanceled:
		return true
	}
	return false
}

// knownStatuses is the full enumeration the gateway may report. A 2xx
// response carrying anything else is treated as a protocol error rather
// than passed through.
var knownStatuses = map[Status]struct{}{
	StatusPaid:              {},
	StatusFailed:            {},
	StatusActionRequired:    {},
	StatusSubmitted:         {},
	StatusPending:           {},
	StatusPendingChallenge:  {},
	StatusProcessingGateway: {},
	StatusAuthorized:        {},
	StatusCaptured:          {},
	StatusCanceled:          {},
}

// MethodStatus is the underlying processor's accept/decline/pending
// outcome, reported alongside the lifecycle status on some payments.
type MethodStatus string

const (
	MethodStatusSuccess MethodStatus = "SUCCESS"
	MethodStatusFailed  MethodStatus = "FAILED"
	MethodStatusPending MethodStatus = "PENDING"
)

// PaymentMethodType selects the instrument used to pay.
type PaymentMethodType string

const (
	MethodCreditCard PaymentMethodType = "credit_card"
	MethodPix        PaymentMethodType = "pix"
)

// PaymentMode selects one-off versus recurring billing.
type PaymentMode string

const (
	ModeOneTime      PaymentMode = "one_time"
	ModeSubscription PaymentMode = "subscription"
)

// ChallengeMethod is how a challenge should be presented to the payer.
type ChallengeMethod string

const (
	ChallengeIframe   ChallengeMethod = "iframe"
	ChallengeRedirect ChallengeMethod = "redirect"
)

// Challenge is a step-up authentication the payer must complete before
// authorization proceeds. The gateway produces one only when a payment
// requires action; it is consumed at most once by OpenChallenge.
type Challenge struct {
	URL    string
	Method ChallengeMethod
}

// PaymentMethodInput describes the instrument for a payment. Exactly one
// of Token or CardID identifies the card for credit_card payments.
type PaymentMethodInput struct {
	Type         PaymentMethodType
	Token        string
	CardID       string
	CVCToken     string
	Installments int
}

// PaymentCustomerInput creates a customer inline during payment
// submission, as an alternative to referencing one by CustomerID.
type PaymentCustomerInput struct {
	ExternalID string
	Name       string
	Email      string
	DocType    string
	DocNumber  string
}

// PaymentItemInput is one line item of an items-based payment.
type PaymentItemInput struct {
	PriceID  string
	Quantity int
}

// PaymentInput is the unified payment submission. Exactly one of Items
// or Amount+Currency should be set; the gateway gives Items precedence
// when both are present.
type PaymentInput struct {
	CustomerID    string
	Customer      *PaymentCustomerInput
	Items         []PaymentItemInput
	Amount        float64
	Currency      string
	CouponCode    string
	Mode          PaymentMode
	WebhookURL    string
	PaymentMethod PaymentMethodInput
}

// PaymentResponse is the gateway's answer to a payment submission.
// PaymentID and Status are always present; the remaining fields are
// gateway-authoritative and optional (nil when absent on the wire).
type PaymentResponse struct {
	PaymentID      string
	Status         Status
	PaymentStatus  MethodStatus
	SubscriptionID *string
	Amount         *float64
	Currency       *string
	Challenge      *Challenge
}

// PaymentStatusResponse is a single point-in-time status observation.
type PaymentStatusResponse struct {
	ID     string
	Status Status
}

// ChargeInput is the legacy /v1/charges submission shape.
//
// Deprecated: the charges surface is deprecated by the gateway; prefer
// CreatePayment.
type ChargeInput struct {
	CustomerID     string
	CardID         string
	Amount         float64
	Currency       string
	Installments   int
	Country        string
	PriceID        string
	IdempotencyKey string
}

// ChargeError is the embedded failure detail on a failed legacy charge.
type ChargeError struct {
	Code    string
	Message string
}

// ChargeResponse is the legacy charge outcome. Error is set only when
// Status is FAILED; Challenge only when Status is ACTION_REQUIRED.
type ChargeResponse struct {
	ID        string
	Status    Status
	Error     *ChargeError
	Challenge *Challenge
}

// ChargeStatusResponse mirrors PaymentStatusResponse for the legacy
// polling surface. The legacy status space is a subset of the unified
// one with identical terminal semantics.
type ChargeStatusResponse struct {
	ID     string
	Status Status
}

// TransactionItemInput is one line item of a legacy transaction.
type TransactionItemInput struct {
	PriceID  string
	Quantity int
}

// TransactionPaymentMethodInput is the legacy transaction instrument.
type TransactionPaymentMethodInput struct {
	Type         PaymentMethodType
	Token        string
	Installments int
}

// TransactionInput is the legacy /v1/transactions submission shape.
//
// Deprecated: prefer CreatePayment with Items.
type TransactionInput struct {
	CustomerID    string
	Items         []TransactionItemInput
	CouponCode    string
	PaymentMethod TransactionPaymentMethodInput
}

// TransactionResponse is the legacy transaction outcome.
type TransactionResponse struct {
	ID            string
	Status        Status
	PaymentStatus MethodStatus
	Amount        *float64
	Currency      *string
}

// CustomerCreateInput creates a customer record. Dashboard-scoped.
type CustomerCreateInput struct {
	MerchantID string
	ExternalID string
	Name       string
	Email      string
	DocType    string
	DocNumber  string
}

// CustomerUpdateInput updates a customer record; zero-valued fields are
// omitted from the request. Dashboard-scoped.
type CustomerUpdateInput struct {
	MerchantID string
	ExternalID string
	Name       string
	Email      string
	DocType    string
	DocNumber  string
}

// CustomerListParams filters and pages ListCustomers.
type CustomerListParams struct {
	MerchantID string
	Limit      int
	Offset     int
}

// Customer is a customer record as returned by the dashboard endpoints.
type Customer struct {
	ID         string  `json:"id"`
	MerchantID *string `json:"merchant_id"`
	ExternalID *string `json:"external_id"`
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	DocType    *string `json:"doc_type"`
	DocNumber  *string `json:"doc_number"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// CustomerCreateResponse carries the identifier of a created customer.
type CustomerCreateResponse struct {
	ID string
}

// CustomerDeleteResponse acknowledges a customer deletion.
type CustomerDeleteResponse struct {
	OK bool
}

// CheckoutSessionInput opens a hosted checkout session.
type CheckoutSessionInput struct {
	CustomerID       string
	Amount           float64
	Currency         string
	ExpiresInSeconds int
	SuccessURL       string
	CancelURL        string
	PriceID          string
	Quantity         int
}

// CheckoutSessionResponse is a created checkout session. ExpiresAt is a
// unix timestamp; the gateway sometimes serializes it as a numeric
// string, which the client coerces during normalization.
type CheckoutSessionResponse struct {
	ID        string
	Token     string
	ExpiresAt float64
}

// CardCaptureSessionInput opens a hosted card-capture session.
type CardCaptureSessionInput struct {
	CustomerID       string
	ExpiresInSeconds int
	SuccessURL       string
	CancelURL        string
}

// CardCaptureSessionResponse is a created card-capture session.
type CardCaptureSessionResponse struct {
	ID        string
	URL       string
	ExpiresAt string
}

// ProviderTokenResult records the outcome of tokenizing a card with one
// upstream provider.
type ProviderTokenResult struct {
	Status        string
	TokenID       string
	TokenType     string
	FingerprintID string
	ErrorCode     string
	ErrorMessage  string
}

// CreateCardInput stores a card directly. EncryptedPan must already be
// encrypted by the caller; the client never touches raw PANs.
type CreateCardInput struct {
	CustomerID     string
	EncryptedPan   string
	CardBrand      string
	Last4          string
	First6         string
	ExpMonth       int
	ExpYear        int
	HolderName     string
	Fingerprint    string
	ProviderTokens map[string]ProviderTokenResult
	ProviderMeta   map[string]any
}

// CompleteCardCaptureInput finishes a card-capture session. The capture
// token is the credential; no API key is sent on this call.
type CompleteCardCaptureInput struct {
	Token          string
	EncryptedPan   string
	SetDefault     bool
	CardBrand      string
	Last4          string
	First6         string
	ExpMonth       int
	ExpYear        int
	HolderName     string
	Fingerprint    string
	ProviderTokens map[string]ProviderTokenResult
	ProviderMeta   map[string]any
}

// CreateCardResponse carries the identifier of a stored card.
type CreateCardResponse struct {
	ID string
}
