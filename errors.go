package vektopay

import (
	"errors"
	"fmt"
)

// Configuration Errors
//
// These errors are returned before any network request is issued.

// ErrBearerTokenRequired is returned when a dashboard-scoped operation
// (customer management) is attempted on a client that was constructed
// without WithBearerToken. The call fails before any network I/O.
var ErrBearerTokenRequired = errors.New("bearer_token_required")

// Polling Errors
//
// These errors terminate PollPaymentStatus without a result.

// ErrPollTimeout is returned when the wall-clock timeout elapses before
// a terminal status is observed. The payment itself may still complete;
// only the observation gave up.
var ErrPollTimeout = errors.New("poll_timeout")

// ErrPollAborted is returned when the caller's context is cancelled
// between poll iterations. An in-flight status request is not aborted;
// cancellation only prevents starting the next one.
var ErrPollAborted = errors.New("poll_aborted")

// Presentation Errors

// ErrChallengeNotSupported is returned by OpenChallenge when no Surface
// was configured, i.e. the client runs in a non-interactive context with
// nowhere to present the challenge.
var ErrChallengeNotSupported = errors.New("open_challenge_not_supported")

// TransportError wraps a network-level failure: DNS resolution,
// connection refused, a broken body read. The gateway was never reached
// or never answered coherently at the HTTP layer.
type TransportError struct {
	Op  string // operation identifier, e.g. "payment", "customer_create"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("vektopay: %s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// GatewayError is a non-2xx HTTP response from the gateway. Code and
// Message carry the gateway-supplied error envelope when one was
// present; otherwise Code is the synthesized fallback
// "<operation>_failed_<status>" so every failure path stays
// distinguishable even with a malformed body.
type GatewayError struct {
	Op         string
	StatusCode int
	Code       string
	Message    string
}

func (e *GatewayError) Error() string {
	if e.Message != "" && e.Message != e.Code {
		return fmt.Sprintf("vektopay: %s: gateway %d: %s: %s", e.Op, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("vektopay: %s: gateway %d: %s", e.Op, e.StatusCode, e.Code)
}

// ProtocolError is a 2xx response that violates the endpoint's contract:
// a required field is missing, has the wrong type, or carries a value
// outside the documented enumeration. It is distinct from GatewayError
// so callers can tell "the gateway rejected this" from "the gateway
// answered garbage".
type ProtocolError struct {
	Op   string
	Code string // e.g. "payment_invalid_response"
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("vektopay: %s: %s", e.Op, e.Code)
}

func invalidResponse(op string) *ProtocolError {
	return &ProtocolError{Op: op, Code: op + "_invalid_response"}
}
