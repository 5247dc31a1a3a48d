package vektopay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"
)

// authMode selects which authentication header a request carries.
type authMode int

const (
	authAPIKey authMode = iota // x-api-key
	authBearer                 // Authorization: Bearer <token>
	authNone                   // capture-token endpoints carry their own credential
)

// Headers the client owns. Caller-supplied default headers never
// override these.
var reservedHeaders = map[string]struct{}{
	"content-type":  {},
	"x-api-key":     {},
	"authorization": {},
}

// do issues one signed JSON request and returns the HTTP status code
// with the raw response body. Network-level failures come back as
// *TransportError; HTTP-level failures are the caller's to interpret
// via gatewayError.
func (c *Client) do(ctx context.Context, op, method, path string, body any, auth authMode, extra map[string]string) (int, []byte, error) {
	atomic.AddInt64(&c.metrics.RequestsIssued, 1)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, &TransportError{Op: op, Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, &TransportError{Op: op, Err: err}
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	switch auth {
	case authAPIKey:
		req.Header.Set("x-api-key", c.apiKey)
	case authBearer:
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}
	for k, v := range c.defaultHeaders {
		if _, reserved := reservedHeaders[lowerASCII(k)]; reserved {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		atomic.AddInt64(&c.metrics.TransportFailures, 1)
		c.logger.Warn("request failed",
			zap.String("op", op),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return 0, nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		atomic.AddInt64(&c.metrics.TransportFailures, 1)
		return 0, nil, &TransportError{Op: op, Err: err}
	}

	c.logger.Debug("request completed",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", resp.StatusCode),
	)

	return resp.StatusCode, payload, nil
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

// errorDetail is the gateway's error envelope payload, which arrives
// either as a bare string or as a {code, message} object.
type errorDetail struct {
	Code    string
	Message string
}

func (d *errorDetail) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d.Message = s
		return nil
	}
	var obj struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		d.Code = obj.Code
		d.Message = obj.Message
		return nil
	}
	// Unknown envelope shape; the fallback identifier takes over.
	return nil
}

// gatewayError builds the error for a non-2xx response. When the body
// carries a conventional {error: ...} envelope its code/message are
// preserved; otherwise the identifier "<op>_failed_<status>" keeps the
// failure distinguishable.
func (c *Client) gatewayError(op string, statusCode int, payload []byte) *GatewayError {
	atomic.AddInt64(&c.metrics.GatewayErrors, 1)

	ge := &GatewayError{Op: op, StatusCode: statusCode}

	var envelope struct {
		Error *errorDetail `json:"error"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Error != nil {
		ge.Code = envelope.Error.Code
		ge.Message = envelope.Error.Message
		if ge.Code == "" {
			ge.Code = ge.Message
		}
		if ge.Message == "" {
			ge.Message = ge.Code
		}
	}
	if ge.Code == "" {
		ge.Code = fmt.Sprintf("%s_failed_%d", op, statusCode)
		ge.Message = ge.Code
	}

	c.logger.Warn("gateway rejected request",
		zap.String("op", op),
		zap.Int("status_code", statusCode),
		zap.String("code", ge.Code),
	)
	return ge
}

// decodeBody parses a 2xx body into the endpoint's wire struct. A body
// that is not valid JSON or carries wrong-typed fields violates the
// contract and surfaces as a ProtocolError, not a success.
func (c *Client) decodeBody(op string, payload []byte, into any) error {
	if err := json.Unmarshal(payload, into); err != nil {
		return c.protocolError(op)
	}
	return nil
}

func (c *Client) protocolError(op string) *ProtocolError {
	atomic.AddInt64(&c.metrics.ProtocolErrors, 1)
	c.logger.Warn("invalid gateway response", zap.String("op", op))
	return invalidResponse(op)
}
