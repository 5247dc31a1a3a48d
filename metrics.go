package vektopay

import "sync/atomic"

// Metrics provides observability counters for a Client.
// All fields are updated with atomic operations.
type Metrics struct {
	// Request Counters
	RequestsIssued    int64 // HTTP requests started, across all endpoints
	TransportFailures int64 // Network-level failures (gateway never answered)

	// Normalization Counters
	GatewayErrors  int64 // Non-2xx responses from the gateway
	ProtocolErrors int64 // 2xx responses violating the endpoint contract

	// Polling Counters
	PollsStarted   int64 // PollPaymentStatus invocations
	PollsCompleted int64 // Polls that reached a terminal status
}

// Metrics returns a point-in-time snapshot of the client's counters.
func (c *Client) Metrics() Metrics {
	return Metrics{
		RequestsIssued:    atomic.LoadInt64(&c.metrics.RequestsIssued),
		TransportFailures: atomic.LoadInt64(&c.metrics.TransportFailures),
		GatewayErrors:     atomic.LoadInt64(&c.metrics.GatewayErrors),
		ProtocolErrors:    atomic.LoadInt64(&c.metrics.ProtocolErrors),
		PollsStarted:      atomic.LoadInt64(&c.metrics.PollsStarted),
		PollsCompleted:    atomic.LoadInt64(&c.metrics.PollsCompleted),
	}
}
