package vektopay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCountRequests(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{"payment_id": "p1", "status": "PAID"})
	})

	_, err := client.CreatePayment(context.Background(), PaymentInput{})
	require.NoError(t, err)
	_, err = client.CreatePayment(context.Background(), PaymentInput{})
	require.NoError(t, err)

	metrics := client.Metrics()
	assert.Equal(t, int64(2), metrics.RequestsIssued)
	assert.Equal(t, int64(0), metrics.TransportFailures)
	assert.Equal(t, int64(0), metrics.GatewayErrors)
	assert.Equal(t, int64(0), metrics.ProtocolErrors)
}

func TestMetricsCountFailures(t *testing.T) {
	var status int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, status, map[string]any{})
	})

	status = http.StatusBadRequest
	_, err := client.CreatePayment(context.Background(), PaymentInput{})
	require.Error(t, err)

	status = http.StatusOK // empty body on 2xx violates the contract
	_, err = client.CreatePayment(context.Background(), PaymentInput{})
	require.Error(t, err)

	metrics := client.Metrics()
	assert.Equal(t, int64(1), metrics.GatewayErrors)
	assert.Equal(t, int64(1), metrics.ProtocolErrors)
}

func TestMetricsCountTransportFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := New("key", server.URL)
	_, err := client.GetPaymentStatus(context.Background(), "p1")
	require.Error(t, err)

	assert.Equal(t, int64(1), client.Metrics().TransportFailures)
}

func TestMetricsCountPolls(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{"id": "p1", "status": "PAID"})
	})

	_, err := client.PollPaymentStatus(context.Background(), "p1",
		WithPollInterval(time.Millisecond),
	)
	require.NoError(t, err)

	metrics := client.Metrics()
	assert.Equal(t, int64(1), metrics.PollsStarted)
	assert.Equal(t, int64(1), metrics.PollsCompleted)
}

func TestMetricsTimedOutPollNotCompleted(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{"id": "p1", "status": "PENDING"})
	})

	_, err := client.PollPaymentStatus(context.Background(), "p1",
		WithPollInterval(time.Millisecond),
		WithPollTimeout(10*time.Millisecond),
	)
	require.ErrorIs(t, err, ErrPollTimeout)

	metrics := client.Metrics()
	assert.Equal(t, int64(1), metrics.PollsStarted)
	assert.Equal(t, int64(0), metrics.PollsCompleted)
}
