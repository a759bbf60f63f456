package httpclient

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cbTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newCBClient(name string, minRequests uint32) *CircuitBreakerClient {
	return NewCircuitBreakerClient(New(testConfig(0)), CircuitBreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		FailureRatio: 0.5,
		MinRequests:  minRequests,
	}, cbTestLogger())
}

func TestCircuitBreakerClient_PassesThroughSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newCBClient("cb-success", 3)

	resp, err := client.Get(context.Background(), server.URL)

	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, gobreaker.StateClosed, client.State())
}

func TestCircuitBreakerClient_5xxCountsAsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newCBClient("cb-5xx", 100)

	_, err := client.Get(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error 502")
}

func TestCircuitBreakerClient_OpensAfterFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newCBClient("cb-opens", 3)

	for i := 0; i < 3; i++ {
		_, err := client.Get(context.Background(), server.URL)
		require.Error(t, err)
	}

	assert.Equal(t, gobreaker.StateOpen, client.State())

	// Requests are now rejected without reaching the server.
	before := atomic.LoadInt32(&calls)
	_, err := client.Get(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCircuitOpen))
	assert.Equal(t, before, atomic.LoadInt32(&calls))
}

func TestCircuitBreakerClient_StaysClosedUnderMinRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newCBClient("cb-min", 10)

	for i := 0; i < 5; i++ {
		_, err := client.Get(context.Background(), server.URL)
		require.Error(t, err)
	}

	assert.Equal(t, gobreaker.StateClosed, client.State())
}
