package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/FuriSherpa/hotel-booking-core/internal/application"
	"github.com/FuriSherpa/hotel-booking-core/internal/config"
	"github.com/FuriSherpa/hotel-booking-core/internal/infrastructure/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) application.PaymentGateway {
	return gateway.NewClient(config.GatewayConfig{
		BaseURL:     baseURL,
		ConnTimeout: 5 * time.Second,
	})
}

func TestCreateIntent_SendsIdempotencyKey(t *testing.T) {
	var gotKey, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		gotPath = r.URL.Path

		var req application.IntentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(30000), req.AmountCents)

		json.NewEncoder(w).Encode(application.IntentResponse{
			IntentID:     "pi-123",
			ClientSecret: "secret-123",
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.CreateIntent(context.Background(), application.IntentRequest{
		AmountCents: 30000,
		Currency:    "USD",
	}, "idem-key-1")

	require.NoError(t, err)
	assert.Equal(t, "pi-123", resp.IntentID)
	assert.Equal(t, "idem-key-1", gotKey)
	assert.Equal(t, "/v1/payment_intents", gotPath)
}

func TestRefund_MapsErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "intent_not_found",
			"message": "no such payment intent",
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Refund(context.Background(), "pi-missing", "idem-key-2")

	require.Error(t, err)
	assert.Nil(t, resp)

	gwErr, ok := application.IsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, "intent_not_found", gwErr.Code)
	assert.Equal(t, http.StatusNotFound, gwErr.StatusCode)
	assert.False(t, gwErr.IsRetryable())
}

func TestRefund_Success(t *testing.T) {
	refundedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "pi-123", body["payment_intent_id"])

		json.NewEncoder(w).Encode(application.RefundResponse{
			RefundID:   "re-456",
			Status:     "succeeded",
			RefundedAt: refundedAt,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Refund(context.Background(), "pi-123", "idem-key-3")

	require.NoError(t, err)
	assert.Equal(t, "re-456", resp.RefundID)
	assert.Equal(t, "succeeded", resp.Status)
}

func TestSendRequest_NonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Refund(context.Background(), "pi-123", "idem-key-4")

	require.Error(t, err)
	gwErr, ok := application.IsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, "unexpected_response", gwErr.Code)
	assert.True(t, gwErr.IsRetryable())
}
