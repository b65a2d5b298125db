// Package gateway is the HTTP adapter for the external payment processor.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/FuriSherpa/hotel-booking-core/internal/application"
	"github.com/FuriSherpa/hotel-booking-core/internal/config"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.GatewayConfig) application.PaymentGateway {
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

func (c *HTTPClient) CreateIntent(ctx context.Context, req application.IntentRequest, idempotencyKey string) (*application.IntentResponse, error) {
	url := fmt.Sprintf("%s/v1/payment_intents", c.baseURL)
	return sendRequest[application.IntentRequest, application.IntentResponse](c, ctx, http.MethodPost, url, &req, idempotencyKey)
}

func (c *HTTPClient) Refund(ctx context.Context, paymentIntentID string, idempotencyKey string) (*application.RefundResponse, error) {
	url := fmt.Sprintf("%s/v1/refunds", c.baseURL)
	body := refundRequest{PaymentIntentID: paymentIntentID}
	return sendRequest[refundRequest, application.RefundResponse](c, ctx, http.MethodPost, url, &body, idempotencyKey)
}

type refundRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

type errorResponse struct {
	Err     string `json:"error"`
	Message string `json:"message"`
}

func sendRequest[Req any, Resp any](c *HTTPClient, ctx context.Context, method, url string, reqBody *Req, idempotencyKey string) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return nil, &application.GatewayError{
				Code:       "unexpected_response",
				Message:    string(body),
				StatusCode: resp.StatusCode,
			}
		}
		return nil, &application.GatewayError{
			Code:       errResp.Err,
			Message:    errResp.Message,
			StatusCode: resp.StatusCode,
		}
	}

	var decoded Resp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &decoded, nil
}
