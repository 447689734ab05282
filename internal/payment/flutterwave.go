package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://api.flutterwave.com"
	requestTimeout = 15 * time.Second
)

// StatusSuccessful is the gateway's status for a completed payment.
const StatusSuccessful = "successful"

// ErrNotConfigured is returned when no gateway secret key is set.
var ErrNotConfigured = errors.New("payment gateway secret key not configured on the server")

// GatewayError reports a failed verification call: a transport failure, a
// non-2xx response, or a non-success envelope.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway verification failed (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gateway verification failed: %s", e.Message)
}

// VerificationResult is the outcome of a server-side transaction verification.
type VerificationResult struct {
	Status   string          `json:"status"`
	Amount   float64         `json:"amount"`
	Currency string          `json:"currency"`
	Raw      json.RawMessage `json:"raw,omitempty"`
}

// Verifier checks a transaction against the payment gateway.
type Verifier interface {
	Verify(ctx context.Context, transactionID string) (*VerificationResult, error)
}

// verifyEnvelope is the Flutterwave verify response shape:
// {status, message, data:{status, amount, currency, ...}}.
type verifyEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    *struct {
		Status   string  `json:"status"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	} `json:"data"`
}

// FlutterwaveClient verifies transactions against the Flutterwave v3 API.
type FlutterwaveClient struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

// NewFlutterwaveClient creates a new FlutterwaveClient. baseURL may be empty,
// in which case the production API is used.
func NewFlutterwaveClient(secretKey, baseURL string) *FlutterwaveClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &FlutterwaveClient{
		secretKey: secretKey,
		baseURL:   baseURL,
		client:    &http.Client{Timeout: requestTimeout},
	}
}

// Verify performs a single blocking call to the gateway's verify endpoint.
// No retries: the caller surfaces the failure to the client, which may resubmit.
func (c *FlutterwaveClient) Verify(ctx context.Context, transactionID string) (*VerificationResult, error) {
	if c.secretKey == "" {
		return nil, ErrNotConfigured
	}

	verifyURL := fmt.Sprintf("%s/v3/transactions/%s/verify", c.baseURL, url.PathEscape(transactionID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, verifyURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &GatewayError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: "failed to read response: " + err.Error()}
	}

	var envelope verifyEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: "invalid response body"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}
	if envelope.Status != "success" || envelope.Data == nil {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Message: "invalid verification response: " + envelope.Message}
	}

	return &VerificationResult{
		Status:   envelope.Data.Status,
		Amount:   envelope.Data.Amount,
		Currency: envelope.Data.Currency,
		Raw:      json.RawMessage(body),
	}, nil
}
