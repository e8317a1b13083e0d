// Package chapa is a small client for the Chapa payment gateway.
package chapa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"travel-booking/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	statusSuccess = "success"

	maxResponseSize = 1 << 20
)

// ErrUnavailable wraps transport faults: timeouts, refused connections, truncated bodies.
var ErrUnavailable = errors.New("payment gateway unavailable")

// APIError is a response the gateway returned but did not mark as successful.
// Body is the decoded JSON document, or the raw text when it was not JSON.
type APIError struct {
	StatusCode int
	Status     string
	Body       any
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("chapa: http %d, status %q", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("chapa: http %d", e.StatusCode)
}

type InitializeRequest struct {
	Amount      decimal.Decimal
	Currency    string
	Email       string
	FirstName   string
	LastName    string
	TxRef       string
	CallbackURL string
	ReturnURL   string
}

type InitializeResult struct {
	CheckoutURL string
}

type VerifyResult struct {
	// Status is the provider's transaction status, e.g. "success" or "failed".
	Status string
	TxRef  string
	Body   any
}

type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
	log       *zap.Logger
}

// NewClient builds a gateway client. A nil transport uses http.DefaultTransport.
func NewClient(cfg utils.GatewayConfig, transport http.RoundTripper, log *zap.Logger) *Client {
	if transport == nil {
		transport = http.DefaultTransport
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		http:      &http.Client{Transport: transport, Timeout: timeout},
		log:       log.With(zap.String("client", "chapa")),
	}
}

type initializePayload struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	TxRef       string `json:"tx_ref"`
	CallbackURL string `json:"callback_url"`
	ReturnURL   string `json:"return_url"`
}

// envelope is the common shape of every Chapa response. message is a string
// on success but can be an object of field errors.
type envelope struct {
	Message json.RawMessage `json:"message"`
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	payload, err := json.Marshal(initializePayload{
		Amount:      req.Amount.StringFixed(2),
		Currency:    req.Currency,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		TxRef:       req.TxRef,
		CallbackURL: req.CallbackURL,
		ReturnURL:   req.ReturnURL,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal initialize request: %w", err)
	}

	env, raw, err := c.do(ctx, http.MethodPost, "/transaction/initialize", payload)
	if err != nil {
		return nil, err
	}

	var data struct {
		CheckoutURL string `json:"checkout_url"`
	}
	if len(env.Data) > 0 {
		_ = json.Unmarshal(env.Data, &data)
	}
	if data.CheckoutURL == "" {
		return nil, &APIError{StatusCode: http.StatusOK, Status: env.Status, Body: raw}
	}

	c.log.Info("Transaction initialized", zap.String("tx_ref", req.TxRef))
	return &InitializeResult{CheckoutURL: data.CheckoutURL}, nil
}

func (c *Client) Verify(ctx context.Context, txRef string) (*VerifyResult, error) {
	env, raw, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(txRef), nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Status string `json:"status"`
		TxRef  string `json:"tx_ref"`
	}
	if len(env.Data) > 0 {
		_ = json.Unmarshal(env.Data, &data)
	}
	// a success envelope must describe the transaction that was asked about
	if data.Status == "" || (data.TxRef != "" && data.TxRef != txRef) {
		c.log.Warn("Chapa verify reply does not describe the transaction",
			zap.String("tx_ref", txRef),
			zap.String("reply_tx_ref", data.TxRef),
			zap.String("provider_status", data.Status),
		)
		return nil, &APIError{StatusCode: http.StatusOK, Status: env.Status, Body: raw}
	}

	c.log.Info("Transaction verified",
		zap.String("tx_ref", txRef),
		zap.String("provider_status", data.Status),
	)
	return &VerifyResult{Status: data.Status, TxRef: data.TxRef, Body: raw}, nil
}

// do sends one request and returns the decoded envelope plus the generic body.
// Anything other than HTTP 200 with status "success" becomes an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*envelope, any, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("build chapa request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("Chapa request failed",
			zap.Error(err),
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	if len(respBody) > maxResponseSize {
		return nil, nil, fmt.Errorf("%w: response larger than %d bytes", ErrUnavailable, maxResponseSize)
	}

	c.log.Debug("Chapa response",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	var env envelope
	var raw any
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	// a JSON array or scalar leaves env zero valued, which fails the status check below
	_ = json.Unmarshal(respBody, &env)

	if resp.StatusCode != http.StatusOK || env.Status != statusSuccess {
		c.log.Warn("Chapa returned non-success",
			zap.String("path", path),
			zap.Int("http_status", resp.StatusCode),
			zap.String("status", env.Status),
		)
		return nil, nil, &APIError{StatusCode: resp.StatusCode, Status: env.Status, Body: raw}
	}

	return &env, raw, nil
}
