package gateways

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Checkout session statuses as reported by the payment provider.
const (
	SessionOpen     = "open"
	SessionComplete = "complete"
	SessionExpired  = "expired"
)

var ErrSessionNotFound = errors.New("checkout session not found")

// CheckoutSession is the provider-owned record for one checkout attempt.
// Only the id and last-known status ever leave this package; nothing here
// is persisted.
type CheckoutSession struct {
	ID              string
	URL             string
	ClientSecret    string
	Status          string
	PaymentIntent   string
	ApplicationCode string
}

type CreateSessionParams struct {
	AmountCents     int64
	Currency        string
	Description     string
	ApplicationCode string
	SuccessURL      string
	CancelURL       string
}

type PaymentGateway interface {
	CreateSession(ctx context.Context, p CreateSessionParams) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// StripeClient talks to the hosted-checkout API with the application code
// carried in session metadata. That metadata is the only linkage between
// the payment record and the application record.
type StripeClient struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewStripeClient(baseURL, secretKey string, timeout time.Duration) (*StripeClient, error) {
	if secretKey == "" {
		return nil, errors.New("payment secret key is required")
	}
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &StripeClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

type sessionPayload struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	ClientSecret  string            `json:"client_secret"`
	Status        string            `json:"status"`
	PaymentIntent string            `json:"payment_intent"`
	Metadata      map[string]string `json:"metadata"`
}

func (s *StripeClient) CreateSession(ctx context.Context, p CreateSessionParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", p.SuccessURL)
	form.Set("cancel_url", p.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", p.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(p.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", p.Description)
	form.Set("metadata[application_code]", p.ApplicationCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return s.do(req)
}

func (s *StripeClient) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.baseURL+"/v1/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)

	return s.do(req)
}

func (s *StripeClient) do(req *http.Request) (*CheckoutSession, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrSessionNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment API returned %d", resp.StatusCode)
	}

	var payload sessionPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &CheckoutSession{
		ID:              payload.ID,
		URL:             payload.URL,
		ClientSecret:    payload.ClientSecret,
		Status:          payload.Status,
		PaymentIntent:   payload.PaymentIntent,
		ApplicationCode: payload.Metadata["application_code"],
	}, nil
}
