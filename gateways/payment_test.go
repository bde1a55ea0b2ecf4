package gateways

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSessionSendsFormAndMetadata(t *testing.T) {
	var gotPath, gotAuth string
	var gotForm map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		json.NewEncoder(w).Encode(map[string]any{
			"id":            "cs_123",
			"url":           "https://pay.example.com/cs_123",
			"client_secret": "secret_123",
			"status":        "open",
			"metadata":      map[string]string{"application_code": "app-1"},
		})
	}))
	defer srv.Close()

	client, err := NewStripeClient(srv.URL, "sk_test", 3*time.Second)
	require.NoError(t, err)

	sess, err := client.CreateSession(context.Background(), CreateSessionParams{
		AmountCents:     16700,
		Currency:        "usd",
		Description:     "AET credential evaluation",
		ApplicationCode: "app-1",
		SuccessURL:      "https://app.example.com/success",
		CancelURL:       "https://app.example.com/checkout",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/checkout/sessions", gotPath)
	assert.Equal(t, "Bearer sk_test", gotAuth)
	assert.Equal(t, "app-1", gotForm["metadata[application_code]"][0])
	assert.Equal(t, "16700", gotForm["line_items[0][price_data][unit_amount]"][0])
	assert.Equal(t, "payment", gotForm["mode"][0])

	assert.Equal(t, "cs_123", sess.ID)
	assert.Equal(t, SessionOpen, sess.Status)
	assert.Equal(t, "app-1", sess.ApplicationCode)
}

func TestRetrieveSessionParsesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions/cs_123", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"id":             "cs_123",
			"status":         "complete",
			"payment_intent": "pi_9",
			"metadata":       map[string]string{"application_code": "app-1"},
		})
	}))
	defer srv.Close()

	client, err := NewStripeClient(srv.URL, "sk_test", 3*time.Second)
	require.NoError(t, err)

	sess, err := client.RetrieveSession(context.Background(), "cs_123")
	require.NoError(t, err)
	assert.Equal(t, SessionComplete, sess.Status)
	assert.Equal(t, "pi_9", sess.PaymentIntent)
	assert.Equal(t, "app-1", sess.ApplicationCode)
}

func TestRetrieveSessionNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewStripeClient(srv.URL, "sk_test", time.Second)
	require.NoError(t, err)

	_, err = client.RetrieveSession(context.Background(), "cs_gone")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestNewStripeClientRequiresKey(t *testing.T) {
	_, err := NewStripeClient("", "", time.Second)
	assert.Error(t, err)
}
