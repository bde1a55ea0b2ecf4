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

func TestDetectTextExtractsAnnotation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Requests []struct {
				Image struct {
					Content string `json:"content"`
				} `json:"image"`
			} `json:"requests"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Requests, 1)
		assert.Equal(t, "aGVsbG8=", body.Requests[0].Image.Content)

		json.NewEncoder(w).Encode(map[string]any{
			"responses": []map[string]any{
				{"fullTextAnnotation": map[string]string{"text": "BACHELOR OF SCIENCE"}},
			},
		})
	}))
	defer srv.Close()

	client := NewOCRClient(srv.URL, "key", 3*time.Second)
	text, err := client.DetectText(context.Background(), "aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "BACHELOR OF SCIENCE", text)
}

func TestDetectTextWithoutKeyIsConfigError(t *testing.T) {
	client := NewOCRClient("http://localhost:0", "", time.Second)
	_, err := client.DetectText(context.Background(), "aGVsbG8=")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestDetectTextSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"responses": []map[string]any{
				{"error": map[string]string{"message": "image too large"}},
			},
		})
	}))
	defer srv.Close()

	client := NewOCRClient(srv.URL, "key", time.Second)
	_, err := client.DetectText(context.Background(), "aGVsbG8=")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image too large")
}
