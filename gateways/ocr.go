package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// OCRClient wraps a Vision-style annotate endpoint. Stateless: base64
// image in, extracted text out.
type OCRClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewOCRClient(baseURL, apiKey string, timeout time.Duration) *OCRClient {
	if baseURL == "" {
		baseURL = "https://vision.googleapis.com/v1/images:annotate"
	}
	return &OCRClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (o *OCRClient) DetectText(ctx context.Context, base64Image string) (string, error) {
	if o.apiKey == "" {
		return "", ErrNotConfigured
	}

	body := map[string]any{
		"requests": []map[string]any{{
			"image":    map[string]string{"content": base64Image},
			"features": []map[string]string{{"type": "TEXT_DETECTION"}},
		}},
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		o.baseURL+"?key="+o.apiKey, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OCR API returned %d", resp.StatusCode)
	}

	var payload struct {
		Responses []struct {
			FullTextAnnotation struct {
				Text string `json:"text"`
			} `json:"fullTextAnnotation"`
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		} `json:"responses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if len(payload.Responses) == 0 {
		return "", nil
	}
	if msg := payload.Responses[0].Error.Message; msg != "" {
		return "", fmt.Errorf("OCR API error: %s", msg)
	}
	return payload.Responses[0].FullTextAnnotation.Text, nil
}
