package gateways

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNotConfigured marks a gateway whose key was never set. Callers map it
// to a configuration-error response, not a validation error.
var ErrNotConfigured = errors.New("gateway is not configured")

type SearchResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// SearchClient wraps a Custom-Search-style web API: key + engine id as
// query params, ranked items back.
type SearchClient struct {
	baseURL  string
	apiKey   string
	engineID string
	client   *http.Client
}

func NewSearchClient(baseURL, apiKey, engineID string, timeout time.Duration) *SearchClient {
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/customsearch/v1"
	}
	return &SearchClient{
		baseURL:  baseURL,
		apiKey:   apiKey,
		engineID: engineID,
		client:   &http.Client{Timeout: timeout},
	}
}

// Search returns at most num ordered results.
func (s *SearchClient) Search(ctx context.Context, query string, num int) ([]SearchResult, error) {
	if s.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if num <= 0 {
		num = 5
	}

	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("cx", s.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(num))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned %d", resp.StatusCode)
	}

	var payload struct {
		Items []struct {
			Title string `json:"title"`
			Link  string `json:"link"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, num)
	for _, item := range payload.Items {
		results = append(results, SearchResult{Title: item.Title, URL: item.Link})
		if len(results) == num {
			break
		}
	}
	return results, nil
}
