// Package newsclient fetches articles from the external news source API.
package newsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// SourceArticle is one raw article as returned by the news source.
type SourceArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"image_url"`
	SourceName  string    `json:"source_name"`
	PublishedAt time.Time `json:"published_at"`
}

// response is the wire shape of the news source's search endpoint.
type response struct {
	Status  string          `json:"status"`
	Results []SourceArticle `json:"results"`
}

// Client queries the news source with a bounded timeout and exactly one
// attempt per request. Retry policy deliberately lives outside this engine.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a news source client.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch returns articles for a city/country query. Any non-2xx status is an
// error; the caller decides how to surface it.
func (c *Client) Fetch(ctx context.Context, city, country string) ([]SourceArticle, error) {
	endpoint, err := url.Parse(c.baseURL + "/news")
	if err != nil {
		return nil, fmt.Errorf("parse news endpoint: %w", err)
	}

	q := endpoint.Query()
	q.Set("q", city+" "+country)
	q.Set("apikey", c.apiKey)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build news request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("news source returned status %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}

	return body.Results, nil
}
