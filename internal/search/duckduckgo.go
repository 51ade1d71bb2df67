package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DuckDuckGoSearcher fetches the instant-answer abstract for the query.
type DuckDuckGoSearcher struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewDuckDuckGoSearcher creates a DuckDuckGo adapter with the given timeout.
func NewDuckDuckGoSearcher(timeout time.Duration) *DuckDuckGoSearcher {
	return &DuckDuckGoSearcher{
		baseURL:    "https://api.duckduckgo.com/",
		httpClient: newHTTPClient(),
		timeout:    timeout,
	}
}

func (d *DuckDuckGoSearcher) Name() string { return "Web search" }

func (d *DuckDuckGoSearcher) Search(ctx context.Context, query string) (string, error) {
	ctx, cancel := withTimeout(ctx, d.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("no_redirect", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("duckduckgo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("duckduckgo returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading duckduckgo response: %w", err)
	}

	var raw struct {
		AbstractText  string `json:"AbstractText"`
		Answer        string `json:"Answer"`
		RelatedTopics []struct {
			Text string `json:"Text"`
		} `json:"RelatedTopics"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("unmarshalling duckduckgo response: %w", err)
	}

	switch {
	case raw.Answer != "":
		return clampSnippet(raw.Answer), nil
	case raw.AbstractText != "":
		return clampSnippet(raw.AbstractText), nil
	case len(raw.RelatedTopics) > 0 && raw.RelatedTopics[0].Text != "":
		return clampSnippet(raw.RelatedTopics[0].Text), nil
	}

	return "", fmt.Errorf("no duckduckgo result for %q", query)
}
