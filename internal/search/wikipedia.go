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

// WikipediaSearcher fetches the intro extract of the top article matching
// the query.
type WikipediaSearcher struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewWikipediaSearcher creates a Wikipedia adapter with the given timeout.
func NewWikipediaSearcher(timeout time.Duration) *WikipediaSearcher {
	return &WikipediaSearcher{
		baseURL:    "https://en.wikipedia.org/w/api.php",
		httpClient: newHTTPClient(),
		timeout:    timeout,
	}
}

func (w *WikipediaSearcher) Name() string { return "Wikipedia" }

func (w *WikipediaSearcher) Search(ctx context.Context, query string) (string, error) {
	ctx, cancel := withTimeout(ctx, w.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("action", "query")
	params.Set("generator", "search")
	params.Set("gsrsearch", query)
	params.Set("gsrlimit", "1")
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("wikipedia request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wikipedia returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading wikipedia response: %w", err)
	}

	var raw struct {
		Query struct {
			Pages map[string]struct {
				Title   string `json:"title"`
				Extract string `json:"extract"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("unmarshalling wikipedia response: %w", err)
	}

	for _, page := range raw.Query.Pages {
		if page.Extract != "" {
			return clampSnippet(page.Title + ": " + page.Extract), nil
		}
	}

	return "", fmt.Errorf("no wikipedia article matched %q", query)
}
