package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ArxivSearcher fetches the abstract of the top paper matching the query
// from the arXiv Atom API.
type ArxivSearcher struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewArxivSearcher creates an arXiv adapter with the given timeout.
func NewArxivSearcher(timeout time.Duration) *ArxivSearcher {
	return &ArxivSearcher{
		baseURL:    "https://export.arxiv.org/api/query",
		httpClient: newHTTPClient(),
		timeout:    timeout,
	}
}

func (a *ArxivSearcher) Name() string { return "arXiv" }

type arxivFeed struct {
	Entries []struct {
		Title   string `xml:"title"`
		Summary string `xml:"summary"`
	} `xml:"entry"`
}

func (a *ArxivSearcher) Search(ctx context.Context, query string) (string, error) {
	ctx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("start", "0")
	params.Set("max_results", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("arxiv request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("arxiv returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading arxiv response: %w", err)
	}

	var feed arxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return "", fmt.Errorf("unmarshalling arxiv feed: %w", err)
	}

	if len(feed.Entries) == 0 || feed.Entries[0].Summary == "" {
		return "", fmt.Errorf("no arxiv paper matched %q", query)
	}

	entry := feed.Entries[0]
	return clampSnippet(entry.Title + ": " + entry.Summary), nil
}
