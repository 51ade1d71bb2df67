package search

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// snippetMaxChars bounds every adapter's output so no single source can
// dominate the composed prompt.
const snippetMaxChars = 200

// Searcher is one knowledge-search adapter. A failed or empty lookup is
// reported as an error; callers treat it as absence, never as request
// failure.
type Searcher interface {
	// Name is the source label attached to snippets ("Wikipedia", ...).
	Name() string
	// Search returns a short text snippet answering the query.
	Search(ctx context.Context, query string) (string, error)
}

// newHTTPClient is shared by the adapters in this package.
func newHTTPClient() *http.Client {
	return &http.Client{}
}

// clampSnippet whitespace-normalizes and truncates adapter output.
func clampSnippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > snippetMaxChars {
		s = s[:snippetMaxChars] + "..."
	}
	return s
}

// withTimeout derives the per-call context used by every adapter.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d)
}
