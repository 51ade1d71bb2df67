package research

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/rootsource-ai/rootsource/internal/geo"
	"github.com/rootsource-ai/rootsource/internal/nasa"
	"github.com/rootsource-ai/rootsource/internal/search"
)

// Snippet is one source-tagged research fragment.
type Snippet struct {
	Source string
	Text   string
}

// Bundle is the merged research context for a single request. DatasetsUsed
// lists only datasets whose fetch returned data, in the order the router
// proposed them; an empty slice means no satellite data was used.
type Bundle struct {
	Snippets     []Snippet
	DatasetsUsed []string
	Location     *geo.Location
}

// Aggregator fans a request out to the knowledge-search adapters and the
// routed satellite datasets, collecting whatever returns within the overall
// deadline. Individual failures and timeouts become absences.
type Aggregator struct {
	searchers []search.Searcher
	nasa      *nasa.Client
	detector  geo.Detector
	deadline  time.Duration
}

// NewAggregator creates an aggregator over the given adapters. deadline
// bounds the entire fan-out for one request.
func NewAggregator(searchers []search.Searcher, nasaClient *nasa.Client, detector geo.Detector, deadline time.Duration) *Aggregator {
	return &Aggregator{
		searchers: searchers,
		nasa:      nasaClient,
		detector:  detector,
		deadline:  deadline,
	}
}

// result is one fan-out outcome, slotted by launch index so that collection
// order never depends on goroutine scheduling.
type result struct {
	source  string
	text    string
	dataset bool
	err     error
}

// Gather runs the research fan-out for a query. datasets is the router's
// selection; when it is empty no geolocation or satellite calls happen.
func (a *Aggregator) Gather(ctx context.Context, query string, datasets []nasa.Dataset) *Bundle {
	ctx, cancel := context.WithTimeout(ctx, a.deadline)
	defer cancel()

	bundle := &Bundle{DatasetsUsed: []string{}}

	// Geolocation is resolved once and shared by every satellite call.
	var loc geo.Location
	if len(datasets) > 0 {
		loc = a.resolveLocation(ctx)
		bundle.Location = &loc
	}

	slots := make([]result, len(a.searchers)+len(datasets))
	var wg sync.WaitGroup

	for i, s := range a.searchers {
		wg.Add(1)
		go func(slot int, s search.Searcher) {
			defer wg.Done()
			text, err := s.Search(ctx, query)
			slots[slot] = result{source: s.Name(), text: text, err: err}
		}(i, s)
	}

	for i, ds := range datasets {
		wg.Add(1)
		go func(slot int, ds nasa.Dataset) {
			defer wg.Done()
			text, err := ds.Fetch(ctx, a.nasa, loc.Latitude, loc.Longitude)
			slots[slot] = result{source: ds.Name, text: text, dataset: true, err: err}
		}(len(a.searchers)+i, ds)
	}

	wg.Wait()

	seen := make(map[string]bool)
	for _, r := range slots {
		if r.err != nil {
			log.Printf("research: %s omitted: %v", r.source, r.err)
			continue
		}
		if r.text == "" || seen[r.text] {
			continue
		}
		seen[r.text] = true
		bundle.Snippets = append(bundle.Snippets, Snippet{Source: r.source, Text: r.text})
		if r.dataset {
			bundle.DatasetsUsed = append(bundle.DatasetsUsed, r.source)
		}
	}

	return bundle
}

// resolveLocation detects the caller's position, degrading to the regional
// fallback so satellite calls always have coordinates.
func (a *Aggregator) resolveLocation(ctx context.Context) geo.Location {
	if a.detector != nil {
		if loc, err := a.detector.Detect(ctx); err == nil {
			return *loc
		} else {
			log.Printf("research: geolocation failed, using regional fallback: %v", err)
		}
	}
	return geo.FallbackLocation("BD")
}
