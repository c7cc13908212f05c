package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/felipemarinho97/nyaa-indexer/consts"
	"github.com/felipemarinho97/nyaa-indexer/logging"
	"github.com/felipemarinho97/nyaa-indexer/monitoring"
	"github.com/felipemarinho97/nyaa-indexer/nyaa"
	"github.com/felipemarinho97/nyaa-indexer/schema"
)

// Searcher runs searches against the site. *nyaa.Crawler satisfies it.
type Searcher interface {
	Search(ctx context.Context, term string) ([]schema.Torrent, error)
	SearchPage(ctx context.Context, term string, page uint) ([]schema.Torrent, nyaa.PageState, error)
}

type PostProcessorFunc func(*Indexer, *http.Request, []schema.IndexedTorrent) []schema.IndexedTorrent

type Indexer struct {
	searcher       Searcher
	metrics        *monitoring.Metrics
	baseURL        string
	searchTimeout  time.Duration
	postProcessors []PostProcessorFunc
}

type Response struct {
	Results []schema.IndexedTorrent `json:"results"`
	Count   int                     `json:"count"`
}

type PageResponse struct {
	Results []schema.IndexedTorrent `json:"results"`
	Count   int                     `json:"count"`
	Page    uint                    `json:"page"`
	State   string                  `json:"state"`
}

func NewIndexers(searcher Searcher, metrics *monitoring.Metrics, baseURL string, searchTimeout time.Duration) *Indexer {
	return &Indexer{
		searcher:      searcher,
		metrics:       metrics,
		baseURL:       baseURL,
		searchTimeout: searchTimeout,
		postProcessors: []PostProcessorFunc{
			FilterByCategory,
			AddSimilarityCheck,
			SortBySimilarity,
		},
	}
}

func HandlerIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]interface{}{
		"time":       time.Now().UTC().Format(time.RFC3339),
		"build":      consts.GetBuildInfo(),
		"categories": categoryLabels(),
		"endpoints": map[string]interface{}{
			"/search": map[string]interface{}{
				"method":      "GET",
				"description": "Search every result page for a term",
				"query_params": map[string]string{
					"q":        "search term",
					"category": "optional category filter, label, kind or site id (e.g. 1_2)",
					"sort":     "optional, 'similarity' sorts by similarity to q",
				},
			},
			"/search/page": map[string]interface{}{
				"method":      "GET",
				"description": "Fetch a single result page",
				"query_params": map[string]string{
					"q":    "search term, empty lists the latest uploads",
					"page": "0-based page number",
				},
			},
		},
	})
	if err != nil {
		logging.ErrorWithRequest(r).Err(err).Msg("Failed to encode index response")
	}
}

func categoryLabels() []string {
	labels := make([]string, 0, len(schema.CategoryList))
	for _, c := range schema.CategoryList {
		labels = append(labels, c.Label())
	}
	return labels
}
