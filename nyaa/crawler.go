package nyaa

import (
	"context"
	"fmt"

	"github.com/felipemarinho97/nyaa-indexer/logging"
	"github.com/felipemarinho97/nyaa-indexer/monitoring"
	"github.com/felipemarinho97/nyaa-indexer/schema"
)

const (
	IndexerLabel = "nyaa"

	DefaultMaxPages uint = 50
)

// Fetcher returns the raw HTML of one search result page. Pages are 0-based.
type Fetcher interface {
	FetchPage(ctx context.Context, term string, page uint) ([]byte, error)
}

// Recorder keeps the HTML of pages the scraper could not make sense of.
type Recorder interface {
	RecordFailure(ctx context.Context, term string, page uint, body []byte) error
}

type Crawler struct {
	fetcher  Fetcher
	metrics  *monitoring.Metrics
	recorder Recorder
	maxPages uint
}

type Option func(*Crawler)

// WithMaxPages bounds the number of result pages a search may collect. A
// search whose page n+1 still has results fails with ErrPageLimit. Zero
// removes the bound.
func WithMaxPages(n uint) Option {
	return func(c *Crawler) {
		c.maxPages = n
	}
}

func WithMetrics(m *monitoring.Metrics) Option {
	return func(c *Crawler) {
		c.metrics = m
	}
}

func WithRecorder(r Recorder) Option {
	return func(c *Crawler) {
		c.recorder = r
	}
}

func NewCrawler(f Fetcher, opts ...Option) *Crawler {
	c := &Crawler{
		fetcher:  f,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		// not registered, only keeps the calls below nil-safe
		c.metrics = monitoring.NewMetrics()
	}
	return c
}

// Search fetches result pages for term starting at page 0 until a page yields
// no torrents, and returns the torrents of all pages in page and row order.
//
// Any failure discards the torrents gathered so far: a failed fetch returns
// an error wrapping ErrRequest, a page that could not be extracted an error
// wrapping ErrScraping, and a search with results past the page limit an
// error wrapping ErrPageLimit. Cancelling ctx stops the crawl with
// ctx's error.
func (c *Crawler) Search(ctx context.Context, term string) ([]schema.Torrent, error) {
	var torrents []schema.Torrent
	for page := uint(0); ; page++ {
		pageTorrents, _, err := c.SearchPage(ctx, term, page)
		if err != nil {
			return nil, err
		}
		if len(pageTorrents) == 0 {
			logging.Debug().Str("term", term).Uint("pages", page).Int("torrents", len(torrents)).Msg("Search finished")
			return torrents, nil
		}
		// page maxPages is only fetched to learn whether the results end there
		if c.maxPages > 0 && page >= c.maxPages {
			return nil, fmt.Errorf("%w: %q still had results after %d pages", ErrPageLimit, term, c.maxPages)
		}
		torrents = append(torrents, pageTorrents...)
	}
}

// SearchPage fetches and extracts a single result page.
func (c *Crawler) SearchPage(ctx context.Context, term string, page uint) ([]schema.Torrent, PageState, error) {
	if err := ctx.Err(); err != nil {
		return nil, NoResults, fmt.Errorf("search %q stopped before page %d: %w", term, page, err)
	}

	body, err := c.fetcher.FetchPage(ctx, term, page)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, NoResults, fmt.Errorf("search %q stopped on page %d: %w", term, page, ctxErr)
		}
		return nil, NoResults, fmt.Errorf("%w: page %d: %w", ErrRequest, page, err)
	}

	p, err := ParsePage(body)
	if err != nil {
		return nil, NoResults, fmt.Errorf("%w: page %d: %w", ErrRequest, page, err)
	}
	c.metrics.PagesFetched.WithLabelValues(IndexerLabel, p.State.String()).Inc()

	if !p.Recognized {
		logging.Warn().Str("term", term).Uint("page", page).Msg("Page has no results table and no no-results notice, the site markup may have changed")
		c.metrics.UnrecognizedPages.WithLabelValues(IndexerLabel).Inc()
		c.recordFailure(ctx, term, page, body)
	}

	torrents, err := p.Torrents()
	if err != nil {
		logging.Error().Err(err).Str("term", term).Uint("page", page).Msg("Failed to extract torrents from page")
		c.recordFailure(ctx, term, page, body)
		return nil, p.State, fmt.Errorf("%w: page %d: %w", ErrScraping, page, err)
	}

	c.metrics.TorrentsScraped.WithLabelValues(IndexerLabel).Add(float64(len(torrents)))
	logging.Debug().Str("term", term).Uint("page", page).Stringer("state", p.State).Int("torrents", len(torrents)).Msg("Page scraped")
	return torrents, p.State, nil
}

func (c *Crawler) recordFailure(ctx context.Context, term string, page uint, body []byte) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.RecordFailure(ctx, term, page, body); err != nil {
		logging.Error().Err(err).Str("term", term).Uint("page", page).Msg("Failed to save page snapshot")
		c.metrics.FailureSnapshots.WithLabelValues(IndexerLabel, "error").Inc()
		return
	}
	c.metrics.FailureSnapshots.WithLabelValues(IndexerLabel, "saved").Inc()
}
