package nyaa

import "errors"

var (
	// ErrRequest is returned when a result page could not be fetched.
	ErrRequest = errors.New("request failed")

	// ErrScraping is returned when a page that holds results does not have the
	// structure the extractor expects. It usually means the site markup
	// changed and the scraper needs an update.
	ErrScraping = errors.New("scraping failed")

	// ErrPageLimit is returned when the site kept returning results past the
	// configured maximum number of pages.
	ErrPageLimit = errors.New("page limit reached")
)

var (
	errNodeNotFound = errors.New("node not found")
	errNotText      = errors.New("node is not text")
)
