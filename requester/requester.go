package requester

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/felipemarinho97/nyaa-indexer/logging"
	"github.com/felipemarinho97/nyaa-indexer/utils"
)

const (
	DefaultBaseURL = "https://nyaa.si"

	// maxBodySize bounds how much of a response is read.
	maxBodySize = 10 << 20
)

type Requester struct {
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxBodySize int64
}

// NewRequester creates a requester for the site at baseURL. At most
// requestsPerSecond requests are issued; zero or less disables the limit.
func NewRequester(baseURL string, timeout time.Duration, requestsPerSecond float64) *Requester {
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
			DisableCompression:  true,
		},
	}

	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	return &Requester{
		baseURL:     baseURL,
		httpClient:  httpClient,
		limiter:     rate.NewLimiter(limit, 1),
		maxBodySize: maxBodySize,
	}
}

// SearchURL returns the URL of the page-th result page for term, over all
// categories and without filters.
func (i *Requester) SearchURL(term string, page uint) string {
	params := url.Values{}
	params.Set("f", "0")
	params.Set("c", "0_0")
	params.Set("q", term)
	params.Set("p", strconv.FormatUint(uint64(page), 10))
	return fmt.Sprintf("%s/?%s", i.baseURL, params.Encode())
}

// FetchPage downloads one result page. Any failure to obtain an HTML
// document, including non-2xx responses, is returned as an error.
func (i *Requester) FetchPage(ctx context.Context, term string, page uint) ([]byte, error) {
	target := i.SearchURL(term, page)

	if err := i.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter for url %s: %w", target, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for url %s: %w", target, err)
	}
	spoofBrowserHeaders(req, i.baseURL+"/")

	start := time.Now()
	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to do request for url %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code %d for url %s", resp.StatusCode, target)
	}

	reader, err := decodeBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress response for url %s: %w", target, err)
	}
	defer reader.Close()

	if encoding := resp.Header.Get("Content-Encoding"); encoding != "" {
		logging.Debug().Str("encoding", encoding).Msg("Decompressing response")
	}

	var buf bytes.Buffer
	if resp.ContentLength > 0 && resp.ContentLength <= i.maxBodySize {
		buf.Grow(int(resp.ContentLength))
	} else {
		buf.Grow(64 * 1024)
	}
	if _, err := io.Copy(&buf, io.LimitReader(reader, i.maxBodySize+1)); err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(buf.Len()) > i.maxBodySize {
		return nil, fmt.Errorf("response for url %s exceeds %d bytes", target, i.maxBodySize)
	}

	body := buf.Bytes()
	if !utils.IsValidHTML(string(body)) {
		return nil, fmt.Errorf("response for url %s is not an html document", target)
	}

	logging.Debug().
		Str("url", target).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("Fetched result page")

	return body, nil
}
