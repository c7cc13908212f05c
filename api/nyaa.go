package handler

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/felipemarinho97/nyaa-indexer/logging"
	"github.com/felipemarinho97/nyaa-indexer/magnet"
	"github.com/felipemarinho97/nyaa-indexer/nyaa"
	"github.com/felipemarinho97/nyaa-indexer/schema"
)

func (i *Indexer) HandlerSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		i.metrics.SearchDuration.WithLabelValues(nyaa.IndexerLabel).Observe(time.Since(start).Seconds())
		i.metrics.SearchRequests.WithLabelValues(nyaa.IndexerLabel).Inc()
	}()

	// supported query params: q, category, sort
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeBadRequest(w, r, "missing query parameter q")
		return
	}
	if !validCategoryFilter(r.URL.Query().Get("category")) {
		writeBadRequest(w, r, "unknown category")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), i.searchTimeout)
	defer cancel()

	torrents, err := i.searcher.Search(ctx, q)
	if err != nil {
		i.writeSearchError(w, r, err)
		return
	}

	indexedTorrents := i.postProcess(r, i.indexTorrents(torrents))
	logging.InfoWithRequest(r).Str("q", q).Int("results", len(indexedTorrents)).Dur("duration", time.Since(start)).Msg("Search completed")

	writeJSON(w, r, http.StatusOK, Response{
		Results: indexedTorrents,
		Count:   len(indexedTorrents),
	})
}

func (i *Indexer) HandlerSearchPage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		i.metrics.SearchDuration.WithLabelValues(nyaa.IndexerLabel).Observe(time.Since(start).Seconds())
		i.metrics.SearchRequests.WithLabelValues(nyaa.IndexerLabel).Inc()
	}()

	// supported query params: q, page, category, sort
	q := r.URL.Query().Get("q")
	var page uint
	if p := r.URL.Query().Get("page"); p != "" {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			writeBadRequest(w, r, "page must be a non-negative integer")
			return
		}
		page = uint(n)
	}
	if !validCategoryFilter(r.URL.Query().Get("category")) {
		writeBadRequest(w, r, "unknown category")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), i.searchTimeout)
	defer cancel()

	torrents, state, err := i.searcher.SearchPage(ctx, q, page)
	if err != nil {
		i.writeSearchError(w, r, err)
		return
	}

	indexedTorrents := i.postProcess(r, i.indexTorrents(torrents))
	writeJSON(w, r, http.StatusOK, PageResponse{
		Results: indexedTorrents,
		Count:   len(indexedTorrents),
		Page:    page,
		State:   state.String(),
	})
}

func (i *Indexer) postProcess(r *http.Request, torrents []schema.IndexedTorrent) []schema.IndexedTorrent {
	for _, processor := range i.postProcessors {
		torrents = processor(i, r, torrents)
	}
	return torrents
}

func (i *Indexer) indexTorrents(torrents []schema.Torrent) []schema.IndexedTorrent {
	indexed := make([]schema.IndexedTorrent, 0, len(torrents))
	for _, t := range torrents {
		indexed = append(indexed, ToIndexedTorrent(i.baseURL, t))
	}
	return indexed
}

// ToIndexedTorrent converts a scraped record to its API form. Relative
// .torrent links are resolved against baseURL.
func ToIndexedTorrent(baseURL string, t schema.Torrent) schema.IndexedTorrent {
	it := schema.IndexedTorrent{
		Title:              t.Name,
		Category:           t.Category.Label(),
		CategoryID:         t.Category.ID(),
		Size:               humanize.IBytes(t.Size),
		SizeBytes:          t.Size,
		Date:               t.PublishedAt(),
		SeedCount:          t.Seeders,
		LeechCount:         t.Leechers,
		CompletedDownloads: t.CompletedDownloads,
	}

	if link, ok := t.Magnet(); ok {
		it.MagnetLink = link
		m, err := magnet.ParseMagnetUri(link)
		if err != nil {
			logging.Debug().Err(err).Str("title", t.Name).Msg("Could not parse magnet link")
		} else {
			it.InfoHash = m.InfoHash
			it.Trackers = m.Trackers
		}
	}
	if file, ok := t.TorrentFile(); ok {
		it.TorrentFile = strings.TrimRight(baseURL, "/") + file
	}

	return it
}

func validCategoryFilter(filter string) bool {
	if filter == "" {
		return true
	}
	return slices.ContainsFunc(schema.CategoryList, func(c schema.Category) bool {
		return schema.MatchCategory(c, filter)
	})
}
