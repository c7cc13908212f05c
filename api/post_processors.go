package handler

import (
	"cmp"
	"net/http"
	"slices"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/felipemarinho97/nyaa-indexer/schema"
	"github.com/felipemarinho97/nyaa-indexer/utils"
)

// FilterByCategory keeps the torrents matching the category query param.
func FilterByCategory(_ *Indexer, r *http.Request, torrents []schema.IndexedTorrent) []schema.IndexedTorrent {
	filter := r.URL.Query().Get("category")
	if filter == "" {
		return torrents
	}
	return utils.Filter(torrents, func(it schema.IndexedTorrent) bool {
		c, err := schema.GetCategoryFromLabel(it.Category)
		if err != nil {
			return false
		}
		return schema.MatchCategory(c, filter)
	})
}

func AddSimilarityCheck(_ *Indexer, r *http.Request, torrents []schema.IndexedTorrent) []schema.IndexedTorrent {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if q == "" {
		return torrents
	}

	for i, it := range torrents {
		jLower := strings.NewReplacer(".", " ", "_", " ").Replace(strings.ToLower(it.Title))
		splitLength := 2
		torrents[i].Similarity = edlib.JaccardSimilarity(jLower, q, splitLength)
	}

	return torrents
}

// SortBySimilarity orders by descending similarity when sort=similarity is
// requested. Torrents with the same similarity keep the site's order.
func SortBySimilarity(_ *Indexer, r *http.Request, torrents []schema.IndexedTorrent) []schema.IndexedTorrent {
	if r.URL.Query().Get("sort") != "similarity" {
		return torrents
	}
	slices.SortStableFunc(torrents, func(i, j schema.IndexedTorrent) int {
		return cmp.Compare(j.Similarity, i.Similarity)
	})
	return torrents
}
