package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/felipemarinho97/nyaa-indexer/logging"
	"github.com/felipemarinho97/nyaa-indexer/nyaa"
)

const reportHint = "the site markup may have changed, please report this issue with the search term"

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Hint  string `json:"hint,omitempty"`
}

// classifyError maps a search error to a response status and error kind.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, nyaa.ErrPageLimit):
		return http.StatusInternalServerError, "page_limit"
	case errors.Is(err, nyaa.ErrScraping):
		return http.StatusInternalServerError, "scraping"
	case errors.Is(err, nyaa.ErrRequest):
		return http.StatusBadGateway, "request"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "canceled"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (i *Indexer) writeSearchError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := classifyError(err)
	i.metrics.SearchErrors.WithLabelValues(nyaa.IndexerLabel, kind).Inc()

	resp := errorResponse{Error: err.Error(), Kind: kind}
	if kind == "scraping" {
		resp.Hint = reportHint
	}
	logging.ErrorWithRequest(r).Err(err).Str("kind", kind).Int("status", status).Msg("Search failed")
	writeJSON(w, r, status, resp)
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	logging.WarnWithRequest(r).Str("reason", msg).Msg("Rejected search request")
	writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: msg, Kind: "bad_request"})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.ErrorWithRequest(r).Err(err).Msg("Failed to encode response")
	}
}
