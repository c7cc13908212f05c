package schema

import (
	"strings"
	"time"
)

const (
	TorrentFilePrefix = "/download/"
	MagnetPrefix      = "magnet:"
)

// Links holds the two href slots of a result row's link cell, in page order.
// An empty string means the slot was absent.
type Links [2]string

// Torrent is one row of a search result page. Values are built once by the
// scraper and never modified afterwards.
type Torrent struct {
	Category           Category `json:"category"`
	Name               string   `json:"name"`
	Links              Links    `json:"links"`
	Size               uint64   `json:"size"`
	Date               uint64   `json:"date"`
	Seeders            uint32   `json:"seeders"`
	Leechers           uint32   `json:"leechers"`
	CompletedDownloads uint32   `json:"completed_downloads"`
}

// TorrentFile returns the first link pointing to a .torrent download.
func (t Torrent) TorrentFile() (string, bool) {
	return t.Links.first(TorrentFilePrefix)
}

// Magnet returns the first magnet link.
func (t Torrent) Magnet() (string, bool) {
	return t.Links.first(MagnetPrefix)
}

// PublishedAt returns Date as a UTC time.
func (t Torrent) PublishedAt() time.Time {
	return time.Unix(int64(t.Date), 0).UTC()
}

func (l Links) first(prefix string) (string, bool) {
	for _, link := range l {
		if strings.HasPrefix(link, prefix) {
			return link, true
		}
	}
	return "", false
}
