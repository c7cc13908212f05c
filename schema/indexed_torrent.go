package schema

import "time"

// IndexedTorrent is the API representation of a Torrent, enriched with values
// derived from the scraped record.
type IndexedTorrent struct {
	Title              string    `json:"title"`
	Category           string    `json:"category"`
	CategoryID         string    `json:"category_id"`
	MagnetLink         string    `json:"magnet_link,omitempty"`
	TorrentFile        string    `json:"torrent_file,omitempty"`
	InfoHash           string    `json:"info_hash,omitempty"`
	Trackers           []string  `json:"trackers,omitempty"`
	Size               string    `json:"size"`
	SizeBytes          uint64    `json:"size_bytes"`
	Date               time.Time `json:"date"`
	SeedCount          uint32    `json:"seed_count"`
	LeechCount         uint32    `json:"leech_count"`
	CompletedDownloads uint32    `json:"completed_downloads"`
	Similarity         float32   `json:"similarity"`
}
