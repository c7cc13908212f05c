package magnet

import (
	"fmt"
	"strings"

	"github.com/anacrolix/torrent/metainfo"
)

type Magnet struct {
	InfoHash    string
	DisplayName string
	Trackers    []string
}

// ParseMagnetUri extracts the info hash, display name and trackers of a
// BitTorrent v1 magnet link. The info hash is lower-case hex.
func ParseMagnetUri(uri string) (*Magnet, error) {
	m, err := metainfo.ParseMagnetUri(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to parse magnet link: %w", err)
	}
	return &Magnet{
		InfoHash:    strings.ToLower(m.InfoHash.HexString()),
		DisplayName: m.DisplayName,
		Trackers:    m.Trackers,
	}, nil
}
