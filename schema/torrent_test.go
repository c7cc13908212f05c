package schema

import (
	"testing"
	"time"
)

func TestTorrent_Links(t *testing.T) {
	const (
		magnet = "magnet:?xt=urn:btih:e9a96e84e4d763a8fa70bf156f5bd30b61f2fc5c"
		file   = "/download/123.torrent"
	)
	tests := []struct {
		name         string
		links        Links
		wantFile     string
		wantFileOK   bool
		wantMagnet   string
		wantMagnetOK bool
	}{
		{
			name:         "file then magnet",
			links:        Links{file, magnet},
			wantFile:     file,
			wantFileOK:   true,
			wantMagnet:   magnet,
			wantMagnetOK: true,
		},
		{
			name:         "swapped slots",
			links:        Links{magnet, file},
			wantFile:     file,
			wantFileOK:   true,
			wantMagnet:   magnet,
			wantMagnetOK: true,
		},
		{
			name:       "two files, no magnet",
			links:      Links{file, "/download/456.torrent"},
			wantFile:   file,
			wantFileOK: true,
		},
		{
			name:         "magnet only in second slot",
			links:        Links{"", magnet},
			wantMagnet:   magnet,
			wantMagnetOK: true,
		},
		{
			name:  "no links",
			links: Links{},
		},
		{
			name:  "unrelated links",
			links: Links{"/view/123", "https://example.com/download/1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			torrent := Torrent{Links: tt.links}

			gotFile, ok := torrent.TorrentFile()
			if gotFile != tt.wantFile || ok != tt.wantFileOK {
				t.Errorf("TorrentFile() = (%q, %v), want (%q, %v)", gotFile, ok, tt.wantFile, tt.wantFileOK)
			}

			gotMagnet, ok := torrent.Magnet()
			if gotMagnet != tt.wantMagnet || ok != tt.wantMagnetOK {
				t.Errorf("Magnet() = (%q, %v), want (%q, %v)", gotMagnet, ok, tt.wantMagnet, tt.wantMagnetOK)
			}
		})
	}
}

func TestTorrent_PublishedAt(t *testing.T) {
	torrent := Torrent{Date: 1700000000}
	want := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	if got := torrent.PublishedAt(); !got.Equal(want) {
		t.Errorf("PublishedAt() = %v, want %v", got, want)
	}
}
