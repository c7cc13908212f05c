package nyaa

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/felipemarinho97/nyaa-indexer/dom"
	"github.com/felipemarinho97/nyaa-indexer/schema"
)

// parseRow parses a single <tr> and returns the tree and the row id.
func parseRow(t *testing.T, tr string) (*dom.Tree, dom.NodeID) {
	t.Helper()
	tree, err := dom.Parse(strings.NewReader("<html><body><table><tbody>" + tr + "</tbody></table></body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	id, ok := tree.FindDescendant(dom.Root, func(id dom.NodeID) bool { return tree.Tag(id) == "tr" })
	if !ok {
		t.Fatal("no row in markup")
	}
	return tree, id
}

func TestExtractRow(t *testing.T) {
	tree, id := parseRow(t, row(7, "Software - Games", "Some Game v1.0", "2.5 TiB", 1234567890, 10, 20, 30))

	got, err := ExtractRow(tree, id)
	if err != nil {
		t.Fatalf("ExtractRow() error = %v", err)
	}
	want := schema.Torrent{
		Category:           schema.SoftwareGames,
		Name:               "Some Game v1.0",
		Links:              schema.Links{"/download/7.torrent", "magnet:?xt=urn:btih:0000000000000000000000000000000000000007"},
		Size:               2748779069440,
		Date:               1234567890,
		Seeders:            10,
		Leechers:           20,
		CompletedDownloads: 30,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractRow() = %+v, want %+v", got, want)
	}
}

func TestExtractRow_Idempotent(t *testing.T) {
	tree, id := parseRow(t, row(1, "Anime - Raw", "name", "1 MiB", 1, 2, 3, 4))

	first, err := ExtractRow(tree, id)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ExtractRow(tree, id)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("extracting twice gave %+v and %+v", first, second)
	}
}

func TestExtractRow_Links(t *testing.T) {
	const cells = `<td><a title="Anime - Raw"></a></td><td><a>n</a></td>%s<td>1 Bytes</td><td data-timestamp="1"></td><td>1</td><td>1</td><td>1</td>`
	tests := []struct {
		name string
		cell string
		want schema.Links
	}{
		{
			name: "both links",
			cell: `<td><a href="/download/1.torrent"></a><a href="magnet:?xt=1"></a></td>`,
			want: schema.Links{"/download/1.torrent", "magnet:?xt=1"},
		},
		{
			name: "swapped links",
			cell: `<td><a href="magnet:?xt=1"></a> <a href="/download/1.torrent"></a></td>`,
			want: schema.Links{"magnet:?xt=1", "/download/1.torrent"},
		},
		{
			name: "single link",
			cell: `<td><a href="magnet:?xt=1"></a></td>`,
			want: schema.Links{"magnet:?xt=1", ""},
		},
		{
			name: "no links",
			cell: `<td></td>`,
			want: schema.Links{},
		},
		{
			name: "link without href",
			cell: `<td><a></a><a href="magnet:?xt=1"></a></td>`,
			want: schema.Links{"", "magnet:?xt=1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, id := parseRow(t, "<tr>"+strings.Replace(cells, "%s", tt.cell, 1)+"</tr>")
			got, err := ExtractRow(tree, id)
			if err != nil {
				t.Fatalf("ExtractRow() error = %v", err)
			}
			if got.Links != tt.want {
				t.Errorf("Links = %q, want %q", got.Links, tt.want)
			}
		})
	}
}

func TestExtractRow_Name(t *testing.T) {
	tests := []struct {
		name    string
		cell    string
		want    string
		wantErr bool
	}{
		{
			name: "skips comment link",
			cell: `<td><a class="comments"><i></i>2</a><a href="/view/1">Title</a></td>`,
			want: "Title",
		},
		{
			name: "keeps text verbatim",
			cell: `<td><a>  spaced  &amp; escaped </a></td>`,
			want: "  spaced  & escaped ",
		},
		{
			name:    "only styled links",
			cell:    `<td><a class="comments">2</a></td>`,
			wantErr: true,
		},
		{
			name:    "title link starts with an element",
			cell:    `<td><a><b>bold</b></a></td>`,
			wantErr: true,
		},
		{
			name:    "empty title link",
			cell:    `<td><a></a></td>`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, id := parseRow(t, `<tr><td><a title="Anime - Raw"></a></td>`+tt.cell+`<td></td><td>1 Bytes</td><td data-timestamp="1"></td><td>1</td><td>1</td><td>1</td></tr>`)
			got, err := ExtractRow(tree, id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractRow() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got.Name != tt.want {
				t.Errorf("Name = %q, want %q", got.Name, tt.want)
			}
		})
	}
}

func TestExtractRow_Failures(t *testing.T) {
	valid := row(1, "Anime - Raw", "name", "1 KiB", 1700000000, 1, 2, 3)
	tests := []struct {
		name      string
		tr        string
		wantField string
	}{
		{
			name:      "unknown category",
			tr:        strings.Replace(valid, "Anime - Raw", "Anime - Subbed", 1),
			wantField: "category",
		},
		{
			name:      "missing category title",
			tr:        strings.Replace(valid, `title="Anime - Raw"`, "", 1),
			wantField: "category",
		},
		{
			name:      "unknown size unit",
			tr:        strings.Replace(valid, "1 KiB", "1 KB", 1),
			wantField: "size",
		},
		{
			name:      "size without unit",
			tr:        strings.Replace(valid, "1 KiB", "1024", 1),
			wantField: "size",
		},
		{
			name:      "missing timestamp",
			tr:        strings.Replace(valid, `data-timestamp="1700000000"`, "", 1),
			wantField: "date",
		},
		{
			name:      "non numeric timestamp",
			tr:        strings.Replace(valid, `data-timestamp="1700000000"`, `data-timestamp="yesterday"`, 1),
			wantField: "date",
		},
		{
			name:      "negative seeders",
			tr:        strings.Replace(valid, `<td class="text-center">1</td>`, `<td class="text-center">-1</td>`, 1),
			wantField: "seeders",
		},
		{
			name:      "non numeric leechers",
			tr:        strings.Replace(valid, `<td class="text-center">2</td>`, `<td class="text-center">many</td>`, 1),
			wantField: "leechers",
		},
		{
			name:      "empty completed cell",
			tr:        strings.Replace(valid, `<td class="text-center">3</td>`, `<td class="text-center"></td>`, 1),
			wantField: "completed downloads",
		},
		{
			name:      "truncated row",
			tr:        `<tr><td><a title="Anime - Raw"></a></td><td><a>n</a></td><td></td><td>1 KiB</td></tr>`,
			wantField: "date",
		},
		{
			name:      "empty row",
			tr:        `<tr></tr>`,
			wantField: "category",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, id := parseRow(t, tt.tr)
			got, err := ExtractRow(tree, id)
			if err == nil {
				t.Fatalf("ExtractRow() = %+v, want error", got)
			}
			if !strings.HasPrefix(err.Error(), tt.wantField+":") {
				t.Errorf("error %q does not start with field %q", err, tt.wantField)
			}
			if !reflect.DeepEqual(got, schema.Torrent{}) {
				t.Errorf("partial torrent returned: %+v", got)
			}
		})
	}
}

func TestExtractRow_MissingNodeErrors(t *testing.T) {
	tree, id := parseRow(t, `<tr></tr>`)
	_, err := ExtractRow(tree, id)
	if !errors.Is(err, errNodeNotFound) {
		t.Errorf("expected errNodeNotFound, got %v", err)
	}
}
