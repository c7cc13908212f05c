package nyaa

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/felipemarinho97/nyaa-indexer/dom"
	"github.com/felipemarinho97/nyaa-indexer/schema"
)

const (
	// tableMarker is the class of the element wrapping the results table.
	tableMarker = "table-responsive"

	noResultsNotice = "No results found"
)

type PageState int

const (
	// NoResults means the results table is not on the page at all.
	NoResults PageState = iota
	// NoMoreResults means the table is there but holds no rows, e.g. a page
	// past the last one.
	NoMoreResults
	HasResults
)

func (s PageState) String() string {
	switch s {
	case NoResults:
		return "no_results"
	case NoMoreResults:
		return "no_more_results"
	case HasResults:
		return "has_results"
	}
	return fmt.Sprintf("PageState(%d)", int(s))
}

// Page is a parsed and classified search result page.
type Page struct {
	Tree  *dom.Tree
	State PageState
	// Recognized is false when the page has no results table and no
	// "No results found" notice either, which points to a markup change
	// rather than an empty search.
	Recognized bool
}

func ParsePage(body []byte) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("failed to parse page: empty document")
	}

	tree := dom.FromNode(doc.Nodes[0])
	page := &Page{
		Tree:  tree,
		State: Classify(tree),
	}
	page.Recognized = page.State != NoResults || hasNoResultsNotice(doc)
	return page, nil
}

// Torrents extracts every row of a page classified as HasResults. Pages in
// any other state yield no torrents. A row that cannot be extracted fails
// the whole page.
func (p *Page) Torrents() ([]schema.Torrent, error) {
	if p.State != HasResults {
		return nil, nil
	}

	tbody, ok := LocateTableBody(p.Tree)
	if !ok {
		return nil, fmt.Errorf("table body: %w", errNodeNotFound)
	}

	var torrents []schema.Torrent
	for i, row := range p.Tree.ElementChildren(tbody) {
		torrent, err := ExtractRow(p.Tree, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		torrents = append(torrents, torrent)
	}
	return torrents, nil
}

// LocateTableBody finds the <tbody> of the results table. The wrapper is
// looked up by its class so its position among the body's children does not
// matter; the table and tbody are looked up by tag below it.
func LocateTableBody(t *dom.Tree) (dom.NodeID, bool) {
	html, ok := t.FindChildElement(dom.Root, "html")
	if !ok {
		return 0, false
	}
	body, ok := t.FindChildElement(html, "body")
	if !ok {
		return 0, false
	}
	wrapper, ok := t.FindDescendant(body, func(id dom.NodeID) bool {
		return t.HasClass(id, tableMarker)
	})
	if !ok {
		return 0, false
	}
	table, ok := t.FindChildElement(wrapper, "table")
	if !ok {
		return 0, false
	}
	return t.FindChildElement(table, "tbody")
}

// Classify tells whether the page holds results. A table body with a single
// child node (the whitespace the site renders inside an empty tbody) counts
// as empty.
func Classify(t *dom.Tree) PageState {
	tbody, ok := LocateTableBody(t)
	if !ok {
		return NoResults
	}
	if len(t.Children(tbody)) > 1 {
		return HasResults
	}
	return NoMoreResults
}

func hasNoResultsNotice(doc *goquery.Document) bool {
	found := false
	doc.Find("h3").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = strings.Contains(s.Text(), noResultsNotice)
		return !found
	})
	return found
}
