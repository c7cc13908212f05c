package nyaa

import (
	"fmt"
	"strconv"

	"github.com/felipemarinho97/nyaa-indexer/dom"
	"github.com/felipemarinho97/nyaa-indexer/schema"
)

// Cell positions inside a result row, counting <td> elements only.
const (
	cellCategory = iota
	cellName
	cellLinks
	cellSize
	cellDate
	cellSeeders
	cellLeechers
	cellCompleted
)

// ExtractRow builds a Torrent out of one <tr> of the results table. Either
// every field is extracted or an error naming the first failing field is
// returned.
func ExtractRow(t *dom.Tree, row dom.NodeID) (schema.Torrent, error) {
	category, err := getCategory(t, row)
	if err != nil {
		return schema.Torrent{}, fmt.Errorf("category: %w", err)
	}
	name, err := getName(t, row)
	if err != nil {
		return schema.Torrent{}, fmt.Errorf("name: %w", err)
	}
	links, err := getLinks(t, row)
	if err != nil {
		return schema.Torrent{}, fmt.Errorf("links: %w", err)
	}
	size, err := getSize(t, row)
	if err != nil {
		return schema.Torrent{}, fmt.Errorf("size: %w", err)
	}
	date, err := getDate(t, row)
	if err != nil {
		return schema.Torrent{}, fmt.Errorf("date: %w", err)
	}
	seeders, err := getCount(t, row, cellSeeders)
	if err != nil {
		return schema.Torrent{}, fmt.Errorf("seeders: %w", err)
	}
	leechers, err := getCount(t, row, cellLeechers)
	if err != nil {
		return schema.Torrent{}, fmt.Errorf("leechers: %w", err)
	}
	completed, err := getCount(t, row, cellCompleted)
	if err != nil {
		return schema.Torrent{}, fmt.Errorf("completed downloads: %w", err)
	}

	return schema.Torrent{
		Category:           category,
		Name:               name,
		Links:              links,
		Size:               size,
		Date:               date,
		Seeders:            seeders,
		Leechers:           leechers,
		CompletedDownloads: completed,
	}, nil
}

func cell(t *dom.Tree, row dom.NodeID, i int) (dom.NodeID, error) {
	c, ok := t.ElementChild(row, i)
	if !ok {
		return 0, fmt.Errorf("cell %d: %w", i, errNodeNotFound)
	}
	return c, nil
}

func cellText(t *dom.Tree, row dom.NodeID, i int) (string, error) {
	c, err := cell(t, row, i)
	if err != nil {
		return "", err
	}
	text, ok := t.FirstText(c)
	if !ok {
		return "", fmt.Errorf("cell %d: %w", i, errNotText)
	}
	return text, nil
}

// getCategory reads the tooltip of the category icon link,
// e.g. <a href="/?c=1_2" title="Anime - English-translated">.
func getCategory(t *dom.Tree, row dom.NodeID) (schema.Category, error) {
	c, err := cell(t, row, cellCategory)
	if err != nil {
		return schema.Category{}, err
	}
	link, ok := t.ElementChild(c, 0)
	if !ok {
		return schema.Category{}, errNodeNotFound
	}
	label, ok := t.Attr(link, "title")
	if !ok {
		return schema.Category{}, fmt.Errorf("title attribute: %w", errNodeNotFound)
	}
	return schema.GetCategoryFromLabel(label)
}

// getName picks the title link of the name cell. The comment counter next to
// it is also a link but carries a class.
func getName(t *dom.Tree, row dom.NodeID) (string, error) {
	c, err := cell(t, row, cellName)
	if err != nil {
		return "", err
	}
	title, ok := t.FindChild(c, func(id dom.NodeID) bool {
		return t.IsElement(id) && !t.HasAttr(id, "class")
	})
	if !ok {
		return "", fmt.Errorf("title link: %w", errNodeNotFound)
	}
	name, ok := t.FirstText(title)
	if !ok {
		return "", fmt.Errorf("title link: %w", errNotText)
	}
	return name, nil
}

// getLinks reads the first two links of the link cell. Missing links are
// left empty.
func getLinks(t *dom.Tree, row dom.NodeID) (schema.Links, error) {
	c, err := cell(t, row, cellLinks)
	if err != nil {
		return schema.Links{}, err
	}
	var links schema.Links
	for i := range links {
		if link, ok := t.ElementChild(c, i); ok {
			links[i], _ = t.Attr(link, "href")
		}
	}
	return links, nil
}

func getSize(t *dom.Tree, row dom.NodeID) (uint64, error) {
	text, err := cellText(t, row, cellSize)
	if err != nil {
		return 0, err
	}
	return ParseSize(text)
}

// getDate reads the timestamp attribute, the cell text is a formatted date.
func getDate(t *dom.Tree, row dom.NodeID) (uint64, error) {
	c, err := cell(t, row, cellDate)
	if err != nil {
		return 0, err
	}
	raw, ok := t.Attr(c, "data-timestamp")
	if !ok {
		return 0, fmt.Errorf("data-timestamp attribute: %w", errNodeNotFound)
	}
	date, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}
	return date, nil
}

func getCount(t *dom.Tree, row dom.NodeID, i int) (uint32, error) {
	text, err := cellText(t, row, i)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", text, err)
	}
	return uint32(n), nil
}
