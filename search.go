package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	handler "github.com/felipemarinho97/nyaa-indexer/api"
	"github.com/felipemarinho97/nyaa-indexer/config"
	"github.com/felipemarinho97/nyaa-indexer/monitoring"
	"github.com/felipemarinho97/nyaa-indexer/nyaa"
	"github.com/felipemarinho97/nyaa-indexer/schema"
	"github.com/felipemarinho97/nyaa-indexer/utils"
)

const (
	nameWidth    = 40
	defaultLimit = 20
)

var (
	errRequestHint  = errors.New("there was a problem contacting the site")
	errScrapingHint = errors.New("there was a scraping problem, the site markup may have changed; please report this issue")
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search every result page for a term and print the torrents",
		Long: `Search fetches every result page for the term and prints the torrents found.

Examples:
  # Print the first 20 results as a table
  nyaa-indexer search little witch academia

  # Print every result as JSON
  nyaa-indexer search --json --limit 0 madoka

  # Only anime, English-translated
  nyaa-indexer search --category 1_2 madoka`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearchCmd,
	}

	cmd.Flags().Bool("json", false, "Print results as JSON")
	cmd.Flags().IntP("limit", "n", defaultLimit, "Maximum number of results to print, 0 prints all")
	cmd.Flags().StringP("category", "c", "", "Category filter: label, kind or site id (e.g. 1_2)")
	cmd.Flags().Int("max-pages", -1, "Maximum number of pages to fetch, overrides MAX_PAGES (0 is unbounded)")

	return cmd
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if maxPages, _ := cmd.Flags().GetInt("max-pages"); maxPages >= 0 {
		cfg.MaxPages = uint(maxPages)
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	limit, _ := cmd.Flags().GetInt("limit")
	category, _ := cmd.Flags().GetString("category")
	if category != "" && !slices.ContainsFunc(schema.CategoryList, func(c schema.Category) bool {
		return schema.MatchCategory(c, category)
	}) {
		return fmt.Errorf("unknown category %q", category)
	}

	crawler, closeCrawler := newCrawler(cmd.Context(), cfg, monitoring.NewMetrics())
	defer closeCrawler()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.SearchTimeout)
	defer cancel()

	term := strings.Join(args, " ")
	torrents, err := crawler.Search(ctx, term)
	if err != nil {
		return explainSearchError(err)
	}

	if category != "" {
		torrents = utils.Filter(torrents, func(t schema.Torrent) bool {
			return schema.MatchCategory(t.Category, category)
		})
	}
	if limit > 0 && len(torrents) > limit {
		torrents = torrents[:limit]
	}

	if asJSON {
		return printJSON(cmd.OutOrStdout(), cfg.BaseURL, torrents)
	}
	return printTable(cmd.OutOrStdout(), torrents)
}

func explainSearchError(err error) error {
	switch {
	case errors.Is(err, nyaa.ErrScraping):
		return fmt.Errorf("%w: %w", errScrapingHint, err)
	case errors.Is(err, nyaa.ErrRequest):
		return fmt.Errorf("%w: %w", errRequestHint, err)
	default:
		return err
	}
}

func printJSON(w io.Writer, baseURL string, torrents []schema.Torrent) error {
	indexed := make([]schema.IndexedTorrent, 0, len(torrents))
	for _, t := range torrents {
		indexed = append(indexed, handler.ToIndexedTorrent(baseURL, t))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(handler.Response{Results: indexed, Count: len(indexed)})
}

// printTable prints one line per torrent: the name cut to 40 characters, M
// and T when a magnet or .torrent link exists, the date, the size and the
// seeders/leechers/completed counts.
func printTable(w io.Writer, torrents []schema.Torrent) error {
	if len(torrents) == 0 {
		_, err := fmt.Fprintln(w, "There are no torrents!")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintln(tw, "Name\tLink\tDate\tSize\tSeeders/Leechers/Completed")
	for _, t := range torrents {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d/%d/%d\n",
			truncate(t.Name, nameWidth),
			linkFlags(t),
			t.PublishedAt().Format("2006-01-02 15:04"),
			humanize.IBytes(t.Size),
			t.Seeders, t.Leechers, t.CompletedDownloads,
		)
	}
	return tw.Flush()
}

func linkFlags(t schema.Torrent) string {
	flags := []byte("  ")
	if _, ok := t.Magnet(); ok {
		flags[0] = 'M'
	}
	if _, ok := t.TorrentFile(); ok {
		flags[1] = 'T'
	}
	return string(flags)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
