package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var searchPages int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Print search results page by page",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if searchPages < 1 {
			return fmt.Errorf("--pages must be at least 1, got %d", searchPages)
		}
		searcher, err := NewSearcher(cfg, logger)
		if err != nil {
			return err
		}
		return runSearch(cmd.Context(), searcher, strings.Join(args, " "), searchPages, os.Stdout, os.Stderr)
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchPages, "pages", "p", 1, "number of pages to load")
}

// terminalObserver prints notices; the terminal scrolls on its own.
type terminalObserver struct {
	out io.Writer
}

func (o terminalObserver) Notice(level NoticeLevel, message string) {
	c := color.New(color.FgYellow)
	if level == NoticeFailure {
		c = color.New(color.FgRed, color.Bold)
	}
	_, _ = c.Fprintln(o.out, message)
}

func (o terminalObserver) Scroll(ScrollBy) {}

// runSearch drives the gallery controller the way the web UI does: one
// Submit, then LoadMore until pages are loaded, a fetch fails or there is
// nothing more to load.
func runSearch(ctx context.Context, searcher ImageSearcher, query string, pages int, out, errOut io.Writer) error {
	gallery := NewGallery(searcher, terminalObserver{out: errOut}, logger)

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return gallery.Run(gctx)
	})

	var runErr error
	printed := 0
	ev := Event(Submit{Query: query})
	for page := 1; page <= pages; page++ {
		if _, err := gallery.Dispatch(gctx, ev); err != nil {
			runErr = err
			break
		}
		view, err := gallery.WaitIdle(gctx)
		if err != nil {
			runErr = err
			break
		}
		if view.Error != "" {
			runErr = errors.New(view.Error)
			break
		}
		printHits(out, view.Hits[printed:])
		printed = len(view.Hits)
		if !view.CanLoadMore || len(view.Hits) >= view.TotalHits {
			break
		}
		ev = LoadMore{}
	}

	cancel()
	if err := g.Wait(); err != nil && runErr == nil {
		runErr = err
	}
	if printed > 0 {
		color.New(color.Faint).Fprintf(errOut, "%d of %d hits\n", printed, gallery.Snapshot().TotalHits)
	}
	return runErr
}

func printHits(w io.Writer, hits []Hit) {
	if len(hits) == 0 {
		return
	}
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)
	rows := make([][]string, 0, len(hits))
	for _, h := range hits {
		rows = append(rows, []string{h.ID, h.Tags, h.ThumbnailURL, h.FullURL})
	}
	table.Header([]string{"id", "tags", "thumbnail", "full size"})
	table.Bulk(rows)
	table.Render()
}
