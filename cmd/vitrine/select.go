package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/vitrine/internal/log"
	"github.com/mmcdole/vitrine/internal/selection"
)

// selectReport is the outcome of a headless selection run
type selectReport struct {
	Pages       []int `json:"pages"`
	Applied     []int `json:"applied"` // rows auto-selected per page
	SelectedIDs []int `json:"selected_ids"`
	Selected    int   `json:"selected"` // displayed count
	Pending     int   `json:"pending"`
}

// NewSelectCommand runs the selection ledger without the UI
func NewSelectCommand(opts *rootOptions) *cobra.Command {
	var (
		count     int
		pages     []int
		toggleOff []int
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select the first N rows, then visit more pages",
		Long: `Select the first N rows starting at the first listed page, then load each
following page in order so any rows still owed are filled in. Rows listed in
--toggle-off are unchecked afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("--count must be >= 0, got %d", count)
			}
			if len(pages) == 0 {
				return fmt.Errorf("--pages needs at least one page")
			}

			loader, release, err := newLoader(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer release()

			tracker := selection.NewTracker(log.For(opts.logger, log.ComponentSelection))
			report := selectReport{Pages: pages}

			for i, n := range pages {
				ctx, cancel := context.WithTimeout(cmd.Context(), opts.cfg.API.Timeout)
				p, err := loader.Load(ctx, n)
				cancel()
				if err != nil {
					return err
				}

				cmdForPage := selection.PageVisible(p.Records)
				if i == 0 {
					cmdForPage = selection.Bulk(count, p.Records)
				}
				res := tracker.Dispatch(cmdForPage)
				report.Applied = append(report.Applied, res.Applied)
			}

			for _, id := range toggleOff {
				tracker.Dispatch(selection.Toggle(id, false))
			}

			snap := tracker.Snapshot()
			report.SelectedIDs = snap.SelectedIDs()
			report.Selected = selection.DisplayedCount(snap)
			report.Pending = snap.Pending()

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			fmt.Fprintf(out, "Selected: %d rows\n", report.Selected)
			if report.Pending > 0 {
				fmt.Fprintf(out, "Pending: %d rows (load more pages to fill)\n", report.Pending)
			}
			fmt.Fprintf(out, "IDs: %s\n", joinInts(report.SelectedIDs))
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "rows to select, starting at the first page")
	cmd.Flags().IntSliceVar(&pages, "pages", []int{1}, "pages to visit in order")
	cmd.Flags().IntSliceVar(&toggleOff, "toggle-off", nil, "record ids to uncheck afterwards")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}
