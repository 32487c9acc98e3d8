package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mmcdole/vitrine/internal/domain"
	"github.com/mmcdole/vitrine/internal/pagination"
	"github.com/mmcdole/vitrine/internal/tui/styles"
)

// NewPageCommand fetches one page and prints it
func NewPageCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "page <n>",
		Short: "Print one page of records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid page %q: %w", args[0], domain.ErrInvalidPage)
			}

			loader, release, err := newLoader(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer release()

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.cfg.API.Timeout)
			defer cancel()

			p, err := loader.Load(ctx, n)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPage(p, opts.cfg.UI.Truncate))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the page as JSON")
	return cmd
}

// renderPage renders records as a bordered table plus the range summary
func renderPage(p *domain.Page, truncate int) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.DimStyle).
		Headers("ID", "Title", "Place of Origin", "Artist", "Inscriptions", "Start Date", "End Date")

	for _, r := range p.Records {
		t.Row(
			strconv.Itoa(r.ID),
			styles.Truncate(r.Title, truncate),
			styles.Truncate(r.PlaceOfOrigin, truncate),
			styles.Truncate(r.ArtistDisplay, truncate),
			styles.Truncate(r.Inscriptions, truncate),
			year(r.DateStart),
			year(r.DateEnd),
		)
	}

	start, end, total := pagination.Range(p.Meta)
	summary := fmt.Sprintf("Showing %d to %d of %d entries (page %d/%d)",
		start, end, total, p.Meta.CurrentPage, p.Meta.TotalPages)
	return t.Render() + "\n" + summary
}

func year(y int) string {
	if y == 0 {
		return styles.NotAvailable
	}
	return strconv.Itoa(y)
}
