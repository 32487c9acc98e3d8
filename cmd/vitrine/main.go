package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/vitrine/internal/artic"
	"github.com/mmcdole/vitrine/internal/config"
	"github.com/mmcdole/vitrine/internal/domain"
	"github.com/mmcdole/vitrine/internal/log"
	"github.com/mmcdole/vitrine/internal/selection"
	"github.com/mmcdole/vitrine/internal/service"
	"github.com/mmcdole/vitrine/internal/store"
	"github.com/mmcdole/vitrine/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions holds global flags and what they load
type rootOptions struct {
	ConfigFile string
	LogLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand creates the vitrine command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	var startPage int

	cmd := &cobra.Command{
		Use:           "vitrine",
		Short:         "Browse a paginated collection API and select rows across pages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("page") {
				opts.cfg.UI.StartPage = startPage
			}
			return runTUI(opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: ~/.config/vitrine/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override logging.level (debug|info|warn|error)")
	cmd.Flags().IntVar(&startPage, "page", 1, "page to open first")

	cmd.AddCommand(NewPageCommand(opts))
	cmd.AddCommand(NewSelectCommand(opts))
	cmd.AddCommand(NewCacheCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// load reads configuration and sets up file logging
func (o *rootOptions) load() error {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	o.cfg = cfg
	o.logger = logger
	return nil
}

// openCache opens the page cache for the configured API.
// It returns a nil cache when caching is disabled.
func openCache(cfg *config.Config) (domain.PageCache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	s, err := store.NewPageStore(cfg.CacheDir(), cfg.API.BaseURL, cfg.Cache.TTL)
	if err != nil {
		return nil, fmt.Errorf("failed to open page cache: %w", err)
	}
	return s, nil
}

// newLoader wires the API client and page cache into a loader.
// The caller must run release when done with the loader.
func newLoader(cfg *config.Config, logger *slog.Logger) (loader *service.PageLoader, release func(), err error) {
	client := artic.NewClient(cfg.API.BaseURL, log.For(logger, log.ComponentClient),
		artic.WithResource(cfg.API.Resource),
		artic.WithTimeout(cfg.API.Timeout),
		artic.WithRateLimit(cfg.API.RateLimit, cfg.API.Burst),
		artic.WithUserAgent(cfg.API.UserAgent),
	)

	cache, err := openCache(cfg)
	if err != nil {
		return nil, nil, err
	}
	release = func() {
		if cache == nil {
			return
		}
		if err := cache.Close(); err != nil {
			logger.Warn("failed to close page cache", "error", err)
		}
	}

	return service.NewPageLoader(client, cache, cfg.API.PageSize, log.For(logger, log.ComponentLoader)), release, nil
}

func runTUI(opts *rootOptions) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the browser needs a terminal; use 'vitrine page' or 'vitrine select' for scripted use")
	}

	logger := opts.logger
	logger.Info("starting vitrine", "version", Version)

	loader, release, err := newLoader(opts.cfg, logger)
	if err != nil {
		return err
	}
	defer release()

	tracker := selection.NewTracker(log.For(logger, log.ComponentSelection))
	model := tui.NewModel(loader, tracker, tui.Options{
		StartPage:  opts.cfg.UI.StartPage,
		WindowSize: opts.cfg.UI.WindowSize,
		Truncate:   opts.cfg.UI.Truncate,
		Logger:     log.For(logger, log.ComponentTUI),
	})

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// NewVersionCommand prints the build version
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Skip config and logging
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vitrine %s\n", Version)
		},
	}
}
