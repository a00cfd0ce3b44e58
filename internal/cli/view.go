package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/yildizm/instastory/internal/config"
	"github.com/yildizm/instastory/internal/fetch"
	"github.com/yildizm/instastory/internal/logger"
	"github.com/yildizm/instastory/internal/ui"
)

var (
	viewEndpoint    string
	viewFile        string
	viewWatch       bool
	viewSkipLanding bool
	viewTheme       string
)

func newViewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the interactive story viewer",
		Long: `Open the story viewer in the terminal.

The analytics payload is fetched from the configured endpoint, or read from a
local JSON export when --file is given. With --watch the story reloads from the
first slide whenever the export changes on disk.

Examples:
  instastory view
  instastory view --endpoint http://localhost:8000/api/stats
  instastory view --file stats.json --watch
  instastory view --skip-landing --theme high-contrast`,
		Args: cobra.NoArgs,
		RunE: runView,
	}

	cmd.Flags().StringVarP(&viewEndpoint, "endpoint", "e", "", "analytics endpoint URL")
	cmd.Flags().StringVarP(&viewFile, "file", "f", "", "read the payload from a local JSON export")
	cmd.Flags().BoolVarP(&viewWatch, "watch", "w", false, "reload the story when the export changes")
	cmd.Flags().BoolVar(&viewSkipLanding, "skip-landing", false, "open the story directly")
	cmd.Flags().StringVarP(&viewTheme, "theme", "t", "", "color theme (default, high-contrast, minimal)")

	return cmd
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyViewFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	if !ui.SetThemeByName(cfg.UI.Theme) {
		return fmt.Errorf("unknown theme: %s", cfg.UI.Theme)
	}

	log, closeLog, err := openLogFile(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	source, err := buildSource(cfg, log)
	if err != nil {
		return err
	}

	var watcher *fetch.Watcher
	if cfg.Source.Watch {
		watcher, err = fetch.NewWatcher(config.ExpandPath(cfg.Source.File), log)
		if err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	log.InfoWithFields("starting viewer", []logger.Field{
		logger.F("source", source.Describe()),
		logger.F("watch", cfg.Source.Watch),
	})

	app := ui.NewApp(ui.Options{
		Context:     ctx,
		Source:      source,
		Watcher:     watcher,
		SkipLanding: cfg.UI.SkipLanding,
		FrameWindow: cfg.UI.FrameWindow,
		Logger:      log,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}

// applyViewFlags lets explicitly set flags win over the configuration
func applyViewFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Source.Endpoint = viewEndpoint
	}
	if flags.Changed("file") {
		cfg.Source.File = viewFile
	}
	if flags.Changed("watch") {
		cfg.Source.Watch = viewWatch
	}
	if flags.Changed("skip-landing") {
		cfg.UI.SkipLanding = viewSkipLanding
	}
	if flags.Changed("theme") {
		cfg.UI.Theme = viewTheme
	}
}

// buildSource picks the local export when one is configured and the endpoint otherwise
func buildSource(cfg *config.Config, log *logger.Logger) (fetch.Source, error) {
	if cfg.Source.File != "" {
		src, err := fetch.NewFileSource(config.ExpandPath(cfg.Source.File), log)
		if err != nil {
			return nil, err
		}
		return src, nil
	}

	src, err := fetch.NewHTTPSource(cfg.Source.Endpoint, cfg.Source.Timeout, log)
	if err != nil {
		return nil, err
	}
	return src, nil
}
