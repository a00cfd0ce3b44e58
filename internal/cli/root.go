package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/yildizm/instastory/internal/config"
	"github.com/yildizm/instastory/internal/emoji"
	"github.com/yildizm/instastory/internal/logger"
	"github.com/yildizm/instastory/internal/ui"
)

var (
	cfgFile string
	verbose bool
	noColor bool
	noEmoji bool
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	viewCmd := newViewCommand()

	rootCmd := &cobra.Command{
		Use:   "instastory",
		Short: "Your Instagram conversations, told as a story",
		Long: `Instastory turns a precomputed Instagram analytics export into a guided,
slide-by-slide story in your terminal.

Each slide reveals animated figures: your total messages, closest connections,
late-night chats, shared reels, favourite emojis and a final summary.
Advance with the right arrow, space, or a click on the Next button.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)
			if noColor {
				ui.ApplyColorMode("never")
			}
		},
		Args: cobra.NoArgs,
		RunE: viewCmd.RunE,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")

	// `instastory` with no subcommand opens the viewer
	rootCmd.Flags().AddFlagSet(viewCmd.Flags())

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(newSummaryCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Instastory %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// loadConfig loads the effective configuration and folds the global flags into it
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if verbose {
		cfg.Log.Verbose = true
	}
	if noColor {
		cfg.UI.ColorMode = "never"
	}
	if noEmoji {
		cfg.UI.Emoji = false
	}
	ui.ApplyColorMode(cfg.UI.ColorMode)
	emoji.SetEmojiDisabled(!cfg.UI.Emoji)

	return cfg, nil
}

// newLogger creates a component logger writing to w
func newLogger(cfg *config.Config, component string, w io.Writer) *logger.Logger {
	verboseLog := cfg.Log.Verbose
	log := logger.NewWithCallback(component, func() bool { return verboseLog })
	log.SetOutput(w)
	return log
}

// openLogFile opens the diagnostics log. The viewer owns the terminal, so
// without a file every line is discarded.
func openLogFile(cfg *config.Config) (*logger.Logger, func(), error) {
	if cfg.Log.File == "" {
		return logger.Discard(), func() {}, nil
	}

	path := config.ExpandPath(cfg.Log.File)
	// #nosec G304 - the log path comes from the user's own configuration
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return newLogger(cfg, "instastory", f), func() { _ = f.Close() }, nil
}
