package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/instastory/internal/emoji"
	"github.com/yildizm/instastory/internal/fetch"
	"github.com/yildizm/instastory/internal/formatter"
	"github.com/yildizm/instastory/internal/logger"
	"github.com/yildizm/instastory/internal/monitor"
	"github.com/yildizm/instastory/internal/payload"
	"github.com/yildizm/instastory/internal/story"
)

var (
	summaryOutput     string
	summaryEndpoint   string
	summaryFile       string
	summaryOutputFile string
)

func newSummaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the story without the interactive viewer",
		Long: `Fetch the analytics payload once and print every slide with its final values.

Examples:
  instastory summary
  instastory summary --file stats.json --output markdown
  instastory summary --output json --output-file story.json`,
		Args: cobra.NoArgs,
		RunE: runSummary,
	}

	cmd.Flags().StringVarP(&summaryOutput, "output", "o", "text", "output format ("+strings.Join(formatter.Formats, ", ")+")")
	cmd.Flags().StringVarP(&summaryEndpoint, "endpoint", "e", "", "analytics endpoint URL")
	cmd.Flags().StringVarP(&summaryFile, "file", "f", "", "read the payload from a local JSON export")
	cmd.Flags().StringVar(&summaryOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("endpoint") {
		cfg.Source.Endpoint = summaryEndpoint
	}
	if cmd.Flags().Changed("file") {
		cfg.Source.File = summaryFile
	}

	format, err := formatter.New(summaryOutput, cfg.UI.ColorMode != "never", cfg.UI.Emoji)
	if err != nil {
		return err
	}

	log := newLogger(cfg, "summary", cmd.ErrOrStderr())
	source, err := buildSource(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Source.Timeout+5*time.Second)
	defer cancel()

	slides, err := fetchStory(ctx, source, monitor.New(), log)
	if err != nil {
		return err
	}

	output, err := format.Format(slides)
	if err != nil {
		return fmt.Errorf("failed to format story: %w", err)
	}
	return writeOutput(cmd.OutOrStdout(), output)
}

// fetchStory drives one attempt through the fetch lifecycle and builds the
// slides. The attempt is recorded in metrics as OperationFetch.
func fetchStory(ctx context.Context, source fetch.Source, metrics *monitor.Collector, log *logger.Logger) ([]story.Slide, error) {
	lifecycle := fetch.NewLifecycle()
	attempt := lifecycle.Begin()

	var p *payload.Payload
	err := metrics.TrackOperationWithError(monitor.OperationFetch, func() error {
		var err error
		p, err = source.Fetch(ctx)
		return err
	})
	lifecycle.Resolve(attempt, p, err)

	fields := []logger.Field{logger.F("source", source.Describe())}
	if m, ok := metrics.GetSnapshot().Find(monitor.OperationFetch); ok {
		fields = append(fields, logger.Duration(time.Duration(m.TotalTime)))
	}

	if lifecycle.Phase() != fetch.PhaseSuccess {
		log.DebugWithFields("fetch failed", append(fields, logger.Error(lifecycle.Err())))
		return nil, fmt.Errorf("fetch failed: %s", lifecycle.Message())
	}

	log.DebugWithFields("payload fetched", fields)
	return story.Build(lifecycle.Payload()), nil
}

func writeOutput(stdout io.Writer, output []byte) error {
	if summaryOutputFile == "" {
		_, err := stdout.Write(output)
		return err
	}
	if err := os.WriteFile(summaryOutputFile, output, 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(stdout, "%s Story saved to %s\n", emoji.GetEmoji("success"), summaryOutputFile)
	return nil
}
