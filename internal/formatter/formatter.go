package formatter

import (
	"fmt"

	"github.com/yildizm/instastory/internal/story"
)

// Formatter defines the interface for output formatting. Figures are
// written with their final values.
type Formatter interface {
	Format(slides []story.Slide) ([]byte, error)
}

// Formats lists the supported output formats
var Formats = []string{"text", "json", "markdown", "csv"}

// New returns the formatter for format
func New(format string, color, emoji bool) (Formatter, error) {
	switch format {
	case "text", "":
		return NewTerminal(color, emoji), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use text, json, markdown or csv)", format)
	}
}
