package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/instastory/internal/story"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(slides []story.Slide) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Your Instagram Story\n\n")
	f.writeTableOfContents(&b, slides)

	for i := range slides {
		f.writeSlide(&b, &slides[i])
	}

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeTableOfContents(b *strings.Builder, slides []story.Slide) {
	b.WriteString("## Table of Contents\n")
	for _, slide := range slides {
		fmt.Fprintf(b, "- [%s](#%s)\n", slide.Title, anchor(slide.Title))
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeSlide(b *strings.Builder, slide *story.Slide) {
	fmt.Fprintf(b, "## %s\n\n", slide.Title)
	if slide.Subtitle != "" {
		fmt.Fprintf(b, "_%s_\n\n", slide.Subtitle)
	}
	if label, value, ok := headline(slide); ok {
		fmt.Fprintf(b, "**%s** %s\n\n", formatNumber(value), label)
	}

	switch slide.Kind {
	case story.KindRankedList:
		if len(slide.Rows) == 0 {
			b.WriteString("No entries.\n\n")
			return
		}
		b.WriteString("| Rank | Name | Messages |\n")
		b.WriteString("|------|------|----------|\n")
		for _, row := range slide.Rows {
			fmt.Fprintf(b, "| %d | %s | %s |\n", row.Rank, escapeCell(row.Name), formatNumber(row.Figure.Value))
		}
		b.WriteString("\n")

	case story.KindEmojiGrid:
		b.WriteString("| Emoji | Count |\n")
		b.WriteString("|-------|-------|\n")
		for _, cell := range slide.Emojis {
			fmt.Fprintf(b, "| %s | %s |\n", cell.Symbol, formatNumber(cell.Figure.Value))
		}
		b.WriteString("\n")

	case story.KindSummary:
		b.WriteString("| Metric | Value |\n")
		b.WriteString("|--------|-------|\n")
		for _, stat := range slide.Stats {
			fmt.Fprintf(b, "| %s | %s |\n", stat.Label, formatNumber(stat.Value))
		}
		b.WriteString("\n")
	}
}

// anchor builds a GitHub-style heading anchor
func anchor(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r == ' ':
			b.WriteRune('-')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
