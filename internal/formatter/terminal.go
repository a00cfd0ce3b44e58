package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/instastory/internal/story"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats the story as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter
func NewTerminal(color, emoji bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = emoji
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(slides []story.Slide) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, len(slides))
	for i := range slides {
		f.writeSlide(&b, i, &slides[i])
	}

	return []byte(b.String()), nil
}

func (f *terminalFormatter) writeHeader(b *strings.Builder, count int) {
	header := fmt.Sprintf("Your Instagram Story (%d slides)", count)
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeSlide writes one slide as a tree
func (f *terminalFormatter) writeSlide(b *strings.Builder, index int, slide *story.Slide) {
	symbol := termfmt.GetEmoji(slideSymbol(slide.Kind), f.opts)
	fmt.Fprintf(b, "%s %d. %s\n", symbol, index+1, slide.Title)
	if slide.Subtitle != "" {
		b.WriteString("   " + slide.Subtitle + "\n")
	}

	items := f.slideItems(slide)
	if len(items) == 0 {
		b.WriteString("   (no entries)\n\n")
		return
	}
	items[len(items)-1].Last = true

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) slideItems(slide *story.Slide) []termfmt.TreeItem {
	var items []termfmt.TreeItem
	if label, value, ok := headline(slide); ok {
		items = append(items, termfmt.TreeItem{Label: label, Value: formatNumber(value)})
	}

	for _, row := range slide.Rows {
		items = append(items, termfmt.TreeItem{
			Label: fmt.Sprintf("#%d %s", row.Rank, row.Name),
			Value: formatNumber(row.Figure.Value) + " " + row.Figure.Label,
		})
	}

	for _, cell := range slide.Emojis {
		items = append(items, termfmt.TreeItem{Label: cell.Symbol, Value: formatNumber(cell.Figure.Value)})
	}

	for _, stat := range slide.Stats {
		items = append(items, termfmt.TreeItem{Label: stat.Label, Value: formatNumber(stat.Value)})
	}
	return items
}

func slideSymbol(kind story.Kind) string {
	switch kind {
	case story.KindIntro:
		return "info"
	case story.KindEmojiGrid:
		return "insight"
	default:
		return "statistics"
	}
}
