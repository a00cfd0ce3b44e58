package formatter

import (
	"encoding/json"

	"github.com/yildizm/instastory/internal/story"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(slides []story.Slide) ([]byte, error) {
	output := &StoryOutput{
		SlideCount: len(slides),
		Slides:     make([]*SlideOutput, 0, len(slides)),
	}
	for i := range slides {
		output.Slides = append(output.Slides, createSlideOutput(&slides[i]))
	}

	return json.MarshalIndent(output, "", "  ")
}

// StoryOutput represents the JSON document
type StoryOutput struct {
	SlideCount int            `json:"slide_count"`
	Slides     []*SlideOutput `json:"slides"`
}

// SlideOutput represents one slide
type SlideOutput struct {
	Kind     string          `json:"kind"`
	Metric   string          `json:"metric,omitempty"`
	Title    string          `json:"title"`
	Subtitle string          `json:"subtitle,omitempty"`
	Headline *FigureOutput   `json:"headline,omitempty"`
	Rows     []*RowOutput    `json:"rows,omitempty"`
	Emojis   []*EmojiOutput  `json:"emojis,omitempty"`
	Stats    []*FigureOutput `json:"stats,omitempty"`
}

// FigureOutput represents a labelled number
type FigureOutput struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// RowOutput represents one ranked entry
type RowOutput struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// EmojiOutput represents one emoji tile
type EmojiOutput struct {
	Symbol string `json:"symbol"`
	Count  int64  `json:"count"`
}

func createSlideOutput(slide *story.Slide) *SlideOutput {
	out := &SlideOutput{
		Kind:     slide.Kind.String(),
		Metric:   string(slide.Metric),
		Title:    slide.Title,
		Subtitle: slide.Subtitle,
	}
	if label, value, ok := headline(slide); ok {
		out.Headline = &FigureOutput{Label: label, Value: value}
	}
	for _, row := range slide.Rows {
		out.Rows = append(out.Rows, &RowOutput{Rank: row.Rank, Name: row.Name, Count: row.Figure.Value})
	}
	for _, cell := range slide.Emojis {
		out.Emojis = append(out.Emojis, &EmojiOutput{Symbol: cell.Symbol, Count: cell.Figure.Value})
	}
	for _, stat := range slide.Stats {
		out.Stats = append(out.Stats, &FigureOutput{Label: stat.Label, Value: stat.Value})
	}
	return out
}
