package formatter

import (
	"github.com/yildizm/instastory/internal/counter"
	"github.com/yildizm/instastory/internal/story"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int64) string {
	return counter.Format(n)
}

// headline returns the label and value of the slide-wide total
func headline(slide *story.Slide) (string, int64, bool) {
	if slide.Headline == nil {
		return "", 0, false
	}
	return slide.Headline.Label, slide.Headline.Value, true
}
