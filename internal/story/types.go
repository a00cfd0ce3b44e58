package story

import "time"

// Kind tags the content template of a slide
type Kind int

const (
	KindIntro Kind = iota
	KindRankedList
	KindEmojiGrid
	KindSummary
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindIntro:
		return "intro"
	case KindRankedList:
		return "ranked_list"
	case KindEmojiGrid:
		return "emoji_grid"
	case KindSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// Metric names the payload sequence a ranked list is sourced from
type Metric string

const (
	MetricTopChatted Metric = "top_chatted"
	MetricMidnight   Metric = "midnight"
	MetricReels      Metric = "reels"
)

// Figure is one animated number on a slide
type Figure struct {
	Label string
	Value int64
	Delay time.Duration
}

// Row is one entry of a ranked list
type Row struct {
	Rank   int
	Name   string
	Figure Figure
}

// EmojiCell is one tile of the emoji grid
type EmojiCell struct {
	Symbol string
	Figure Figure
}

// Slide is an immutable descriptor of one step of the story
type Slide struct {
	Kind     Kind
	Metric   Metric
	Title    string
	Subtitle string

	// Headline is the slide-wide total, nil when the slide has none
	Headline *Figure
	Rows     []Row
	Emojis   []EmojiCell
	Stats    []Figure
}

// Figures returns every animated number of the slide in render order
func (s *Slide) Figures() []Figure {
	figures := make([]Figure, 0, 1+len(s.Rows)+len(s.Emojis)+len(s.Stats))
	if s.Headline != nil {
		figures = append(figures, *s.Headline)
	}
	for _, row := range s.Rows {
		figures = append(figures, row.Figure)
	}
	for _, cell := range s.Emojis {
		figures = append(figures, cell.Figure)
	}
	figures = append(figures, s.Stats...)
	return figures
}
