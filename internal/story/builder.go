package story

import (
	"fmt"
	"time"

	"github.com/yildizm/instastory/internal/counter"
	"github.com/yildizm/instastory/internal/payload"
)

const (
	// MaxRankedRows caps every ranked list slide
	MaxRankedRows = 5
	// MaxEmojiCells caps the emoji grid slide
	MaxEmojiCells = 8
)

// Animation offsets of the figures on each slide
const (
	topChattedRowDelay = 150 * time.Millisecond
	nightRowDelay      = 200 * time.Millisecond
	emojiGridDelay     = 500 * time.Millisecond
	emojiCellDelay     = 100 * time.Millisecond
	summaryStatDelay   = 200 * time.Millisecond
)

// Totals are the aggregates derived from a payload
type Totals struct {
	Messages int64
	Midnight int64
	Reels    int64
}

// ComputeTotals sums the per-person counts of each ranked sequence
func ComputeTotals(p *payload.Payload) Totals {
	return Totals{
		Messages: sum(p.TopChatted),
		Midnight: sum(p.Midnight),
		Reels:    sum(p.Reels),
	}
}

// Build derives the ordered slide sequence for a payload:
// Intro, TopChatted, [Midnight], [Reels], [EmojiGrid], Summary.
// It has no side effects and returns the same sequence for the same payload.
func Build(p *payload.Payload) []Slide {
	totals := ComputeTotals(p)

	slides := make([]Slide, 0, 6)
	slides = append(slides, introSlide(totals.Messages))
	slides = append(slides, rankedSlide(MetricTopChatted, p.TopChatted, nil, topChattedRowDelay))

	if len(p.Midnight) > 0 {
		headline := &Figure{Label: "late night messages", Value: totals.Midnight}
		slides = append(slides, rankedSlide(MetricMidnight, p.Midnight, headline, nightRowDelay))
	}
	if len(p.Reels) > 0 {
		headline := &Figure{Label: "reels shared", Value: totals.Reels}
		slides = append(slides, rankedSlide(MetricReels, p.Reels, headline, nightRowDelay))
	}
	if len(p.Emojis) > 0 {
		slides = append(slides, emojiSlide(p.Emojis))
	}

	slides = append(slides, summarySlide(p, totals.Messages))
	return slides
}

func introSlide(totalMessages int64) Slide {
	return Slide{
		Kind:     KindIntro,
		Title:    "Your Instagram Story",
		Subtitle: fmt.Sprintf("Let's explore your %s messages", counter.Format(totalMessages)),
		Headline: &Figure{Label: "total messages analyzed", Value: totalMessages},
	}
}

func rankedSlide(metric Metric, entries []payload.Ranked, headline *Figure, step time.Duration) Slide {
	n := min(len(entries), MaxRankedRows)
	rows := make([]Row, 0, n)
	for i, entry := range entries[:n] {
		delay := time.Duration(i) * step
		rows = append(rows, Row{
			Rank:   i + 1,
			Name:   entry.Name,
			Figure: Figure{Label: "messages", Value: entry.Count, Delay: delay},
		})
	}

	title, subtitle := rankedCopy(metric)
	return Slide{
		Kind:     KindRankedList,
		Metric:   metric,
		Title:    title,
		Subtitle: subtitle,
		Headline: headline,
		Rows:     rows,
	}
}

func rankedCopy(metric Metric) (string, string) {
	switch metric {
	case MetricMidnight:
		return "The Night Owls", "Who stays up chatting with you after midnight?"
	case MetricReels:
		return "The Reel Sharers", "Who spams you with the most reels that you probably don't watch?"
	default:
		return "Your Closest Connections", "The people who matter most in your DMs"
	}
}

func emojiSlide(emojis []payload.EmojiCount) Slide {
	n := min(len(emojis), MaxEmojiCells)
	cells := make([]EmojiCell, 0, n)
	for i, e := range emojis[:n] {
		cells = append(cells, EmojiCell{
			Symbol: e.Symbol,
			Figure: Figure{Value: e.Count, Delay: emojiGridDelay + time.Duration(i)*emojiCellDelay},
		})
	}
	return Slide{
		Kind:     KindEmojiGrid,
		Title:    "Your Emoji DNA",
		Subtitle: "The emotions you share most",
		Emojis:   cells,
	}
}

func summarySlide(p *payload.Payload, totalMessages int64) Slide {
	stats := []Figure{
		{Label: "Active Chats", Value: int64(len(p.TopChatted))},
		{Label: "Total Messages", Value: totalMessages},
		{Label: "Unique Emojis", Value: int64(len(p.Emojis))},
		{Label: "Unique Words", Value: int64(len(p.Words))},
	}
	for i := range stats {
		stats[i].Delay = time.Duration(i+1) * summaryStatDelay
	}
	return Slide{
		Kind:     KindSummary,
		Title:    "Your Instagram Journey",
		Subtitle: "Thanks for exploring your conversation patterns",
		Stats:    stats,
	}
}

func sum(entries []payload.Ranked) int64 {
	var total int64
	for _, e := range entries {
		total += e.Count
	}
	return total
}
