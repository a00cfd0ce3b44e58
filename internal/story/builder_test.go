package story

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/yildizm/instastory/internal/payload"
)

func ranked(counts ...int64) []payload.Ranked {
	out := make([]payload.Ranked, 0, len(counts))
	for i, c := range counts {
		out = append(out, payload.Ranked{Name: fmt.Sprintf("person%d", i+1), Count: c})
	}
	return out
}

func emojis(n int) []payload.EmojiCount {
	out := make([]payload.EmojiCount, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, payload.EmojiCount{Symbol: fmt.Sprintf("e%d", i), Count: int64(n - i)})
	}
	return out
}

func words(n int) []payload.WordCount {
	out := make([]payload.WordCount, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, payload.WordCount{Word: fmt.Sprintf("w%d", i), Count: 1})
	}
	return out
}

func kinds(slides []Slide) []Kind {
	out := make([]Kind, 0, len(slides))
	for _, s := range slides {
		out = append(out, s.Kind)
	}
	return out
}

func TestBuild_ExampleScenario(t *testing.T) {
	p := &payload.Payload{
		TopChatted: []payload.Ranked{{Name: "A", Count: 120}, {Name: "B", Count: 80}, {Name: "C", Count: 5}},
		Midnight:   []payload.Ranked{},
		Reels:      []payload.Ranked{{Name: "D", Count: 10}},
		Emojis:     []payload.EmojiCount{{Symbol: "😂", Count: 30}},
		Words:      words(17),
	}

	slides := Build(p)

	want := []Kind{KindIntro, KindRankedList, KindRankedList, KindEmojiGrid, KindSummary}
	if !reflect.DeepEqual(kinds(slides), want) {
		t.Fatalf("Expected kinds %v, got %v", want, kinds(slides))
	}

	if slides[0].Headline.Value != 205 {
		t.Errorf("Expected intro total 205, got %d", slides[0].Headline.Value)
	}
	if slides[0].Subtitle != "Let's explore your 205 messages" {
		t.Errorf("Unexpected intro subtitle %q", slides[0].Subtitle)
	}

	if slides[1].Metric != MetricTopChatted || len(slides[1].Rows) != 3 {
		t.Errorf("Expected top chatted with 3 rows, got %s with %d", slides[1].Metric, len(slides[1].Rows))
	}
	if slides[1].Headline != nil {
		t.Errorf("Top chatted slide should not carry a total")
	}

	reels := slides[2]
	if reels.Metric != MetricReels || len(reels.Rows) != 1 || reels.Headline.Value != 10 {
		t.Errorf("Unexpected reels slide: %+v", reels)
	}

	if len(slides[3].Emojis) != 1 || slides[3].Emojis[0].Symbol != "😂" {
		t.Errorf("Unexpected emoji slide: %+v", slides[3])
	}

	stats := slides[4].Stats
	wantStats := []int64{3, 205, 1, 17}
	for i, v := range wantStats {
		if stats[i].Value != v {
			t.Errorf("Summary stat %q: expected %d, got %d", stats[i].Label, v, stats[i].Value)
		}
	}
}

func TestBuild_EmptyPayload(t *testing.T) {
	slides := Build(&payload.Payload{})

	want := []Kind{KindIntro, KindRankedList, KindSummary}
	if !reflect.DeepEqual(kinds(slides), want) {
		t.Fatalf("Expected kinds %v, got %v", want, kinds(slides))
	}
	if slides[0].Headline.Value != 0 {
		t.Errorf("Expected intro total 0, got %d", slides[0].Headline.Value)
	}
	if len(slides[1].Rows) != 0 {
		t.Errorf("Expected zero rows, got %d", len(slides[1].Rows))
	}
	for _, stat := range slides[2].Stats {
		if stat.Value != 0 {
			t.Errorf("Expected summary %q to be 0, got %d", stat.Label, stat.Value)
		}
	}
}

func TestBuild_SlideCountInvariant(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		p := &payload.Payload{TopChatted: ranked(3, 2)}
		expected := 3
		if mask&1 != 0 {
			p.Midnight = ranked(1)
			expected++
		}
		if mask&2 != 0 {
			p.Reels = ranked(4, 4)
			expected++
		}
		if mask&4 != 0 {
			p.Emojis = emojis(2)
			expected++
		}

		slides := Build(p)
		if len(slides) != expected {
			t.Errorf("mask %03b: expected %d slides, got %d", mask, expected, len(slides))
		}
		if slides[0].Kind != KindIntro || slides[len(slides)-1].Kind != KindSummary {
			t.Errorf("mask %03b: intro and summary must bracket the story", mask)
		}
	}
}

func TestBuild_FixedOrder(t *testing.T) {
	p := &payload.Payload{
		TopChatted: ranked(1),
		Midnight:   ranked(1),
		Reels:      ranked(1),
		Emojis:     emojis(1),
	}
	slides := Build(p)

	metrics := []Metric{slides[1].Metric, slides[2].Metric, slides[3].Metric}
	want := []Metric{MetricTopChatted, MetricMidnight, MetricReels}
	if !reflect.DeepEqual(metrics, want) {
		t.Errorf("Expected ranked order %v, got %v", want, metrics)
	}
	if slides[4].Kind != KindEmojiGrid {
		t.Errorf("Expected emoji grid before summary, got %s", slides[4].Kind)
	}
}

func TestBuild_Truncation(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		wantRows  int
		wantCells int
	}{
		{"empty", 0, 0, 0},
		{"under cap", 3, 3, 3},
		{"at ranked cap", 5, 5, 5},
		{"over ranked cap", 7, 5, 7},
		{"over emoji cap", 12, 5, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := make([]int64, tt.length)
			for i := range counts {
				counts[i] = int64(100 - i)
			}
			p := &payload.Payload{TopChatted: ranked(counts...), Midnight: ranked(counts...), Emojis: emojis(tt.length)}
			slides := Build(p)

			top := slides[1]
			if len(top.Rows) != tt.wantRows {
				t.Errorf("Expected %d rows, got %d", tt.wantRows, len(top.Rows))
			}
			for i, row := range top.Rows {
				if row.Rank != i+1 || row.Name != p.TopChatted[i].Name {
					t.Errorf("Row %d out of producer order: %+v", i, row)
				}
			}

			if tt.wantCells == 0 {
				return
			}
			grid := slides[len(slides)-2]
			if grid.Kind != KindEmojiGrid || len(grid.Emojis) != tt.wantCells {
				t.Fatalf("Expected emoji grid with %d cells, got %s with %d", tt.wantCells, grid.Kind, len(grid.Emojis))
			}
			for i, cell := range grid.Emojis {
				if cell.Symbol != p.Emojis[i].Symbol {
					t.Errorf("Cell %d out of order: %s", i, cell.Symbol)
				}
			}
		})
	}
}

func TestBuild_TotalsUseEveryEntry(t *testing.T) {
	p := &payload.Payload{
		TopChatted: ranked(10, 9, 8, 7, 6, 5, 4),
		Midnight:   ranked(3, 3, 3, 3, 3, 3),
	}
	slides := Build(p)

	if slides[0].Headline.Value != 49 {
		t.Errorf("Expected total over all 7 chats (49), got %d", slides[0].Headline.Value)
	}
	if slides[2].Headline.Value != 18 {
		t.Errorf("Expected midnight total 18, got %d", slides[2].Headline.Value)
	}
	if slides[3].Stats[0].Value != 7 {
		t.Errorf("Expected 7 active chats, got %d", slides[3].Stats[0].Value)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	p := &payload.Payload{
		TopChatted: ranked(5, 4, 3),
		Reels:      ranked(2),
		Emojis:     emojis(9),
		Words:      words(4),
	}
	first := Build(p)
	second := Build(p)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical sequences for identical payloads")
	}
}

func TestBuild_Delays(t *testing.T) {
	p := &payload.Payload{
		TopChatted: ranked(3, 2, 1),
		Midnight:   ranked(3, 2),
		Emojis:     emojis(3),
	}
	slides := Build(p)

	if d := slides[1].Rows[2].Figure.Delay; d != 300*time.Millisecond {
		t.Errorf("Expected third top-chatted row delay 300ms, got %v", d)
	}
	if d := slides[2].Rows[1].Figure.Delay; d != 200*time.Millisecond {
		t.Errorf("Expected second midnight row delay 200ms, got %v", d)
	}
	if d := slides[3].Emojis[2].Figure.Delay; d != 700*time.Millisecond {
		t.Errorf("Expected third emoji delay 700ms, got %v", d)
	}
	if d := slides[4].Stats[3].Delay; d != 800*time.Millisecond {
		t.Errorf("Expected last summary delay 800ms, got %v", d)
	}
}

func TestSlide_Figures(t *testing.T) {
	p := &payload.Payload{Midnight: ranked(4, 1)}
	slide := Build(p)[2]

	figures := slide.Figures()
	if len(figures) != 3 {
		t.Fatalf("Expected headline plus 2 rows, got %d", len(figures))
	}
	if figures[0].Value != 5 || figures[1].Value != 4 || figures[2].Value != 1 {
		t.Errorf("Unexpected figure order: %+v", figures)
	}
}
