package components

import (
	"strings"
	"testing"
)

func TestProgressDots(t *testing.T) {
	dots := NewProgressDots(4, 2).Render()
	if strings.Count(dots, DotActive) != 1 {
		t.Errorf("Expected one active dot, got %q", dots)
	}
	if strings.Count(dots, DotIdle) != 3 {
		t.Errorf("Expected three idle dots, got %q", dots)
	}
	parts := strings.Split(dots, " ")
	if parts[2] != DotActive {
		t.Errorf("Expected third dot to be active, got %q", dots)
	}

	if NewProgressDots(0, 0).Render() != "" {
		t.Error("Expected no dots for an empty story")
	}
}

func TestButton(t *testing.T) {
	b := NewButton("Next", "→")
	if got := b.Render(); got != "Next →" {
		t.Errorf("Expected %q, got %q", "Next →", got)
	}
	if b.Height() != 1 {
		t.Errorf("Expected single-row button, got %d", b.Height())
	}
}

func TestRankedList(t *testing.T) {
	list := NewRankedList([]RankedItem{
		{Rank: 1, Name: "alice", Value: "120", Unit: "messages"},
		{Rank: 2, Name: "a very long display name that will not fit", Value: "80", Unit: "messages"},
	}, 32)

	out := list.Render()
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 rows, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "#1  alice") || !strings.HasSuffix(lines[0], "120 messages") {
		t.Errorf("Unexpected first row %q", lines[0])
	}
	if !strings.Contains(lines[1], "…") {
		t.Errorf("Expected long name to be truncated, got %q", lines[1])
	}
}

func TestRankedList_Empty(t *testing.T) {
	if got := NewRankedList(nil, 30).Render(); got != "Nothing to show yet" {
		t.Errorf("Unexpected empty rendering %q", got)
	}
}

func TestEmojiGrid(t *testing.T) {
	tiles := make([]EmojiTile, 0, 6)
	for i := 0; i < 6; i++ {
		tiles = append(tiles, EmojiTile{Symbol: "x", Value: "1"})
	}
	grid := NewEmojiGrid(tiles)
	grid.Columns = 4

	out := grid.Render()
	if strings.Count(out, "x") != 6 {
		t.Errorf("Expected 6 tiles, got %q", out)
	}
	if NewEmojiGrid(nil).Render() != "" {
		t.Error("Expected empty grid to render nothing")
	}
}

func TestStatsRow(t *testing.T) {
	row := StatsRow([]*StatsCard{
		NewStatsCard("Active Chats", "3"),
		NewStatsCard("Total Messages", "205"),
	}, 2)
	for _, want := range []string{"Active Chats", "Total Messages", "205"} {
		if !strings.Contains(row, want) {
			t.Errorf("Expected %q in %q", want, row)
		}
	}
	if StatsRow(nil, 2) != "" {
		t.Error("Expected empty row")
	}
}
