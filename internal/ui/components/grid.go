package components

import "github.com/charmbracelet/lipgloss"

// EmojiTile is one cell of the emoji grid
type EmojiTile struct {
	Symbol string
	Value  string
}

// EmojiGrid lays out emoji tiles in fixed-width rows
type EmojiGrid struct {
	Tiles   []EmojiTile
	Columns int

	TileStyle  lipgloss.Style
	ValueStyle lipgloss.Style
}

// NewEmojiGrid creates a grid with four tiles per row
func NewEmojiGrid(tiles []EmojiTile) *EmojiGrid {
	return &EmojiGrid{Tiles: tiles, Columns: 4}
}

// Render renders the grid
func (g *EmojiGrid) Render() string {
	if len(g.Tiles) == 0 {
		return ""
	}
	columns := g.Columns
	if columns < 1 {
		columns = 1
	}

	var rows []string
	for start := 0; start < len(g.Tiles); start += columns {
		end := min(start+columns, len(g.Tiles))
		cells := make([]string, 0, end-start)
		for _, tile := range g.Tiles[start:end] {
			content := lipgloss.JoinVertical(lipgloss.Center, tile.Symbol, g.ValueStyle.Render(tile.Value))
			cells = append(cells, g.TileStyle.Render(content))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
