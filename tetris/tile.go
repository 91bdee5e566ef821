package tetris

import "strings"

// Color is the color a Tile is rendered with. Black is an unlit tile.
type Color int

const (
	Black Color = iota
	Cyan
	Blue
	Orange
	Yellow
	Green
	Pink
	Red
)

// colorCodes maps every color to the character used in save files.
var colorCodes = map[Color]byte{
	Black:  'X',
	Cyan:   'C',
	Blue:   'B',
	Orange: 'O',
	Yellow: 'Y',
	Green:  'G',
	Pink:   'P',
	Red:    'R',
}

// Code returns the one character representation of the color.
func (c Color) Code() byte {
	if b, ok := colorCodes[c]; ok {
		return b
	}
	return colorCodes[Black]
}

// ColorFromCode is the inverse of Code. Unknown characters are Black.
func ColorFromCode(b byte) Color {
	for c, code := range colorCodes {
		if code == b {
			return c
		}
	}
	return Black
}

// Tile is a single cell of the board.
type Tile struct {
	color Color
}

func (t *Tile) SetColor(c Color) { t.color = c }
func (t Tile) Color() Color      { return t.color }
func (t Tile) IsLit() bool       { return t.color != Black }

// CountLit returns how many tiles of the row are lit.
func CountLit(row [Cols]Tile) int {
	var n int
	for _, t := range row {
		if t.IsLit() {
			n++
		}
	}
	return n
}

// RowToString encodes a row with one character per column.
func RowToString(row [Cols]Tile) string {
	var sb strings.Builder
	sb.Grow(Cols)
	for _, t := range row {
		sb.WriteByte(t.color.Code())
	}
	return sb.String()
}

// StringToRow decodes a row encoded by RowToString.
// Unknown or missing characters decode to unlit tiles.
func StringToRow(s string) [Cols]Tile {
	var row [Cols]Tile
	for i := range row {
		if i < len(s) {
			row[i].color = ColorFromCode(s[i])
		}
	}
	return row
}
