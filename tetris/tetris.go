// Package tetris contains the logic of the game: the board, the falling
// pieces, the per-frame state machine and the undo history.
package tetris

import (
	"math/rand/v2"
	"strings"
)

const (
	Rows = 20
	Cols = 10

	// MaxHistory is how many landings can be undone.
	MaxHistory = 5
)

// Board is the playfield. 20 rows x 10 columns.
// Rows are 0 > 19 top to bottom, columns are 0 > 9 left to right.
// Copying a Board copies every tile.
type Board [Rows][Cols]Tile

func (b *Board) String() string {
	rows := make([]string, Rows)
	for i := range b {
		rows[i] = RowToString(b[i])
	}
	return strings.Join(rows, "\n")
}

// Tetris is the game engine. It owns the board, the falling piece and the
// undo history. It is not safe for concurrent use; Game serializes access.
type Tetris struct {
	Board     Board
	Tetromino *Tetromino

	history  []*State
	paused   bool
	gameOver bool
	rand     *rand.Rand
}

// New starts a game with a random falling piece painted on an empty board.
// A nil r uses the default random source.
func New(r *rand.Rand) *Tetris {
	t := &Tetris{rand: r}
	t.spawn()
	return t
}

func (t *Tetris) Paused() bool     { return t.paused }
func (t *Tetris) Pause()           { t.paused = true }
func (t *Tetris) Unpause()         { t.paused = false }
func (t *Tetris) IsGameOver() bool { return t.gameOver }
func (t *Tetris) CanUndo() bool    { return len(t.history) > 0 }

// Snapshot returns a copy of the board that's safe to hand to observers.
func (t *Tetris) Snapshot() *Board {
	b := t.Board
	return &b
}

// Tick advances the game one frame. It returns false when the frame didn't
// pass because the game is paused or over.
//
//  1. If the piece can't fall any further the landing is recorded for undo,
//     completed rows are removed and a new piece is spawned.
//  2. Otherwise the staged translation and rotation are applied when they
//     keep the piece inside the board and off other blocks, and the piece
//     falls one row.
func (t *Tetris) Tick() bool {
	if t.paused || t.gameOver {
		return false
	}

	if t.stopsFalling() {
		t.pushState()
		t.clearLines()
		t.spawn()
		return true
	}

	t.paint(Black)
	if t.isOutOfBounds() || t.isCollision() {
		t.Tetromino.Translate(NoMove)
		t.Tetromino.Rotate(NoRotation)
	} else {
		t.Tetromino.SetCoords(t.Tetromino.RotatingCoords())
		t.Tetromino.SetCoords(t.Tetromino.TranslatedCoords())
	}
	t.Tetromino.SetCoords(t.Tetromino.FallingCoords())
	t.paint(t.Tetromino.Color)
	return true
}

// Undo restores the board and piece recorded at the latest landing.
func (t *Tetris) Undo() bool {
	if len(t.history) == 0 || t.gameOver {
		return false
	}
	last := t.history[len(t.history)-1]
	t.history = t.history[:len(t.history)-1]

	t.Board = last.Board
	t.Tetromino = last.Tetromino.copy()
	return true
}

// MakeFailScreen blackens the board and writes FAIL on it.
func (t *Tetris) MakeFailScreen() {
	t.Board = Board{}
	for _, g := range failGlyph {
		t.Board[g.Row][g.Col].SetColor(g.color)
	}
}

var failGlyph = []struct {
	Coord
	color Color
}{
	// F
	{Coord{1, 4}, Blue}, {Coord{1, 5}, Blue}, {Coord{2, 4}, Blue}, {Coord{3, 4}, Blue},
	// A
	{Coord{5, 3}, Pink}, {Coord{6, 3}, Pink}, {Coord{6, 4}, Pink}, {Coord{7, 3}, Pink},
	{Coord{5, 4}, Orange}, {Coord{5, 5}, Orange}, {Coord{6, 5}, Orange}, {Coord{7, 5}, Orange},
	// I
	{Coord{9, 4}, Cyan}, {Coord{10, 4}, Cyan}, {Coord{11, 4}, Cyan}, {Coord{12, 4}, Cyan},
	// L
	{Coord{14, 4}, Orange}, {Coord{15, 4}, Orange}, {Coord{16, 4}, Orange}, {Coord{16, 5}, Orange},
}

// stopsFalling reports if the cells one row below the piece are past the
// bottom or lit by something other than the piece itself.
func (t *Tetris) stopsFalling() bool {
	for _, c := range t.Tetromino.FallingCoords() {
		if c.Row >= Rows {
			return true
		}
		if t.Board[c.Row][c.Col].IsLit() && !t.Tetromino.IsBlockCoord(c.Row, c.Col) {
			return true
		}
	}
	return false
}

// simulate returns where the staged input would put the piece after this
// frame's fall. It works on a copy so the piece and its staged input are
// left untouched.
func (t *Tetris) simulate() [4]Coord {
	scratch := t.Tetromino.copy()
	scratch.SetCoords(scratch.FallingCoords())
	scratch.SetCoords(scratch.TranslatedCoords())
	return scratch.RotatingCoords()
}

// isOutOfBounds must run before isCollision, which indexes the board with the
// simulated coordinates.
func (t *Tetris) isOutOfBounds() bool {
	for _, c := range t.simulate() {
		if !inBounds(c) {
			return true
		}
	}
	return false
}

// isCollision expects the piece to be unlit on the board.
func (t *Tetris) isCollision() bool {
	for _, c := range t.simulate() {
		if t.Board[c.Row][c.Col].IsLit() {
			return true
		}
	}
	return false
}

func inBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Cols
}

func (t *Tetris) paint(c Color) {
	for _, b := range t.Tetromino.Coords() {
		t.Board[b.Row][b.Col].SetColor(c)
	}
}

// pushState records the landing, evicting the oldest entry when full.
func (t *Tetris) pushState() {
	if len(t.history) == MaxHistory {
		t.history = t.history[1:]
	}
	t.history = append(t.history, newState(&t.Board, t.Tetromino))
}

// clearLines removes full rows and drops the rows above them. The scan goes
// bottom up and stops at the first empty row since nothing can be above it.
func (t *Tetris) clearLines() {
	var cleared int
	for row := Rows - 1; row >= 0; row-- {
		lit := CountLit(t.Board[row])
		if lit == 0 {
			return
		}
		if lit == Cols {
			t.Board[row] = [Cols]Tile{}
			cleared++
			continue
		}
		if cleared > 0 {
			t.Board[row+cleared] = t.Board[row]
			t.Board[row] = [Cols]Tile{}
		}
	}
}

// spawn replaces the falling piece with a random one. The game is over when
// the new piece lands on lit tiles or can't fall from its spawn location.
func (t *Tetris) spawn() {
	t.Tetromino = NewTetromino(t.randomShape())
	t.checkGameOver()
	if !t.gameOver {
		t.paint(t.Tetromino.Color)
	}
}

func (t *Tetris) checkGameOver() {
	for _, c := range t.Tetromino.Coords() {
		if t.Board[c.Row][c.Col].IsLit() {
			t.gameOver = true
			return
		}
	}
	t.gameOver = t.stopsFalling()
}

func (t *Tetris) randomShape() Shape {
	if t.rand != nil {
		return Shapes[t.rand.IntN(len(Shapes))]
	}
	return Shapes[rand.IntN(len(Shapes))]
}
