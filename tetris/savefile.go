package tetris

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Save writes the game in the save file format: one line per board row with
// one color code per column, then a line with the falling piece's shape.
//
// The piece is saved at its spawn location, the same way a landing is
// recorded for undo, so its position mid-fall is not kept.
func (t *Tetris) Save(w io.Writer) error {
	s := newState(&t.Board, t.Tetromino)
	bw := bufio.NewWriter(w)
	for i := range s.Board {
		fmt.Fprintln(bw, RowToString(s.Board[i]))
	}
	fmt.Fprintln(bw, string(s.Tetromino.Shape))
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}
	return nil
}

// Load replaces the board and falling piece with a save written by Save.
// Nothing changes unless the whole save could be read. Unknown color codes
// are unlit tiles and an unknown shape is a Z.
func (t *Tetris) Load(r io.Reader) error {
	var b Board
	sc := bufio.NewScanner(r)
	for i := range b {
		if !sc.Scan() {
			return scanErr(sc, fmt.Sprintf("row %d", i))
		}
		b[i] = StringToRow(sc.Text())
	}
	if !sc.Scan() {
		return scanErr(sc, "piece")
	}
	shape := strings.TrimSpace(sc.Text())
	if len(shape) > 1 {
		shape = shape[:1]
	}

	t.Board = b
	t.Tetromino = NewTetromino(Shape(shape))
	t.history = nil
	t.paused = false
	// the saved board already has the piece painted at its spawn location.
	t.gameOver = t.stopsFalling()
	if !t.gameOver {
		t.paint(t.Tetromino.Color)
	}
	return nil
}

func scanErr(sc *bufio.Scanner, what string) error {
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", what, err)
	}
	return fmt.Errorf("failed to read %s: %w", what, io.ErrUnexpectedEOF)
}
