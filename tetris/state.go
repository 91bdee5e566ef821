package tetris

// State is a copy of the game taken when a piece lands. The landed piece is
// taken off the board and a new piece of the same shape is put back at its
// spawn location, so restoring a State replays the landing from the top.
type State struct {
	Board     Board
	Tetromino *Tetromino
}

func newState(b *Board, landed *Tetromino) *State {
	s := &State{
		Board:     *b,
		Tetromino: NewTetromino(landed.Shape),
	}
	for _, c := range landed.Coords() {
		s.Board[c.Row][c.Col].SetColor(Black)
	}
	for _, c := range s.Tetromino.Coords() {
		s.Board[c.Row][c.Col].SetColor(s.Tetromino.Color)
	}
	return s
}
