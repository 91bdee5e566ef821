package tetris

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestSave(t *testing.T) {
	tetris := NewTestTetris(T)
	tetris.Board[19][0].SetColor(Green)
	for range 3 {
		tetris.Tick()
	}

	var buf bytes.Buffer
	if err := tetris.Save(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != Rows+1 {
		t.Fatalf("expected %d lines, got %d", Rows+1, len(lines))
	}
	// the falling piece is saved at its spawn location.
	want := map[int]string{
		0:    "XXXPPPXXXX",
		1:    "XXXXPXXXXX",
		4:    "XXXXXXXXXX",
		19:   "GXXXXXXXXX",
		Rows: "T",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d: expected %q, got %q", i, w, lines[i])
		}
	}
}

func TestSaveLoad(t *testing.T) {
	for _, s := range Shapes {
		t.Run(string(s), func(t *testing.T) {
			t.Parallel()
			saved := NewTestTetris(s)
			lightRow(&saved.Board, 19, "OOXOOOOXOO", Orange)
			lightRow(&saved.Board, 18, "XOXXXXXXXX", Cyan)
			saved.Tick()

			var buf bytes.Buffer
			if err := saved.Save(&buf); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			loaded := NewTestTetris(I)
			loaded.pushState()
			loaded.Pause()
			if err := loaded.Load(&buf); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := NewTestTetris(s)
			lightRow(&want.Board, 19, "OOXOOOOXOO", Orange)
			lightRow(&want.Board, 18, "XOXXXXXXXX", Cyan)
			if loaded.Board != want.Board {
				t.Errorf("expected\n%s\ngot\n%s", want.Board.String(), loaded.Board.String())
			}
			if loaded.Tetromino.Shape != s {
				t.Errorf("expected a %s, got %s", s, loaded.Tetromino.Shape)
			}
			if loaded.Tetromino.Coords() != NewTetromino(s).Coords() {
				t.Errorf("expected the piece at its spawn location, got %v", loaded.Tetromino.Coords())
			}
			if loaded.CanUndo() || loaded.Paused() || loaded.IsGameOver() {
				t.Errorf("expected a fresh game")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	empty := strings.Repeat("XXXXXXXXXX\n", Rows)

	tests := []struct {
		name      string
		input     string
		wantErr   error
		wantShape Shape
		wantOver  bool
	}{
		{
			name:      "unknown piece loads a Z",
			input:     empty + "Q\n",
			wantShape: Z,
		},
		{
			name:      "only the first character of the piece is read",
			input:     empty + "SZ\n",
			wantShape: S,
		},
		{
			name:      "missing trailing newline",
			input:     empty + "O",
			wantShape: O,
		},
		{
			name:    "missing rows",
			input:   strings.Repeat("XXXXXXXXXX\n", 5),
			wantErr: io.ErrUnexpectedEOF,
		},
		{
			name:    "missing piece",
			input:   empty,
			wantErr: io.ErrUnexpectedEOF,
		},
		{
			name:      "piece can't fall",
			input:     "XXXPPPXXXX\nXXXXPXXXXX\nRRRRRRRRRX\n" + strings.Repeat("XXXXXXXXXX\n", Rows-3) + "T\n",
			wantShape: T,
			wantOver:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tetris := NewTestTetris(J)
			before := tetris.Board
			err := tetris.Load(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				if tetris.Board != before || tetris.Tetromino.Shape != J {
					t.Errorf("expected a failed load to leave the game untouched")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tetris.Tetromino.Shape != tt.wantShape {
				t.Errorf("expected a %s, got %s", tt.wantShape, tetris.Tetromino.Shape)
			}
			if tetris.IsGameOver() != tt.wantOver {
				t.Errorf("expected game over to be %v", tt.wantOver)
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSaveError(t *testing.T) {
	tetris := NewTestTetris(O)
	if err := tetris.Save(failingWriter{}); err == nil {
		t.Errorf("expected an error")
	}
}
