package tetris

import "testing"

func TestNewTetromino(t *testing.T) {
	tests := []struct {
		shape     Shape
		wantShape Shape
		wantColor Color
		wantCoord [4]Coord
	}{
		{I, I, Cyan, [4]Coord{{0, 3}, {0, 4}, {0, 5}, {0, 6}}},
		{J, J, Blue, [4]Coord{{0, 3}, {0, 4}, {0, 5}, {1, 5}}},
		{L, L, Orange, [4]Coord{{0, 5}, {0, 4}, {0, 3}, {1, 3}}},
		{O, O, Yellow, [4]Coord{{0, 4}, {0, 5}, {1, 4}, {1, 5}}},
		{S, S, Green, [4]Coord{{0, 5}, {0, 4}, {1, 4}, {1, 3}}},
		{T, T, Pink, [4]Coord{{0, 3}, {0, 4}, {0, 5}, {1, 4}}},
		{Z, Z, Red, [4]Coord{{0, 3}, {0, 4}, {1, 4}, {1, 5}}},
		{"Q", Z, Red, [4]Coord{{0, 3}, {0, 4}, {1, 4}, {1, 5}}},
	}

	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			t.Parallel()
			tm := NewTetromino(tt.shape)
			if tm.Shape != tt.wantShape {
				t.Errorf("expected shape %s, got %s", tt.wantShape, tm.Shape)
			}
			if tm.Color != tt.wantColor {
				t.Errorf("expected color %d, got %d", tt.wantColor, tm.Color)
			}
			if tm.Coords() != tt.wantCoord {
				t.Errorf("expected coords %v, got %v", tt.wantCoord, tm.Coords())
			}
			if tm.Translation() != NoMove || tm.Rotation() != NoRotation || tm.Orientation() != 0 {
				t.Errorf("expected a new piece with no staged input")
			}
		})
	}
}

func TestParseShape(t *testing.T) {
	for _, s := range Shapes {
		if got, ok := ParseShape(string(s)); !ok || got != s {
			t.Errorf("expected %s to parse, got %s, %v", s, got, ok)
		}
	}
	if _, ok := ParseShape("X"); ok {
		t.Errorf("expected X not to parse")
	}
}

func TestTranslatedCoords(t *testing.T) {
	tests := []struct {
		name  string
		move  Move
		shift int
	}{
		{"no move", NoMove, 0},
		{"left", Left, -1},
		{"right", Right, 1},
	}

	for _, s := range Shapes {
		for _, tt := range tests {
			t.Run(string(s)+" "+tt.name, func(t *testing.T) {
				t.Parallel()
				tm := NewTetromino(s)
				want := tm.Coords()
				for i := range want {
					want[i].Col += tt.shift
				}
				tm.Translate(tt.move)
				if got := tm.TranslatedCoords(); got != want {
					t.Errorf("expected %v, got %v", want, got)
				}
				if tm.Translation() != NoMove {
					t.Errorf("expected the translation to be consumed")
				}
				// the blocks didn't move so a second read is the current location.
				if got := tm.TranslatedCoords(); got != tm.Coords() {
					t.Errorf("expected %v after consuming the move, got %v", tm.Coords(), got)
				}
			})
		}
	}

	// T spawns as
	// ...XXX....
	// ....X.....
	tm := NewTetromino(T)
	tm.Translate(Left)
	if got, want := tm.TranslatedCoords(), [4]Coord{{0, 2}, {0, 3}, {0, 4}, {1, 3}}; got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFallingCoords(t *testing.T) {
	tm := NewTetromino(S)
	want := [4]Coord{{1, 5}, {1, 4}, {2, 4}, {2, 3}}
	if got := tm.FallingCoords(); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := tm.FallingCoords(); got != want {
		t.Errorf("expected FallingCoords not to change the piece, got %v", got)
	}
}

func TestRotationCycle(t *testing.T) {
	for _, s := range Shapes {
		t.Run(string(s), func(t *testing.T) {
			t.Parallel()
			tm := NewTetromino(s)
			spawn := tm.Coords()
			seen := map[[4]Coord]bool{}
			for range tm.Orientations() {
				seen[tm.Coords()] = true
				tm.Rotate(Clockwise)
				tm.SetCoords(tm.RotatingCoords())
				if tm.Rotation() != NoRotation {
					t.Fatalf("expected the rotation to be consumed")
				}
			}
			if tm.Coords() != spawn {
				t.Errorf("expected %v after a full cycle, got %v", spawn, tm.Coords())
			}
			if tm.Orientation() != 0 {
				t.Errorf("expected orientation 0 after a full cycle, got %d", tm.Orientation())
			}
			if len(seen) != tm.Orientations() {
				t.Errorf("expected %d distinct orientations, got %d", tm.Orientations(), len(seen))
			}
		})
	}
}

func TestRotatingCoords(t *testing.T) {
	// 	.	0 1 2 3 4 5		.	0 1 2 3 4 5
	// 	-1				.	        O
	// 	0	      O O O		.	      O O
	// 	1	        O		.	        O
	tm := NewTetromino(T)
	tm.Rotate(Clockwise)
	want := [4]Coord{{-1, 4}, {0, 4}, {1, 4}, {0, 3}}
	if got := tm.RotatingCoords(); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
	if tm.Orientation() != 1 {
		t.Errorf("expected orientation 1, got %d", tm.Orientation())
	}
}

func TestRotatingCoordsO(t *testing.T) {
	tm := NewTetromino(O)
	tm.Rotate(Clockwise)
	if got := tm.RotatingCoords(); got != tm.Coords() {
		t.Errorf("expected O not to change when rotating, got %v", got)
	}
	if tm.Rotation() != NoRotation {
		t.Errorf("expected the rotation to be consumed")
	}
	if tm.Orientation() != 0 {
		t.Errorf("expected O to stay in orientation 0, got %d", tm.Orientation())
	}
}

func TestRotatingCoordsWithoutRotation(t *testing.T) {
	tm := NewTetromino(J)
	if got := tm.RotatingCoords(); got != tm.Coords() {
		t.Errorf("expected %v, got %v", tm.Coords(), got)
	}
	if tm.Orientation() != 0 {
		t.Errorf("expected orientation to stay at 0, got %d", tm.Orientation())
	}
}

func TestIsBlockCoord(t *testing.T) {
	tm := NewTetromino(Z)
	if !tm.IsBlockCoord(1, 5) {
		t.Errorf("expected (1,5) to be a block")
	}
	if tm.IsBlockCoord(0, 5) {
		t.Errorf("expected (0,5) not to be a block")
	}
}
