package tetris

// Shape identifies one of the seven tetromino variants. The value doubles as
// the piece code stored in save files.
type Shape string

const (
	I Shape = "I"
	J Shape = "J"
	L Shape = "L"
	O Shape = "O"
	S Shape = "S"
	T Shape = "T"
	Z Shape = "Z"
)

// Shapes lists every variant in spawn-table order.
var Shapes = []Shape{I, J, L, O, S, T, Z}

// ParseShape returns the shape for a piece code.
func ParseShape(s string) (Shape, bool) {
	_, ok := shapeTable[Shape(s)]
	return Shape(s), ok
}

// Move is a staged horizontal translation.
type Move int

const (
	NoMove Move = iota
	Left
	Right
)

func (m Move) delta() int {
	switch m {
	case Left:
		return -1
	case Right:
		return 1
	}
	return 0
}

// Rotation is a staged rotation. Pieces only rotate clockwise.
type Rotation int

const (
	NoRotation Rotation = iota
	Clockwise
)

// Coord is a (row, col) position on the board. Row 0 is the top row.
type Coord struct {
	Row, Col int
}

func (c Coord) add(d Coord) Coord { return Coord{c.Row + d.Row, c.Col + d.Col} }

type shapeSpec struct {
	spawn [4]Coord
	color Color
	// deltas[n] moves every block from orientation n-1 into orientation n.
	// They only hold as a relative step from the previous orientation.
	deltas [][4]Coord
}

var shapeTable = map[Shape]shapeSpec{
	/*
		.	Spawn Location			.	Orientations

		.	0 1 2 3 4 5 6 7 8 9		.	0		1
		0	X X X O O O O X X X		.	O O O O		O
		1	X X X X X X X X X X		.			O
		.						.			O
		.						.			O
	*/
	I: {
		spawn: [4]Coord{{0, 3}, {0, 4}, {0, 5}, {0, 6}},
		color: Cyan,
		deltas: [][4]Coord{
			{{1, -1}, {0, 0}, {-1, 1}, {-2, 2}},
			{{-1, 1}, {0, 0}, {1, -1}, {2, -2}},
		},
	},
	/*
		.	Spawn Location			.	Orientations

		.	0 1 2 3 4 5 6 7 8 9		.	0		1	2		3
		0	X X X O O O X X X X		.	O O O		  O	O		O O
		1	X X X X X O X X X X		.	    O		  O	O O O		O
		.						.			O O			O
	*/
	J: {
		spawn: [4]Coord{{0, 3}, {0, 4}, {0, 5}, {1, 5}},
		color: Blue,
		deltas: [][4]Coord{
			{{-1, -1}, {0, 0}, {1, 1}, {2, 0}},
			{{-1, 1}, {0, 0}, {1, -1}, {0, -2}},
			{{1, 1}, {0, 0}, {-1, -1}, {-2, 0}},
			{{1, -1}, {0, 0}, {-1, 1}, {0, 2}},
		},
	},
	/*
		.	Spawn Location			.	Orientations

		.	0 1 2 3 4 5 6 7 8 9		.	0		1	2		3
		0	X X X O O O X X X X		.	O O O		O O	    O		O
		1	X X X O X X X X X X		.	O		  O	O O O		O
		.						.			  O			O O
	*/
	L: {
		spawn: [4]Coord{{0, 5}, {0, 4}, {0, 3}, {1, 3}},
		color: Orange,
		deltas: [][4]Coord{
			{{1, 1}, {0, 0}, {-1, -1}, {0, -2}},
			{{1, -1}, {0, 0}, {-1, 1}, {-2, 0}},
			{{-1, -1}, {0, 0}, {1, 1}, {0, 2}},
			{{-1, 1}, {0, 0}, {1, -1}, {2, 0}},
		},
	},
	/*
		.	Spawn Location			.	Orientations

		.	0 1 2 3 4 5 6 7 8 9		.	0
		0	X X X X O O X X X X		.	O O
		1	X X X X O O X X X X		.	O O
	*/
	O: {
		spawn: [4]Coord{{0, 4}, {0, 5}, {1, 4}, {1, 5}},
		color: Yellow,
	},
	/*
		.	Spawn Location			.	Orientations

		.	0 1 2 3 4 5 6 7 8 9		.	0		1
		0	X X X X O O X X X X		.	  O O		O
		1	X X X O O X X X X X		.	O O		O O
		.						.			  O
	*/
	S: {
		spawn: [4]Coord{{0, 5}, {0, 4}, {1, 4}, {1, 3}},
		color: Green,
		deltas: [][4]Coord{
			{{1, 1}, {0, 0}, {1, -1}, {0, -2}},
			{{-1, -1}, {0, 0}, {-1, 1}, {0, 2}},
		},
	},
	/*
		.	Spawn Location			.	Orientations

		.	0 1 2 3 4 5 6 7 8 9		.	0		1	2		3
		0	X X X O O O X X X X		.	O O O		  O	  O		O
		1	X X X X O X X X X X		.	  O		O O	O O O		O O
		.						.			  O			O
	*/
	T: {
		spawn: [4]Coord{{0, 3}, {0, 4}, {0, 5}, {1, 4}},
		color: Pink,
		deltas: [][4]Coord{
			{{-1, -1}, {0, 0}, {1, 1}, {1, -1}},
			{{-1, 1}, {0, 0}, {1, -1}, {-1, -1}},
			{{1, 1}, {0, 0}, {-1, -1}, {-1, 1}},
			{{1, -1}, {0, 0}, {-1, 1}, {1, 1}},
		},
	},
	/*
		.	Spawn Location			.	Orientations

		.	0 1 2 3 4 5 6 7 8 9		.	0		1
		0	X X X O O X X X X X		.	O O		  O
		1	X X X X O O X X X X		.	  O O		O O
		.						.			O
	*/
	Z: {
		spawn: [4]Coord{{0, 3}, {0, 4}, {1, 4}, {1, 5}},
		color: Red,
		deltas: [][4]Coord{
			{{1, -1}, {0, 0}, {1, 1}, {0, 2}},
			{{-1, 1}, {0, 0}, {-1, -1}, {0, -2}},
		},
	},
}

// Tetromino is the falling piece. Moves and rotations requested by the player
// are staged on the piece and consumed exactly once by the coordinate
// computations.
type Tetromino struct {
	Shape Shape
	Color Color

	blocks      [4]Coord
	translation Move
	rotation    Rotation
	orientation int
}

// NewTetromino returns a piece of the given shape at its spawn location.
// Unknown shapes build a Z, the same fallback used when loading a save file.
func NewTetromino(s Shape) *Tetromino {
	def, ok := shapeTable[s]
	if !ok {
		s, def = Z, shapeTable[Z]
	}
	return &Tetromino{
		Shape:  s,
		Color:  def.color,
		blocks: def.spawn,
	}
}

// Translate stages a translation for the next tick.
func (t *Tetromino) Translate(m Move) { t.translation = m }

// Rotate stages a rotation for the next tick.
func (t *Tetromino) Rotate(r Rotation) { t.rotation = r }

func (t *Tetromino) Translation() Move    { return t.translation }
func (t *Tetromino) Rotation() Rotation   { return t.rotation }
func (t *Tetromino) Orientation() int     { return t.orientation }
func (t *Tetromino) Coords() [4]Coord     { return t.blocks }
func (t *Tetromino) SetCoords(c [4]Coord) { t.blocks = c }

// Orientations returns how many distinct orientations the shape cycles through.
func (t *Tetromino) Orientations() int {
	if n := len(shapeTable[t.Shape].deltas); n > 0 {
		return n
	}
	return 1
}

// TranslatedCoords returns the coordinates after the staged translation and
// clears it.
func (t *Tetromino) TranslatedCoords() [4]Coord {
	d := Coord{0, t.translation.delta()}
	t.translation = NoMove
	return t.shift(d)
}

// FallingCoords returns the coordinates one row down.
func (t *Tetromino) FallingCoords() [4]Coord {
	return t.shift(Coord{1, 0})
}

// RotatingCoords returns the coordinates after the staged rotation and clears
// it. The orientation advances only when a rotation was staged.
func (t *Tetromino) RotatingCoords() [4]Coord {
	deltas := shapeTable[t.Shape].deltas
	if t.rotation == NoRotation || len(deltas) == 0 {
		t.rotation = NoRotation
		return t.blocks
	}
	t.rotation = NoRotation
	t.orientation = (t.orientation + 1) % len(deltas)

	var out [4]Coord
	for i, b := range t.blocks {
		out[i] = b.add(deltas[t.orientation][i])
	}
	return out
}

// IsBlockCoord reports whether (row, col) is one of the piece blocks.
func (t *Tetromino) IsBlockCoord(row, col int) bool {
	for _, b := range t.blocks {
		if b.Row == row && b.Col == col {
			return true
		}
	}
	return false
}

func (t *Tetromino) shift(d Coord) [4]Coord {
	var out [4]Coord
	for i, b := range t.blocks {
		out[i] = b.add(d)
	}
	return out
}

func (t *Tetromino) copy() *Tetromino {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
