package tetris

import (
	"math/rand/v2"

	"github.com/samber/lo"
)

// Point is a cell coordinate. X grows left to right (0 > 9) and
// Y grows top to bottom (0 > 19). Rows with Y < 0 are above the stack.
type Point struct {
	X, Y int
}

/*
Shapes are defined as offsets from their origin, 0,0. The pivot, the cell
the piece rotates around, is always the second point. It is the origin for
every shape but Z, whose pivot sits one row below it.

.	L		J		I		T		S		Z

-1	. O .		. O .		. . . .		. . .		. . .		. . .
0	. P .		. P .		O P O O		O P O		O P .		. O O
1	. O O		O O .		. . . .		. O .		. O O		O P .
*/
var shapeMap = map[Cell][]Point{
	NoShape: {{0, 0}},
	L:       {{0, -1}, {0, 0}, {0, 1}, {1, 1}},
	J:       {{0, -1}, {0, 0}, {0, 1}, {-1, 1}},
	I:       {{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
	T:       {{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
	S:       {{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
	Z:       {{-1, 1}, {0, 1}, {0, 0}, {1, 0}},
}

// Piece is the falling tetromino: its kind, its shape template and
// the absolute position of every cell in the stack.
type Piece struct {
	Kind  Cell
	shape []Point
	cells []Point
}

// NewPiece returns a piece of the given kind with its origin at 0,0.
// Unknown kinds and Empty fall back to NoShape.
func NewPiece(kind Cell) *Piece {
	shape, ok := shapeMap[kind]
	if !ok {
		kind, shape = NoShape, shapeMap[NoShape]
	}
	p := &Piece{Kind: kind, shape: shape}
	p.Place(0, 0)
	return p
}

// Spawn returns a random piece placed on its spawn location.
// NoShape is never drawn.
func Spawn(r *rand.Rand) *Piece {
	shapes := Shapes()
	p := NewPiece(shapes[r.IntN(len(shapes))])
	p.Place(spawnX, spawnY)
	return p
}

// Place puts the origin of the shape at x,y. See shapeMap.
func (p *Piece) Place(x, y int) {
	p.cells = lo.Map(p.shape, func(s Point, _ int) Point {
		return Point{X: x + s.X, Y: y + s.Y}
	})
}

// Translate shifts every cell by dx,dy. Bounds are not checked, the
// stack has to validate the destination beforehand.
func (p *Piece) Translate(dx, dy int) {
	p.cells = translate(p.cells, dx, dy)
}

// Rotate turns the piece 90 degrees in place around its pivot.
// The rotation is applied only if the result fits in the stack.
// There are no wall kicks: a rejected rotation leaves the piece as it was.
func (p *Piece) Rotate(s *Stack) bool {
	if p.Kind == NoShape || len(p.cells) < 2 {
		return false
	}

	//	x' = px - (y - py)
	//	y' = py + (x - px)
	pivot := p.cells[1]
	rotated := lo.Map(p.cells, func(c Point, _ int) Point {
		return Point{
			X: pivot.X - (c.Y - pivot.Y),
			Y: pivot.Y + (c.X - pivot.X),
		}
	})

	if !s.Fits(rotated) {
		return false
	}
	p.cells = rotated
	return true
}

// Cells returns a copy of the absolute cells of the piece.
func (p *Piece) Cells() []Point {
	if p == nil {
		return nil
	}
	return translate(p.cells, 0, 0)
}

// Copy returns a piece that shares nothing with p. It's nil safe.
func (p *Piece) Copy() *Piece {
	if p == nil {
		return nil
	}
	return &Piece{
		Kind:  p.Kind,
		shape: p.shape,
		cells: p.Cells(),
	}
}

func translate(cells []Point, dx, dy int) []Point {
	return lo.Map(cells, func(c Point, _ int) Point {
		return Point{X: c.X + dx, Y: c.Y + dy}
	})
}
