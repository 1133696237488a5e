package tetris

import "github.com/samber/lo"

const (
	Width  = 10
	Height = 20

	spawnX = Width/2 - 1
	spawnY = 0
)

// Stack is the playfield. 20 rows x 10 columns.
// Rows are 0 > 19 top to bottom and represent the Y axis.
// Columns are 0 > 9 left to right and represent the X axis.
type Stack [Height][Width]Cell

// Fits reports whether every cell is inside the side walls, above the
// floor and, when it is on the visible stack, over an Empty cell.
// Cells above the stack (Y < 0) are never checked against it.
//
//	.	0 1 2 3 4 5 6 7 8 9
//	-1	. . . . O . . . . .	<- allowed
//	0	. . . . P . . . . .
//	1	. . . . O O . . . .
//	..
//	19	X X X X X X X X X X
func (s *Stack) Fits(cells []Point) bool {
	for _, c := range cells {
		if c.X < 0 || c.X >= Width || c.Y >= Height {
			return false
		}
		if c.Y >= 0 && s[c.Y][c.X] != Empty {
			return false
		}
	}
	return true
}

// Clear sets every cell to Empty.
func (s *Stack) Clear() {
	*s = Stack{}
}

// lock writes the piece kind into the stack. Cells above the top of the
// stack have nowhere to go and are dropped.
func (s *Stack) lock(p *Piece) {
	for _, c := range p.cells {
		if c.Y < 0 || c.Y >= Height || c.X < 0 || c.X >= Width {
			continue
		}
		s[c.Y][c.X] = p.Kind
	}
}

// clearFullRows removes every complete row and returns how many went.
// Rows are scanned bottom to top; after a removal the same index is
// tested again since the row above has moved into it.
func (s *Stack) clearFullRows() int {
	var cleared int
	for y := Height - 1; y >= 0; {
		if !s.isFull(y) {
			y--
			continue
		}
		s.removeRow(y)
		cleared++
	}
	return cleared
}

func (s *Stack) isFull(y int) bool {
	return lo.EveryBy(s[y][:], func(c Cell) bool { return c != Empty })
}

func (s *Stack) removeRow(row int) {
	for y := row; y > 0; y-- {
		s[y] = s[y-1]
	}
	s[0] = [Width]Cell{}
}

// ghost drops a copy of the cells until they can't go any lower.
func (s *Stack) ghost(cells []Point) []Point {
	if len(cells) == 0 {
		return nil
	}
	g := translate(cells, 0, 0)
	for {
		next := translate(g, 0, 1)
		if !s.Fits(next) {
			return g
		}
		g = next
	}
}
