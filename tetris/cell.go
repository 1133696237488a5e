package tetris

// Cell is the content of a stack cell and the kind of a tetromino.
// The zero value is Empty so a fresh stack is always valid.
type Cell uint8

const (
	Empty   Cell = iota
	NoShape      // single point placeholder, never spawned.
	L
	J
	I
	T
	S
	Z
)

var cellNames = map[Cell]string{
	Empty:   "",
	NoShape: "N",
	L:       "L",
	J:       "J",
	I:       "I",
	T:       "T",
	S:       "S",
	Z:       "Z",
}

func (c Cell) String() string { return cellNames[c] }

// Cells returns every Cell value, Empty included.
func Cells() []Cell { return []Cell{Empty, NoShape, L, J, I, T, S, Z} }

// Shapes returns the kinds a falling piece can be spawned with.
func Shapes() []Cell { return []Cell{L, J, I, T, S, Z} }
