package tetris

// Snapshot is a copy of the engine status that's safe to hand over to
// whatever is rendering the game.
type Snapshot struct {
	Stack Stack
	// Piece and Ghost are nil between a lock and the next spawn.
	Piece    *Piece
	Ghost    []Point
	Score    int
	Best     int
	Lines    int
	State    State
	GameOver bool
	Round    string
}

func (e *Engine) Snapshot() *Snapshot {
	return &Snapshot{
		Stack:    e.stack,
		Piece:    e.piece.Copy(),
		Score:    e.score,
		Best:     e.best,
		Lines:    e.lines,
		State:    e.state,
		GameOver: e.state == GameOver,
		Round:    e.round,
		Ghost:    e.Ghost(),
	}
}
