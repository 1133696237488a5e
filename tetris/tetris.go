// Package tetris contains the logic of the game: the stack, the falling
// piece, collisions, line clears and scoring.
//
// The Engine is synchronous and holds no timer. Hosts drive it by calling
// Tick() periodically and Action() on user input, from a single goroutine.
package tetris

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// LineScore is the amount of points awarded for every cleared line.
const LineScore = 100

type State int

const (
	NotStarted State = iota
	Running
	Paused
	GameOver
)

var stateNames = map[State]string{
	NotStarted: "not started",
	Running:    "running",
	Paused:     "paused",
	GameOver:   "game over",
}

func (s State) String() string { return stateNames[s] }

type Action string

const (
	MoveLeft  Action = "left"   // Moves the piece one step to the left.
	MoveRight Action = "right"  // Moves the piece one step to the right.
	MoveDown  Action = "down"   // Moves the piece one step down. Locks it if it can't.
	DropDown  Action = "drop"   // Drops the piece down the stack and locks it.
	Rotate    Action = "rotate" // Rotates the piece around its pivot.
	Pause     Action = "pause"  // Toggles the pause.
)

// Store persists the best score between sessions.
type Store interface {
	Load() (int, error)
	Save(int) error
}

type Options struct {
	Store  Store
	Logger *slog.Logger
	Rand   *rand.Rand
	// OnGameOver receives the last snapshot of a finished round,
	// right before the engine starts a new one.
	OnGameOver func(*Snapshot)
}

type Engine struct {
	stack           Stack
	piece           *Piece
	ghost           []Point
	state           State
	fallingFinished bool
	score           int
	best            int
	lines           int
	round           string

	store      Store
	logger     *slog.Logger
	rand       *rand.Rand
	onGameOver func(*Snapshot)
}

// New returns an engine in the NotStarted state with the best score
// loaded from the store. A store that can't be read counts as no best
// score yet.
func New(o *Options) *Engine {
	if o == nil {
		o = &Options{}
	}
	e := &Engine{
		store:      o.Store,
		logger:     o.Logger,
		rand:       o.Rand,
		onGameOver: o.OnGameOver,
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if e.rand == nil {
		seed := uint64(time.Now().UnixNano())
		e.rand = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if e.store != nil {
		best, err := e.store.Load()
		if err != nil {
			e.logger.Debug("unable to load best score, starting from 0", slog.String("error", err.Error()))
			best = 0
		}
		e.best = max(best, 0)
	}
	return e
}

// Start resets the score and the stack and spawns the first piece.
func (e *Engine) Start() {
	e.score = 0
	e.lines = 0
	e.stack.Clear()
	e.state = Running
	e.round = uuid.NewString()
	e.logger.Debug("round started", slog.String("round", e.round), slog.Int("best", e.best))
	e.newPiece()
}

// Tick advances the game one step. If the last piece has been locked a
// new one is spawned, otherwise the current piece falls one row.
func (e *Engine) Tick() {
	if e.state != Running {
		return
	}
	if e.fallingFinished {
		e.newPiece()
		return
	}
	e.oneLineDown()
}

// Action applies a user command and reports whether it changed the game.
// Commands other than Pause are ignored unless there's a falling piece
// in a running game.
func (e *Engine) Action(a Action) bool {
	if a == Pause {
		return e.togglePause()
	}
	if e.state != Running || e.fallingFinished || e.piece == nil {
		return false
	}

	switch a {
	case MoveLeft:
		return e.TryMove(-1, 0)
	case MoveRight:
		return e.TryMove(1, 0)
	case MoveDown:
		e.oneLineDown()
		return true
	case DropDown:
		for e.TryMove(0, 1) {
		}
		e.lockPiece()
		return true
	case Rotate:
		return e.Rotate()
	}
	return false
}

// TryMove moves the piece by dx,dy if the destination fits in the stack.
// The piece is left untouched otherwise.
func (e *Engine) TryMove(dx, dy int) bool {
	if e.piece == nil || !e.stack.Fits(translate(e.piece.cells, dx, dy)) {
		return false
	}
	e.piece.Translate(dx, dy)
	e.updateGhost()
	return true
}

// Rotate rotates the piece if the rotated position fits in the stack.
func (e *Engine) Rotate() bool {
	if e.piece == nil || !e.piece.Rotate(&e.stack) {
		return false
	}
	e.updateGhost()
	return true
}

func (e *Engine) togglePause() bool {
	switch e.state {
	case Running:
		e.state = Paused
	case Paused:
		e.state = Running
	default:
		return false
	}
	return true
}

func (e *Engine) oneLineDown() {
	if !e.TryMove(0, 1) {
		e.lockPiece()
	}
}

func (e *Engine) newPiece() {
	e.fallingFinished = false
	e.piece = Spawn(e.rand)
	e.updateGhost()

	if !e.stack.Fits(e.piece.cells) {
		e.gameOver()
	}
}

// lockPiece transfers the piece into the stack and clears complete lines.
// The piece may lock partially above the stack, in which case the next
// spawn is the one ending the game.
func (e *Engine) lockPiece() {
	e.stack.lock(e.piece)
	e.piece = nil
	e.ghost = nil
	e.fallingFinished = true
	e.clearFullRows()
}

func (e *Engine) clearFullRows() int {
	cleared := e.stack.clearFullRows()
	if cleared == 0 {
		return 0
	}
	e.lines += cleared
	e.score += cleared * LineScore
	e.logger.Debug("lines cleared", slog.String("round", e.round), slog.Int("lines", cleared), slog.Int("score", e.score))
	e.commitBest()
	return cleared
}

// commitBest updates and persists the best score if it's been beaten.
// Persistence is best effort.
func (e *Engine) commitBest() {
	if e.score <= e.best {
		return
	}
	e.best = e.score
	if e.store == nil {
		return
	}
	if err := e.store.Save(e.best); err != nil {
		e.logger.Debug("unable to save best score", slog.String("error", err.Error()))
	}
}

func (e *Engine) gameOver() {
	e.state = GameOver
	e.commitBest()
	e.logger.Info("game over", slog.String("round", e.round), slog.Int("score", e.score), slog.Int("best", e.best), slog.Int("lines", e.lines))
	if e.onGameOver != nil {
		e.onGameOver(e.Snapshot())
	}
	e.Start()
}

func (e *Engine) updateGhost() {
	if e.piece == nil {
		e.ghost = nil
		return
	}
	e.ghost = e.stack.ghost(e.piece.cells)
}

func (e *Engine) State() State          { return e.state }
func (e *Engine) Score() int            { return e.score }
func (e *Engine) Best() int             { return e.best }
func (e *Engine) Lines() int            { return e.lines }
func (e *Engine) Round() string         { return e.round }
func (e *Engine) FallingFinished() bool { return e.fallingFinished }
func (e *Engine) Stack() Stack          { return e.stack }
func (e *Engine) Piece() *Piece         { return e.piece.Copy() }

// Ghost returns where the piece would land if dropped. It's only a hint
// for the player and plays no part in collisions.
func (e *Engine) Ghost() []Point {
	if e.ghost == nil {
		return nil
	}
	return translate(e.ghost, 0, 0)
}

// Cell returns the content of the stack at x,y. Out of bounds is Empty.
func (e *Engine) Cell(x, y int) Cell {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return Empty
	}
	return e.stack[y][x]
}
