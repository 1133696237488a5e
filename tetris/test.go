package tetris

import (
	"sync"
	"time"
)

// MockTicker is a mock implementation of the ticker interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }
func (m *MockTicker) Tick()               { m.ch <- time.Now() }
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}
func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
}
func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}
func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// NewTestEngine returns a running engine with an empty stack and a piece
// of the given kind on its spawn location.
func NewTestEngine(kind Cell, store Store) *Engine {
	e := New(&Options{Store: store})
	e.Start()
	e.SetPiece(kind, spawnX, spawnY)
	return e
}

// NewTestSnapshot returns the snapshot of a fresh test engine.
func NewTestSnapshot(kind Cell) *Snapshot {
	return NewTestEngine(kind, nil).Snapshot()
}

// SetPiece replaces the falling piece with one of the given kind with
// its origin at x,y. It's meant for tests and demos.
func (e *Engine) SetPiece(kind Cell, x, y int) {
	p := NewPiece(kind)
	p.Place(x, y)
	e.piece = p
	e.fallingFinished = false
	e.updateGhost()
}

// SetCell writes c into the stack at x,y. It's meant for tests and demos.
func (e *Engine) SetCell(x, y int, c Cell) {
	e.stack[y][x] = c
}
