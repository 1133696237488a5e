package tetris

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultTick is the time it takes the piece to fall one row.
const DefaultTick = 400 * time.Millisecond

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	t := &wrappedTicker{ticker: time.NewTicker(d)}
	t.Stop()
	return t
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

// Game drives an Engine from a ticker and a stream of user actions.
// The engine is only ever touched by the listen goroutine.
type Game struct {
	updateCh chan *Snapshot
	actionCh chan Action
	doneCh   chan bool
	engine   *Engine
	ticker   Ticker
	tick     time.Duration
	logger   *slog.Logger
	over     *Snapshot

	// quitCh is closed when listen returns. It's nil before the first Start.
	quitCh chan struct{}
	mu     sync.Mutex
}

type GameOptions struct {
	Store  Store
	Logger *slog.Logger
	// Tick defaults to DefaultTick.
	Tick time.Duration
}

func NewGame(o *GameOptions) *Game {
	if o == nil {
		o = &GameOptions{}
	}
	tick := o.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	return NewConfigurableGame(newWrappedTicker(tick), tick, o.Store, o.Logger)
}

func NewConfigurableGame(ticker Ticker, tick time.Duration, store Store, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	g := &Game{
		updateCh: make(chan *Snapshot),
		actionCh: make(chan Action),
		doneCh:   make(chan bool, 1),
		ticker:   ticker,
		tick:     tick,
		logger:   logger,
	}
	g.engine = New(&Options{
		Store:      store,
		Logger:     logger,
		OnGameOver: func(s *Snapshot) { g.over = s },
	})
	return g
}

// Start begins a new round and blocks until the first update is read.
func (g *Game) Start() {
	// a Stop() that arrived with no round running mustn't end this one.
	select {
	case <-g.doneCh:
	default:
	}
	quitCh := make(chan struct{})
	g.mu.Lock()
	g.quitCh = quitCh
	g.mu.Unlock()

	g.over = nil
	g.engine.Start()
	g.updateCh <- g.engine.Snapshot()
	go g.listen(quitCh)
}

func (g *Game) Stop() {
	g.ticker.Stop()
	select {
	case g.doneCh <- true:
	default:
	}
}

// Action sends a to the running round. It's dropped if there's none.
func (g *Game) Action(a Action) {
	g.mu.Lock()
	quitCh := g.quitCh
	g.mu.Unlock()
	if quitCh == nil {
		return
	}
	select {
	case g.actionCh <- a:
	case <-quitCh:
	}
}

func (g *Game) GetUpdate() <-chan *Snapshot {
	return g.updateCh
}

func (g *Game) listen(quitCh chan struct{}) {
	defer close(quitCh)
	g.ticker.Reset(g.tick)
	for {
		select {
		case <-g.ticker.C():
			g.engine.Tick()
		case a := <-g.actionCh:
			if !g.engine.Action(a) {
				continue
			}
		case <-g.doneCh:
			return
		}

		if g.over != nil {
			// the engine has already reset itself for the next round,
			// we publish the final state of the one that just ended.
			g.ticker.Stop()
			g.logger.Debug("round finished", slog.String("round", g.over.Round), slog.Int("score", g.over.Score))
			g.updateCh <- g.over
			return
		}
		g.updateCh <- g.engine.Snapshot()
	}
}
