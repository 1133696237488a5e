package client

import (
	"fmt"
	"log/slog"
	"sync"
	"tetrix/tetris"
	"time"

	"github.com/eiannone/keyboard"
	"golang.org/x/time/rate"
)

type clientState int

const (
	lobby clientState = iota
	playing
)

type state struct {
	current clientState
	mu      sync.Mutex
}

func (s *state) get() clientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *state) set(c clientState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
}

type tetrisGame interface {
	Start()
	GetUpdate() <-chan *tetris.Snapshot
	Action(tetris.Action)
	Stop()
}

type renderer interface {
	game(*tetris.Snapshot)
	lobby(lobbyMessage)
}

type Client struct {
	tetris  tetrisGame
	render  renderer
	logger  *slog.Logger
	kbCh    <-chan keyboard.KeyEvent
	state   *state
	limiter *rate.Limiter
}

type Options struct {
	NoGhost bool
	Tick    time.Duration
	Store   tetris.Store
	// KeyRate and KeyBurst throttle the keys forwarded to the game.
	// A zero KeyRate disables the throttling.
	KeyRate  rate.Limit
	KeyBurst int
}

func New(l *slog.Logger, o *Options) (*Client, error) {
	r, err := newRender(l, o.NoGhost)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	var limiter *rate.Limiter
	if o.KeyRate > 0 {
		limiter = rate.NewLimiter(o.KeyRate, max(o.KeyBurst, 1))
	}
	return &Client{
		tetris: tetris.NewGame(&tetris.GameOptions{
			Store:  o.Store,
			Logger: l,
			Tick:   o.Tick,
		}),
		render:  r,
		logger:  l,
		kbCh:    kb,
		state:   &state{current: lobby},
		limiter: limiter,
	}, nil
}

// Start shows the lobby and blocks until the player quits.
func (c *Client) Start() {
	c.render.game(nil)
	c.render.lobby(defaultLobby())
	var wg sync.WaitGroup
	wg.Add(1)
	go c.listenKB(&wg)
	wg.Wait()
}

// Close releases the keyboard.
func (c *Client) Close() {
	if err := keyboard.Close(); err != nil {
		c.logger.Error("unable to close keyboard", slog.String("error", err.Error()))
	}
}

func (c *Client) listenKB(wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		event, ok := <-c.kbCh
		if !ok {
			c.logger.Error("Keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			c.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC {
			if c.state.get() == playing {
				c.tetris.Stop()
			}
			return
		}
		switch c.state.get() {
		case lobby:
			switch event.Rune {
			case 'p':
				c.state.set(playing)
				go c.listenTetris()
			case 'q':
				return
			}
		case playing:
			a := action(event)
			if a == "" {
				continue
			}
			// pause is never throttled, it'd be frustrating to miss it.
			if a != tetris.Pause && !c.allow() {
				c.logger.Debug("key throttled", slog.String("action", string(a)))
				continue
			}
			c.tetris.Action(a)
		}
	}
}

func action(event keyboard.KeyEvent) tetris.Action {
	switch {
	case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
		return tetris.MoveDown
	case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
		return tetris.MoveLeft
	case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
		return tetris.MoveRight
	case event.Key == keyboard.KeyArrowUp || event.Rune == 'w' || event.Rune == 'e':
		return tetris.Rotate
	case event.Key == keyboard.KeySpace:
		return tetris.DropDown
	case event.Rune == 'p':
		return tetris.Pause
	}
	return ""
}

func (c *Client) allow() bool {
	return c.limiter == nil || c.limiter.Allow()
}

func (c *Client) listenTetris() {
	go c.tetris.Start()
	for u := range c.tetris.GetUpdate() {
		c.render.game(u)
		if u.GameOver {
			c.logger.Info("round finished", slog.String("round", u.Round), slog.Int("score", u.Score), slog.Int("best", u.Best))
			c.state.set(lobby)
			return
		}
	}
}
