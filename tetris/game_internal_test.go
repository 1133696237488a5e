package tetris

import (
	"testing"
	"time"
)

func TestGameOverEndsRound(t *testing.T) {
	ticker := NewMockTicker()
	game := NewConfigurableGame(ticker, time.Second, nil, nil)
	next := func() *Snapshot {
		t.Helper()
		select {
		case u := <-game.GetUpdate():
			return u
		case <-time.After(time.Second):
			t.Fatal("Timed out waiting for update")
		}
		return nil
	}

	go game.Start()
	next()
	go game.Action(DropDown)
	next()

	// the listen goroutine is idle until the next tick.
	game.engine.SetCell(spawnX, spawnY, T)
	go ticker.Tick()
	u := next()
	if !u.GameOver || u.State != GameOver {
		t.Errorf("Expected a game over update, got %v", u.State)
	}
	if !ticker.IsStop() {
		t.Errorf("Expected ticker to be stopped on game over")
	}

	// the round is over, actions are dropped instead of blocking.
	done := make(chan struct{})
	go func() { game.Action(MoveLeft); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Expected actions after game over not to block")
	}

	go game.Start()
	u = next()
	if u.GameOver || u.State != Running {
		t.Errorf("Expected a new running round, got %v", u.State)
	}
	game.Stop()
}
