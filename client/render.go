package client

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"tetrix/tetris"
	"text/template"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	White   = "37"
	Green   = "32"
	Red     = "31"
	Magenta = "35"

	resetPos   = "\033[H" // Reset cursor position to 0,0
	emptyCell  = "  "
	ghostCell  = "[]"
	lobbyWidth = 20
	lobbyRow   = 10
	lobbyCol   = 3
)

//go:embed "layout.tmpl"
var layout string

// colorMap has an entry for every tetris.Cell. Empty cells have no color.
var colorMap = map[tetris.Cell]string{
	tetris.Empty:   "",
	tetris.NoShape: White,
	tetris.I:       Cyan,
	tetris.J:       Blue,
	tetris.L:       Orange,
	tetris.S:       Green,
	tetris.Z:       Red,
	tetris.T:       Magenta,
}

type templateData struct {
	Game    *tetris.Snapshot
	NoGhost bool

	mu sync.Mutex
}

type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	*templateData
}

func newRender(l *slog.Logger, noGhost bool) (*render, error) {
	tmp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return &render{
		writer:       os.Stdout,
		logger:       l,
		template:     tmp,
		templateData: &templateData{NoGhost: noGhost},
	}, nil
}

type lobbyMessage []string

func defaultLobby() lobbyMessage { return lobbyMessage{""} }

func gameOver(s *tetris.Snapshot) lobbyMessage {
	return lobbyMessage{
		"Game Over :)",
		fmt.Sprintf("Score: %d", s.Score),
		fmt.Sprintf("Best: %d", s.Best),
	}
}

func (r *render) lobby(m lobbyMessage) {
	border := "+" + strings.Repeat("-", lobbyWidth) + "+"
	lines := []string{border, box("Terminal Tetris"), box("")}
	for _, l := range m {
		lines = append(lines, box(l))
	}
	lines = append(lines, box(""), box("(p)lay    (q)uit"), border)
	for i, l := range lines {
		fmt.Fprintf(r.writer, "\033[%d;%dH%s", lobbyRow+i, lobbyCol, l)
	}
}

func (r *render) game(s *tetris.Snapshot) {
	r.templateData.mu.Lock()
	r.templateData.Game = s
	fmt.Fprint(r.writer, resetPos)
	if err := r.template.Execute(r.writer, r.templateData); err != nil {
		r.logger.Error("unable to execute template in game()", slog.String("error", err.Error()))
	}
	r.templateData.mu.Unlock()
	if s != nil && s.GameOver {
		r.lobby(gameOver(s))
	}
}

// box centers s in a lobby line.
func box(s string) string {
	if len(s) > lobbyWidth {
		s = s[:lobbyWidth]
	}
	left := (lobbyWidth - len(s)) / 2
	return "|" + strings.Repeat(" ", left) + s + strings.Repeat(" ", lobbyWidth-len(s)-left) + "|"
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"stack":  stack,
		"score":  score,
		"best":   best,
		"status": status,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	l = strings.ReplaceAll(l, "Terminal Tetris", "\033[1mTerminal Tetris\033[0m")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

func cell(c tetris.Cell) string {
	color := colorMap[c]
	if color == "" {
		return emptyCell
	}
	return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", color)
}

func stack(t *templateData) [tetris.Height][tetris.Width]string {
	var rendered [tetris.Height][tetris.Width]string
	for y := range rendered {
		for x := range rendered[y] {
			rendered[y][x] = emptyCell
		}
	}
	if t == nil || t.Game == nil {
		return rendered
	}

	for y, row := range t.Game.Stack {
		for x, c := range row {
			rendered[y][x] = cell(c)
		}
	}

	// the ghost goes first so the piece is drawn on top of it.
	if !t.NoGhost {
		for _, p := range t.Game.Ghost {
			if inStack(p) {
				rendered[p.Y][p.X] = ghostCell
			}
		}
	}

	if t.Game.Piece != nil {
		for _, p := range t.Game.Piece.Cells() {
			if inStack(p) {
				rendered[p.Y][p.X] = cell(t.Game.Piece.Kind)
			}
		}
	}
	return rendered
}

func inStack(p tetris.Point) bool {
	return p.X >= 0 && p.X < tetris.Width && p.Y >= 0 && p.Y < tetris.Height
}

func score(t *templateData) string {
	if t == nil || t.Game == nil {
		return fmt.Sprintf("%-10d", 0)
	}
	return fmt.Sprintf("%-10d", t.Game.Score)
}

func best(t *templateData) string {
	if t == nil || t.Game == nil {
		return fmt.Sprintf("%-10d", 0)
	}
	return fmt.Sprintf("%-10d", t.Game.Best)
}

func status(t *templateData) string {
	if t != nil && t.Game != nil && t.Game.State == tetris.Paused {
		return "PAUSED (p) resume"
	}
	return strings.Repeat(" ", len("PAUSED (p) resume"))
}
