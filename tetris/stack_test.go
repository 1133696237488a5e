package tetris

import (
	"reflect"
	"testing"
)

func fillRow(s *Stack, y int, c Cell, except ...int) {
	for x := range Width {
		s[y][x] = c
	}
	for _, x := range except {
		s[y][x] = Empty
	}
}

func TestFits(t *testing.T) {
	// 		0 1 2 3 4 5 6 7 8 9
	// 17	. . . . . X . . . .
	var s Stack
	s[17][5] = T

	tests := []struct {
		name  string
		cells []Point
		want  bool
	}{
		{name: "empty cells", cells: []Point{{0, 0}, {9, 19}}, want: true},
		{name: "above the stack", cells: []Point{{5, -1}, {5, -3}}, want: true},
		{name: "stack collision", cells: []Point{{5, 17}}},
		{name: "left wall", cells: []Point{{-1, 3}}},
		{name: "right wall", cells: []Point{{Width, 3}}},
		{name: "floor", cells: []Point{{3, Height}}},
		{name: "above the stack still checks the walls", cells: []Point{{-1, -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.Fits(tt.cells); got != tt.want {
				t.Errorf("wanted %t, got %t", tt.want, got)
			}
		})
	}
}

func TestClearFullRows(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(s *Stack)
		wantCleared int
		wantStack   func(s *Stack)
	}{
		{
			name:      "no full rows",
			setup:     func(s *Stack) { fillRow(s, 19, J, 4) },
			wantStack: func(s *Stack) { fillRow(s, 19, J, 4) },
		},
		{
			name:        "bottom row",
			setup:       func(s *Stack) { fillRow(s, 19, J) },
			wantCleared: 1,
			wantStack:   func(*Stack) {},
		},
		{
			name: "two rows shift the rest down by two",
			setup: func(s *Stack) {
				s[16][0] = S
				s[17][2] = T
				fillRow(s, 18, L)
				fillRow(s, 19, I)
			},
			wantCleared: 2,
			wantStack: func(s *Stack) {
				s[18][0] = S
				s[19][2] = T
			},
		},
		{
			name: "rows that aren't adjacent",
			setup: func(s *Stack) {
				fillRow(s, 15, Z)
				fillRow(s, 16, Z, 0)
				fillRow(s, 17, Z)
				fillRow(s, 18, Z, 9)
				fillRow(s, 19, Z)
			},
			wantCleared: 3,
			wantStack: func(s *Stack) {
				fillRow(s, 18, Z, 0)
				fillRow(s, 19, Z, 9)
			},
		},
		{
			name: "top row",
			setup: func(s *Stack) {
				fillRow(s, 0, T)
				s[1][1] = J
			},
			wantCleared: 1,
			wantStack:   func(s *Stack) { s[1][1] = J },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var s, want Stack
			tt.setup(&s)
			tt.wantStack(&want)
			if got := s.clearFullRows(); got != tt.wantCleared {
				t.Errorf("wanted %d rows cleared, got %d", tt.wantCleared, got)
			}
			if !reflect.DeepEqual(s, want) {
				t.Errorf("wanted %v, got %v", want, s)
			}
			for y := range Height {
				if s.isFull(y) {
					t.Errorf("row %d is still full", y)
				}
			}
		})
	}
}

func TestLock(t *testing.T) {
	t.Run("writes the kind of the piece", func(t *testing.T) {
		var s, want Stack
		p := NewPiece(S)
		p.Place(4, 18)
		s.lock(p)
		want[18][3] = S
		want[18][4] = S
		want[19][4] = S
		want[19][5] = S
		if !reflect.DeepEqual(s, want) {
			t.Errorf("wanted %v, got %v", want, s)
		}
	})

	t.Run("cells above the stack are dropped", func(t *testing.T) {
		var s, want Stack
		p := NewPiece(L)
		p.Place(2, 0)
		s.lock(p)
		want[0][2] = L
		want[1][2] = L
		want[1][3] = L
		if !reflect.DeepEqual(s, want) {
			t.Errorf("wanted %v, got %v", want, s)
		}
	})
}

func TestGhost(t *testing.T) {
	var s Stack
	s[12][4] = T
	p := NewPiece(J)
	p.Place(4, 0)
	want := []Point{{4, 9}, {4, 10}, {4, 11}, {3, 11}}
	if got := s.ghost(p.Cells()); !reflect.DeepEqual(got, want) {
		t.Errorf("wanted %v, got %v", want, got)
	}
}
