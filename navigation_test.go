package main

import (
	"testing"

	"editon/diagram"
)

func TestFarMoves(t *testing.T) {
	d, err := diagram.Parse("╔═╗ ╔═╗\n╚═╝ ╚═╝")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		fn   func() int
		want int
	}{
		{"right to the next box", func() int { return farRight(d, 0, 0) }, 4},
		{"right past the last box", func() int { return farRight(d, 4, 0) }, 6},
		{"left to the previous box", func() int { return farLeft(d, 6, 0) }, 4},
		{"left with nothing before", func() int { return farLeft(d, 0, 0) }, 0},
		{"down to the bottom edge", func() int { return farDown(d, 0, 0) }, 1},
		{"up to the top", func() int { return farUp(d, 0, 1) }, 0},
		{"home from inside the row", func() int { return rowHome(d, 5, 0) }, 0},
		{"row end", func() int { return rowEnd(d, 1) }, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHandleFarMove(t *testing.T) {
	m := newTestModel(t, "╔═╗ ╔═╗\n╚═╝ ╚═╝", "")
	m, _ = press(m, "ctrl+right")
	if m.cursorX != 4 {
		t.Errorf("ctrl+right: cursor x = %d, want 4", m.cursorX)
	}
	m.handleFarMove("ctrl+end")
	if m.cursorX != 0 || m.cursorY != 1 {
		t.Errorf("ctrl+end: cursor = (%d,%d), want (0,1)", m.cursorX, m.cursorY)
	}
}

func TestViewScrollsWithCursor(t *testing.T) {
	m := newTestModel(t, "╔═╗\n╚═╝", "")
	w, h := m.viewSize()
	m.cursorX, m.cursorY = w+5, h+3
	m.ensureCursorInView()
	buf := m.getCurrentBuffer()
	if buf.panX != 6 || buf.panY != 4 {
		t.Errorf("pan = (%d,%d), want (6,4)", buf.panX, buf.panY)
	}

	m.cursorX, m.cursorY = -3, -3
	m.ensureCursorInView()
	if m.cursorX != 0 || m.cursorY != 0 || buf.panX != 0 || buf.panY != 0 {
		t.Errorf("cursor (%d,%d) pan (%d,%d), want all zero", m.cursorX, m.cursorY, buf.panX, buf.panY)
	}
}

func TestPanMode(t *testing.T) {
	m := newTestModel(t, "╔═╗\n╚═╝", "")
	m, _ = press(m, "z", "l", "l")
	buf := m.getCurrentBuffer()
	if !m.zPanMode || buf.panX != 2 || m.cursorX != 2 {
		t.Errorf("pan mode: on=%v panX=%d cursorX=%d", m.zPanMode, buf.panX, m.cursorX)
	}
	if m.modeString() != "PAN" {
		t.Errorf("modeString() = %q", m.modeString())
	}
}
