package main

import (
	"editon/diagram"
)

func (m *model) handleNavigation(key string, speed int) {
	if m.zPanMode {
		m.handlePan(key, speed)
		return
	}
	m.handleCursorMove(key, speed)
}

func (m *model) handlePan(key string, speed int) {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	switch key {
	case "h", "left", "H", "shift+left":
		buf.panX = max(buf.panX-speed, 0)
	case "l", "right", "L", "shift+right":
		buf.panX += speed
	case "k", "up", "K", "shift+up":
		buf.panY = max(buf.panY-speed, 0)
	case "j", "down", "J", "shift+down":
		buf.panY += speed
	}
	// The cursor stays on screen while the view scrolls under it.
	w, h := m.viewSize()
	m.cursorX = min(max(m.cursorX, buf.panX), buf.panX+w-1)
	m.cursorY = min(max(m.cursorY, buf.panY), buf.panY+h-1)
}

func (m *model) handleCursorMove(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorX -= speed
	case "l", "right", "L", "shift+right":
		m.cursorX += speed
	case "k", "up", "K", "shift+up":
		m.cursorY -= speed
	case "j", "down", "J", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInView()
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return fastMoveSpeed
	default:
		return 1
	}
}

// handleFarMove jumps the cursor to the next item edge in a direction, or to
// the ends of the row or the diagram.
func (m *model) handleFarMove(key string) {
	d := m.getDiagram()
	if d == nil {
		return
	}
	x, y := m.cursorX, m.cursorY
	switch key {
	case "ctrl+up", "alt+k":
		m.cursorY = farUp(d, x, y)
	case "ctrl+down", "alt+j":
		m.cursorY = farDown(d, x, y)
	case "ctrl+left", "alt+h":
		m.cursorX = farLeft(d, x, y)
	case "ctrl+right", "alt+l":
		m.cursorX = farRight(d, x, y)
	case "home":
		m.cursorX = rowHome(d, x, y)
	case "end":
		m.cursorX = rowEnd(d, y)
	case "ctrl+home":
		m.cursorX, m.cursorY = 0, 0
	case "ctrl+end":
		m.cursorX = 0
		if b := d.Bounds(); b.Y2 >= 0 {
			m.cursorY = b.Y2
		}
	case "pgup":
		_, h := m.viewSize()
		m.cursorY -= h
		if buf := m.getCurrentBuffer(); buf != nil {
			buf.panY = max(buf.panY-h, 0)
		}
	case "pgdown":
		_, h := m.viewSize()
		m.cursorY += h
		if buf := m.getCurrentBuffer(); buf != nil {
			buf.panY += h
		}
	}
	m.ensureCursorInView()
}

func itemBounds(d *diagram.Diagram) []diagram.Rect {
	rs := make([]diagram.Rect, 0, len(d.Items))
	for _, it := range d.Items {
		rs = append(rs, it.Bounds())
	}
	return rs
}

func farUp(d *diagram.Diagram, x, y int) int {
	best := 0
	for _, r := range itemBounds(d) {
		if r.Y1 < y && r.X1 <= x && x <= r.X2 {
			best = max(best, r.Y1)
		}
	}
	return best
}

func farDown(d *diagram.Diagram, x, y int) int {
	best, found := 0, false
	for _, r := range itemBounds(d) {
		if r.Y1 > y && r.X1 <= x && x <= r.X2 && (!found || r.Y1 < best) {
			best, found = r.Y1, true
		}
	}
	if found {
		return best
	}
	for _, r := range itemBounds(d) {
		if r.X1 <= x && x <= r.X2 {
			best = max(best, r.Y2)
		}
	}
	return best
}

func farLeft(d *diagram.Diagram, x, y int) int {
	best := 0
	for _, r := range itemBounds(d) {
		if r.X1 < x && r.Y1 <= y && y <= r.Y2 {
			best = max(best, r.X1)
		}
	}
	return best
}

func farRight(d *diagram.Diagram, x, y int) int {
	best, found := 0, false
	for _, r := range itemBounds(d) {
		if r.X1 > x && r.Y1 <= y && y <= r.Y2 && (!found || r.X1 < best) {
			best, found = r.X1, true
		}
	}
	if found {
		return best
	}
	return rowEnd(d, y)
}

// rowHome goes to column 0, or from column 0 to the first item on the row.
func rowHome(d *diagram.Diagram, x, y int) int {
	if x != 0 {
		return 0
	}
	best, found := 0, false
	for _, r := range itemBounds(d) {
		if r.Y1 <= y && y <= r.Y2 && (!found || r.X1 < best) {
			best, found = r.X1, true
		}
	}
	return best
}

func rowEnd(d *diagram.Diagram, y int) int {
	best := 0
	for _, r := range itemBounds(d) {
		if r.Y1 <= y && y <= r.Y2 {
			best = max(best, r.X2)
		}
	}
	return best
}

// viewSize returns the number of diagram columns and rows on screen.
func (m *model) viewSize() (int, int) {
	rows := m.height - 1
	if len(m.buffers) > 1 {
		rows = m.height - reservedRows
	}
	return max(m.width, 1), max(rows, 1)
}

// ensureCursorInView keeps the cursor off negative coordinates and scrolls the
// view so the cursor is visible.
func (m *model) ensureCursorInView() {
	m.cursorX = max(m.cursorX, 0)
	m.cursorY = max(m.cursorY, 0)
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	w, h := m.viewSize()
	if m.cursorX < buf.panX {
		buf.panX = m.cursorX
	} else if m.cursorX >= buf.panX+w {
		buf.panX = m.cursorX - w + 1
	}
	if m.cursorY < buf.panY {
		buf.panY = m.cursorY
	} else if m.cursorY >= buf.panY+h {
		buf.panY = m.cursorY - h + 1
	}
}
