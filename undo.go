package main

import (
	"errors"

	"editon/diagram"
)

// beginMove enters move mode for the item under the cursor, remembering the
// diagram so the whole move can be cancelled.
func (m *model) beginMove() {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	h := buf.diagram.ItemAt(m.cursorX, m.cursorY)
	if h == diagram.NoHandle {
		m.errorMessage = "no item is selected"
		return
	}
	m.selected = h
	buf.snapshot = buf.diagram.Clone()
	buf.moved = false
	m.mode = ModeMove
	m.logger.Debug("move mode", "item", buf.diagram.Describe(h))
}

// moveSelected moves the selected item steps cells in dir. Steps already
// taken stay applied when a later one fails.
func (m *model) moveSelected(dir diagram.Direction, steps int) {
	buf := m.getCurrentBuffer()
	if buf == nil || m.selected == diagram.NoHandle {
		return
	}
	dx, dy := dir.Delta()
	for i := 0; i < steps; i++ {
		edits, err := diagram.TryMove(buf.diagram, m.selected, dir, m.config.Options)
		if err == nil {
			err = buf.diagram.Apply(edits)
		}
		if err != nil {
			m.errorMessage = moveErrorMessage(err)
			m.logger.Debug("move refused", "dir", dir, "err", err)
			return
		}
		m.logger.Debug("moved", "dir", dir, "edits", len(edits))
		buf.moved = true
		buf.invalidate()
		m.cursorX += dx
		m.cursorY += dy
	}
	m.errorMessage = ""
	m.ensureCursorInView()
}

func moveErrorMessage(err error) string {
	switch {
	case errors.Is(err, diagram.ErrWrongAxis):
		return "lines only move along their own direction"
	case errors.Is(err, diagram.ErrConflict):
		return "that would pull an item two ways at once"
	case errors.Is(err, diagram.ErrUnsupported):
		return "adjustment not supported: " + err.Error()
	default:
		return err.Error()
	}
}

// finishMove leaves move mode keeping the moves as one undoable step.
func (m *model) finishMove() {
	buf := m.getCurrentBuffer()
	if buf != nil && buf.moved {
		buf.undoStack = append(buf.undoStack, buf.snapshot)
		buf.redoStack = buf.redoStack[:0]
		buf.dirty = true
	}
	m.leaveMove(buf)
}

// cancelMove leaves move mode and puts the diagram back as it was.
func (m *model) cancelMove() {
	buf := m.getCurrentBuffer()
	if buf != nil && buf.moved {
		buf.diagram = buf.snapshot
		buf.invalidate()
		if r, ok := itemRect(buf.diagram, m.selected); ok {
			m.cursorX, m.cursorY = r.X1, r.Y1
		}
	}
	m.leaveMove(buf)
}

func (m *model) leaveMove(buf *Buffer) {
	if buf != nil {
		buf.snapshot = nil
		buf.moved = false
	}
	m.mode = ModeNormal
	m.selected = diagram.NoHandle
	m.errorMessage = ""
	m.ensureCursorInView()
}

func itemRect(d *diagram.Diagram, h diagram.Handle) (diagram.Rect, bool) {
	it := d.Item(h)
	if it == nil {
		return diagram.Rect{}, false
	}
	return it.Bounds(), true
}

func (m *model) undo() {
	buf := m.getCurrentBuffer()
	if buf == nil || len(buf.undoStack) == 0 {
		m.errorMessage = "nothing to undo"
		return
	}
	last := len(buf.undoStack) - 1
	buf.redoStack = append(buf.redoStack, buf.diagram)
	buf.diagram = buf.undoStack[last]
	buf.undoStack = buf.undoStack[:last]
	buf.dirty = true
	buf.invalidate()
}

func (m *model) redo() {
	buf := m.getCurrentBuffer()
	if buf == nil || len(buf.redoStack) == 0 {
		m.errorMessage = "nothing to redo"
		return
	}
	last := len(buf.redoStack) - 1
	buf.undoStack = append(buf.undoStack, buf.diagram)
	buf.diagram = buf.redoStack[last]
	buf.redoStack = buf.redoStack[:last]
	buf.dirty = true
	buf.invalidate()
}
