package main

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"editon/diagram"
)

func (m *model) getCurrentBuffer() *Buffer {
	if len(m.buffers) == 0 {
		return nil
	}
	return &m.buffers[m.currentBufferIndex]
}

func (m *model) getDiagram() *diagram.Diagram {
	if buf := m.getCurrentBuffer(); buf != nil {
		return buf.diagram
	}
	return nil
}

func (m *model) addNewBuffer(d *diagram.Diagram, filename string) {
	m.buffers = append(m.buffers, Buffer{diagram: d, filename: filename})
	m.currentBufferIndex = len(m.buffers) - 1
	m.cursorX, m.cursorY = 0, 0
	m.selected = diagram.NoHandle
}

func (m *model) closeCurrentBuffer() {
	if len(m.buffers) <= 1 {
		m.buffers = []Buffer{{diagram: &diagram.Diagram{}}}
		m.currentBufferIndex = 0
		return
	}
	m.buffers = append(m.buffers[:m.currentBufferIndex], m.buffers[m.currentBufferIndex+1:]...)
	if m.currentBufferIndex >= len(m.buffers) {
		m.currentBufferIndex = len(m.buffers) - 1
	}
}

func (m *model) switchBuffer(delta int) {
	if len(m.buffers) < 2 {
		return
	}
	n := len(m.buffers)
	m.currentBufferIndex = ((m.currentBufferIndex+delta)%n + n) % n
	m.selected = diagram.NoHandle
	m.ensureCursorInView()
}

func (m *model) anyDirty() bool {
	for _, buf := range m.buffers {
		if buf.dirty {
			return true
		}
	}
	return false
}

// renderedLines returns the rendered diagram, rendering it again only after
// an edit.
func (b *Buffer) renderedLines() []string {
	if b.lines == nil {
		b.lines = diagram.Render(b.diagram).Lines()
		if b.lines == nil {
			b.lines = []string{}
		}
	}
	return b.lines
}

func (b *Buffer) invalidate() {
	b.lines = nil
}

func (b *Buffer) text() string {
	return strings.Join(b.renderedLines(), "\n")
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

// cleanClipboardText normalises line endings and drops control characters
// other than newlines. Tabs become single spaces so columns stay aligned
// with what was copied.
func cleanClipboardText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n':
			result.WriteRune(r)
		case r == '\t':
			result.WriteRune(' ')
		case r >= 32 && r != 127:
			result.WriteRune(r)
		}
	}
	return strings.TrimRight(result.String(), "\n")
}
