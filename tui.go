package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"

	"editon/diagram"
)

type styles struct {
	cursor    lipgloss.Style
	selection lipgloss.Style
	status    lipgloss.Style
	errorMsg  lipgloss.Style
	bufferBar lipgloss.Style
	current   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		cursor:    lipgloss.NewStyle().Reverse(true),
		selection: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		status:    lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252")),
		errorMsg:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		bufferBar: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		current:   lipgloss.NewStyle().Bold(true).Underline(true),
	}
}

// newModel opens one buffer per diagram. A model always has at least one
// buffer.
func newModel(c *Config, logger *log.Logger, buffers ...Buffer) model {
	if len(buffers) == 0 {
		buffers = []Buffer{{diagram: &diagram.Diagram{}}}
	}
	if logger == nil {
		logger = newLogger(io.Discard, log.InfoLevel)
	}
	return model{
		buffers:  buffers,
		mode:     ModeNormal,
		selected: diagram.NoHandle,
		config:   c,
		logger:   logger,
		styles:   defaultStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInView()
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch m.mode {
		case ModeHelp:
			return m.handleHelpKey(key)
		case ModeMove:
			return m.handleMoveKey(key)
		case ModeConfirm:
			return m.handleConfirmKey(key)
		case ModeFileInput:
			return m.handleFileInputKey(msg)
		default:
			return m.handleNormalKey(key)
		}
	}
	return m, nil
}

func (m model) handleNormalKey(key string) (tea.Model, tea.Cmd) {
	m.successMessage = ""
	m.errorMessage = ""

	switch key {
	case "q", "ctrl+c":
		if m.config.Confirmations && m.anyDirty() {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "h", "j", "k", "l", "left", "right", "up", "down",
		"H", "J", "K", "L", "shift+left", "shift+right", "shift+up", "shift+down":
		m.handleNavigation(key, m.getMoveSpeed(key))
	case "ctrl+up", "ctrl+down", "ctrl+left", "ctrl+right", "alt+h", "alt+j", "alt+k", "alt+l",
		"home", "end", "ctrl+home", "ctrl+end", "pgup", "pgdown":
		m.handleFarMove(key)
	case "z":
		m.zPanMode = !m.zPanMode
	case "m", "enter":
		m.beginMove()
	case "u":
		m.undo()
	case "U", "ctrl+r":
		m.redo()
	case "tab":
		m.switchBuffer(1)
	case "shift+tab":
		m.switchBuffer(-1)
	case "n":
		m.addNewBuffer(&diagram.Diagram{}, "")
	case "w":
		if m.config.Confirmations && m.getCurrentBuffer().dirty {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmCloseBuffer
			return m, nil
		}
		m.closeCurrentBuffer()
	case "ctrl+s":
		if buf := m.getCurrentBuffer(); buf.filename != "" {
			m.saveBuffer(buf.filename)
			return m, nil
		}
		m.startFileInput(FileOpSave)
	case "S":
		m.startFileInput(FileOpSave)
	case "o":
		m.startFileInput(FileOpOpen)
	case "x":
		m.startFileInput(FileOpExportPNG)
	case "y":
		m.copyToClipboard()
	case "P":
		m.pasteFromClipboard()
	case "?":
		m.mode = ModeHelp
		m.helpScroll = 0
	}
	return m, nil
}

func (m model) handleMoveKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter", "m":
		m.finishMove()
	case "esc", "ctrl+c":
		m.cancelMove()
	case "h", "left", "H", "shift+left":
		m.moveSelected(diagram.Left, m.getMoveSpeed(key))
	case "l", "right", "L", "shift+right":
		m.moveSelected(diagram.Right, m.getMoveSpeed(key))
	case "k", "up", "K", "shift+up":
		m.moveSelected(diagram.Up, m.getMoveSpeed(key))
	case "j", "down", "J", "shift+down":
		m.moveSelected(diagram.Down, m.getMoveSpeed(key))
	}
	return m, nil
}

func (m model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmCloseBuffer:
			m.closeCurrentBuffer()
		case ConfirmOverwriteFile:
			m.writeBuffer(m.pendingPath)
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.pendingPath = ""
	}
	return m, nil
}

func (m *model) startFileInput(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.filename = ""
	buf := m.getCurrentBuffer()
	switch {
	case op == FileOpSave && buf.filename != "":
		m.filename = buf.filename
	case op == FileOpExportPNG && buf.filename != "":
		m.filename = strings.TrimSuffix(buf.filename, filepath.Ext(buf.filename)) + ".png"
	}
}

func (m model) handleFileInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.errorMessage = ""
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.filename)
		if name == "" {
			m.errorMessage = "filename is empty"
			return m, nil
		}
		m.mode = ModeNormal
		m.errorMessage = ""
		switch m.fileOp {
		case FileOpSave:
			m.saveBuffer(name)
		case FileOpOpen:
			m.openFile(name)
		case FileOpExportPNG:
			m.exportBuffer(name)
		}
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.filename += " "
	case tea.KeyRunes:
		m.filename += string(msg.Runes)
	}
	return m, nil
}

// saveBuffer writes the current buffer, asking first before replacing a
// file other than the one the buffer came from.
func (m *model) saveBuffer(name string) {
	path, err := m.config.GetSavePath(name)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	buf := m.getCurrentBuffer()
	if path != buf.filename && m.config.Confirmations {
		if _, err := os.Stat(path); err == nil {
			m.pendingPath = path
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			return
		}
	}
	m.writeBuffer(path)
}

func (m *model) writeBuffer(path string) {
	buf := m.getCurrentBuffer()
	if err := saveDiagramFile(path, buf.diagram); err != nil {
		m.errorMessage = err.Error()
		m.logger.Error("save failed", "file", path, "err", err)
		return
	}
	buf.filename = path
	buf.dirty = false
	m.pendingPath = ""
	m.successMessage = "saved " + path
	m.logger.Info("saved", "file", path)
}

func (m *model) openFile(name string) {
	d, err := loadDiagramFile(name)
	if err != nil && errors.Is(err, fs.ErrNotExist) && m.config.SaveDirectory != "" {
		if path, perr := m.config.GetSavePath(name); perr == nil {
			name = path
			d, err = loadDiagramFile(name)
		}
	}
	if err != nil {
		m.errorMessage = err.Error()
		m.logger.Error("open failed", "file", name, "err", err)
		return
	}
	m.addNewBuffer(d, name)
	m.successMessage = "opened " + name
}

func (m *model) exportBuffer(name string) {
	if err := exportPNG(name, m.getDiagram(), m.config); err != nil {
		m.errorMessage = err.Error()
		m.logger.Error("export failed", "file", name, "err", err)
		return
	}
	m.successMessage = "exported " + name
}

func (m *model) copyToClipboard() {
	if err := writeClipboardText(m.getCurrentBuffer().text()); err != nil {
		m.errorMessage = "clipboard: " + err.Error()
		return
	}
	m.successMessage = "copied diagram"
}

func (m *model) pasteFromClipboard() {
	text, err := readClipboardText()
	if err != nil {
		m.errorMessage = "clipboard: " + err.Error()
		return
	}
	d, err := diagram.Parse(cleanClipboardText(text))
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.addNewBuffer(d, "")
	m.getCurrentBuffer().dirty = true
	m.successMessage = "pasted into a new buffer"
}

func (m model) handleHelpKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		_, h := m.viewSize()
		if m.helpScroll < max(len(helpLines)-h, 0) {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.mode = ModeNormal
		m.helpScroll = 0
	}
	return m, nil
}

func (m model) View() string {
	if m.mode == ModeHelp {
		return m.helpView()
	}

	var result strings.Builder
	if len(m.buffers) > 1 {
		result.WriteString(m.renderBufferBar())
		result.WriteString("\n")
	}

	buf := m.getCurrentBuffer()
	lines := buf.renderedLines()
	w, h := m.viewSize()
	inSelection := m.selectionTest()
	for sy := 0; sy < h; sy++ {
		y := buf.panY + sy
		var row []rune
		if y < len(lines) {
			row = []rune(lines[y])
		}
		result.WriteString(m.renderRow(row, y, buf.panX, w, inSelection))
		result.WriteString("\n")
	}
	result.WriteString(m.statusLine(w))
	return result.String()
}

// renderRow draws one visible row, styling the cursor and selected cells.
func (m model) renderRow(row []rune, y, panX, width int, inSelection func(x, y int) bool) string {
	var out, run strings.Builder
	runStyled := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runStyled {
			out.WriteString(m.styles.selection.Render(run.String()))
		} else {
			out.WriteString(run.String())
		}
		run.Reset()
	}
	for sx := 0; sx < width; sx++ {
		x := panX + sx
		r := ' '
		if x < len(row) {
			r = row[x]
		}
		if x == m.cursorX && y == m.cursorY {
			flush()
			out.WriteString(m.styles.cursor.Render(string(r)))
			continue
		}
		styled := inSelection(x, y)
		if styled != runStyled {
			flush()
			runStyled = styled
		}
		run.WriteRune(r)
	}
	flush()
	return strings.TrimRight(out.String(), " ")
}

// selectionTest reports the cells of the item being moved.
func (m model) selectionTest() func(x, y int) bool {
	none := func(int, int) bool { return false }
	if m.mode != ModeMove {
		return none
	}
	switch it := m.getDiagram().Item(m.selected).(type) {
	case nil:
		return none
	case *diagram.Box:
		return it.OnBorder
	default:
		return it.Bounds().Contains
	}
}

func (m model) renderBufferBar() string {
	var parts []string
	for i, buf := range m.buffers {
		name := fmt.Sprintf("Buffer %d", i+1)
		if buf.filename != "" {
			name = filepath.Base(buf.filename)
		}
		if buf.dirty {
			name += "*"
		}
		if i == m.currentBufferIndex {
			name = m.styles.current.Render(name)
		}
		parts = append(parts, name)
	}
	return m.styles.bufferBar.Render("Diagrams: ") + strings.Join(parts, " | ")
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		if m.zPanMode {
			return "PAN"
		}
		return "NORMAL"
	case ModeMove:
		return "MOVE"
	case ModeHelp:
		return "HELP"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) statusLine(width int) string {
	var status string
	buf := m.getCurrentBuffer()
	d := buf.diagram
	switch m.mode {
	case ModeFileInput:
		op := map[FileOperation]string{FileOpSave: "Save as", FileOpOpen: "Open", FileOpExportPNG: "Export PNG"}[m.fileOp]
		status = fmt.Sprintf("FILE | %s: %s█ | Enter=confirm, Esc=cancel", op, m.filename)
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit with unsaved changes? (y/n)"
		case ConfirmCloseBuffer:
			message = "Close buffer with unsaved changes? (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.pendingPath)
		}
		status = "CONFIRM | " + message
	case ModeMove:
		status = fmt.Sprintf("MOVE | %s | hjkl/arrows=move, Enter=keep, Esc=revert", d.Describe(m.selected))
	default:
		status = fmt.Sprintf("%s | (%d,%d)", m.modeString(), m.cursorX, m.cursorY)
		if h := d.ItemAt(m.cursorX, m.cursorY); h != diagram.NoHandle {
			status += " | " + d.Describe(h)
		}
		if a, ok := d.TextAreaAt(m.cursorX, m.cursorY); ok {
			status += fmt.Sprintf(" | text %q", strings.ReplaceAll(a.Text(), "\n", " "))
		}
		name := buf.filename
		if name == "" {
			name = "[new]"
		}
		if buf.dirty {
			name += " [+]"
		}
		status += " | " + name
		if m.successMessage != "" {
			status += " | " + m.successMessage
		} else if m.errorMessage == "" {
			status += " | ? for help"
		}
	}

	var errPart string
	if m.errorMessage != "" {
		errPart = " | ERROR: " + m.errorMessage
	}
	status = runewidth.Truncate(status, width, "…")
	room := width - runewidth.StringWidth(status)
	errPart = runewidth.Truncate(errPart, max(room, 0), "…")
	padding := strings.Repeat(" ", max(room-runewidth.StringWidth(errPart), 0))
	return m.styles.status.Render(status) + m.styles.errorMsg.Render(errPart) + m.styles.status.Render(padding)
}

var helpLines = []string{
	"Editon Help",
	"===========",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→    Move cursor",
	"  Shift+h/j/k/l      Move cursor 2x faster",
	"  Ctrl+arrows, Alt+hjkl  Jump to the next item edge",
	"  Home/End           Start or end of the row",
	"  Ctrl+Home/Ctrl+End Top of the diagram / last row",
	"  PgUp/PgDn          Scroll a screen",
	"  z                  Toggle pan mode (hjkl scroll the view)",
	"",
	"Editing:",
	"--------",
	"  m/Enter            Move the item under the cursor",
	"  u                  Undo last move",
	"  U/Ctrl+R           Redo",
	"",
	"Move Mode:",
	"----------",
	"  h/←/j/↓/k/↑/l/→    Move the item; attached lines follow",
	"  Shift+h/j/k/l      Move 2 cells",
	"  Enter              Keep the moves",
	"  Esc                Put everything back",
	"",
	"Files and Buffers:",
	"------------------",
	"  Ctrl+S             Save",
	"  S                  Save as",
	"  o                  Open a diagram in a new buffer",
	"  x                  Export as PNG",
	"  y                  Copy diagram to the clipboard",
	"  P                  Paste the clipboard as a new buffer",
	"  n                  New empty buffer",
	"  w                  Close buffer",
	"  Tab/Shift+Tab      Next / previous buffer",
	"",
	"General:",
	"  ?                  Toggle this help screen",
	"  q/Ctrl+C           Quit",
}

func (m model) helpView() string {
	_, h := m.viewSize()
	start := min(m.helpScroll, max(len(helpLines)-h, 0))
	end := min(start+h, len(helpLines))
	result := strings.Join(helpLines[start:end], "\n")
	return result + "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		start+1, end, len(helpLines))
}
