package main

import (
	"github.com/charmbracelet/log"

	"editon/diagram"
)

type Buffer struct {
	diagram   *diagram.Diagram
	undoStack []*diagram.Diagram
	redoStack []*diagram.Diagram
	filename  string
	panX      int
	panY      int
	dirty     bool

	// snapshot is the diagram as it stood when move mode was entered.
	snapshot *diagram.Diagram
	moved    bool

	// lines caches the rendered diagram until the next edit.
	lines []string
}

type model struct {
	width              int
	height             int
	cursorX            int
	cursorY            int
	zPanMode           bool
	buffers            []Buffer
	currentBufferIndex int
	mode               Mode
	helpScroll         int
	selected           diagram.Handle
	filename           string
	fileOp             FileOperation
	confirmAction      ConfirmAction
	pendingPath        string
	errorMessage       string
	successMessage     string
	config             *Config
	logger             *log.Logger
	styles             styles
}
