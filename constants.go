package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeMove
	ModeHelp
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpOpen
	FileOpExportPNG
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmCloseBuffer
	ConfirmOverwriteFile
)

const (
	fastMoveSpeed = 2
	// reservedRows are the terminal rows not available to the diagram: the
	// status line and, with several buffers open, the buffer bar.
	reservedRows = 2
)
