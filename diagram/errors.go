package diagram

import "errors"

var (
	// ErrJoin is returned by Parse when a line leads nowhere.
	ErrJoin = errors.New("lines do not join up")
	// ErrWrongAxis is returned when a line is asked to move across its own axis.
	ErrWrongAxis = errors.New("line cannot move in that direction")
	// ErrConflict is returned when an item would have to move two ways at once.
	ErrConflict = errors.New("item is already moving in another direction")
	// ErrUnsupported is returned when a move would need an edit the engine
	// does not perform, such as bending a line.
	ErrUnsupported = errors.New("adjustment not supported")
	// ErrNoItem is returned for an invalid handle.
	ErrNoItem = errors.New("no such item")
)
