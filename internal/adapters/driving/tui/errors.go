package tui

import "errors"

// ErrMissingController is returned when the TUI is constructed without
// a session controller.
var ErrMissingController = errors.New("tui: session controller is required")
