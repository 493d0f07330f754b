package tui

import (
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
)

// Ports holds the driving-side dependencies the TUI renders from.
type Ports struct {
	Controller driving.SessionController
}

// Validate checks that all required ports are present.
func (p *Ports) Validate() error {
	if p.Controller == nil {
		return ErrMissingController
	}
	return nil
}
