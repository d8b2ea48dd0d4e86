// Package confirmations provides the yes/no prompts used before
// destructive operations.
package confirmations

import (
	"io"
	"os"

	"github.com/arthur-debert/deplink/pkg/ui"
)

// Confirmer asks the operator a yes/no question. def is the answer chosen
// when the operator just presses enter.
type Confirmer interface {
	Confirm(prompt string, def bool) (bool, error)
}

// DefaultConfirmer answers every prompt with its default without asking.
type DefaultConfirmer struct{}

func (DefaultConfirmer) Confirm(_ string, def bool) (bool, error) {
	return def, nil
}

// New picks a Confirmer for the current process: DefaultConfirmer when
// interaction is disabled or there is no input, pterm when in is a
// terminal, and the line based console prompt otherwise.
func New(in *os.File, out io.Writer, noInteraction bool) Confirmer {
	if noInteraction || in == nil {
		return DefaultConfirmer{}
	}
	if ui.IsTerminal(in) {
		return NewPtermConfirmer()
	}
	return NewConsoleConfirmer(in, out)
}
