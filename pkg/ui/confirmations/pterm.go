package confirmations

import "github.com/pterm/pterm"

// PtermConfirmer shows an interactive confirm prompt on the terminal.
type PtermConfirmer struct {
	printer pterm.InteractiveConfirmPrinter
}

// NewPtermConfirmer creates a PtermConfirmer with pterm's defaults.
func NewPtermConfirmer() *PtermConfirmer {
	return &PtermConfirmer{printer: pterm.DefaultInteractiveConfirm}
}

func (p *PtermConfirmer) Confirm(prompt string, def bool) (bool, error) {
	return p.printer.WithDefaultValue(def).Show(prompt)
}
