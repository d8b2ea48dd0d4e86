package main

import (
	"os"

	"github.com/arthur-debert/deplink/cmd/deplink"
	"github.com/arthur-debert/deplink/pkg/errors"
	"github.com/arthur-debert/deplink/pkg/ui"
)

func main() {
	rootCmd := deplink.NewRootCmd()
	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	p := ui.NewPrinter(os.Stderr, ui.FormatAuto)
	p.Error("Error: %s", errors.UserMessage(err))
	if errors.IsErrorCode(err, errors.ErrUsage) && cmd != nil {
		p.Muted(deplink.MsgErrUsageHint, cmd.CommandPath())
	}
	os.Exit(errors.ExitCode(err))
}
