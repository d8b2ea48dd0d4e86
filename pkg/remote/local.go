package remote

import (
	"context"
	"os/exec"

	"github.com/arthur-debert/deplink/pkg/logging"
	"github.com/arthur-debert/deplink/pkg/types"
	"github.com/rs/zerolog"
)

// LocalExecutor runs routines with the local POSIX shell.
type LocalExecutor struct {
	// Shell defaults to "sh".
	Shell  string
	logger zerolog.Logger
}

// NewLocalExecutor creates a LocalExecutor using sh.
func NewLocalExecutor() *LocalExecutor {
	return &LocalExecutor{Shell: "sh", logger: logging.GetLogger("remote.local")}
}

func (e *LocalExecutor) Run(ctx context.Context, host types.Host, cmd Command) (*Result, error) {
	shell := e.Shell
	if shell == "" {
		shell = "sh"
	}

	e.logger.Debug().
		Str("host", host.String()).
		Str("script", cmd.Script).
		Msg("Running local routine")

	out := newOutputCollector(cmd.Stream)
	c := exec.CommandContext(ctx, shell, "-c", cmd.Script)
	c.Stdout = out
	c.Stderr = out

	err := c.Run()
	result := &Result{Lines: out.Lines()}
	if err != nil {
		code := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
		return result, exitError(host, code, result.Lines, err)
	}
	return result, nil
}
