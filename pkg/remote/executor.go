package remote

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/arthur-debert/deplink/pkg/errors"
	"github.com/arthur-debert/deplink/pkg/types"
)

// Command is one shell routine to run.
type Command struct {
	Script string
	// Stream, when set, receives combined output as it is produced.
	Stream io.Writer
}

// Result holds the combined output of a finished routine.
type Result struct {
	Lines []string
}

// Output returns the trimmed output joined by newlines.
func (r *Result) Output() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(r.Lines, "\n"))
}

// Executor runs a routine on a host and blocks until it finishes.
type Executor interface {
	Run(ctx context.Context, host types.Host, cmd Command) (*Result, error)
}

// Router sends local hosts to Local and everything else to Remote.
type Router struct {
	Local  Executor
	Remote Executor
}

func (r *Router) Run(ctx context.Context, host types.Host, cmd Command) (*Result, error) {
	if host.Local {
		return r.Local.Run(ctx, host, cmd)
	}
	return r.Remote.Run(ctx, host, cmd)
}

// exitError builds the REMOTE_EXEC error for a routine that exited with
// status code.
func exitError(host types.Host, code int, lines []string, cause error) error {
	err := errors.Wrapf(cause, errors.ErrRemoteExec, "routine failed on %s with exit status %d", host, code)
	err.WithDetail("host", host.String())
	err.WithDetail("exit_status", code)
	err.WithDetail("output", strings.Join(lines, "\n"))
	return err
}

// outputCollector is an io.Writer that splits output into lines and
// optionally tees it to a stream. stdout and stderr share one collector.
type outputCollector struct {
	mu      sync.Mutex
	stream  io.Writer
	partial bytes.Buffer
	lines   []string
}

func newOutputCollector(stream io.Writer) *outputCollector {
	return &outputCollector{stream: stream}
}

func (c *outputCollector) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stream != nil {
		if _, err := c.stream.Write(p); err != nil {
			return 0, err
		}
	}

	c.partial.Write(p)
	for {
		data := c.partial.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		c.lines = append(c.lines, strings.TrimRight(string(data[:i]), "\r"))
		c.partial.Next(i + 1)
	}
	return len(p), nil
}

// Lines returns all complete lines plus any trailing partial line.
func (c *outputCollector) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := append([]string(nil), c.lines...)
	if c.partial.Len() > 0 {
		lines = append(lines, strings.TrimRight(c.partial.String(), "\r"))
	}
	return lines
}
