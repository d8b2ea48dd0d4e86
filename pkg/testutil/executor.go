package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/arthur-debert/deplink/pkg/errors"
	"github.com/arthur-debert/deplink/pkg/remote"
	"github.com/arthur-debert/deplink/pkg/types"
)

// Call records one routine run by FakeExecutor.
type Call struct {
	Host   types.Host
	Script string
}

// Response is what FakeExecutor answers for a matching routine.
type Response struct {
	Lines []string
	// ExitStatus other than zero makes Run fail with REMOTE_EXEC.
	ExitStatus int
	Err        error
}

type rule struct {
	instance string
	contains string
	resp     Response
}

// FakeExecutor is a remote.Executor that answers by matching the script
// text, optionally restricted to one instance. Rules are tried in the
// order they were added. A routine matching no rule succeeds silently.
type FakeExecutor struct {
	mu    sync.Mutex
	rules []rule
	calls []Call
}

// NewFakeExecutor creates an empty FakeExecutor.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{}
}

// On answers resp to any routine containing substr.
func (f *FakeExecutor) On(substr string, resp Response) *FakeExecutor {
	return f.OnHost("", substr, resp)
}

// OnHost answers resp to routines containing substr run for instance.
func (f *FakeExecutor) OnHost(instance, substr string, resp Response) *FakeExecutor {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, rule{instance: instance, contains: substr, resp: resp})
	return f
}

// WithHome answers the home probe for instance.
func (f *FakeExecutor) WithHome(instance, home string) *FakeExecutor {
	return f.OnHost(instance, "cd ~ && pwd", Response{Lines: []string{home}})
}

// WithWorkDir answers the working directory probe for instance with kind.
// An empty kind simulates a root with neither subdirectory.
func (f *FakeExecutor) WithWorkDir(instance string, kind types.WorkDirKind) *FakeExecutor {
	var lines []string
	if kind != "" {
		lines = []string{string(kind)}
	}
	return f.OnHost(instance, "then echo release", Response{Lines: lines})
}

func (f *FakeExecutor) Run(_ context.Context, host types.Host, cmd remote.Command) (*remote.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Host: host, Script: cmd.Script})
	var resp Response
	for _, r := range f.rules {
		if r.instance != "" && r.instance != host.Instance {
			continue
		}
		if strings.Contains(cmd.Script, r.contains) {
			resp = r.resp
			break
		}
	}
	f.mu.Unlock()

	if cmd.Stream != nil {
		for _, line := range resp.Lines {
			_, _ = fmt.Fprintln(cmd.Stream, line)
		}
	}
	res := &remote.Result{Lines: append([]string(nil), resp.Lines...)}
	if resp.Err != nil {
		return res, resp.Err
	}
	if resp.ExitStatus != 0 {
		return res, errors.Newf(errors.ErrRemoteExec, "routine failed on %s with exit status %d", host, resp.ExitStatus).
			WithDetail("exit_status", resp.ExitStatus)
	}
	return res, nil
}

// Calls returns every routine run so far, in order.
func (f *FakeExecutor) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsContaining returns the calls whose script contains substr.
func (f *FakeExecutor) CallsContaining(substr string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if strings.Contains(c.Script, substr) {
			out = append(out, c)
		}
	}
	return out
}
