package paths

import (
	"context"
	"path"
	"strings"

	"github.com/arthur-debert/deplink/pkg/errors"
	"github.com/arthur-debert/deplink/pkg/remote"
	"github.com/arthur-debert/deplink/pkg/script"
	"github.com/arthur-debert/deplink/pkg/types"
	"github.com/mitchellh/go-homedir"
)

// HomeExpander expands "~" in paths that belong to a host.
type HomeExpander struct {
	Executor remote.Executor
	// expandLocal defaults to homedir.Expand.
	expandLocal func(string) (string, error)
}

// NewHomeExpander creates a HomeExpander that probes remote hosts with exec.
func NewHomeExpander(exec remote.Executor) *HomeExpander {
	return &HomeExpander{Executor: exec, expandLocal: homedir.Expand}
}

// Expand returns p with a leading "~" or "~/" replaced by the home
// directory of the login user on host. Other paths are returned unchanged.
// "~user" forms are not supported.
func (h *HomeExpander) Expand(ctx context.Context, host types.Host, p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	if len(p) > 1 && p[1] != '/' {
		return "", errors.Newf(errors.ErrConfigInvalid, "cannot expand user-specific home directory in %q", p).
			WithDetail("instance", host.Instance)
	}

	if host.Local {
		expand := h.expandLocal
		if expand == nil {
			expand = homedir.Expand
		}
		expanded, err := expand(p)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigInvalid, "cannot expand %q", p)
		}
		return expanded, nil
	}

	res, err := h.Executor.Run(ctx, host, remote.Command{Script: script.HomeProbe()})
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRemoteExec, "failed to resolve home directory on %s", host)
	}
	home := lastLine(res)
	if !path.IsAbs(home) {
		return "", errors.Newf(errors.ErrRemoteExec, "unexpected home directory %q reported by %s", home, host)
	}
	return path.Join(home, p[1:]), nil
}

// lastLine returns the last non-empty output line. Login banners may
// precede the probe's answer.
func lastLine(res *remote.Result) string {
	if res == nil {
		return ""
	}
	for i := len(res.Lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(res.Lines[i]); line != "" {
			return line
		}
	}
	return ""
}
