package paths

import (
	"context"
	"path"

	"github.com/arthur-debert/deplink/pkg/errors"
	"github.com/arthur-debert/deplink/pkg/logging"
	"github.com/arthur-debert/deplink/pkg/remote"
	"github.com/arthur-debert/deplink/pkg/script"
	"github.com/arthur-debert/deplink/pkg/types"
	"github.com/rs/zerolog"
)

// Normalizer resolves hosts to their working directory.
type Normalizer struct {
	executor remote.Executor
	home     *HomeExpander
	logger   zerolog.Logger
}

// NewNormalizer creates a Normalizer running its probes through exec.
func NewNormalizer(exec remote.Executor) *Normalizer {
	return &Normalizer{
		executor: exec,
		home:     NewHomeExpander(exec),
		logger:   logging.GetLogger("paths"),
	}
}

// Resolve expands the host's deploy path and selects its release or
// current subdirectory, preferring release.
func (n *Normalizer) Resolve(ctx context.Context, host types.Host) (types.WorkDir, error) {
	root, err := n.home.Expand(ctx, host, host.DeployPath)
	if err != nil {
		return types.WorkDir{}, err
	}
	if !path.IsAbs(root) {
		return types.WorkDir{}, errors.Newf(errors.ErrConfigInvalid,
			"deploy_path of instance %q must be absolute or start with ~, got %q", host.Instance, host.DeployPath)
	}
	root = path.Clean(root)

	res, err := n.executor.Run(ctx, host, remote.Command{Script: script.WorkDirProbe(root)})
	if err != nil {
		return types.WorkDir{}, errors.Wrapf(err, errors.ErrRemoteExec, "failed to probe %s on %s", root, host)
	}

	var kind types.WorkDirKind
	switch lastLine(res) {
	case string(types.WorkDirRelease):
		kind = types.WorkDirRelease
	case string(types.WorkDirCurrent):
		kind = types.WorkDirCurrent
	default:
		return types.WorkDir{}, errors.Newf(errors.ErrDeployDirMissing,
			"neither %s nor %s exists on %s", path.Join(root, "release"), path.Join(root, "current"), host).
			WithDetail("instance", host.Instance).
			WithDetail("root", root)
	}

	wd := types.WorkDir{Host: host, Root: root, Kind: kind}
	n.logger.Debug().
		Str("instance", host.Instance).
		Str("dir", wd.Path()).
		Msg("Resolved working directory")
	return wd, nil
}
