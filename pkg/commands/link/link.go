package link

import (
	"context"
	"io"

	"github.com/arthur-debert/deplink/pkg/config"
	"github.com/arthur-debert/deplink/pkg/errors"
	"github.com/arthur-debert/deplink/pkg/logging"
	"github.com/arthur-debert/deplink/pkg/paths"
	"github.com/arthur-debert/deplink/pkg/registry"
	"github.com/arthur-debert/deplink/pkg/remote"
	"github.com/arthur-debert/deplink/pkg/safety"
	"github.com/arthur-debert/deplink/pkg/script"
	"github.com/arthur-debert/deplink/pkg/types"
	"github.com/arthur-debert/deplink/pkg/ui"
	"github.com/arthur-debert/deplink/pkg/ui/confirmations"
)

// Options defines the options for LinkMedia.
type Options struct {
	// Source is the instance whose files are linked to.
	Source string
	// Target is the instance receiving the symlinks.
	Target string
	// Config is the loaded configuration.
	Config *config.Config
	// Registry resolves instance names. Defaults to one built from Config.
	Registry registry.Registry
	// Executor runs probes and the link routine.
	Executor remote.Executor
	// Confirmer answers the gate's prompts.
	Confirmer confirmations.Confirmer
	// Printer receives warnings. May be nil.
	Printer *ui.Printer
	// Stream receives routine output while it runs. May be nil.
	Stream io.Writer
	// DryRun stops after building the routine. Prompts are skipped, the
	// policy and topology guards still apply.
	DryRun bool
}

// Result describes a finished (or dry) run.
type Result struct {
	Source  types.WorkDir
	Target  types.WorkDir
	Script  string
	Lines   []string
	Summary Summary
	DryRun  bool
}

// approveAll answers yes to every prompt.
type approveAll struct{}

func (approveAll) Confirm(string, bool) (bool, error) { return true, nil }

// LinkMedia links the media of opts.Source into opts.Target.
func LinkMedia(ctx context.Context, opts Options) (*Result, error) {
	log := logging.GetLogger("commands.link")
	log.Debug().
		Str("command", "LinkMedia").
		Str("source", opts.Source).
		Str("target", opts.Target).
		Bool("dry_run", opts.DryRun).
		Msg("Executing command")

	if opts.Config == nil {
		return nil, errors.New(errors.ErrInternal, "link: no configuration")
	}
	if opts.Executor == nil {
		return nil, errors.New(errors.ErrInternal, "link: no executor")
	}
	if opts.Target == "" {
		return nil, errors.New(errors.ErrUsage, MsgTargetRequired)
	}
	reg := opts.Registry
	if reg == nil {
		reg = registry.New(opts.Config)
	}

	if err := authorize(opts); err != nil {
		return nil, err
	}

	done := logging.LogOperationStart(log, "resolve")
	sourceHost, err := reg.Resolve(opts.Source)
	if err != nil {
		return nil, err
	}
	targetHost, err := reg.Resolve(opts.Target)
	if err != nil {
		return nil, err
	}
	done()

	done = logging.LogOperationStart(log, "normalize")
	normalizer := paths.NewNormalizer(opts.Executor)
	sourceDir, err := normalizer.Resolve(ctx, sourceHost)
	if err != nil {
		return nil, err
	}
	targetDir, err := normalizer.Resolve(ctx, targetHost)
	if err != nil {
		return nil, err
	}
	done()

	if err := safety.EnforceSameHost(sourceHost, targetHost); err != nil {
		return nil, err
	}

	routine, err := script.Link{
		SourceDir: sourceDir.Path(),
		TargetDir: targetDir.Path(),
		Rsync:     rsyncFromConfig(opts.Config.Rsync),
	}.Build()
	if err != nil {
		return nil, err
	}

	result := &Result{
		Source: sourceDir,
		Target: targetDir,
		Script: routine,
		DryRun: opts.DryRun,
	}
	if opts.DryRun {
		log.Info().Str("command", "LinkMedia").Msg("Dry run, routine not executed")
		return result, nil
	}

	done = logging.LogOperationStart(log, "execute")
	res, err := opts.Executor.Run(ctx, sourceHost, remote.Command{Script: routine, Stream: opts.Stream})
	done()
	if res != nil {
		result.Lines = res.Lines
		result.Summary = ParseSummary(res.Lines)
	}
	if err != nil {
		log.Error().Err(err).Msg("Link routine failed")
		return result, err
	}

	log.Info().
		Str("command", "LinkMedia").
		Int("directories", result.Summary.Directories).
		Int("deleted", result.Summary.Deleted).
		Int("linked", result.Summary.Linked).
		Msg("Command finished")
	return result, nil
}

func authorize(opts Options) error {
	var confirmer confirmations.Confirmer = approveAll{}
	var printer *ui.Printer
	if !opts.DryRun {
		confirmer = opts.Confirmer
		if confirmer == nil {
			confirmer = confirmations.DefaultConfirmer{}
		}
		printer = opts.Printer
	}

	gate := &safety.Gate{Confirmer: confirmer, Out: printer}
	return gate.Authorize(safety.Request{
		Source:        opts.Source,
		Target:        opts.Target,
		TopInstance:   opts.Config.TopInstance,
		LocalInstance: opts.Config.LocalInstance,
		TopPolicy:     opts.Config.Policy(opts.Config.TopInstance),
	})
}

func rsyncFromConfig(r config.Rsync) script.Rsync {
	return script.Rsync{
		Flags:    r.Flags,
		Options:  r.Options,
		Includes: r.Includes,
		Excludes: r.Excludes,
		Filters:  r.Filters,
	}
}
