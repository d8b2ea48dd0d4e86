package deplink

import (
	"fmt"

	"github.com/arthur-debert/deplink/internal/version"
	"github.com/arthur-debert/deplink/pkg/commands/link"
	"github.com/arthur-debert/deplink/pkg/config"
	"github.com/arthur-debert/deplink/pkg/errors"
	"github.com/arthur-debert/deplink/pkg/registry"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// sourceArg requires exactly one SOURCE argument and reports its absence
// as a usage error.
func sourceArg(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return errors.New(errors.ErrUsage, MsgErrSourceRequired)
	case 1:
		return nil
	default:
		return errors.Newf(errors.ErrUsage, "expected one source instance, got %d arguments", len(args))
	}
}

// instanceNamesCompletion completes configured instance names.
func (a *app) instanceNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var names []string
	for _, name := range cfg.InstanceNames() {
		if len(args) > 0 && args[0] == name {
			continue
		}
		names = append(names, name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func (a *app) runLink(cmd *cobra.Command, source, target string, dryRun bool) (*link.Result, error) {
	if target == "" {
		return nil, errors.New(errors.ErrUsage, link.MsgTargetRequired)
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("source", source).
		Str("target", target).
		Bool("dry_run", dryRun).
		Msg("Linking media")

	opts := link.Options{
		Source:   source,
		Target:   target,
		Config:   cfg,
		Executor: a.deps.Executor(cfg),
		DryRun:   dryRun,
	}
	if !dryRun {
		opts.Confirmer = a.confirmer(cmd)
		opts.Printer = a.printer(cmd)
		opts.Stream = cmd.OutOrStdout()
	}
	return link.LinkMedia(cmd.Context(), opts)
}

func newLinkCmd(a *app) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:               "link SOURCE --target TARGET",
		Aliases:           []string{"media:link"},
		Short:             MsgLinkShort,
		Long:              MsgLinkLong,
		Example:           MsgLinkExample,
		GroupID:           "core",
		Args:              sourceArg,
		ValidArgsFunction: a.instanceNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.runLink(cmd, args[0], target, false)
			if err != nil {
				return err
			}

			p := a.printer(cmd)
			if result.Summary.Empty() {
				p.Muted(MsgNothingToLink)
				return nil
			}
			p.Success(MsgLinkDone, result.Source.Path(), result.Target.Path(), result.Summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", MsgFlagTarget)
	_ = cmd.RegisterFlagCompletionFunc("target", a.instanceNamesCompletion)
	return cmd
}

func newScriptCmd(a *app) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:               "script SOURCE --target TARGET",
		Short:             MsgScriptShort,
		Long:              MsgScriptLong,
		GroupID:           "core",
		Args:              sourceArg,
		ValidArgsFunction: a.instanceNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.runLink(cmd, args[0], target, true)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), result.Script)
			return err
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", MsgFlagTarget)
	_ = cmd.RegisterFlagCompletionFunc("target", a.instanceNamesCompletion)
	return cmd
}

func newInstancesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "instances",
		Short:   MsgInstancesShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			p := a.printer(cmd)
			reg := registry.New(cfg)
			if len(reg.Names()) == 0 {
				p.Muted(MsgNoInstances)
				return nil
			}

			t := table.New().
				Border(lipgloss.HiddenBorder()).
				Headers("INSTANCE", "HOST", "DEPLOY PATH", "ROLE", "LINKS")
			for _, name := range reg.Names() {
				t.Row(instanceRow(cfg, reg, name)...)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return err
		},
	}
}

func instanceRow(cfg *config.Config, reg registry.Registry, name string) []string {
	inst := cfg.Instances[name]
	host := "(invalid: missing hostname, port or deploy_path)"
	if h, err := reg.Resolve(name); err == nil {
		host = h.String()
		if h.Local {
			host += " (local shell)"
		}
	}

	role := ""
	switch name {
	case cfg.TopInstance:
		role = "top"
	case cfg.LocalInstance:
		role = "local"
	}

	links := "allowed"
	switch {
	case name == cfg.LocalInstance:
		links = "never"
	case name == cfg.TopInstance && !inst.AllowLink:
		links = "forbidden"
	case name == cfg.TopInstance && !inst.AllowLinkWithoutConfirmation:
		links = "confirm twice"
	}
	return []string{name, host, inst.DeployPath, role, links}
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
	}

	var format string
	show := &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			out, err := config.Dump(cfg, format)
			if err != nil {
				return errors.Wrap(err, errors.ErrUsage, "cannot render configuration")
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	show.Flags().StringVarP(&format, "format", "f", "toml", MsgFlagFormat)
	_ = show.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{"toml", "yaml"}, cobra.ShellCompDirectiveNoFileComp))

	cmd.AddCommand(show)
	return cmd
}

func newTopicsCmd() *cobra.Command {
	tm := newTopicManager()
	return &cobra.Command{
		Use:     "topics [topic]",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if err := tm.Load(); err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return tm.ListTopics(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tm.Load(); err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to load help topics")
			}
			if len(args) == 0 {
				tm.PrintList(cmd.OutOrStdout(), cmd.Root().Name())
				return nil
			}
			topic, ok := tm.GetTopic(args[0])
			if !ok {
				return errors.Newf(errors.ErrUsage, MsgTopicNotFound, args[0])
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), tm.Render(topic))
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "deplink version %s\n", version.Version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			_, _ = fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
