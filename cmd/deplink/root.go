package deplink

import (
	"embed"
	"io/fs"
	"os"

	"github.com/arthur-debert/deplink/internal/version"
	"github.com/arthur-debert/deplink/pkg/cobrax/topics"
	"github.com/arthur-debert/deplink/pkg/config"
	"github.com/arthur-debert/deplink/pkg/errors"
	"github.com/arthur-debert/deplink/pkg/logging"
	"github.com/arthur-debert/deplink/pkg/remote"
	"github.com/arthur-debert/deplink/pkg/ui"
	"github.com/arthur-debert/deplink/pkg/ui/confirmations"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// Deps are the collaborators commands are built with.
type Deps struct {
	// Stdin decides between interactive and line based prompts.
	Stdin *os.File
	// Executor builds the executor for a loaded configuration.
	Executor func(cfg *config.Config) remote.Executor
	// Confirmer, when set, replaces the prompt chosen from Stdin.
	Confirmer confirmations.Confirmer
	// Load is the base of every configuration load. --config is added.
	Load config.LoadOptions
}

// DefaultDeps returns the collaborators of the real program.
func DefaultDeps() Deps {
	return Deps{
		Stdin:    os.Stdin,
		Executor: NewExecutor,
	}
}

// NewExecutor routes local instances to the local shell and everything
// else over SSH.
func NewExecutor(cfg *config.Config) remote.Executor {
	return &remote.Router{
		Local: remote.NewLocalExecutor(),
		Remote: remote.NewSSHExecutor(remote.SSHOptions{
			KnownHosts:            cfg.SSH.KnownHosts,
			IdentityFiles:         cfg.SSH.IdentityFiles,
			UseAgent:              cfg.SSH.UseAgent,
			InsecureIgnoreHostKey: cfg.SSH.InsecureIgnoreHostKey,
			ConnectTimeout:        cfg.SSH.ConnectTimeout,
		}),
	}
}

// globalOptions hold the persistent flags.
type globalOptions struct {
	verbosity     int
	configFile    string
	noInteraction bool
	output        string
	format        ui.Format
}

// app bundles what subcommands need.
type app struct {
	deps Deps
	opts *globalOptions
}

func (a *app) loadConfig() (*config.Config, error) {
	opts := a.deps.Load
	if a.opts.configFile != "" {
		opts.ConfigFile = a.opts.configFile
	}
	return config.Load(opts)
}

func (a *app) confirmer(cmd *cobra.Command) confirmations.Confirmer {
	if a.deps.Confirmer != nil && !a.opts.noInteraction {
		return a.deps.Confirmer
	}
	return confirmations.New(a.deps.Stdin, cmd.ErrOrStderr(), a.opts.noInteraction)
}

func (a *app) printer(cmd *cobra.Command) *ui.Printer {
	return ui.NewPrinter(cmd.ErrOrStderr(), a.opts.format)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(DefaultDeps())
}

// NewRootCmdWithDeps creates the root command with the given collaborators.
func NewRootCmdWithDeps(deps Deps) *cobra.Command {
	initTemplateFormatting()

	a := &app{deps: deps, opts: &globalOptions{}}

	rootCmd := &cobra.Command{
		Use:     "deplink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			format, err := ui.ParseFormat(a.opts.output)
			if err != nil {
				return errors.Wrap(err, errors.ErrUsage, "invalid --output")
			}
			a.opts.format = format
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrUsage, "no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&a.opts.configFile, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVarP(&a.opts.noInteraction, "no-interaction", "n", false, MsgFlagNoInteraction)
	rootCmd.PersistentFlags().StringVar(&a.opts.output, "output", "auto", MsgFlagOutput)

	// Flag parse errors are usage errors.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrUsage, cmd.CommandPath())
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newLinkCmd(a))
	rootCmd.AddCommand(newScriptCmd(a))
	rootCmd.AddCommand(newInstancesCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if err := topics.Initialize(rootCmd, newTopicManager()); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func newTopicManager() *topics.TopicManager {
	sub, err := fs.Sub(topicsFS, "topics")
	if err != nil {
		// Unreachable with a valid embed directive.
		sub = topicsFS
	}
	style := topics.StyleAuto
	if ui.DetectFormat(os.Stdout) == ui.FormatText {
		style = topics.StyleNoTTY
	}
	return topics.NewWithOptions(sub, topics.Options{
		Extensions: []string{".md", ".txt"},
		Renderer:   topics.NewGlamourRenderer(style, 0),
	})
}
