package deplink

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Link media between instances on the same machine"
	MsgLinkShort       = "Link the media of SOURCE into the target instance"
	MsgScriptShort     = "Print the routine link would run"
	MsgInstancesShort  = "List configured instances"
	MsgConfigShort     = "Inspect the effective configuration"
	MsgConfigShowShort = "Print the merged configuration"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics, or one topic when a name is given."
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	// Status messages
	MsgNothingToLink = "Nothing to link, target is up to date."
	MsgLinkDone      = "Linked %s into %s: %s"
	MsgNoInstances   = "No instances configured."
	MsgTopicNotFound = "unknown topic %q, run 'deplink topics' for the list"

	// Error messages
	MsgErrSourceRequired = "You must name the source instance, the media will be linked from."
	MsgErrUsageHint      = "Run '%s --help' for usage."

	// Flag descriptions
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig        = "Config file (default: deplink.toml in the current directory)"
	MsgFlagNoInteraction = "Never prompt; every question takes its default answer"
	MsgFlagOutput        = "Output style: auto, term or text"
	MsgFlagTarget        = "Target instance receiving the links (required)"
	MsgFlagFormat        = "Output format: toml or yaml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/link-example.txt
	msgLinkExampleRaw string
	MsgLinkExample    = strings.TrimRight(msgLinkExampleRaw, "\n")

	//go:embed msgs/script-long.txt
	msgScriptLongRaw string
	MsgScriptLong    = strings.TrimSpace(msgScriptLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
