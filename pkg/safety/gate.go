package safety

import (
	"fmt"

	"github.com/arthur-debert/deplink/pkg/errors"
	"github.com/arthur-debert/deplink/pkg/logging"
	"github.com/arthur-debert/deplink/pkg/types"
	"github.com/arthur-debert/deplink/pkg/ui"
	"github.com/arthur-debert/deplink/pkg/ui/confirmations"
)

// Prompts shown by the gate.
const (
	PromptContinue = "Do you really want to continue?"
	PromptSure     = "Are you sure?"
	PromptLink     = "Do you really want to link media from instance %s to instance %s"
)

// MsgAborted is the message of every ErrAborted returned by the gate.
const MsgAborted = "Process aborted."

// Request describes a link to authorize.
type Request struct {
	Source string
	Target string
	// TopInstance is the protected production instance name.
	TopInstance string
	// LocalInstance is the development instance name; links into it are
	// never allowed.
	LocalInstance string
	// TopPolicy holds the policy toggles of the top instance.
	TopPolicy types.Policy
}

// Gate authorizes link requests, prompting through Confirmer.
type Gate struct {
	Confirmer confirmations.Confirmer
	// Out receives the destructive-action warning.
	Out *ui.Printer
}

// Authorize returns nil when the link from req.Source to req.Target may
// proceed. Rules run in a fixed order:
//
//  1. A link into the top instance is refused when its policy forbids
//     links, goes ahead silently when its policy skips confirmation, and
//     otherwise needs two explicit confirmations, both defaulting to no.
//  2. A link into the local instance is always refused.
//  3. Any other target needs one confirmation defaulting to yes.
func (g *Gate) Authorize(req Request) error {
	logger := logging.GetLogger("safety")

	if req.Source == req.Target {
		return errors.Newf(errors.ErrUsage, "Source and target instance are both %q.", req.Source)
	}

	confirmed := false
	if req.Target == req.TopInstance {
		if !req.TopPolicy.AllowLink {
			return errors.Newf(errors.ErrPolicyForbidden,
				"FORBIDDEN: For security its forbidden to link media to top instance: %q!", req.Target).
				WithDetail("target", req.Target)
		}
		confirmed = true
		if !req.TopPolicy.AllowLinkWithoutConfirmation {
			g.warn(req)
			if err := g.ask(PromptContinue, false); err != nil {
				return err
			}
			if err := g.ask(PromptSure, false); err != nil {
				return err
			}
		}
	}

	if req.Target == req.LocalInstance {
		return errors.Newf(errors.ErrPolicyForbidden,
			"FORBIDDEN: For synchro local media use:\ndeplink media:pull %s", req.Source).
			WithDetail("target", req.Target)
	}

	if !confirmed {
		if err := g.ask(fmt.Sprintf(PromptLink, req.Source, req.Target), true); err != nil {
			return err
		}
	}

	logger.Info().
		Str("source", req.Source).
		Str("target", req.Target).
		Msg("Link authorized")
	return nil
}

func (g *Gate) warn(req Request) {
	if g.Out == nil {
		return
	}
	g.Out.Println("")
	g.Out.Warning("You are going to link media from instance: %q to top instance: %q.", req.Source, req.Target)
	g.Out.Warning("This can be destructive.")
	g.Out.Println("")
}

func (g *Gate) ask(prompt string, def bool) error {
	ok, err := g.Confirmer.Confirm(prompt, def)
	if err != nil {
		return errors.Wrap(err, errors.ErrAborted, MsgAborted)
	}
	if !ok {
		return errors.New(errors.ErrAborted, MsgAborted).WithDetail("prompt", prompt)
	}
	return nil
}

// EnforceSameHost refuses links between different machines. Hosts are the
// same only when hostname and port match textually.
func EnforceSameHost(source, target types.Host) error {
	if types.SameMachine(source, target) {
		return nil
	}
	return errors.New(errors.ErrTopology, "FORBIDDEN: Creating links only allowed on same machine.").
		WithDetail("source", source.Address()).
		WithDetail("target", target.Address())
}
