package remote

import (
	"context"
	stderrors "errors"
	"net"
	"os"
	"os/user"
	"time"

	"github.com/arthur-debert/deplink/pkg/errors"
	"github.com/arthur-debert/deplink/pkg/logging"
	"github.com/arthur-debert/deplink/pkg/types"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// SSHOptions configures SSHExecutor.
type SSHOptions struct {
	// KnownHosts is the known_hosts file used to verify host keys.
	KnownHosts string
	// IdentityFiles are private keys tried after the agent.
	IdentityFiles []string
	// UseAgent enables keys from the agent at SSH_AUTH_SOCK.
	UseAgent bool
	// InsecureIgnoreHostKey disables host key verification.
	InsecureIgnoreHostKey bool
	// ConnectTimeout bounds dialing and the handshake only.
	ConnectTimeout time.Duration
}

// SSHExecutor runs routines over a fresh SSH session per call.
type SSHExecutor struct {
	opts   SSHOptions
	logger zerolog.Logger
	dial   func(ctx context.Context, network, addr string) (net.Conn, error)
}

// NewSSHExecutor creates an SSHExecutor.
func NewSSHExecutor(opts SSHOptions) *SSHExecutor {
	d := &net.Dialer{Timeout: opts.ConnectTimeout}
	return &SSHExecutor{
		opts:   opts,
		logger: logging.GetLogger("remote.ssh"),
		dial:   d.DialContext,
	}
}

func (e *SSHExecutor) Run(ctx context.Context, host types.Host, cmd Command) (*Result, error) {
	cfg, closeAuth, err := e.clientConfig(host)
	if err != nil {
		return nil, err
	}
	defer closeAuth()

	addr := host.Address()
	e.logger.Debug().Str("host", host.String()).Msg("Connecting")

	conn, err := e.dial(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRemoteExec, "failed to connect to %s", host)
	}
	if e.opts.ConnectTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(e.opts.ConnectTimeout))
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrapf(err, errors.ErrRemoteExec, "ssh handshake with %s failed", host)
	}
	// The routine itself runs without a deadline.
	_ = conn.SetDeadline(time.Time{})

	client := ssh.NewClient(c, chans, reqs)
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRemoteExec, "failed to open session on %s", host)
	}
	defer session.Close()

	out := newOutputCollector(cmd.Stream)
	session.Stdout = out
	session.Stderr = out

	e.logger.Debug().Str("host", host.String()).Str("script", cmd.Script).Msg("Running remote routine")

	err = session.Run(cmd.Script)
	result := &Result{Lines: out.Lines()}
	if err != nil {
		var exitErr *ssh.ExitError
		if stderrors.As(err, &exitErr) {
			return result, exitError(host, exitErr.ExitStatus(), result.Lines, err)
		}
		return result, exitError(host, -1, result.Lines, err)
	}
	return result, nil
}

// clientConfig assembles auth methods and host key verification. The
// returned func releases the agent connection.
func (e *SSHExecutor) clientConfig(host types.Host) (*ssh.ClientConfig, func(), error) {
	closeAuth := func() {}

	login := host.User
	if login == "" {
		if u, err := user.Current(); err == nil {
			login = u.Username
		}
	}

	var auths []ssh.AuthMethod
	if e.opts.UseAgent {
		if sock := os.Getenv("SSH_AUTH_SOCK"); sock != "" {
			agentConn, err := net.Dial("unix", sock)
			if err != nil {
				e.logger.Warn().Err(err).Msg("SSH agent unavailable")
			} else {
				closeAuth = func() { _ = agentConn.Close() }
				auths = append(auths, ssh.PublicKeysCallback(agent.NewClient(agentConn).Signers))
			}
		}
	}

	signers, err := loadSigners(e.opts.IdentityFiles)
	if err != nil {
		closeAuth()
		return nil, nil, err
	}
	if len(signers) > 0 {
		auths = append(auths, ssh.PublicKeys(signers...))
	}
	if len(auths) == 0 {
		closeAuth()
		return nil, nil, errors.Newf(errors.ErrConfigInvalid,
			"no SSH credentials for %s: start an agent or set ssh.identity_files", host)
	}

	hostKeys, err := e.hostKeyCallback()
	if err != nil {
		closeAuth()
		return nil, nil, err
	}

	return &ssh.ClientConfig{
		User:            login,
		Auth:            auths,
		HostKeyCallback: hostKeys,
		Timeout:         e.opts.ConnectTimeout,
	}, closeAuth, nil
}

func (e *SSHExecutor) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if e.opts.InsecureIgnoreHostKey {
		e.logger.Warn().Msg("Host key verification disabled")
		return ssh.InsecureIgnoreHostKey(), nil
	}
	path, err := homedir.Expand(e.opts.KnownHosts)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "invalid ssh.known_hosts")
	}
	cb, err := knownhosts.New(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "failed to read known hosts %s", path)
	}
	return cb, nil
}

func loadSigners(paths []string) ([]ssh.Signer, error) {
	var signers []ssh.Signer
	for _, p := range paths {
		path, err := homedir.Expand(p)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "invalid identity file %s", p)
		}
		pem, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "failed to read identity file %s", path)
		}
		signer, err := ssh.ParsePrivateKey(pem)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigInvalid,
				"failed to parse identity file %s (passphrase-protected keys must go through the agent)", path)
		}
		signers = append(signers, signer)
	}
	return signers, nil
}
