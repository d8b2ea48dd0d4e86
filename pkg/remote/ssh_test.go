// pkg/remote/ssh_test.go
// TEST TYPE: Integration
// DEPENDENCIES: In-process SSH server
// PURPOSE: Test SSH execution, authentication and host key checks

package remote

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/deplink/pkg/errors"
	"github.com/arthur-debert/deplink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

type execHandler func(command string) (output string, status uint32)

type testServer struct {
	host    types.Host
	hostKey ssh.PublicKey

	mu       sync.Mutex
	commands []string
}

func (s *testServer) received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

// startServer runs an in-process SSH server that accepts clientKey and
// answers every exec request with handler.
func startServer(t *testing.T, clientKey ssh.PublicKey, handler execHandler) *testServer {
	t.Helper()

	_, hostPriv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	hostSigner, err := ssh.NewSignerFromKey(hostPriv)
	require.NoError(t, err)

	cfg := &ssh.ServerConfig{
		PublicKeyCallback: func(_ ssh.ConnMetadata, key ssh.PublicKey) (*ssh.Permissions, error) {
			if bytes.Equal(key.Marshal(), clientKey.Marshal()) {
				return nil, nil
			}
			return nil, fmt.Errorf("unknown key")
		},
	}
	cfg.AddHostKey(hostSigner)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	srv := &testServer{hostKey: hostSigner.PublicKey()}
	addr := ln.Addr().(*net.TCPAddr)
	srv.host = types.Host{Instance: "live", Hostname: "127.0.0.1", Port: addr.Port, User: "deploy"}

	go func() {
		for {
			nConn, err := ln.Accept()
			if err != nil {
				return
			}
			go srv.serve(nConn, cfg, handler)
		}
	}()
	return srv
}

func (s *testServer) serve(nConn net.Conn, cfg *ssh.ServerConfig, handler execHandler) {
	_, chans, reqs, err := ssh.NewServerConn(nConn, cfg)
	if err != nil {
		return
	}
	go ssh.DiscardRequests(reqs)

	for newCh := range chans {
		if newCh.ChannelType() != "session" {
			_ = newCh.Reject(ssh.UnknownChannelType, "only sessions")
			continue
		}
		ch, requests, err := newCh.Accept()
		if err != nil {
			continue
		}
		go func() {
			defer ch.Close()
			for req := range requests {
				if req.Type != "exec" {
					_ = req.Reply(false, nil)
					continue
				}
				var payload struct{ Command string }
				if err := ssh.Unmarshal(req.Payload, &payload); err != nil {
					_ = req.Reply(false, nil)
					return
				}
				_ = req.Reply(true, nil)

				s.mu.Lock()
				s.commands = append(s.commands, payload.Command)
				s.mu.Unlock()

				out, status := handler(payload.Command)
				_, _ = ch.Write([]byte(out))
				_, _ = ch.SendRequest("exit-status", false, ssh.Marshal(struct{ Status uint32 }{status}))
				return
			}
		}()
	}
}

func writeClientKey(t *testing.T, dir string) (string, ssh.PublicKey) {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	block, err := ssh.MarshalPrivateKey(priv, "test")
	require.NoError(t, err)
	path := filepath.Join(dir, "id_ed25519")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0600))

	signer, err := ssh.NewSignerFromKey(priv)
	require.NoError(t, err)
	return path, signer.PublicKey()
}

func writeKnownHosts(t *testing.T, dir string, host types.Host, key ssh.PublicKey) string {
	t.Helper()
	path := filepath.Join(dir, "known_hosts")
	line := knownhosts.Line([]string{knownhosts.Normalize(host.Address())}, key)
	require.NoError(t, os.WriteFile(path, []byte(line+"\n"), 0644))
	return path
}

func TestSSHExecutor_Run(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")
	dir := t.TempDir()
	keyPath, pub := writeClientKey(t, dir)

	srv := startServer(t, pub, func(command string) (string, uint32) {
		if command == "fail" {
			return "permission denied\n", 3
		}
		return "Creating directory shared\nLinking file shared/a.jpg\n", 0
	})
	knownHosts := writeKnownHosts(t, dir, srv.host, srv.hostKey)

	exec := NewSSHExecutor(SSHOptions{
		KnownHosts:     knownHosts,
		IdentityFiles:  []string{keyPath},
		ConnectTimeout: 5 * time.Second,
	})

	t.Run("success", func(t *testing.T) {
		var stream bytes.Buffer
		res, err := exec.Run(context.Background(), srv.host, Command{Script: "do-link", Stream: &stream})
		require.NoError(t, err)
		assert.Equal(t, []string{"Creating directory shared", "Linking file shared/a.jpg"}, res.Lines)
		assert.Contains(t, stream.String(), "Linking file shared/a.jpg")
		assert.Contains(t, srv.received(), "do-link")
	})

	t.Run("exit status", func(t *testing.T) {
		res, err := exec.Run(context.Background(), srv.host, Command{Script: "fail"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRemoteExec))
		assert.Equal(t, 3, errors.GetErrorDetails(err)["exit_status"])
		assert.Equal(t, []string{"permission denied"}, res.Lines)
	})
}

func TestSSHExecutor_RejectsUnknownHostKey(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")
	dir := t.TempDir()
	keyPath, pub := writeClientKey(t, dir)
	srv := startServer(t, pub, func(string) (string, uint32) { return "", 0 })

	_, otherKey := writeClientKey(t, t.TempDir())
	knownHosts := writeKnownHosts(t, dir, srv.host, otherKey)

	exec := NewSSHExecutor(SSHOptions{KnownHosts: knownHosts, IdentityFiles: []string{keyPath}, ConnectTimeout: 5 * time.Second})
	_, err := exec.Run(context.Background(), srv.host, Command{Script: "true"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRemoteExec))
	assert.Empty(t, srv.received())
}

func TestSSHExecutor_ConfigErrors(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")
	host := types.Host{Instance: "live", Hostname: "127.0.0.1", Port: 1, User: "deploy"}
	dir := t.TempDir()
	keyPath, _ := writeClientKey(t, dir)

	tests := []struct {
		name string
		opts SSHOptions
	}{
		{"no credentials", SSHOptions{UseAgent: true, InsecureIgnoreHostKey: true}},
		{"missing identity file", SSHOptions{IdentityFiles: []string{filepath.Join(dir, "missing")}, InsecureIgnoreHostKey: true}},
		{"missing known_hosts", SSHOptions{IdentityFiles: []string{keyPath}, KnownHosts: filepath.Join(dir, "nope")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSSHExecutor(tt.opts).Run(context.Background(), host, Command{Script: "true"})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid), "got %v", err)
		})
	}
}

func TestSSHExecutor_ConnectFailure(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	keyPath, _ := writeClientKey(t, t.TempDir())
	exec := NewSSHExecutor(SSHOptions{IdentityFiles: []string{keyPath}, InsecureIgnoreHostKey: true, ConnectTimeout: time.Second})
	_, err = exec.Run(context.Background(), types.Host{Hostname: "127.0.0.1", Port: port}, Command{Script: "true"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRemoteExec))
	assert.Contains(t, err.Error(), strconv.Itoa(port))
}
