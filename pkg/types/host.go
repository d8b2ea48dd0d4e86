package types

import (
	"net"
	"strconv"
)

// Host is the resolved physical location of an instance.
type Host struct {
	// Instance is the logical instance name the host was resolved from.
	Instance string
	// Hostname as written in configuration. Never resolved or canonicalized.
	Hostname string
	// Port of the remote shell endpoint.
	Port int
	// User to log in as. Empty means the current user.
	User string
	// DeployPath is the instance root, possibly starting with "~".
	DeployPath string
	// Local hosts are reached without SSH.
	Local bool
}

// Address returns hostname:port suitable for dialing.
func (h Host) Address() string {
	return net.JoinHostPort(h.Hostname, strconv.Itoa(h.Port))
}

// String returns a short human-readable form used in logs and messages.
func (h Host) String() string {
	if h.User != "" {
		return h.User + "@" + h.Address()
	}
	return h.Address()
}

// SameMachine reports whether a and b denote the same machine: hostname
// and port must be textually equal.
func SameMachine(a, b Host) bool {
	return a.Hostname == b.Hostname && a.Port == b.Port
}
