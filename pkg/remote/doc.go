// Package remote runs shell routines on the host of an instance.
//
// SSHExecutor talks to remote hosts with golang.org/x/crypto/ssh;
// LocalExecutor runs routines for instances marked local; Router picks
// between the two per host. Output is collected line by line and can be
// streamed live. A non-zero exit is always an error and is never retried.
package remote
