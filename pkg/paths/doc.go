// Package paths turns an instance's configured deploy path into the
// absolute working directory a link routine operates on.
//
// Resolution happens on the host that owns the path:
//
//   - A leading "~" is expanded to the login user's home directory. Local
//     hosts use the process environment, remote hosts are asked with a probe.
//   - The expanded root is probed for a "release" subdirectory, then for a
//     "current" one. The first that exists becomes the working directory.
//
// A root with neither subdirectory is an error (DEPLOY_DIR_MISSING); the
// link routine never runs against a directory that does not exist.
package paths
