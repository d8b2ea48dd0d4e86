// Package script assembles the shell routines deplink runs on the shared
// host: the home and working-directory probes, and the diff-and-link
// routine that mirrors a source tree into a target tree as symlinks.
//
// Every path is embedded as a single-quoted shell word. The rsync flag and
// option strings are operator configuration and are substituted verbatim;
// include, exclude and filter rules are quoted one by one.
package script
