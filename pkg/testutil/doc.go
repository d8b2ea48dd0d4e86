// Package testutil holds test doubles for the executor and confirmation
// ports, plus helpers for building directory trees.
package testutil
