// Package safety holds the guards that run before any link routine:
// the confirmation and policy gate, and the same-machine check.
package safety
