// Package types defines the value types shared by the link pipeline:
// host descriptors, per-instance link policy and resolved working
// directories. They are built once per run from configuration and never
// mutated afterwards.
package types
