package types

import "path"

// WorkDirKind names the subdirectory selected under a deploy path.
type WorkDirKind string

const (
	WorkDirRelease WorkDirKind = "release"
	WorkDirCurrent WorkDirKind = "current"
)

// WorkDir is an absolute working directory on a host.
type WorkDir struct {
	Host Host
	// Root is the expanded deploy path.
	Root string
	Kind WorkDirKind
}

// Path returns Root joined with the selected subdirectory.
func (w WorkDir) Path() string {
	return path.Join(w.Root, string(w.Kind))
}
