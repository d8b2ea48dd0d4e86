package script

import (
	"fmt"
	"path"
	"strings"

	"github.com/arthur-debert/deplink/pkg/errors"
)

// Rsync is the tuning of the dry-run comparison.
type Rsync struct {
	// Flags is substituted verbatim right after the rsync binary.
	Flags string
	// Options is substituted verbatim after the fixed dry-run switches.
	Options  string
	Includes []string
	Excludes []string
	Filters  []string
}

// Link describes one diff-and-link routine.
type Link struct {
	// SourceDir is the absolute working directory of the source instance.
	SourceDir string
	// TargetDir is the absolute working directory of the target instance.
	TargetDir string
	Rsync     Rsync
}

// Routine output markers, one line per applied action.
const (
	MarkDirectory = "Creating directory "
	MarkDelete    = "Delete current file "
	MarkLink      = "Linking file "
)

// applyLoop walks the rsync listing in emission order. A path that is a
// directory in the source is created at the target; anything else replaces
// a non-directory at the target with a symlink to the source path. A
// directory already present at the target is never linked over.
const applyLoop = `printf '%s\n' "$list" | while IFS= read -r path; do
    [ -n "$path" ] || continue
    if [ -d "$src/$path" ]
    then
        echo "` + MarkDirectory + `$path"
        mkdir -p "$dst/$path"
    else
        if { [ -e "$dst/$path" ] || [ -L "$dst/$path" ]; } && [ ! -d "$dst/$path" ]
        then
            echo "` + MarkDelete + `$path"
            rm "$dst/$path"
        fi

        if [ ! -e "$dst/$path" ] && [ ! -L "$dst/$path" ]
        then
            echo "` + MarkLink + `$path"
            ln -s "$src/$path" "$dst/$path"
        fi
    fi
done
`

// Build renders the routine. Both directories must be absolute and
// distinct.
func (l Link) Build() (string, error) {
	src, err := absDir("source", l.SourceDir)
	if err != nil {
		return "", err
	}
	dst, err := absDir("target", l.TargetDir)
	if err != nil {
		return "", err
	}
	if src == dst {
		return "", errors.Newf(errors.ErrInvalidInput,
			"source and target directory are the same: %s", src)
	}

	rsync, err := l.Rsync.command()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("set -e\n")
	fmt.Fprintf(&b, "src=%s\n", Quote(src))
	fmt.Fprintf(&b, "dst=%s\n", Quote(dst))
	fmt.Fprintf(&b, "list=$(%s \"$src/\" \"$dst/\")\n", rsync)
	b.WriteString(applyLoop)
	return b.String(), nil
}

func (r Rsync) command() (string, error) {
	for name, v := range map[string]string{"flags": r.Flags, "options": r.Options} {
		if strings.ContainsAny(v, "\n\r") {
			return "", errors.Newf(errors.ErrInvalidInput, "rsync %s must be a single line", name)
		}
	}

	parts := []string{"rsync"}
	if f := strings.TrimSpace(r.Flags); f != "" {
		parts = append(parts, f)
	}
	// Names are printed raw; without -8 a C locale escapes non-ASCII bytes
	// and the loop would link paths that do not exist.
	parts = append(parts, "--info=all0,name1", "--8-bit-output", "--update", "--dry-run")
	if o := strings.TrimSpace(r.Options); o != "" {
		parts = append(parts, o)
	}
	for _, inc := range r.Includes {
		parts = append(parts, "--include="+Quote(inc))
	}
	for _, exc := range r.Excludes {
		parts = append(parts, "--exclude="+Quote(exc))
	}
	for _, f := range r.Filters {
		parts = append(parts, "--filter="+Quote(f))
	}
	return strings.Join(parts, " "), nil
}

func absDir(role, dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", errors.Newf(errors.ErrInvalidInput, "%s directory is empty", role)
	}
	if !path.IsAbs(dir) {
		return "", errors.Newf(errors.ErrInvalidInput, "%s directory must be absolute: %s", role, dir)
	}
	if strings.ContainsAny(dir, "\n\r") {
		return "", errors.Newf(errors.ErrInvalidInput, "%s directory contains a line break", role)
	}
	return path.Clean(dir), nil
}
