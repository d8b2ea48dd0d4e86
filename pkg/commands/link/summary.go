package link

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/deplink/pkg/script"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// Summary counts the actions reported by a link routine.
type Summary struct {
	Directories int
	Deleted     int
	Linked      int
}

// ParseSummary counts marker lines in routine output. Other lines are
// ignored.
func ParseSummary(lines []string) Summary {
	var s Summary
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, script.MarkDirectory):
			s.Directories++
		case strings.HasPrefix(line, script.MarkDelete):
			s.Deleted++
		case strings.HasPrefix(line, script.MarkLink):
			s.Linked++
		}
	}
	return s
}

// Empty reports whether the routine found nothing to do.
func (s Summary) Empty() bool {
	return s == Summary{}
}

func (s Summary) String() string {
	return fmt.Sprintf("%s %s created, %s %s replaced, %s %s linked",
		humanize.Comma(int64(s.Directories)), english.PluralWord(s.Directories, "directory", "directories"),
		humanize.Comma(int64(s.Deleted)), english.PluralWord(s.Deleted, "file", "files"),
		humanize.Comma(int64(s.Linked)), english.PluralWord(s.Linked, "file", "files"))
}
