// pkg/commands/link/summary_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test counting of routine output markers

package link_test

import (
	"testing"

	"github.com/arthur-debert/deplink/pkg/commands/link"
	"github.com/stretchr/testify/assert"
)

func TestParseSummary(t *testing.T) {
	s := link.ParseSummary([]string{
		"Creating directory a",
		"Creating directory a/b",
		"Delete current file a/b/c.jpg",
		"Linking file a/b/c.jpg",
		"rsync: some warning",
		"",
	})
	assert.Equal(t, link.Summary{Directories: 2, Deleted: 1, Linked: 1}, s)
	assert.False(t, s.Empty())
	assert.True(t, link.ParseSummary(nil).Empty())
}

func TestSummaryString(t *testing.T) {
	assert.Equal(t, "0 directories created, 1 file replaced, 1,234 files linked",
		link.Summary{Deleted: 1, Linked: 1234}.String())
	assert.Equal(t, "1 directory created, 0 files replaced, 1 file linked",
		link.Summary{Directories: 1, Linked: 1}.String())
}
