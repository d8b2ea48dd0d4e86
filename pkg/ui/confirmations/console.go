package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConsoleConfirmer reads answers line by line from a reader.
type ConsoleConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleConfirmer creates a console confirmation prompt
func NewConsoleConfirmer(in io.Reader, out io.Writer) *ConsoleConfirmer {
	return &ConsoleConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints prompt with a [Y/n] or [y/N] marker and reads one line.
// An empty line or end of input selects def. Anything other than y/yes
// counts as no.
func (c *ConsoleConfirmer) Confirm(prompt string, def bool) (bool, error) {
	defaultMarker := "[y/N]"
	if def {
		defaultMarker = "[Y/n]"
	}
	if _, err := fmt.Fprintf(c.out, "%s %s: ", prompt, defaultMarker); err != nil {
		return false, err
	}

	response, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}
	if err == io.EOF {
		_, _ = fmt.Fprintln(c.out)
	}

	response = strings.ToLower(strings.TrimSpace(response))
	if response == "" {
		return def, nil
	}
	return response == "y" || response == "yes", nil
}
