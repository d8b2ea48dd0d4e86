package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/deplink/pkg/ui/styles"
)

// Printer writes operator-facing messages, styled or plain.
type Printer struct {
	out   io.Writer
	plain bool
}

// NewPrinter creates a Printer for out. FormatAuto styles only when out is
// a color-capable terminal.
func NewPrinter(out io.Writer, format Format) *Printer {
	if format == FormatAuto {
		format = FormatText
		if f, ok := out.(*os.File); ok {
			format = DetectFormat(f)
		}
	}
	return &Printer{out: out, plain: format != FormatTerminal}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Styled renders text with the named style, or returns it as is when plain.
func (p *Printer) Styled(style, text string) string {
	if p.plain {
		return text
	}
	return styles.GetStyle(style).Render(text)
}

func (p *Printer) line(style, format string, args ...interface{}) {
	_, _ = fmt.Fprintln(p.out, p.Styled(style, fmt.Sprintf(format, args...)))
}

func (p *Printer) Error(format string, args ...interface{}) {
	p.line(styles.Error, format, args...)
}

func (p *Printer) Warning(format string, args ...interface{}) {
	p.line(styles.Warning, format, args...)
}

func (p *Printer) Success(format string, args ...interface{}) {
	p.line(styles.Success, format, args...)
}

func (p *Printer) Muted(format string, args ...interface{}) {
	p.line(styles.Muted, format, args...)
}

// Println writes an unstyled line.
func (p *Printer) Println(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}
