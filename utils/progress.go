package utils

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Progress renders a single-line progress bar on stderr, sized to the
// terminal width when stderr is a terminal.
type Progress struct {
	width int
}

// NewProgress instantiates a new Progress bar.
func NewProgress() *Progress {
	width := 48
	fd := int(os.Stderr.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 20 {
			width = w - 20
		}
	}
	return &Progress{width: width}
}

// Update redraws the bar for the given completion fraction in [0, 1].
func (p *Progress) Update(current, limit int, fraction float64) {
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(p.width))
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", p.width-filled)
	fmt.Fprintf(os.Stderr, "\r[%s%s%s] %d/%d", SuccessColor, bar, DefaultColor, current, limit)
}

// Done terminates the bar line.
func (p *Progress) Done() {
	fmt.Fprintln(os.Stderr)
}
