package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Console renders progress narration and summaries for a correction run.
// It implements correct.Reporter; it is purely observational.
type Console struct {
	out   io.Writer
	quiet bool

	dim     lipgloss.Style
	header  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

// NewConsole creates a console writing to out. With color disabled the
// styles collapse to plain text.
func NewConsole(out io.Writer, colorEnabled, quiet bool) *Console {
	c := &Console{out: out, quiet: quiet}
	if colorEnabled {
		c.dim = lipgloss.NewStyle().Faint(true)
		c.header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
		c.success = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
		c.failure = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	} else {
		plain := lipgloss.NewStyle()
		c.dim, c.header, c.success, c.failure = plain, plain, plain, plain
	}
	return c
}

// Print displays one progress message in a dim style.
func (c *Console) Print(msg string) {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.out, c.dim.Render(msg))
}

// Headerf prints a prominent one-line banner.
func (c *Console) Headerf(format string, args ...any) {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.out, c.header.Render(fmt.Sprintf(format, args...)))
}

// Successf prints a green summary line.
func (c *Console) Successf(format string, args ...any) {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.out, c.success.Render(fmt.Sprintf(format, args...)))
}

// Errorf prints a red error line. Errors ignore quiet mode.
func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintln(c.out, c.failure.Render(fmt.Sprintf(format, args...)))
}
