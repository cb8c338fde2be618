// Package logging carries run output on two channels: a styled Console for
// the person driving the CLI and a plain-text Journal file for later
// inspection. Plugins only ever see the Console; the Journal belongs to the
// run itself.
package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

// Console renders one styled line per call. Methods are pure side effects;
// a nil Console is safe to call.
type Console struct {
	out     io.Writer
	quiet   bool
	journal *Journal
}

// ConsoleOption customizes Console construction.
type ConsoleOption func(*Console)

// WithQuiet suppresses info, step and blank output while keeping success,
// warning and error lines.
func WithQuiet(quiet bool) ConsoleOption {
	return func(c *Console) { c.quiet = quiet }
}

// WithJournal tees warning and error lines into the run journal.
func WithJournal(journal *Journal) ConsoleOption {
	return func(c *Console) { c.journal = journal }
}

// NewConsole writes styled lines to out.
func NewConsole(out io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{out: out}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Info reports routine progress.
func (c *Console) Info(format string, args ...any) {
	if c == nil || c.quiet {
		return
	}
	c.line(infoStyle, "•", format, args...)
}

// Success reports a completed action.
func (c *Console) Success(format string, args ...any) {
	if c == nil {
		return
	}
	c.line(successStyle, "✓", format, args...)
}

// Warning reports a recovered problem.
func (c *Console) Warning(format string, args ...any) {
	if c == nil {
		return
	}
	c.line(warningStyle, "!", format, args...)
	c.journal.Warn(format, args...)
}

// Error reports a failure.
func (c *Console) Error(format string, args ...any) {
	if c == nil {
		return
	}
	c.line(errorStyle, "✗", format, args...)
	c.journal.Error(format, args...)
}

// Step announces the next phase of a run.
func (c *Console) Step(format string, args ...any) {
	if c == nil || c.quiet {
		return
	}
	c.line(stepStyle, "→", format, args...)
}

// Blank emits an empty line for visual grouping.
func (c *Console) Blank() {
	if c == nil || c.quiet {
		return
	}
	fmt.Fprintln(c.out)
}

func (c *Console) line(style lipgloss.Style, prefix, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintln(c.out, style.Render(prefix+" "+message))
}
