// Package terminal provides consistent status output using Lipgloss.
package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Reporter renders severity-tagged status lines. The decision core
// reports through this interface and never writes to a terminal itself.
type Reporter interface {
	Info(msg string)
	Success(msg string)
	Warning(msg string)
	Error(msg string)
}

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#58a6ff"})
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#3fb950"})
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9a6700", Dark: "#d29922"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f85149"})
)

type writer struct {
	out     io.Writer
	colored bool
}

// NewReporter creates a Reporter printing one line per message to out,
// each prefixed with a severity glyph. When colored is false the glyph
// is left unstyled.
func NewReporter(out io.Writer, colored bool) Reporter {
	return &writer{out: out, colored: colored}
}

func (w *writer) line(style lipgloss.Style, glyph, msg string) {
	if w.colored {
		glyph = style.Render(glyph)
	}
	fmt.Fprintf(w.out, "%s %s\n", glyph, msg)
}

func (w *writer) Info(msg string) {
	w.line(infoStyle, "ℹ", msg)
}

func (w *writer) Success(msg string) {
	w.line(successStyle, "✓", msg)
}

func (w *writer) Warning(msg string) {
	w.line(warningStyle, "⚠", msg)
}

func (w *writer) Error(msg string) {
	w.line(errorStyle, "✗", msg)
}

// ColorEnabled reports whether styled output makes sense for out. The
// NO_COLOR convention and dumb terminals win over TTY detection.
func ColorEnabled(out *os.File) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(out.Fd()))
}
