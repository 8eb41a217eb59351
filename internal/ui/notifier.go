package ui

import (
	"io"

	"github.com/fatih/color"
)

// ConsoleNotifier prints action notifications for the non-interactive commands
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier creates a notifier writing to out
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

// Error prints a failed operation
func (n *ConsoleNotifier) Error(title, message string) {
	color.New(color.FgRed, color.Bold).Fprintf(n.out, "✗ %s: ", title)
	color.New(color.FgRed).Fprintln(n.out, message)
}

// Success prints a confirmation
func (n *ConsoleNotifier) Success(message string) {
	color.New(color.FgGreen).Fprintf(n.out, "✓ %s\n", message)
}
