// Package notify surfaces transient user-facing notifications. Every
// failure in the stores goes through a Notifier so nothing fails silently.
package notify

import (
	"fmt"
	"io"
	"os"
)

// Notifier receives user-facing notifications.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

// Console writes notifications to a terminal stream.
type Console struct {
	Out io.Writer
}

// NewConsole creates a console notifier. A nil writer defaults to stderr.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stderr
	}
	return &Console{Out: w}
}

func (c *Console) Info(msg string) {
	fmt.Fprintf(c.Out, "• %s\n", msg)
}

func (c *Console) Error(msg string) {
	fmt.Fprintf(c.Out, "✗ %s\n", msg)
}

// Nop discards all notifications.
type Nop struct{}

func (Nop) Info(string)  {}
func (Nop) Error(string) {}
