package observer

import (
	"fmt"
	"io"
)

// TerminalRenderer redraws a single line using a carriage return and an
// erase-line escape.
type TerminalRenderer struct {
	w io.Writer
}

func NewTerminalRenderer(w io.Writer) *TerminalRenderer {
	return &TerminalRenderer{w: w}
}

func (t *TerminalRenderer) Render(f Frame) error {
	_, err := fmt.Fprintf(t.w, "\r\x1B[K→ Objective %d: Miss = %d | Counter = %d", f.Target, f.Miss, f.Value)
	return err
}

// Finish clears the live line so the caller can print the final result.
func (t *TerminalRenderer) Finish() error {
	_, err := fmt.Fprint(t.w, "\r\x1B[K")
	return err
}

// NopRenderer discards every frame. Used when output is not a terminal.
type NopRenderer struct{}

func (NopRenderer) Render(Frame) error { return nil }

func (NopRenderer) Finish() error { return nil }
