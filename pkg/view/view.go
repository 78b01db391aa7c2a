// Package view is the surface the terminal host drives: one interactive
// recorder view, keyed input and text prompts.
package view

import (
	"context"

	"flightrec/pkg/chart"
)

// Prompt asks the user for a line of text. Submit returns an error to
// reject the answer; the host then keeps the prompt open.
type Prompt struct {
	Title  string
	Submit func(text string) error
}

// View is a recorder variant as the host sees it.
type View interface {
	// HandleKey runs the command bound to key. It reports whether the key
	// was consumed and returns a prompt when the command needs text input.
	HandleKey(ctx context.Context, key rune) (*Prompt, bool)
	Draw(c chart.Canvas, r chart.Rect)
	// Help is a one-line key summary for the status bar.
	Help() string
}
