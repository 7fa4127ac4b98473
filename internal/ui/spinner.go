// Package ui holds small terminal presentation helpers.
package ui

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// Spinner wraps briandowns/spinner and stays silent when stderr is not a
// terminal, so piped and redirected runs see clean output.
type Spinner struct {
	inner *spinner.Spinner
}

// NewSpinner creates a spinner with the given message. On non-TTY stderr the
// spinner is inert and every method is a no-op.
func NewSpinner(message string) *Spinner {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return &Spinner{}
	}

	inner := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	inner.Suffix = " " + message
	return &Spinner{inner: inner}
}

// Start begins the animation.
func (sp *Spinner) Start() {
	if sp.inner != nil {
		sp.inner.Start()
	}
}

// Stop ends the animation and clears the line.
func (sp *Spinner) Stop() {
	if sp.inner != nil {
		sp.inner.Stop()
	}
}

// UpdateMessage swaps the text next to the spinner glyph.
func (sp *Spinner) UpdateMessage(message string) {
	if sp.inner != nil {
		sp.inner.Suffix = " " + message
	}
}
