// Package ui implements the terminal surfaces: the interactive search
// overlay, the progress wizard, result rendering, and progress
// indicators that degrade gracefully without a TTY.
package ui

import "errors"

var (
	// ErrCancelled is returned when the user aborts an interactive flow.
	ErrCancelled = errors.New("ui: cancelled by user")

	// ErrHeadless is returned when an interactive flow is requested
	// without a terminal attached.
	ErrHeadless = errors.New("ui: interactive terminal required")
)

// Progress creates progress indicators appropriate for the current
// terminal: animated when interactive, plain log lines when headless.
type Progress interface {
	Start(title string, total int) ProgressBar
	Spinner(title string) Spinner
}

// ProgressBar is a determinate progress indicator.
type ProgressBar interface {
	Increment(n int)
	SetTitle(title string)
	Done()
}

// Spinner is an indeterminate activity indicator.
type Spinner interface {
	SetTitle(title string)
	Stop()
}
