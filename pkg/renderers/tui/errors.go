package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrIncomplete is returned by Render when required answers are still
	// missing after every prompt ran.
	ErrIncomplete = errors.New("tui: required answers missing")
)
