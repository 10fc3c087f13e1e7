package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyPool is returned when the selected categories hold no records
var ErrEmptyPool = errors.New("no words available in the selected categories")

// LoadError means a bin manifest could not be fetched or parsed
type LoadError struct {
	Bin    Bin
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s catalog from %s: %v", e.Bin, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ValidationError means the selection is incomplete
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// PlaybackWarning records an audio failure; it never stops the game
type PlaybackWarning struct {
	Path string
	Err  error
}

func (w *PlaybackWarning) Error() string {
	return fmt.Sprintf("play audio %s: %v", w.Path, w.Err)
}

func (w *PlaybackWarning) Unwrap() error { return w.Err }
