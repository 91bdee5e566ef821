// Package store persists saved games. A save is the text written by
// tetris.Tetris.Save and every implementation keeps exactly one of them.
package store

import "errors"

// ErrNotFound is returned by Load when nothing was saved yet.
var ErrNotFound = errors.New("no saved game")
