// Package store persists generated levels, either as per-level file
// artifacts or in a SQL database.
package store

import (
	"errors"

	"github.com/harrykeightley/wordcrossing-generator/internal/level"
)

// ErrNotFound is returned when a named level does not exist.
var ErrNotFound = errors.New("level not found")

// Store is a keyed collection of levels. Level names are unique; saving an
// existing name replaces it.
type Store interface {
	Save(lvl *level.Level) error
	Load(name string) (*level.Level, error)
	List() ([]string, error)
	Close() error
}
