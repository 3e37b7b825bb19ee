// Package store holds the record store implementations: an embedded or
// remote SQL database for production and an in-memory map for tests and
// dependency-free development.
package store

import (
	"errors"

	"github.com/i474232898/weather-records-api/internal/weather"
)

// ErrNotFound is returned when no record exists for a given id.
var ErrNotFound = errors.New("weather record not found")

var (
	_ weather.Store = (*MemoryStore)(nil)
	_ weather.Store = (*SQLStore)(nil)
)
