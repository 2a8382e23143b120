// Package uuidx generates the identifiers used for dispatch events.
package uuidx

import "github.com/google/uuid"

// New returns a fresh version 7 UUID. V7 ids are time-ordered, which keeps
// event logs sortable by creation. Panics if the random source fails.
func New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
