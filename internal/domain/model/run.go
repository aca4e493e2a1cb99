package model

import "time"

// Run summarizes one completed batch for the optional history store.
type Run struct {
	ID        string // UUID assigned when the batch starts.
	StartedAt time.Time
	Total     int
	Succeeded int
}
