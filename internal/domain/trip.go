// Package domain contains the core data types for the trip planner API.
// This package has zero external dependencies beyond uuid and is imported
// by every other internal package (repo, service, mail, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: a planned outing with a destination and
// a date window, owned by exactly one participant.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	IsConfirmed bool      `json:"is_confirmed"` // one-way: never reset to false
	CreatedAt   time.Time `json:"created_at"`
}

// NewTrip carries the input for trip creation: the trip fields plus the
// owner and the invitee emails. The whole unit is persisted atomically.
//
// EmailsToInvite may contain duplicates; each entry becomes its own
// participant row, duplicates included.
type NewTrip struct {
	Destination    string
	StartsAt       time.Time
	EndsAt         time.Time
	OwnerName      string
	OwnerEmail     string
	EmailsToInvite []string
}
