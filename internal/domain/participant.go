package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a person associated with a trip, either its owner or an
// invitee. Name is nil for invitees — they are created from an email
// address only. Exactly one participant per trip has IsOwner set, assigned
// at creation and never changed.
type Participant struct {
	ID          uuid.UUID `json:"id"`
	TripID      uuid.UUID `json:"trip_id"`
	Name        *string   `json:"name,omitempty"`
	Email       string    `json:"email"`
	IsOwner     bool      `json:"is_owner"`
	IsConfirmed bool      `json:"is_confirmed"` // one-way: never reset to false
	CreatedAt   time.Time `json:"created_at"`
}
