package mail_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcosta/planner/internal/domain"
	"github.com/tcosta/planner/internal/mail"
)

var from = mail.Address{Name: "Trip Planner", Address: "noreply@example.com"}

func sampleTrip() domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		Destination: "Rio de Janeiro",
		StartsAt:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
	}
}

func TestTripConfirmation(t *testing.T) {
	trip := sampleTrip()
	name := "Ana"
	owner := domain.Participant{ID: uuid.New(), TripID: trip.ID, Name: &name, Email: "ana@example.com", IsOwner: true, IsConfirmed: true}
	link := "http://localhost:8080/trips/" + trip.ID.String() + "/confirm"

	msg := mail.TripConfirmation(from, trip, owner, link)

	assert.Equal(t, from, msg.From)
	assert.Equal(t, "Ana", msg.To.Name)
	assert.Equal(t, "ana@example.com", msg.To.Address)
	assert.Equal(t, "Confirm your trip to Rio de Janeiro on September 1, 2026", msg.Subject)
	assert.Contains(t, msg.Body, "Rio de Janeiro")
	assert.Contains(t, msg.Body, "September 1, 2026 until September 4, 2026")
	assert.Contains(t, msg.Body, link)
}

func TestTripConfirmation_OwnerWithoutName(t *testing.T) {
	trip := sampleTrip()
	owner := domain.Participant{ID: uuid.New(), TripID: trip.ID, Email: "ana@example.com", IsOwner: true}

	msg := mail.TripConfirmation(from, trip, owner, "http://example.com/confirm")

	// Falls back to the address when no display name is known.
	assert.Equal(t, "ana@example.com", msg.To.Name)
}

func TestTripInvitation(t *testing.T) {
	trip := sampleTrip()
	guest := domain.Participant{ID: uuid.New(), TripID: trip.ID, Email: "b@example.com"}
	link := "http://localhost:8080/participants/" + guest.ID.String() + "/confirm"

	msg := mail.TripInvitation(from, trip, guest, link)

	require.Equal(t, "b@example.com", msg.To.Address)
	assert.Empty(t, msg.To.Name, "invitees have no display name")
	assert.Equal(t, "You're invited on a trip to Rio de Janeiro on September 1, 2026", msg.Subject)
	assert.Contains(t, msg.Body, link)
	assert.NotContains(t, msg.Body, trip.ID.String(), "the invitation link targets the participant, not the trip")
}
