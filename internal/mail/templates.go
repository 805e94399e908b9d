package mail

import (
	"fmt"

	"github.com/tcosta/planner/internal/domain"
)

// dateLayout is the human-readable date format used in subjects and bodies.
const dateLayout = "January 2, 2006"

// TripConfirmation builds the message sent to the trip owner right after
// creation. The link is the only way to confirm the trip, so losing this
// message means the owner must request the link by other means.
func TripConfirmation(from Address, trip domain.Trip, owner domain.Participant, confirmURL string) Message {
	start := trip.StartsAt.Format(dateLayout)
	end := trip.EndsAt.Format(dateLayout)

	ownerName := owner.Email
	if owner.Name != nil {
		ownerName = *owner.Name
	}

	body := fmt.Sprintf(`
		<p>
			You requested the creation of a trip to <strong>%s</strong> from
			<strong>%s until %s</strong>.
		</p>
		<p>To confirm your trip, click the link below:</p>
		<p><a href="%s">Confirm trip</a></p>
		<p>If you don't know what this email is about, just ignore it.</p>
	`, trip.Destination, start, end, confirmURL)

	return Message{
		From:    from,
		To:      Address{Name: ownerName, Address: owner.Email},
		Subject: fmt.Sprintf("Confirm your trip to %s on %s", trip.Destination, start),
		Body:    body,
	}
}

// TripInvitation builds the message sent to one invitee when the trip is
// confirmed. The link targets that participant's own confirmation, not the
// trip's.
func TripInvitation(from Address, trip domain.Trip, invitee domain.Participant, confirmURL string) Message {
	start := trip.StartsAt.Format(dateLayout)
	end := trip.EndsAt.Format(dateLayout)

	body := fmt.Sprintf(`
		<p>
			You have been invited on a trip to <strong>%s</strong> from
			<strong>%s until %s</strong>.
		</p>
		<p>To confirm your presence, click the link below:</p>
		<p><a href="%s">Confirm presence</a></p>
		<p>If you don't know what this email is about, just ignore it.</p>
	`, trip.Destination, start, end, confirmURL)

	return Message{
		From:    from,
		To:      Address{Address: invitee.Email},
		Subject: fmt.Sprintf("You're invited on a trip to %s on %s", trip.Destination, start),
		Body:    body,
	}
}
