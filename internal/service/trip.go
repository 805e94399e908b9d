// Package service contains the business logic for the trip planner API.
// Services validate inputs, enforce the confirmation state machine, and
// orchestrate repo calls and email sends. No SQL lives here — services
// depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tcosta/planner/internal/domain"
	planmail "github.com/tcosta/planner/internal/mail"
	"github.com/tcosta/planner/internal/repo"
)

// Mailer is the outbound-mail capability the trip service depends on.
// Defined here, in the consumer package, so tests can inject a recording
// double without touching SMTP.
type Mailer interface {
	Send(ctx context.Context, msg planmail.Message) error
}

// TripServiceConfig carries the non-dependency settings of TripService:
// the sender identity and the base URL used to build confirmation links.
type TripServiceConfig struct {
	From       planmail.Address
	APIBaseURL string
}

// TripService implements the trip lifecycle: creation with participants,
// and the one-way idempotent trip confirmation with its invitation fan-out.
type TripService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	mailer       Mailer
	cfg          TripServiceConfig
	log          *slog.Logger
}

// NewTripService constructs a TripService. A nil logger falls back to
// slog.Default().
func NewTripService(trips repo.TripRepo, participants repo.ParticipantRepo, mailer Mailer, cfg TripServiceConfig, log *slog.Logger) *TripService {
	if log == nil {
		log = slog.Default()
	}
	return &TripService{
		trips:        trips,
		participants: participants,
		mailer:       mailer,
		cfg:          cfg,
		log:          log,
	}
}

// Create validates the input, persists the trip together with its owner and
// invitees in one transaction, and emails the owner a trip-confirmation
// link. The email is best-effort: a delivery failure is logged and the
// creation still succeeds, since the trip already exists.
func (s *TripService) Create(ctx context.Context, in domain.NewTrip) (domain.Trip, error) {
	if err := validateNewTrip(in); err != nil {
		return domain.Trip{}, err
	}

	trip := domain.Trip{
		Destination: strings.TrimSpace(in.Destination),
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
	}

	ownerName := strings.TrimSpace(in.OwnerName)
	participants := make([]domain.Participant, 0, len(in.EmailsToInvite)+1)
	participants = append(participants, domain.Participant{
		Name:        &ownerName,
		Email:       in.OwnerEmail,
		IsOwner:     true,
		IsConfirmed: true, // the owner confirms the trip itself, not their presence
	})
	for _, email := range in.EmailsToInvite {
		// Duplicates are kept on purpose: each invite is its own record.
		participants = append(participants, domain.Participant{Email: email})
	}

	created, saved, err := s.trips.CreateWithParticipants(ctx, trip, participants)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	owner := saved[0]
	confirmURL := fmt.Sprintf("%s/trips/%s/confirm", s.cfg.APIBaseURL, created.ID)
	msg := planmail.TripConfirmation(s.cfg.From, created, owner, confirmURL)
	if err := s.mailer.Send(ctx, msg); err != nil {
		// Non-fatal: the trip exists; the owner just has to get the link
		// by other means.
		s.log.ErrorContext(ctx, "trip confirmation email failed",
			"trip_id", created.ID,
			"owner_email", owner.Email,
			"error", err,
		)
	}

	return created, nil
}

// Confirm performs the one-way trip confirmation.
//
// Already-confirmed trips are a successful no-op: no state change, no
// emails. Otherwise the confirmed flag is committed first, and only the
// call that actually performed the transition runs the invitation fan-out,
// so concurrent duplicate requests never double-send.
func (s *TripService) Confirm(ctx context.Context, id uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Confirm: %w", err)
	}
	if trip.IsConfirmed {
		return nil
	}

	transitioned, err := s.trips.Confirm(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Confirm: %w", err)
	}
	if !transitioned {
		// A concurrent request won the race and owns the fan-out.
		return nil
	}
	trip.IsConfirmed = true

	invitees, err := s.participants.ListInviteesByTripID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Confirm: %w", err)
	}

	s.fanOutInvitations(ctx, trip, invitees)
	return nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// ListParticipants returns all participants of a trip, owner first.
// Returns domain.ErrNotFound if the trip does not exist.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListParticipants(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.TripService.ListParticipants: %w", err)
	}
	out, err := s.participants.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListParticipants: %w", err)
	}
	if out == nil {
		return []domain.Participant{}, nil
	}
	return out, nil
}

// fanOutInvitations sends one invitation per invitee, concurrently, and
// waits for all sends to finish. Sends are independent: one failure never
// blocks or cancels the others, and failures only surface in the log.
func (s *TripService) fanOutInvitations(ctx context.Context, trip domain.Trip, invitees []domain.Participant) {
	results := make([]error, len(invitees))

	var wg sync.WaitGroup
	for i, p := range invitees {
		wg.Add(1)
		go func() {
			defer wg.Done()
			confirmURL := fmt.Sprintf("%s/participants/%s/confirm", s.cfg.APIBaseURL, p.ID)
			results[i] = s.mailer.Send(ctx, planmail.TripInvitation(s.cfg.From, trip, p, confirmURL))
		}()
	}
	wg.Wait()

	for i, err := range results {
		if err != nil {
			s.log.ErrorContext(ctx, "trip invitation email failed",
				"trip_id", trip.ID,
				"participant_id", invitees[i].ID,
				"participant_email", invitees[i].Email,
				"error", err,
			)
		}
	}
}

// validateNewTrip enforces the creation rules:
//   - destination must be at least 4 characters after trimming;
//   - owner name and email are required; all emails must be well-formed;
//   - starts_at must not be in the past and ends_at must not precede starts_at.
func validateNewTrip(in domain.NewTrip) error {
	if len(strings.TrimSpace(in.Destination)) < 4 {
		return fmt.Errorf("%w: destination must be at least 4 characters", domain.ErrValidation)
	}
	if strings.TrimSpace(in.OwnerName) == "" {
		return fmt.Errorf("%w: owner_name is required", domain.ErrValidation)
	}
	if !validEmail(in.OwnerEmail) {
		return fmt.Errorf("%w: owner_email is not a valid email address", domain.ErrValidation)
	}
	for _, email := range in.EmailsToInvite {
		if !validEmail(email) {
			return fmt.Errorf("%w: invalid email address in emails_to_invite: %q", domain.ErrValidation, email)
		}
	}
	if in.StartsAt.Before(time.Now()) {
		return fmt.Errorf("%w: starts_at must not be in the past", domain.ErrInvalidTripWindow)
	}
	if in.EndsAt.Before(in.StartsAt) {
		return fmt.Errorf("%w: ends_at must not be before starts_at", domain.ErrInvalidTripWindow)
	}
	return nil
}

// validEmail reports whether addr is a well-formed bare email address.
// Addresses with display names ("Ana <ana@x.com>") are rejected.
func validEmail(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}
