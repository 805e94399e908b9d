package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tcosta/planner/internal/domain"
)

// ParticipantRepo defines the persistence operations for Participants.
// Participants are created through TripRepo.CreateWithParticipants; this
// repo only reads and confirms them.
type ParticipantRepo interface {
	// GetByID retrieves a single participant by its UUID primary key.
	// Returns domain.ErrNotFound if no participant with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error)

	// ListByTripID returns all participants of a trip, owner included,
	// ordered by created_at ascending (owner first, then invitees in the
	// order they were invited).
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)

	// ListInviteesByTripID returns the non-owner participants of a trip,
	// ordered by created_at ascending.
	ListInviteesByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)

	// Confirm flips is_confirmed to true with a conditional update that only
	// matches an unconfirmed row. It reports whether this call performed the
	// transition; false means the participant was already confirmed.
	// Returns domain.ErrNotFound if the participant does not exist.
	Confirm(ctx context.Context, id uuid.UUID) (bool, error)
}

// pgParticipantRepo is the Postgres implementation of ParticipantRepo.
type pgParticipantRepo struct {
	db db
}

// NewParticipantRepo constructs a ParticipantRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx or a
// pgxmock pool.
func NewParticipantRepo(db db) ParticipantRepo {
	return &pgParticipantRepo{db: db}
}

// GetByID retrieves a participant by primary key.
func (r *pgParticipantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	const q = `
		SELECT id, trip_id, name, email, is_owner, is_confirmed, created_at
		FROM participants
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanParticipant(row)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns every participant of the trip.
func (r *pgParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	const q = `
		SELECT id, trip_id, name, email, is_owner, is_confirmed, created_at
		FROM participants
		WHERE trip_id = @trip_id
		ORDER BY created_at ASC`

	return r.list(ctx, "ListByTripID", q, pgx.NamedArgs{"trip_id": tripID})
}

// ListInviteesByTripID returns the non-owner participants of the trip.
func (r *pgParticipantRepo) ListInviteesByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	const q = `
		SELECT id, trip_id, name, email, is_owner, is_confirmed, created_at
		FROM participants
		WHERE trip_id = @trip_id AND NOT is_owner
		ORDER BY created_at ASC`

	return r.list(ctx, "ListInviteesByTripID", q, pgx.NamedArgs{"trip_id": tripID})
}

// Confirm performs the conditional unconfirmed→confirmed update. When no row
// is updated it distinguishes "already confirmed" from "does not exist" with
// a follow-up existence check.
func (r *pgParticipantRepo) Confirm(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `
		UPDATE participants
		SET is_confirmed = TRUE
		WHERE id = @id AND NOT is_confirmed`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return false, fmt.Errorf("repo.ParticipantRepo.Confirm: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	var exists bool
	err = r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM participants WHERE id = @id)`,
		pgx.NamedArgs{"id": id},
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.ParticipantRepo.Confirm: exists: %w", err)
	}
	if !exists {
		return false, fmt.Errorf("repo.ParticipantRepo.Confirm: %w", domain.ErrNotFound)
	}
	return false, nil
}

// list runs a participant query and scans all rows.
func (r *pgParticipantRepo) list(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.Participant, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var out []domain.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ParticipantRepo.%s: scan: %w", op, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.%s: rows: %w", op, err)
	}

	return out, nil
}

// scanParticipant maps a single database row into a domain.Participant.
// Name is nullable: invitees are created from an email address only.
func scanParticipant(s scanner) (domain.Participant, error) {
	var p domain.Participant
	err := s.Scan(&p.ID, &p.TripID, &p.Name, &p.Email, &p.IsOwner, &p.IsConfirmed, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Participant{}, domain.ErrNotFound
		}
		return domain.Participant{}, err
	}
	return p, nil
}
