package repo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcosta/planner/internal/domain"
	"github.com/tcosta/planner/internal/repo"
)

// newMockTripRepo returns a TripRepo backed by a pgxmock pool, so the SQL
// and scanning logic can be exercised without a running database.
func newMockTripRepo(t *testing.T) (repo.TripRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return repo.NewTripRepo(mock), mock
}

func tripFixture() domain.Trip {
	return domain.Trip{
		Destination: "Rio de Janeiro",
		StartsAt:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
	}
}

func TestTripRepo_CreateWithParticipants(t *testing.T) {
	r, mock := newMockTripRepo(t)
	ctx := context.Background()

	input := tripFixture()
	tripID := uuid.New()
	now := time.Now()
	ownerName := "Ana"

	participants := []domain.Participant{
		{Name: &ownerName, Email: "ana@example.com", IsOwner: true, IsConfirmed: true},
		{Email: "b@example.com"},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO trips`).
		WithArgs(pgx.NamedArgs{
			"destination": input.Destination,
			"starts_at":   input.StartsAt,
			"ends_at":     input.EndsAt,
		}).
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "destination", "starts_at", "ends_at", "is_confirmed", "created_at"},
		).AddRow(tripID, input.Destination, input.StartsAt, input.EndsAt, false, now))

	mock.ExpectQuery(`INSERT INTO participants`).
		WithArgs(pgx.NamedArgs{
			"trip_id":      tripID,
			"name":         &ownerName,
			"email":        "ana@example.com",
			"is_owner":     true,
			"is_confirmed": true,
		}).
		WillReturnRows(pgxmock.NewRows(participantCols).
			AddRow(uuid.New(), tripID, &ownerName, "ana@example.com", true, true, now))
	mock.ExpectQuery(`INSERT INTO participants`).
		WithArgs(pgx.NamedArgs{
			"trip_id":      tripID,
			"name":         (*string)(nil),
			"email":        "b@example.com",
			"is_owner":     false,
			"is_confirmed": false,
		}).
		WillReturnRows(pgxmock.NewRows(participantCols).
			AddRow(uuid.New(), tripID, (*string)(nil), "b@example.com", false, false, now))
	mock.ExpectCommit()

	trip, saved, err := r.CreateWithParticipants(ctx, input, participants)

	require.NoError(t, err)
	assert.Equal(t, tripID, trip.ID)
	assert.False(t, trip.IsConfirmed, "new trips start unconfirmed")
	require.Len(t, saved, 2)
	assert.Equal(t, tripID, saved[0].TripID)
	assert.True(t, saved[0].IsOwner)
	require.NotNil(t, saved[0].Name)
	assert.Equal(t, "Ana", *saved[0].Name)
	assert.Nil(t, saved[1].Name, "invitees are created from an email only")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepo_CreateWithParticipants_RollsBackOnParticipantError(t *testing.T) {
	r, mock := newMockTripRepo(t)
	ctx := context.Background()

	input := tripFixture()
	tripID := uuid.New()
	now := time.Now()
	ownerName := "Ana"

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO trips`).
		WithArgs(pgx.NamedArgs{
			"destination": input.Destination,
			"starts_at":   input.StartsAt,
			"ends_at":     input.EndsAt,
		}).
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "destination", "starts_at", "ends_at", "is_confirmed", "created_at"},
		).AddRow(tripID, input.Destination, input.StartsAt, input.EndsAt, false, now))
	mock.ExpectQuery(`INSERT INTO participants`).
		WithArgs(pgx.NamedArgs{
			"trip_id":      tripID,
			"name":         &ownerName,
			"email":        "ana@example.com",
			"is_owner":     true,
			"is_confirmed": true,
		}).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	_, _, err := r.CreateWithParticipants(ctx, input, []domain.Participant{
		{Name: &ownerName, Email: "ana@example.com", IsOwner: true, IsConfirmed: true},
	})

	// No commit: either everything is persisted or nothing is.
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepo_GetByID(t *testing.T) {
	r, mock := newMockTripRepo(t)
	ctx := context.Background()

	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM trips`).
		WithArgs(pgx.NamedArgs{"id": id}).
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "destination", "starts_at", "ends_at", "is_confirmed", "created_at"},
		).AddRow(id, "Rio de Janeiro", now, now.Add(72*time.Hour), true, now))

	got, err := r.GetByID(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Rio de Janeiro", got.Destination)
	assert.True(t, got.IsConfirmed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r, mock := newMockTripRepo(t)
	ctx := context.Background()

	id := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM trips`).
		WithArgs(pgx.NamedArgs{"id": id}).
		WillReturnError(pgx.ErrNoRows)

	_, err := r.GetByID(ctx, id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepo_Confirm_Transitions(t *testing.T) {
	r, mock := newMockTripRepo(t)
	ctx := context.Background()

	id := uuid.New()
	mock.ExpectExec(`UPDATE trips`).
		WithArgs(pgx.NamedArgs{"id": id}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	transitioned, err := r.Confirm(ctx, id)

	require.NoError(t, err)
	assert.True(t, transitioned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepo_Confirm_AlreadyConfirmed(t *testing.T) {
	r, mock := newMockTripRepo(t)
	ctx := context.Background()

	// The NOT is_confirmed guard matches no row when the flag is already set.
	id := uuid.New()
	mock.ExpectExec(`UPDATE trips`).
		WithArgs(pgx.NamedArgs{"id": id}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	transitioned, err := r.Confirm(ctx, id)

	require.NoError(t, err)
	assert.False(t, transitioned)
	assert.NoError(t, mock.ExpectationsWereMet())
}
