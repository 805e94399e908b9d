package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tcosta/planner/internal/repo"
)

// ParticipantService implements the per-participant confirmation. It shares
// the one-way idempotent confirmation shape with trip confirmation but has
// no notification side effect.
type ParticipantService struct {
	participants repo.ParticipantRepo
}

// NewParticipantService constructs a ParticipantService backed by the
// provided ParticipantRepo.
func NewParticipantService(participants repo.ParticipantRepo) *ParticipantService {
	return &ParticipantService{participants: participants}
}

// Confirm marks the participant as confirmed. Confirming an already
// confirmed participant is a successful no-op.
// Returns domain.ErrNotFound if the participant does not exist.
func (s *ParticipantService) Confirm(ctx context.Context, id uuid.UUID) error {
	if _, err := s.participants.Confirm(ctx, id); err != nil {
		return fmt.Errorf("service.ParticipantService.Confirm: %w", err)
	}
	return nil
}
