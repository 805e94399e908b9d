package handler

import (
	"errors"
	"net/http"

	"github.com/tcosta/planner/internal/domain"
)

// ConfirmParticipant handles GET /participants/{participantID}/confirm.
// Confirming an already confirmed participant is a successful no-op.
func (s *Server) ConfirmParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "participantID")
	if !ok {
		return
	}

	if err := s.participants.Confirm(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "participant not found")
			return
		}
		internalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
