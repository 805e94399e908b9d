package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tcosta/planner/internal/domain"
)

// createTripRequest is the body of POST /trips. Timestamps are RFC 3339.
type createTripRequest struct {
	Destination    string    `json:"destination"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	OwnerName      string    `json:"owner_name"`
	OwnerEmail     string    `json:"owner_email"`
	EmailsToInvite []string  `json:"emails_to_invite"`
}

// createTripResponse is the body of a successful POST /trips.
type createTripResponse struct {
	TripID uuid.UUID `json:"trip_id"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	created, err := s.trips.Create(r.Context(), domain.NewTrip{
		Destination:    req.Destination,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		OwnerName:      req.OwnerName,
		OwnerEmail:     req.OwnerEmail,
		EmailsToInvite: req.EmailsToInvite,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTripWindow):
			invalidTripWindow(w, err)
		case errors.Is(err, domain.ErrValidation):
			validationError(w, err)
		default:
			internalError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, createTripResponse{TripID: created.ID})
}

// ConfirmTrip handles GET /trips/{tripID}/confirm.
// Both the "just confirmed" and the "already confirmed" cases end in the
// same redirect to the frontend's trip view; only the first triggers the
// invitation fan-out.
func (s *Server) ConfirmTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	if err := s.trips.Confirm(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "trip not found")
			return
		}
		internalError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("%s/trips/%s", s.webBaseURL, id), http.StatusSeeOther)
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "trip not found")
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// ListTripParticipants handles GET /trips/{tripID}/participants.
func (s *Server) ListTripParticipants(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	participants, err := s.trips.ListParticipants(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "trip not found")
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]domain.Participant{"participants": participants})
}

// pathUUID parses the named chi URL parameter as a UUID. On failure it
// writes a 400 response and reports false.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		badRequest(w, name+" must be a valid UUID")
		return uuid.UUID{}, false
	}
	return id, true
}
