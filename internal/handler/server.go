// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, participant.go) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tcosta/planner/internal/domain"
	"github.com/tcosta/planner/spec"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, in domain.NewTrip) (domain.Trip, error)
	Confirm(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListParticipants(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
}

// ParticipantServicer defines the business operations the participant
// handler depends on.
type ParticipantServicer interface {
	Confirm(ctx context.Context, id uuid.UUID) error
}

// Server holds the handler dependencies. WebBaseURL is where browsers are
// redirected after a trip confirmation (the frontend's trip view).
type Server struct {
	trips        TripServicer
	participants ParticipantServicer
	webBaseURL   string
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, participants ParticipantServicer, webBaseURL string) *Server {
	return &Server{trips: trips, participants: participants, webBaseURL: webBaseURL}
}

// Register mounts all API routes on the given router.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPISpec)

	r.Post("/trips", s.CreateTrip)
	r.Get("/trips/{tripID}", s.GetTrip)
	r.Get("/trips/{tripID}/confirm", s.ConfirmTrip)
	r.Get("/trips/{tripID}/participants", s.ListTripParticipants)

	r.Get("/participants/{participantID}/confirm", s.ConfirmParticipant)
}

// GetOpenAPISpec serves the embedded API contract.
func (s *Server) GetOpenAPISpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
