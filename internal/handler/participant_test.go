package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcosta/planner/internal/domain"
)

func TestConfirmParticipant_204(t *testing.T) {
	id := uuid.New()
	participants := &mockParticipantServicer{
		confirm: func(_ context.Context, got uuid.UUID) error {
			assert.Equal(t, id, got)
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/participants/"+id.String()+"/confirm", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(&mockTripServicer{}, participants).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestConfirmParticipant_404(t *testing.T) {
	participants := &mockParticipantServicer{
		confirm: func(_ context.Context, _ uuid.UUID) error {
			return fmt.Errorf("service.ParticipantService.Confirm: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/participants/"+uuid.NewString()+"/confirm", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(&mockTripServicer{}, participants).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Error.Code)
}

func TestConfirmParticipant_400_InvalidUUID(t *testing.T) {
	participants := &mockParticipantServicer{
		confirm: func(_ context.Context, _ uuid.UUID) error {
			t.Fatal("service must not be called for an invalid UUID")
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/participants/nope/confirm", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(&mockTripServicer{}, participants).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
