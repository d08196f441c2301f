package handlers

//go:generate mockgen -source=session_delete.go -destination=mock_session_delete.go -package=handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SessionCloser defines the interface that the session manager must implement.
type SessionCloser interface {
	Close(id string) error
}

// NewDeleteSessionHandler returns an HTTP handler closing a session.
// @Summary Close session
// @Description Stops a converter session and drops its cached rates
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204 "Session closed"
// @Failure 404 {object} models.ErrorResponse "Session not found"
// @Router /sessions/{id} [delete]
func NewDeleteSessionHandler(svc SessionCloser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Close(chi.URLParam(r, "id")); err != nil {
			writeSessionError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
