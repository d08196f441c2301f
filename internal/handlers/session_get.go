package handlers

//go:generate mockgen -source=session_get.go -destination=mock_session_get.go -package=handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
)

// SessionViewer defines the interface that the session manager must implement.
type SessionViewer interface {
	View(id string) (models.View, error)
}

// NewGetSessionHandler returns an HTTP handler for the current view of a session.
// @Summary Get session view
// @Description Returns the last rendered view of a converter session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.View "Current view"
// @Failure 404 {object} models.ErrorResponse "Session not found"
// @Router /sessions/{id} [get]
func NewGetSessionHandler(svc SessionViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.View(chi.URLParam(r, "id"))
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}
