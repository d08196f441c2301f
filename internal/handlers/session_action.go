package handlers

//go:generate mockgen -source=session_action.go -destination=mock_session_action.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
)

// ActionDispatcher defines the interface that the session manager must implement.
type ActionDispatcher interface {
	Dispatch(ctx context.Context, id string, a models.Action) (models.View, error)
}

// NewDispatchActionHandler returns an HTTP handler applying a user action to a session.
// The response is the view right after the action; provider results arrive later.
// @Summary Dispatch action
// @Description Applies open_picker, close_picker, select, swap, edit_amount or search to a session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body models.ActionRequest true "Action"
// @Success 200 {object} models.View "View after the action"
// @Failure 400 {object} models.ErrorResponse "Invalid action"
// @Failure 404 {object} models.ErrorResponse "Session not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /sessions/{id}/actions [post]
func NewDispatchActionHandler(svc ActionDispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req models.ActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Warnw("failed to decode action request", "session_id", id, "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		action, err := req.ToAction()
		if err != nil {
			logger.Log.Warnw("invalid action", "session_id", id, "error", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		view, err := svc.Dispatch(r.Context(), id, action)
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}
