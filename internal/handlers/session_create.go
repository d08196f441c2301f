package handlers

//go:generate mockgen -source=session_create.go -destination=mock_session_create.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-currency-converter/internal/facades"
	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
)

// SessionCreator defines the interface that the session manager must implement.
type SessionCreator interface {
	Create(ctx context.Context) (string, models.View, error)
}

// NewCreateSessionHandler returns an HTTP handler opening a converter session.
// The client address is kept for the local currency lookup.
// @Summary Create session
// @Description Opens a converter session, starts loading currencies and rates and detects the local currency
// @Tags sessions
// @Produce json
// @Success 201 {object} models.SessionResponse "Session created"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /sessions [post]
func NewCreateSessionHandler(svc SessionCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := facades.WithClientIP(r.Context(), clientIP(r))

		id, view, err := svc.Create(ctx)
		if err != nil {
			logger.Log.Errorw("failed to create session", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusCreated, models.SessionResponse{SessionID: id, View: view})
	}
}
