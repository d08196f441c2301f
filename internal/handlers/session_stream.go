package handlers

//go:generate mockgen -source=session_stream.go -destination=mock_session_stream.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/sbilibin2017/gw-currency-converter/internal/session"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = pongWait * 9 / 10
	maxFrameSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// SessionStreamer defines the interface that the session manager must implement.
type SessionStreamer interface {
	Subscribe(id string) (<-chan models.View, func(), error)
	Dispatch(ctx context.Context, id string, a models.Action) (models.View, error)
}

// NewStreamSessionHandler returns a WebSocket handler pushing a session's
// views. Text frames from the client are decoded as actions; invalid ones
// are answered with an error frame.
// @Summary Stream session views
// @Description Upgrades to a WebSocket, sends the current view and then every redraw. Accepts action frames.
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 101 {object} models.View "Switching protocols"
// @Failure 404 {object} models.ErrorResponse "Session not found"
// @Router /sessions/{id}/stream [get]
func NewStreamSessionHandler(svc SessionStreamer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		views, cancel, err := svc.Subscribe(id)
		if err != nil {
			writeSessionError(w, err)
			return
		}
		defer cancel()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Log.Warnw("failed to upgrade stream", "session_id", id, "error", err)
			return
		}
		defer conn.Close()

		ctx, stop := context.WithCancel(r.Context())
		defer stop()

		problems := make(chan string, 1)
		closed := make(chan struct{})
		go readActions(ctx, conn, svc, id, problems, closed)

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case v, ok := <-views:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if !ok {
					_ = conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
					return
				}
				if err := conn.WriteJSON(v); err != nil {
					logger.Log.Debugw("stream write failed", "session_id", id, "error", err)
					return
				}
			case msg := <-problems:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(models.ErrorResponse{Error: msg}); err != nil {
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-closed:
				return
			}
		}
	}
}

// readActions dispatches client frames until the connection fails.
func readActions(
	ctx context.Context,
	conn *websocket.Conn,
	svc SessionStreamer,
	id string,
	problems chan<- string,
	closed chan<- struct{},
) {
	defer close(closed)

	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	report := func(msg string) {
		select {
		case problems <- msg:
		default:
		}
	}

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.Warnw("stream closed unexpectedly", "session_id", id, "error", err)
			}
			return
		}

		var req models.ActionRequest
		if err := json.Unmarshal(frame, &req); err != nil {
			report("Invalid request body")
			continue
		}
		action, err := req.ToAction()
		if err != nil {
			report(err.Error())
			continue
		}

		if _, err := svc.Dispatch(ctx, id, action); err != nil {
			if errors.Is(err, session.ErrSessionNotFound) || errors.Is(err, session.ErrSessionClosed) {
				return
			}
			logger.Log.Errorw("failed to dispatch streamed action", "session_id", id, "error", err)
			report("Internal server error")
		}
	}
}
