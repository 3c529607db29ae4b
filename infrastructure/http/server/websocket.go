package server

import (
	"net/http"
	"time"

	"chat-core/sink"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleConnection upgrades GET /ws?nickname=n and streams every room snapshot
// pushed to n until the client goes away. One nickname may hold several sessions.
func (s *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	nickname := r.URL.Query().Get("nickname")
	if nickname == "" {
		http.Error(w, "nickname is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("Websocket upgrade failed", "nickname", nickname, "error", err)
		return
	}

	session := sink.NewSessionSink(nickname, uuid.NewString(), s.connectionBufferSize)
	s.registry.Subscribe(nickname, session.SessionID, session)
	s.log.Info("Session connected", "nickname", nickname, "session", session.SessionID)

	go s.readPump(conn, session)
	s.writePump(conn, session)

	s.registry.Unsubscribe(nickname, session.SessionID)
	s.log.Info("Session disconnected", "nickname", nickname, "session", session.SessionID)
}

// readPump only keeps the connection alive: clients post through REST.
func (s *Server) readPump(conn *websocket.Conn, session *sink.SessionSink) {
	defer session.Close()
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("Websocket read failed", "nickname", session.Nickname, "error", err)
			}
			return
		}
	}
}

func (s *Server) writePump(conn *websocket.Conn, session *sink.SessionSink) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		session.Close()
		_ = conn.Close()
	}()

	for {
		select {
		case <-session.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case summary := <-session.Summaries():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(toSummaryResponse(summary)); err != nil {
				s.log.Warn("Failed to push room snapshot", "nickname", session.Nickname, "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
