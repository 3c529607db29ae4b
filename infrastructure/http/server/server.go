// Package server exposes the chat core over HTTP: REST routes and the websocket live channel.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"chat-core/contract"
	"chat-core/errors"
	"chat-core/services"

	"github.com/gorilla/mux"
)

// NicknameHeader carries the caller identity. There is no authentication:
// whoever sets the header is trusted.
const NicknameHeader = "X-Nickname"

type Server struct {
	log                  *slog.Logger
	chatService          services.IChatService
	registry             contract.IRegistry
	connectionBufferSize int
	router               *mux.Router
}

func NewServer(log *slog.Logger, chatService services.IChatService, registry contract.IRegistry, connectionBufferSize int) *Server {
	s := &Server{
		log:                  log,
		chatService:          chatService,
		registry:             registry,
		connectionBufferSize: connectionBufferSize,
		router:               mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/up", s.handleUp).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.handleConnection).Methods(http.MethodGet)
	s.router.HandleFunc("/rooms/{token}", s.handleResolveRoom).Methods(http.MethodGet)
	s.router.HandleFunc("/rooms/{token}/messages", s.handleAppendMessage).Methods(http.MethodPost)
	s.router.HandleFunc("/rooms/{token}/messages", s.handleGetMessages).Methods(http.MethodGet)
	s.router.HandleFunc("/users/{nickname}/rooms", s.handleListRooms).Methods(http.MethodGet)
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleUp(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "up"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Debug("Response not written", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.log.Debug("Request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
