package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"chat-core/domain/chat"
	"chat-core/errors"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

// handleResolveRoom opens the room of the token's participants, creating it on first access.
func (s *Server) handleResolveRoom(w http.ResponseWriter, r *http.Request) {
	view, err := s.chatService.ResolveRoom(r.Context(), chat.ResolveRoomCommand{
		RoomToken: mux.Vars(r)["token"],
		Caller:    r.Header.Get(NicknameHeader),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toRoomResponse(view))
}

func (s *Server) handleAppendMessage(w http.ResponseWriter, r *http.Request) {
	var body appendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err))
		return
	}
	message, err := s.chatService.AppendMessage(r.Context(), chat.AppendMessageCommand{
		RoomToken: mux.Vars(r)["token"],
		Sender:    r.Header.Get(NicknameHeader),
		Content:   body.Content,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toMessageResponse(message))
}

func (s *Server) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	var cursor *string
	if c := r.URL.Query().Get("cursor"); c != "" {
		cursor = lo.ToPtr(c)
	}
	messages, next, err := s.chatService.GetMessages(r.Context(), chat.GetMessagesCommand{
		RoomToken: mux.Vars(r)["token"],
		Caller:    r.Header.Get(NicknameHeader),
		Cursor:    cursor,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pageResponse{Messages: toMessagesResponse(messages), Cursor: next})
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.chatService.ListRoomsForUser(r.Context(), mux.Vars(r)["nickname"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, lo.Map(summaries, func(sum chat.RoomSummary, _ int) summaryResponse {
		return toSummaryResponse(sum)
	}))
}
