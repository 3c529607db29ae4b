package server

import (
	"time"

	"chat-core/domain/chat"

	"github.com/samber/lo"
)

type errorResponse struct {
	Error string `json:"error"`
}

type appendMessageRequest struct {
	Content string `json:"content"`
}

type memberResponse struct {
	Nickname string `json:"nickname"`
	Name     string `json:"name,omitempty"`
	ImgURL   string `json:"imgUrl,omitempty"`
}

type messageResponse struct {
	ID      string         `json:"id"`
	Room    string         `json:"room"`
	Sender  memberResponse `json:"sender"`
	Content string         `json:"content"`
	At      time.Time      `json:"at"`
	Status  string         `json:"status"`
}

type roomResponse struct {
	Key            string            `json:"key"`
	Name           string            `json:"name,omitempty"`
	ImgURL         string            `json:"imgUrl,omitempty"`
	Members        []memberResponse  `json:"members"`
	LatestMessage  string            `json:"latestMessage"`
	LatestActivity time.Time         `json:"latestActivity"`
	Messages       []messageResponse `json:"messages"`
}

type summaryResponse struct {
	Key            string    `json:"key"`
	Name           string    `json:"name,omitempty"`
	ImgURL         string    `json:"imgUrl,omitempty"`
	Members        []string  `json:"members"`
	LatestMessage  string    `json:"latestMessage"`
	LatestActivity time.Time `json:"latestActivity"`
}

type pageResponse struct {
	Messages []messageResponse `json:"messages"`
	Cursor   *string           `json:"cursor,omitempty"`
}

func toMemberResponse(m chat.Member) memberResponse {
	return memberResponse{Nickname: m.Nickname, Name: m.Name, ImgURL: m.ImgURL}
}

func toMessageResponse(m chat.Message) messageResponse {
	return messageResponse{
		ID:      m.ID.String(),
		Room:    m.Room.String(),
		Sender:  toMemberResponse(m.Sender),
		Content: m.Content,
		At:      m.At,
		Status:  m.Status.String(),
	}
}

func toMessagesResponse(messages []chat.Message) []messageResponse {
	return lo.Map(messages, func(m chat.Message, _ int) messageResponse { return toMessageResponse(m) })
}

func toRoomResponse(view chat.RoomView) roomResponse {
	return roomResponse{
		Key:            view.Room.Key.String(),
		Name:           view.Room.Name,
		ImgURL:         view.Room.ImgURL,
		Members:        lo.Map(view.Room.Members, func(m chat.Member, _ int) memberResponse { return toMemberResponse(m) }),
		LatestMessage:  view.Room.LatestMessage,
		LatestActivity: view.Room.LatestActivity,
		Messages:       toMessagesResponse(view.Messages),
	}
}

func toSummaryResponse(s chat.RoomSummary) summaryResponse {
	return summaryResponse{
		Key:            s.Key.String(),
		Name:           s.Name,
		ImgURL:         s.ImgURL,
		Members:        s.Members,
		LatestMessage:  s.LatestMessage,
		LatestActivity: s.LatestActivity,
	}
}
