package chat

import (
	"time"

	"github.com/samber/lo"
)

// Member is embedded in a Room. Nickname is one of the participant ids the
// RoomKey was derived from; display fields are optional.
type Member struct {
	Nickname string
	Name     string
	ImgURL   string
}

// Room is owned by the ChatStore and only mutated through ChatService.
// Members keep their insertion order.
type Room struct {
	Key            RoomKey
	Name           string
	ImgURL         string
	Members        []Member
	LatestMessage  string
	LatestActivity time.Time
}

// NewRoom builds a room with one member per unique participant id,
// in first-seen order, and an empty latest message.
func NewRoom(key RoomKey, participantIDs []string, at time.Time) Room {
	members := lo.Map(lo.Uniq(participantIDs), func(nickname string, _ int) Member {
		return Member{Nickname: nickname}
	})
	return Room{
		Key:            key,
		Members:        members,
		LatestMessage:  "",
		LatestActivity: at,
	}
}

func (r Room) FindMember(nickname string) (Member, bool) {
	return lo.Find(r.Members, func(m Member) bool {
		return m.Nickname == nickname
	})
}

func (r Room) HasMember(nickname string) bool {
	_, ok := r.FindMember(nickname)
	return ok
}

func (r Room) Nicknames() []string {
	return lo.Map(r.Members, func(m Member, _ int) string { return m.Nickname })
}

// IsTwoParty reports a user-to-user room.
func (r Room) IsTwoParty() bool {
	return len(r.Members) == 2
}

// Touch records a new message on the room summary.
// LatestActivity never moves backwards, even if the clock does.
func (r *Room) Touch(content string, at time.Time) {
	r.LatestMessage = content
	if at.After(r.LatestActivity) {
		r.LatestActivity = at
	}
}
