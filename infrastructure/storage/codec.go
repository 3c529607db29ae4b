package storage

import (
	"fmt"
	"time"

	"chat-core/domain/chat"
	"chat-core/domain/event"
	"chat-core/errors"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

// Values are stored as protobuf wire messages. Field numbers are part of the
// on-disk format and must never be reused.
//
//	Member  { 1 nickname, 2 name, 3 img_url }
//	Room    { 1 key, 2 repeated Member, 3 latest_message, 4 latest_activity, 5 name, 6 img_url }
//	Message { 1 id, 2 room, 3 Member sender, 4 content, 5 at, 6 status }
//	Event   { 1 id, 2 kind, 3 room, 4 sender, 5 content, 6 at, 7 repeated members, 8 message_id }

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendTime(b []byte, num protowire.Number, t time.Time) []byte {
	if t.IsZero() {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(t.UnixNano()))
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendMessage(b []byte, num protowire.Number, inner []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

func toTime(v uint64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(0, int64(v)).UTC()
}

// walk calls visit for every field of a wire message.
// Exactly one of raw (bytes fields) or varint is meaningful, depending on typ.
func walk(b []byte, visit func(num protowire.Number, typ protowire.Type, raw []byte, varint uint64) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", errors.ErrCorruptedRecord, protowire.ParseError(n))
		}
		b = b[n:]
		switch typ {
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return fmt.Errorf("%w: %v", errors.ErrCorruptedRecord, protowire.ParseError(n))
			}
			if err := visit(num, typ, v, 0); err != nil {
				return err
			}
			b = b[n:]
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("%w: %v", errors.ErrCorruptedRecord, protowire.ParseError(n))
			}
			if err := visit(num, typ, nil, v); err != nil {
				return err
			}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("%w: %v", errors.ErrCorruptedRecord, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return nil
}

func encodeMember(m chat.Member) []byte {
	var b []byte
	b = appendString(b, 1, m.Nickname)
	b = appendString(b, 2, m.Name)
	b = appendString(b, 3, m.ImgURL)
	return b
}

func decodeMember(b []byte) (chat.Member, error) {
	var m chat.Member
	err := walk(b, func(num protowire.Number, _ protowire.Type, raw []byte, _ uint64) error {
		switch num {
		case 1:
			m.Nickname = string(raw)
		case 2:
			m.Name = string(raw)
		case 3:
			m.ImgURL = string(raw)
		}
		return nil
	})
	return m, err
}

func encodeRoom(r chat.Room) []byte {
	var b []byte
	b = appendString(b, 1, r.Key.String())
	for _, m := range r.Members {
		b = appendMessage(b, 2, encodeMember(m))
	}
	b = appendString(b, 3, r.LatestMessage)
	b = appendTime(b, 4, r.LatestActivity)
	b = appendString(b, 5, r.Name)
	b = appendString(b, 6, r.ImgURL)
	return b
}

func decodeRoom(b []byte) (chat.Room, error) {
	var r chat.Room
	err := walk(b, func(num protowire.Number, _ protowire.Type, raw []byte, varint uint64) error {
		switch num {
		case 1:
			r.Key = chat.RoomKey(raw)
		case 2:
			m, err := decodeMember(raw)
			if err != nil {
				return err
			}
			r.Members = append(r.Members, m)
		case 3:
			r.LatestMessage = string(raw)
		case 4:
			r.LatestActivity = toTime(varint)
		case 5:
			r.Name = string(raw)
		case 6:
			r.ImgURL = string(raw)
		}
		return nil
	})
	return r, err
}

func encodeMessage(m chat.Message) []byte {
	var b []byte
	b = appendString(b, 1, m.ID.String())
	b = appendString(b, 2, m.Room.String())
	b = appendMessage(b, 3, encodeMember(m.Sender))
	b = appendString(b, 4, m.Content)
	b = appendTime(b, 5, m.At)
	b = appendVarint(b, 6, uint64(m.Status))
	return b
}

func decodeMessage(b []byte) (chat.Message, error) {
	var m chat.Message
	err := walk(b, func(num protowire.Number, _ protowire.Type, raw []byte, varint uint64) error {
		var err error
		switch num {
		case 1:
			m.ID, err = uuid.ParseBytes(raw)
		case 2:
			m.Room = chat.RoomKey(raw)
		case 3:
			m.Sender, err = decodeMember(raw)
		case 4:
			m.Content = string(raw)
		case 5:
			m.At = toTime(varint)
		case 6:
			m.Status = chat.Status(varint)
		}
		return err
	})
	return m, err
}

func encodeEvent(id uuid.UUID, evt event.DomainEvent) ([]byte, error) {
	var b []byte
	b = appendString(b, 1, id.String())
	b = appendVarint(b, 2, uint64(evt.Kind()))
	b = appendString(b, 3, evt.RoomKey().String())
	b = appendTime(b, 6, evt.OccurredAt())
	switch e := evt.(type) {
	case event.RoomCreated:
		for _, m := range e.Members {
			b = appendString(b, 7, m)
		}
	case event.MessageAppended:
		b = appendString(b, 4, e.Sender)
		b = appendString(b, 5, e.Content)
		b = appendString(b, 8, e.MessageID.String())
	default:
		return nil, fmt.Errorf("unsupported event %T", evt)
	}
	return b, nil
}

func decodeEvent(b []byte) (event.Record, error) {
	var (
		id        uuid.UUID
		kind      event.Kind
		room      chat.RoomKey
		sender    string
		content   string
		at        time.Time
		members   []string
		messageID uuid.UUID
	)
	err := walk(b, func(num protowire.Number, _ protowire.Type, raw []byte, varint uint64) error {
		var err error
		switch num {
		case 1:
			id, err = uuid.ParseBytes(raw)
		case 2:
			kind = event.Kind(varint)
		case 3:
			room = chat.RoomKey(raw)
		case 4:
			sender = string(raw)
		case 5:
			content = string(raw)
		case 6:
			at = toTime(varint)
		case 7:
			members = append(members, string(raw))
		case 8:
			messageID, err = uuid.ParseBytes(raw)
		}
		return err
	})
	if err != nil {
		return event.Record{}, err
	}
	switch kind {
	case event.KindRoomCreated:
		return event.Record{ID: id, Event: event.RoomCreated{Room: room, Members: members, At: at}}, nil
	case event.KindMessageAppended:
		return event.Record{ID: id, Event: event.MessageAppended{
			MessageID: messageID, Room: room, Sender: sender, Content: content, At: at,
		}}, nil
	default:
		return event.Record{}, fmt.Errorf("%w: unknown event kind %d", errors.ErrCorruptedRecord, kind)
	}
}
