// Package chat contains the core concepts of the chat system: room identity,
// rooms, members and messages. No storage, network or runtime logic lives here.
package chat

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"

	"chat-core/errors"
)

// TokenSeparator splits a composite room token "id1_id2[_id3...]" into participant ids.
const TokenSeparator = "_"

// RoomKey is the lowercase hex SHA-256 digest of the sorted, concatenated participant ids.
type RoomKey string

func (k RoomKey) String() string {
	return string(k)
}

// DeriveRoomKey canonicalizes a set of participant ids into a RoomKey.
// Ids are sorted by UTF-16 code units and concatenated without separator,
// so any permutation of the same ids yields the same key.
// Duplicated ids are not collapsed and contribute their bytes twice.
func DeriveRoomKey(participantIDs []string) (RoomKey, error) {
	if len(participantIDs) == 0 {
		return "", fmt.Errorf("%w: no participant ids", errors.ErrInvalidInput)
	}
	sorted := slices.Clone(participantIDs)
	slices.SortFunc(sorted, compareUTF16)
	sum := sha256.Sum256([]byte(strings.Join(sorted, "")))
	return RoomKey(hex.EncodeToString(sum[:])), nil
}

// ParseRoomToken splits a composite token on "_".
// An empty token or an empty part (leading, trailing or doubled separator) is malformed.
func ParseRoomToken(token string) ([]string, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: empty room token", errors.ErrInvalidInput)
	}
	parts := strings.Split(token, TokenSeparator)
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: malformed room token %q", errors.ErrInvalidInput, token)
		}
	}
	return parts, nil
}

// RoomKeyFromToken parses the token and derives its key.
// The parsed participant ids are returned in token order.
func RoomKeyFromToken(token string) (RoomKey, []string, error) {
	ids, err := ParseRoomToken(token)
	if err != nil {
		return "", nil, err
	}
	key, err := DeriveRoomKey(ids)
	if err != nil {
		return "", nil, err
	}
	return key, ids, nil
}

// compareUTF16 orders strings by their UTF-16 code units. It differs from a
// byte order for runes above U+FFFF, which sort before U+E000..U+FFFF.
func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
