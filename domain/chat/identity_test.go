package chat

import (
	"testing"

	"chat-core/errors"

	"github.com/stretchr/testify/require"
)

func TestDeriveRoomKey_KnownVector(t *testing.T) {
	req := require.New(t)

	// Given "alice" and "bob" sorted and concatenated as "alicebob"
	key, err := DeriveRoomKey([]string{"alice", "bob"})

	// Then the key is the sha256 hex digest of "alicebob"
	req.NoError(err)
	req.Equal(RoomKey("a83ab2505ace9a8705ea2f0f4187087dc38947110596cf40cdd906d2cd3a9e6a"), key)
	req.Len(key.String(), 64)
}

func TestDeriveRoomKey_OrderIndependent(t *testing.T) {
	req := require.New(t)
	permutations := [][]string{
		{"alice", "bob", "carol"},
		{"alice", "carol", "bob"},
		{"bob", "alice", "carol"},
		{"bob", "carol", "alice"},
		{"carol", "alice", "bob"},
		{"carol", "bob", "alice"},
	}

	expected, err := DeriveRoomKey(permutations[0])
	req.NoError(err)
	req.Equal(RoomKey("ef288ec0967e64b139740d7f93bf1391669f099dc98a69b561150576e909e1d5"), expected)

	for _, ids := range permutations[1:] {
		key, err := DeriveRoomKey(ids)
		req.NoError(err)
		req.Equal(expected, key, "permutation %v", ids)
	}
}

func TestDeriveRoomKey_DoesNotMutateInput(t *testing.T) {
	req := require.New(t)
	ids := []string{"bob", "alice"}

	_, err := DeriveRoomKey(ids)

	req.NoError(err)
	req.Equal([]string{"bob", "alice"}, ids)
}

func TestDeriveRoomKey_DuplicatesContributeBytes(t *testing.T) {
	req := require.New(t)

	key, err := DeriveRoomKey([]string{"alice", "alice"})
	req.NoError(err)
	req.Equal(RoomKey("2fce81ddabf535f244bc063ef47de98cd0c3008db0e2cc594e9e71a1c8768a2a"), key)

	single, err := DeriveRoomKey([]string{"alice"})
	req.NoError(err)
	req.NotEqual(single, key)
}

func TestDeriveRoomKey_SupplementaryCharactersSortFirst(t *testing.T) {
	req := require.New(t)

	// Given U+FF01 and U+1F600, whose UTF-16 order differs from their byte order
	key, err := DeriveRoomKey([]string{"\uff01", "\U0001F600"})
	req.NoError(err)

	// Then the surrogate pair of U+1F600 sorts first, hashing "\U0001F600\uff01"
	req.Equal(RoomKey("090ed205253ba6c6ee69ac203f74441b9a11dfd70fa149582ff12261def5b463"), key)

	reversed, err := DeriveRoomKey([]string{"\U0001F600", "\uff01"})
	req.NoError(err)
	req.Equal(key, reversed)
}

func TestDeriveRoomKey_Empty(t *testing.T) {
	req := require.New(t)

	_, err := DeriveRoomKey(nil)
	req.ErrorIs(err, errors.ErrInvalidInput)

	_, err = DeriveRoomKey([]string{})
	req.ErrorIs(err, errors.ErrInvalidInput)
}

func TestParseRoomToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected []string
		wantErr  bool
	}{
		{name: "two participants", token: "alice_bob", expected: []string{"alice", "bob"}},
		{name: "group", token: "carol_alice_bob", expected: []string{"carol", "alice", "bob"}},
		{name: "single participant", token: "alice", expected: []string{"alice"}},
		{name: "empty", token: "", wantErr: true},
		{name: "blank", token: "   ", wantErr: true},
		{name: "doubled separator", token: "alice__bob", wantErr: true},
		{name: "trailing separator", token: "alice_", wantErr: true},
		{name: "leading separator", token: "_bob", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			ids, err := ParseRoomToken(tt.token)
			if tt.wantErr {
				req.ErrorIs(err, errors.ErrInvalidInput)
				return
			}
			req.NoError(err)
			req.Equal(tt.expected, ids)
		})
	}
}

func TestRoomKeyFromToken_MatchesReversedToken(t *testing.T) {
	req := require.New(t)

	key1, ids, err := RoomKeyFromToken("alice_bob")
	req.NoError(err)
	req.Equal([]string{"alice", "bob"}, ids)

	key2, _, err := RoomKeyFromToken("bob_alice")
	req.NoError(err)
	req.Equal(key1, key2)
}
