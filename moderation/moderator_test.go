package moderation

import (
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const replacementChar = '*'

// The dictionary avoids short words that would collide inside others ("he" in "The")
func TestModerator_Scan(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	mod, err := NewModerator([]string{"badger", "snake", "mushroom"}, replacementChar, log)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
		words    []string
	}{
		{"single word", "The badger is here", "The ****** is here", []string{"badger"}},
		{"repeated word", "badger badger", "****** ******", []string{"badger", "badger"}},
		{"leet and punctuation", "Look at B.4.d.g.€r !", "Look at ********** !", []string{"badger"}},
		{"upper case and dashes", "S-N-A-K-E here", "********* here", []string{"snake"}},
		{"accents untouched", "Un été avec un badger", "Un été avec un ******", []string{"badger"}},
		{"trailing punctuation kept", "I love badger?", "I love ******?", []string{"badger"}},
		{"nothing to censor", "hello there", "hello there", nil},
		{"empty", "", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, words := mod.Scan(tt.input)
			req.Equal(tt.expected, content)
			req.Equal(tt.words, words)
		})
	}
}

func TestModerator_NoiseOnlyDictionary(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given a dictionary with entries that are only punctuation
	mod, err := NewModerator([]string{"...", ",,,", ""}, replacementChar, log)
	req.NoError(err)

	// Then nothing is ever censored
	req.Equal("Hello ...", mod.Censor("Hello ..."))
}

func TestModerator_Censor(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	mod, err := NewModerator([]string{"mushroom"}, '#', log)
	req.NoError(err)

	req.Equal("no ######## today", mod.Censor("no MUSHROOM today"))
}
