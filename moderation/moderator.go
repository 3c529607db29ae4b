// Package moderation censors forbidden words in message content before it is stored.
package moderation

import (
	"log/slog"
	"slices"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// Moderator finds dictionary words in a text even when they are spelled with
// leet characters, mixed case or interleaved punctuation ("B.4.d.g.€r"),
// and masks the matching span of the original text.
type Moderator struct {
	log         *slog.Logger
	matcher     *goahocorasick.Machine
	replacement rune
}

// NewModerator builds the automaton from the normalized, sorted and deduplicated words.
// Words that normalize to nothing (pure punctuation) are ignored.
func NewModerator(words []string, replacement rune, log *slog.Logger) (*Moderator, error) {
	patterns := make([][]rune, 0, len(words))
	for _, word := range words {
		if folded := fold([]rune(word)).text; len(folded) > 0 {
			patterns = append(patterns, folded)
		}
	}
	slices.SortFunc(patterns, slices.Compare[[]rune, rune])
	patterns = slices.CompactFunc(patterns, slices.Equal[[]rune, rune])

	m := &Moderator{log: log, replacement: replacement}
	if len(patterns) == 0 {
		return m, nil
	}
	matcher := new(goahocorasick.Machine)
	if err := matcher.Build(patterns); err != nil {
		return nil, err
	}
	m.matcher = matcher
	return m, nil
}

// Censor masks every forbidden span, keeping the text length and the untouched characters.
func (m *Moderator) Censor(content string) string {
	masked, words := m.Scan(content)
	if len(words) > 0 {
		m.log.Debug("Content censored", "words", len(words))
	}
	return masked
}

// Scan returns the masked text and the matched dictionary words, in order of appearance.
func (m *Moderator) Scan(content string) (string, []string) {
	if m.matcher == nil || content == "" {
		return content, nil
	}
	original := []rune(content)
	folded := fold(original)
	if len(folded.text) == 0 {
		return content, nil
	}

	terms := m.matcher.MultiPatternSearch(folded.text, false)
	if len(terms) == 0 {
		return content, nil
	}

	var words []string
	for _, term := range terms {
		end := term.Pos + len(term.Word) - 1
		if term.Pos < 0 || end >= len(folded.origin) {
			continue
		}
		for i := folded.origin[term.Pos]; i <= folded.origin[end]; i++ {
			original[i] = m.replacement
		}
		words = append(words, string(term.Word))
	}
	return string(original), words
}

// folded is the searchable form of a text: noise removed, leet mapped, lower case.
// origin[i] is the index in the original runes of text[i].
type folded struct {
	text   []rune
	origin []int
}

func fold(runes []rune) folded {
	f := folded{text: make([]rune, 0, len(runes)), origin: make([]int, 0, len(runes))}
	for i, r := range runes {
		r = unleet(r)
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		f.text = append(f.text, unicode.ToLower(r))
		f.origin = append(f.origin, i)
	}
	return f
}

func unleet(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}
