package moderation

import (
	"chat-room/errors"
	"log/slog"
	"unicode"

	"github.com/abadojack/whatlanggo"
	goahocorasick "github.com/anknown/ahocorasick"
)

// Moderator masks censored words in message content.
// Matching runs on a folded copy of the text: lower case, common leet substitutions undone,
// punctuation, symbols and spaces dropped. "S.p-4 m" therefore matches "spam".
type Moderator struct {
	matcher      *goahocorasick.Machine
	censoredChar rune
	log          *slog.Logger
}

// folded is a text reduced for matching, at[i] is the rune index of runes[i] in the original.
type folded struct {
	runes []rune
	at    []int
}

func fold(text []rune) folded {
	f := folded{runes: make([]rune, 0, len(text)), at: make([]int, 0, len(text))}
	for i, r := range text {
		r = unleet(r)
		if isNoise(r) {
			continue
		}
		f.runes = append(f.runes, unicode.ToLower(r))
		f.at = append(f.at, i)
	}
	return f
}

// NewModerator builds the matcher. Words made only of noise are skipped, they would match nothing.
func NewModerator(censoredWords []string, censoredChar rune, log *slog.Logger) (*Moderator, error) {
	patterns := make([][]rune, 0, len(censoredWords))
	for _, word := range censoredWords {
		if f := fold([]rune(word)); len(f.runes) > 0 {
			patterns = append(patterns, f.runes)
		}
	}
	if len(patterns) == 0 {
		return nil, errors.ErrEmptyWords
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{matcher: m, censoredChar: censoredChar, log: log}, nil
}

// Censor is applied by the room worker before a message is stored.
func (m *Moderator) Censor(content string) string {
	censored, words := m.Inspect(content)
	if len(words) > 0 {
		m.log.Debug("Message censored",
			"lang", whatlanggo.Detect(content).Lang.Iso6391(),
			"words", len(words))
	}
	return censored
}

// Inspect returns the content with every match masked, and the censored words found, in order.
// A mask covers the whole original span of a match, including the noise inside it.
func (m *Moderator) Inspect(content string) (string, []string) {
	text := []rune(content)
	f := fold(text)
	if len(f.runes) == 0 {
		return content, nil
	}
	hits := m.matcher.MultiPatternSearch(f.runes, false)
	if len(hits) == 0 {
		return content, nil
	}

	words := make([]string, 0, len(hits))
	for _, hit := range hits {
		end := hit.Pos + len(hit.Word)
		if hit.Pos < 0 || end > len(f.at) {
			continue
		}
		for i := f.at[hit.Pos]; i <= f.at[end-1]; i++ {
			text[i] = m.censoredChar
		}
		words = append(words, string(hit.Word))
	}
	return string(text), words
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

func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
