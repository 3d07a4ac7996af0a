package moderation

import (
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newChatModerator(t *testing.T) *Moderator {
	t.Helper()
	mod, err := NewModerator([]string{"spam", "scam", "loser"}, '*', logs.GetLoggerFromLevel(slog.LevelDebug))
	require.NoError(t, err)
	return mod
}

func TestModerator_Inspect_Chat_Messages(t *testing.T) {
	mod := newChatModerator(t)

	tests := []struct {
		name     string
		input    string
		expected string
		words    []string
	}{
		{
			name:     "one word in a sentence",
			input:    "Buy cheap spam now",
			expected: "Buy cheap **** now",
			words:    []string{"spam"},
		},
		{
			name:     "two different words keep their order",
			input:    "what a scam, you loser",
			expected: "what a ****, you *****",
			words:    []string{"scam", "loser"},
		},
		{
			name:     "same word repeated",
			input:    "spam spam",
			expected: "**** ****",
			words:    []string{"spam", "spam"},
		},
		{
			name:     "letters spread with spaces",
			input:    "s p a m",
			expected: "*******",
			words:    []string{"spam"},
		},
		{
			name:     "leet substitutions",
			input:    "$c4m alert",
			expected: "**** alert",
			words:    []string{"scam"},
		},
		{
			name:     "shouting keeps the trailing marks",
			input:    "SPAM!!!",
			expected: "****!!!",
			words:    []string{"spam"},
		},
		{
			name:     "quoted line of a reply",
			input:    "> spam\nno thanks",
			expected: "> ****\nno thanks",
			words:    []string{"spam"},
		},
		{
			name:     "match across a word boundary",
			input:    "class cam",
			expected: "clas*****",
			words:    []string{"scam"},
		},
		{
			name:     "accents are left alone",
			input:    "à demain, pas de spam",
			expected: "à demain, pas de ****",
			words:    []string{"spam"},
		},
		{
			name:     "clean message",
			input:    "see you tomorrow",
			expected: "see you tomorrow",
		},
		{
			name:     "only punctuation",
			input:    "?!...",
			expected: "?!...",
		},
		{
			name:     "empty message",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			content, words := mod.Inspect(tt.input)
			req.Equal(tt.expected, content)
			req.Equal(tt.words, words)
		})
	}
}

func TestModerator_Censor_Uses_Replacement(t *testing.T) {
	req := require.New(t)
	mod, err := NewModerator([]string{"spam"}, '#', logs.GetLoggerFromLevel(slog.LevelDebug))
	req.NoError(err)

	req.Equal("no #### please", mod.Censor("no spam please"))
	req.Equal("hello", mod.Censor("hello"))
}

func TestModerator_Skips_Noise_Words(t *testing.T) {
	req := require.New(t)

	// Given a word list polluted with punctuation
	mod, err := NewModerator([]string{"...", ",,,", "", "spam"}, '*', logs.GetLoggerFromLevel(slog.LevelDebug))
	req.NoError(err)

	// Then punctuation in messages is never censored
	content, words := mod.Inspect("wait... spam?")
	req.Equal("wait... ****?", content)
	req.Equal([]string{"spam"}, words)
}

func TestModerator_Only_Noise(t *testing.T) {
	_, err := NewModerator([]string{"...", " "}, '*', logs.GetLoggerFromLevel(slog.LevelDebug))
	require.Error(t, err)
}
