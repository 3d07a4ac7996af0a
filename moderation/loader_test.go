package moderation

import (
	"chat-room/errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestCensoredLoader_LoadAll(t *testing.T) {
	req := require.New(t)
	files := fstest.MapFS{
		"words/en.txt":     {Data: []byte("badger\r\nsnake\n\n# comment\n")},
		"words/fr.txt":     {Data: []byte("  blaireau \nbadger\n")},
		"words/README.md":  {Data: []byte("not a dictionary")},
		"words/old/de.txt": {Data: []byte("dachs")},
	}

	data, err := NewCensoredLoader(files).LoadAll("words")

	req.NoError(err)
	req.Equal([]string{"badger", "blaireau", "snake"}, data.Words)
	req.Equal([]string{"en", "fr"}, data.Languages)
}

func TestCensoredLoader_LoadAll_Empty(t *testing.T) {
	files := fstest.MapFS{
		"words/en.txt": {Data: []byte("\n\n")},
	}

	_, err := NewCensoredLoader(files).LoadAll("words")

	require.ErrorIs(t, err, errors.ErrEmptyWords)
}
