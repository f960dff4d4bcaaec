package sentiment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLexicon(t *testing.T) {
	lex, err := DefaultLexicon()
	require.NoError(t, err)

	assert.Greater(t, lex.Size(), 0)
	assert.True(t, lex.Bucket('g').Positive.Has("growth"))
	assert.True(t, lex.Bucket('l').Negative.Has("losses"))
	assert.False(t, lex.Bucket('g').Negative.Has("growth"))
	assert.Empty(t, lex.Bucket('#').Positive)
}

func TestParseLexicon_RebucketsByFirstLetter(t *testing.T) {
	lex, err := ParseLexicon([]byte(`{"positive":{"a":["Zeal"," boom "]},"negative":{"x":["crash","9lives"]}}`))
	require.NoError(t, err)

	assert.Equal(t, 3, lex.Size())
	assert.True(t, lex.Bucket('z').Positive.Has("zeal"))
	assert.True(t, lex.Bucket('b').Positive.Has("boom"))
	assert.True(t, lex.Bucket('c').Negative.Has("crash"))
	assert.False(t, lex.Bucket('a').Positive.Has("zeal"))
}

func TestParseLexicon_Errors(t *testing.T) {
	_, err := ParseLexicon([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseLexicon([]byte(`{"positive":{},"negative":{}}`))
	assert.Error(t, err)
}

func TestLoadLexicon(t *testing.T) {
	def, err := LoadLexicon("")
	require.NoError(t, err)
	assert.Greater(t, def.Size(), 0)

	path := filepath.Join(t.TempDir(), "lexicon.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"positive":{"u":["upbeat"]},"negative":{"d":["dismal"]}}`), 0o600))

	lex, err := LoadLexicon(path)
	require.NoError(t, err)
	assert.Equal(t, 2, lex.Size())
	assert.True(t, lex.Bucket('u').Positive.Has("upbeat"))

	_, err = LoadLexicon(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
