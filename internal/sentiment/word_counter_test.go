package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCounter(t *testing.T) *WordCounter {
	t.Helper()
	lex, err := ParseLexicon([]byte(`{
		"positive": {"a": ["beat", "gain", "growth", "strong"]},
		"negative": {"a": ["loss", "decline", "weak", "miss"]}
	}`))
	require.NoError(t, err)
	return NewWordCounter(lex)
}

func TestWordCounter_Count(t *testing.T) {
	counter := testCounter(t)

	tests := []struct {
		name    string
		body    string
		wantPos int
		wantNeg int
	}{
		{name: "empty", body: "", wantPos: 0, wantNeg: 0},
		{name: "plain words", body: "strong growth despite a small loss", wantPos: 2, wantNeg: 1},
		{name: "case and punctuation", body: "GROWTH! Strong, (weak) \"decline\".", wantPos: 2, wantNeg: 2},
		{name: "repeated tokens count each time", body: "gain gain gain miss", wantPos: 3, wantNeg: 1},
		{name: "digits are stripped", body: "gain1 miss2 2beat", wantPos: 2, wantNeg: 1},
		{name: "single letters ignored", body: "a b c g", wantPos: 0, wantNeg: 0},
		{name: "no partial matches", body: "gains beaten weakness", wantPos: 0, wantNeg: 0},
		{name: "non ascii tokens", body: "été gain", wantPos: 1, wantNeg: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, neg := counter.Count(tt.body)
			assert.Equal(t, tt.wantPos, pos)
			assert.Equal(t, tt.wantNeg, neg)
		})
	}
}

func TestWordCounter_OrderIndependent(t *testing.T) {
	counter := testCounter(t)

	pos1, neg1 := counter.Count("weak gain strong loss beat miss")
	pos2, neg2 := counter.Count("beat miss loss strong gain weak")
	assert.Equal(t, pos1, pos2)
	assert.Equal(t, neg1, neg2)
}
