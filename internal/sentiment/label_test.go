package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"golang-stock-sentiment/internal/entity"
)

func TestPickLabel(t *testing.T) {
	tests := []struct {
		name          string
		pos, neut, ng float64
		want          Polarity
	}{
		{name: "positive highest", pos: 0.9, neut: 0.1, ng: 0.2, want: Positive},
		{name: "neutral highest", pos: 0.1, neut: 0.9, ng: 0.2, want: Neutral},
		{name: "negative highest", pos: 0.1, neut: 0.2, ng: 0.9, want: Negative},
		{name: "all equal", pos: 0.5, neut: 0.5, ng: 0.5, want: Positive},
		{name: "pos ties neut", pos: 0.5, neut: 0.5, ng: 0.1, want: Positive},
		{name: "pos ties neg", pos: 0.5, neut: 0.1, ng: 0.5, want: Positive},
		{name: "neut ties neg", pos: 0.1, neut: 0.5, ng: 0.5, want: Neutral},
		{name: "all zero", want: Positive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PickLabel(tt.pos, tt.neut, tt.ng))
		})
	}
}

func TestStrictMax(t *testing.T) {
	p, ok := StrictMax(1, 0, 3)
	assert.True(t, ok)
	assert.Equal(t, Negative, p)

	p, ok = StrictMax(0, 2, 1)
	assert.True(t, ok)
	assert.Equal(t, Neutral, p)

	_, ok = StrictMax(2, 2, 1)
	assert.False(t, ok)

	_, ok = StrictMax(0, 0, 0)
	assert.False(t, ok)
}

func TestResolveVotes(t *testing.T) {
	label, score := ResolveVotes(ClassVote{Count: 1, Score: 0.97}, ClassVote{Count: 3, Score: 0.6}, ClassVote{Count: 2, Score: 0.8})
	assert.Equal(t, entity.SentimentNeutral, label)
	assert.Equal(t, 0.6, score)

	label, score = ResolveVotes(ClassVote{Count: 2, Score: 0.7}, ClassVote{Count: 2, Score: 0.9}, ClassVote{Count: 2, Score: 0.95})
	assert.Equal(t, entity.SentimentPositive, label)
	assert.Equal(t, 0.7, score)

	label, _ = ResolveVotes(ClassVote{}, ClassVote{Count: 1}, ClassVote{Count: 1})
	assert.Equal(t, entity.SentimentNeutral, label)
}

func TestPolarityConversions(t *testing.T) {
	assert.Equal(t, entity.SentimentNegative, Negative.Label())
	assert.Equal(t, entity.AggregatePositive, Positive.Aggregate())
	assert.Equal(t, entity.AggregateNeutral, Neutral.Aggregate())
}
