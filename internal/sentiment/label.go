package sentiment

import "golang-stock-sentiment/internal/entity"

// Polarity is one of the three classifier classes.
type Polarity int

const (
	Positive Polarity = iota
	Neutral
	Negative
)

// PickLabel returns the strictly highest of three values. Ties go to Positive first, then Neutral.
func PickLabel(pos, neut, neg float64) Polarity {
	switch {
	case pos >= neut && pos >= neg:
		return Positive
	case neut >= neg:
		return Neutral
	default:
		return Negative
	}
}

// StrictMax returns the polarity whose value is strictly greater than both others.
func StrictMax(pos, neut, neg int) (Polarity, bool) {
	switch {
	case pos > neut && pos > neg:
		return Positive, true
	case neut > pos && neut > neg:
		return Neutral, true
	case neg > pos && neg > neut:
		return Negative, true
	}
	return 0, false
}

// Label converts a polarity into the per-article label.
func (p Polarity) Label() entity.SentimentLabel {
	switch p {
	case Positive:
		return entity.SentimentPositive
	case Neutral:
		return entity.SentimentNeutral
	default:
		return entity.SentimentNegative
	}
}

// Aggregate converts a polarity into the per-date label.
func (p Polarity) Aggregate() entity.AggregateLabel {
	switch p {
	case Positive:
		return entity.AggregatePositive
	case Neutral:
		return entity.AggregateNeutral
	default:
		return entity.AggregateNegative
	}
}

// ClassVote is one class of the remote classifier response: how many sentences fell in it and their score.
type ClassVote struct {
	Count int
	Score float64
}

// ResolveVotes turns a three-class classifier response into a single label and confidence:
// the class with the most sentences wins, ties broken Positive > Neutral > Negative.
func ResolveVotes(pos, neut, neg ClassVote) (entity.SentimentLabel, float64) {
	winner := PickLabel(float64(pos.Count), float64(neut.Count), float64(neg.Count))
	switch winner {
	case Positive:
		return entity.SentimentPositive, pos.Score
	case Neutral:
		return entity.SentimentNeutral, neut.Score
	default:
		return entity.SentimentNegative, neg.Score
	}
}
