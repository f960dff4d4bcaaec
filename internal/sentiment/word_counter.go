package sentiment

import (
	"strings"
)

// WordCounter scores text against a Lexicon with a plain bag-of-words count.
type WordCounter struct {
	lexicon *Lexicon
}

func NewWordCounter(lexicon *Lexicon) *WordCounter {
	return &WordCounter{lexicon: lexicon}
}

// Count visits every whitespace-separated token once, keeps only its letters (lower-cased),
// drops tokens of length <= 1 and counts exact matches in the bucket of the token's first letter.
func (c *WordCounter) Count(body string) (positive, negative int) {
	var (
		current byte
		bucket  Bucket
	)
	for _, token := range strings.Fields(body) {
		word := lettersOnly(token)
		if len(word) <= 1 {
			continue
		}
		if word[0] != current {
			current = word[0]
			bucket = c.lexicon.Bucket(current)
		}
		if bucket.Positive.Has(word) {
			positive++
		}
		if bucket.Negative.Has(word) {
			negative++
		}
	}
	return positive, negative
}

func lettersOnly(token string) string {
	var b strings.Builder
	b.Grow(len(token))
	for i := 0; i < len(token); i++ {
		ch := token[i]
		switch {
		case ch >= 'a' && ch <= 'z':
			b.WriteByte(ch)
		case ch >= 'A' && ch <= 'Z':
			b.WriteByte(ch + ('a' - 'A'))
		}
	}
	return b.String()
}
