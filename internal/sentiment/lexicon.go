// Package sentiment holds the pure scoring rules of the pipeline: the word lexicon,
// content normalization and hashing, the per-date combiner and the percent-change math.
// Nothing in here performs I/O.
package sentiment

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

//go:embed data/lexicon.json
var defaultLexiconJSON []byte

// WordSet is a set of lower-case words.
type WordSet map[string]struct{}

// Has reports exact membership.
func (s WordSet) Has(word string) bool {
	_, ok := s[word]
	return ok
}

// Bucket holds the positive and negative words sharing a first letter.
type Bucket struct {
	Positive WordSet
	Negative WordSet
}

// Lexicon maps a first letter 'a'..'z' to its word bucket. It is read-only once built.
type Lexicon struct {
	buckets [26]Bucket
	size    int
}

type lexiconFile struct {
	Positive map[string][]string `json:"positive"`
	Negative map[string][]string `json:"negative"`
}

// DefaultLexicon returns the lexicon embedded in the binary.
func DefaultLexicon() (*Lexicon, error) {
	return ParseLexicon(defaultLexiconJSON)
}

// LoadLexicon reads a lexicon JSON file. An empty path yields the embedded lexicon.
func LoadLexicon(path string) (*Lexicon, error) {
	if path == "" {
		return DefaultLexicon()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}
	return ParseLexicon(data)
}

// ParseLexicon builds a Lexicon from {"positive":{"a":[...]},"negative":{...}}.
// Words are re-bucketed by their own first letter, so a misfiled word still lands in the right bucket.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var file lexiconFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon: %w", err)
	}

	lex := &Lexicon{}
	for i := range lex.buckets {
		lex.buckets[i] = Bucket{Positive: WordSet{}, Negative: WordSet{}}
	}

	add := func(groups map[string][]string, pick func(*Bucket) WordSet) {
		for _, words := range groups {
			for _, w := range words {
				w = strings.ToLower(strings.TrimSpace(w))
				if len(w) == 0 || w[0] < 'a' || w[0] > 'z' {
					continue
				}
				set := pick(&lex.buckets[w[0]-'a'])
				if !set.Has(w) {
					set[w] = struct{}{}
					lex.size++
				}
			}
		}
	}
	add(file.Positive, func(b *Bucket) WordSet { return b.Positive })
	add(file.Negative, func(b *Bucket) WordSet { return b.Negative })

	if lex.size == 0 {
		return nil, fmt.Errorf("lexicon has no words")
	}
	return lex, nil
}

// Bucket returns the word sets for a first letter. Letters outside a-z get an empty bucket.
func (l *Lexicon) Bucket(letter byte) Bucket {
	if letter < 'a' || letter > 'z' {
		return Bucket{}
	}
	return l.buckets[letter-'a']
}

// Size is the total number of distinct (word, polarity) entries.
func (l *Lexicon) Size() int {
	return l.size
}
