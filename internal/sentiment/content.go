package sentiment

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"
)

// numericToken matches prices, percentages and plain numbers with optional sign, currency and thousands separators.
var numericToken = regexp.MustCompile(`[-+]*[$€£¥]?(?:\d[\d,]*(?:\.\d+)?|\.\d+)%?`)

var sentencePunct = strings.NewReplacer(`"`, "", `'`, "", ",", "", "’", "", "‘", "", "“", "", "”", "")

var (
	// EmptyContentHash is the hash of text that is empty after normalization. Such text is never scored.
	EmptyContentHash = hashString("")
	// NoNewsDataHash keys the sentinel record written for a ticker without any articles.
	NoNewsDataHash = hashString("No News Data")
)

func hashString(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// NormalizeContent strips numeric and percentage tokens and collapses whitespace,
// so edits that only change numbers leave the normalized text unchanged.
func NormalizeContent(text string) string {
	stripped := numericToken.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(stripped), " ")
}

// ContentHash returns the dedup key of text and whether the text was empty after normalization.
func ContentHash(text string) (hash string, empty bool) {
	normalized := NormalizeContent(text)
	if normalized == "" {
		return EmptyContentHash, true
	}
	return hashString(normalized), false
}

// SplitSentences prepares text for the remote classifier: quotes, commas and apostrophes are removed
// and the text is split after '.' or '?' followed by whitespace.
func SplitSentences(text string) []string {
	cleaned := sentencePunct.Replace(text)

	var (
		sentences []string
		start     int
	)
	for i := 0; i < len(cleaned); i++ {
		if cleaned[i] != '.' && cleaned[i] != '?' {
			continue
		}
		if i+1 < len(cleaned) && isSpace(cleaned[i+1]) {
			if s := strings.TrimSpace(cleaned[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(cleaned[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}
