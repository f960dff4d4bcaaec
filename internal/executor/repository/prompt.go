package repository

import (
	"fmt"
	"strings"
)

// BuildSentimentPrompt asks the model for the same three-class answer the FinBERT service returns.
func BuildSentimentPrompt(sentences []string) string {
	var b strings.Builder
	for i, s := range sentences {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, s))
	}

	return fmt.Sprintf(`You are a financial sentiment classifier. Classify each numbered sentence below as positive, neutral or negative for the company's stock.

Sentences:
%s
Reply with JSON only, no markdown, with this exact structure:
{
  "positive": [<number of positive sentences>, <mean confidence of positive sentences 0.0-1.0>],
  "neutral": [<number of neutral sentences>, <mean confidence of neutral sentences 0.0-1.0>],
  "negative": [<number of negative sentences>, <mean confidence of negative sentences 0.0-1.0>]
}
The three counts must add up to %d. Use 0 for the confidence of a class with no sentences.`, b.String(), len(sentences))
}
