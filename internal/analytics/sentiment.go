package analytics

import "strings"

// Sentiment is the classification bucket for a piece of feedback text.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

var positiveKeywords = []string{
	"excellent", "great", "amazing", "wonderful", "fantastic", "love",
	"perfect", "outstanding", "satisfied", "happy", "good", "nice", "awesome",
}

var negativeKeywords = []string{
	"terrible", "awful", "horrible", "hate", "disgusting", "poor",
	"bad", "disappointed", "frustrated", "angry", "worst", "useless",
}

// ClassifySentiment classifies a blob of text by counting how many of the
// fixed positive and negative keywords occur in it as substrings. Substring
// matching is intentional ("happy" matches inside "unhappy"); this is a
// deterministic heuristic, not NLP.
func ClassifySentiment(text string) Sentiment {
	lowered := strings.ToLower(text)

	positiveCount := 0
	for _, word := range positiveKeywords {
		if strings.Contains(lowered, word) {
			positiveCount++
		}
	}
	negativeCount := 0
	for _, word := range negativeKeywords {
		if strings.Contains(lowered, word) {
			negativeCount++
		}
	}

	switch {
	case positiveCount > negativeCount:
		return SentimentPositive
	case negativeCount > positiveCount:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// ResponseSentiment derives the displayed sentiment of a single response.
// A rating of 4 or 5 forces positive, 1 or 2 forces negative; a rating of 3
// (and the no-rating case) falls through to keyword classification of the
// response's combined free text.
func ResponseSentiment(hasRating bool, rating int, text string) Sentiment {
	if hasRating {
		if rating >= 4 {
			return SentimentPositive
		}
		if rating <= 2 {
			return SentimentNegative
		}
	}
	return ClassifySentiment(text)
}
