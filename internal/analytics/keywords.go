package analytics

import (
	"regexp"
	"sort"
	"strings"
)

const topKeywordLimit = 10

// minimum token length is 4; anything shorter carries too little signal
const minKeywordLength = 4

var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

var stopwords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "have": {}, "will": {},
	"been": {}, "from": {}, "they": {}, "know": {}, "want": {},
	"were": {}, "said": {}, "each": {}, "which": {}, "what": {},
	"their": {}, "would": {}, "there": {}, "could": {}, "other": {},
}

// TopKeywords tokenizes all free-text answers of a form, filters short tokens
// and stopwords, and returns the 10 most frequent tokens in descending count
// order. Ties keep first-encountered order.
func TopKeywords(texts []string) []string {
	joined := strings.ToLower(strings.Join(texts, " "))
	joined = nonWordPattern.ReplaceAllString(joined, " ")

	counts := make(map[string]int)
	var order []string
	for _, word := range strings.Fields(joined) {
		if len(word) < minKeywordLength {
			continue
		}
		if _, skip := stopwords[word]; skip {
			continue
		}
		if _, seen := counts[word]; !seen {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > topKeywordLimit {
		order = order[:topKeywordLimit]
	}
	result := make([]string, len(order))
	copy(result, order)
	return result
}
