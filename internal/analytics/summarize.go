package analytics

import (
	"math"
	"strings"
	"time"

	"github.com/formpulse/formpulse/internal/model"
)

// Placeholder metrics carried over from the product dashboard. Neither is
// derived from data yet; they are surfaced as named constants so a real
// computation can replace them without touching the surrounding contract.
const (
	ResponseRatePlaceholder      = 75
	AvgTimeToCompletePlaceholder = "2.3 min"
)

// ProcessedResponse is the per-request view of one submitted response. It is
// computed fresh on every analytics read and never persisted.
type ProcessedResponse struct {
	ID          uint            `json:"id"`
	SubmittedAt time.Time       `json:"submitted_at"`
	TimeAgo     string          `json:"time_ago"`
	IPAddress   string          `json:"ip_address"`
	UserAgent   string          `json:"user_agent"`
	Answers     map[uint]string `json:"answers"`
	Rating      *int            `json:"rating"`
	Sentiment   Sentiment       `json:"sentiment"`
}

// SentimentBreakdown holds integer percentages that sum to exactly 100.
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Analytics aggregates one form's full response set.
type Analytics struct {
	ResponseRate      int                `json:"response_rate"`
	AvgRating         float64            `json:"avg_rating"`
	CompletionRate    int                `json:"completion_rate"`
	AvgTimeToComplete string             `json:"avg_time_to_complete"`
	TopKeywords       []string           `json:"top_keywords"`
	SentimentBreakdown SentimentBreakdown `json:"sentiment_breakdown"`
}

// Summarize walks a form's snapshot once and produces both the per-response
// records and the form-wide analytics. The per-response sentiment may be
// overridden by a rating; the aggregate breakdown always uses pure keyword
// classification of every individual text answer. The two are deliberately
// independent.
func Summarize(questions []model.Question, responses []model.Response, now time.Time) ([]ProcessedResponse, Analytics) {
	questionMap := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		questionMap[q.ID] = q
	}

	processed := make([]ProcessedResponse, 0, len(responses))
	var corpus []string        // raw text answers, keyword extraction input
	var allRatings []int       // every valid rating answer across the form
	responsesWithAnswers := 0

	for _, response := range responses {
		answerMap := make(map[uint]string, len(response.Answers))
		var textParts []string
		hasRating := false
		rating := 0

		for _, answer := range response.Answers {
			answerMap[answer.QuestionID] = answer.AnswerText

			value := InterpretAnswer(answer, questionMap)
			switch value.Kind {
			case AnswerKindText:
				if value.Text != "" {
					textParts = append(textParts, value.Text)
					corpus = append(corpus, answer.AnswerText)
				}
			case AnswerKindRating:
				if answer.AnswerText != "" {
					// last rating answer wins when a form has several
					hasRating = true
					rating = value.Rating
					if value.Rating > 0 {
						allRatings = append(allRatings, value.Rating)
					}
				}
			}
		}

		if len(response.Answers) > 0 {
			responsesWithAnswers++
		}

		record := ProcessedResponse{
			ID:          response.ID,
			SubmittedAt: response.SubmittedAt,
			TimeAgo:     TimeAgo(response.SubmittedAt, now),
			IPAddress:   response.IPAddress,
			UserAgent:   response.UserAgent,
			Answers:     answerMap,
			Sentiment:   ResponseSentiment(hasRating, rating, strings.Join(textParts, " ")),
		}
		if hasRating {
			r := rating
			record.Rating = &r
		}
		processed = append(processed, record)
	}

	return processed, buildAnalytics(len(responses), responsesWithAnswers, allRatings, corpus)
}

func buildAnalytics(totalResponses, responsesWithAnswers int, ratings []int, corpus []string) Analytics {
	if totalResponses == 0 {
		return Analytics{
			ResponseRate:      0,
			AvgRating:         0,
			CompletionRate:    100,
			AvgTimeToComplete: "N/A",
			TopKeywords:       []string{},
			SentimentBreakdown: SentimentBreakdown{Positive: 33, Neutral: 33, Negative: 34},
		}
	}

	return Analytics{
		ResponseRate:      ResponseRatePlaceholder,
		AvgRating:         MeanRating(ratings),
		CompletionRate:    int(math.Round(float64(responsesWithAnswers) / float64(totalResponses) * 100)),
		AvgTimeToComplete: AvgTimeToCompletePlaceholder,
		TopKeywords:       TopKeywords(corpus),
		SentimentBreakdown: breakdownFromCorpus(corpus),
	}
}

// MeanRating averages valid (positive) ratings, rounded to one decimal place.
// An empty input yields 0, which callers treat as "no rating data".
func MeanRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return math.Round(float64(sum)/float64(len(ratings))*10) / 10
}

// breakdownFromCorpus classifies every text answer independently and converts
// the tallies to percentages. The negative bucket absorbs the rounding
// remainder so the three values always sum to 100. With no classifiable text
// the fixed 33/33/34 split is returned.
func breakdownFromCorpus(corpus []string) SentimentBreakdown {
	positive, neutral, negative := 0, 0, 0
	for _, text := range corpus {
		switch ClassifySentiment(text) {
		case SentimentPositive:
			positive++
		case SentimentNegative:
			negative++
		default:
			neutral++
		}
	}

	total := positive + neutral + negative
	if total == 0 {
		return SentimentBreakdown{Positive: 33, Neutral: 33, Negative: 34}
	}

	breakdown := SentimentBreakdown{
		Positive: int(math.Round(float64(positive) / float64(total) * 100)),
		Neutral:  int(math.Round(float64(neutral) / float64(total) * 100)),
	}
	breakdown.Negative = 100 - breakdown.Positive - breakdown.Neutral
	return breakdown
}
