package analytics

import (
	"strconv"

	"github.com/formpulse/formpulse/internal/model"
)

// QuestionSummaries tallies answers per selectable value for every
// MULTIPLE_CHOICE and RATING question. Choice answers that match no declared
// option and rating answers outside 1-5 are dropped silently; free-text
// questions never get a summary.
func QuestionSummaries(questions []model.Question, responses []model.Response) map[uint]map[string]int {
	summaries := make(map[uint]map[string]int)

	for _, question := range questions {
		switch question.QuestionType {
		case model.QuestionTypeMultipleChoice:
			summary := make(map[string]int, len(question.Options))
			for _, option := range question.Options {
				summary[option] = 0
			}
			summaries[question.ID] = summary
		case model.QuestionTypeRating:
			summary := make(map[string]int, 5)
			for star := 1; star <= 5; star++ {
				summary[strconv.Itoa(star)] = 0
			}
			summaries[question.ID] = summary
		}
	}

	for _, response := range responses {
		for _, answer := range response.Answers {
			summary, ok := summaries[answer.QuestionID]
			if !ok {
				continue
			}
			if _, known := summary[answer.AnswerText]; known {
				summary[answer.AnswerText]++
			}
		}
	}

	return summaries
}
