package analytics

import (
	"strconv"
	"strings"

	"github.com/formpulse/formpulse/internal/model"
)

// AnswerKind discriminates the interpretation of a raw answer string.
type AnswerKind int

const (
	AnswerKindText AnswerKind = iota
	AnswerKindChoice
	AnswerKindRating
	AnswerKindUnknown
)

// AnswerValue is the parsed form of a stored answer. The storage layer keeps
// everything in one string column; this type is built once at the read
// boundary so the engine never re-parses the same answer twice.
type AnswerValue struct {
	QuestionID uint
	Kind       AnswerKind
	Text       string // TEXT/TEXTAREA content or selected choice
	Rating     int    // parsed 1-5 value, 0 when absent or malformed
	Raw        string
}

// InterpretAnswer resolves a raw answer against its question's type. Answers
// referencing questions the caller no longer knows about (replaced on form
// edit) come back as AnswerKindUnknown and only contribute their raw text to
// the per-response answer map.
func InterpretAnswer(answer model.Answer, questions map[uint]model.Question) AnswerValue {
	value := AnswerValue{QuestionID: answer.QuestionID, Raw: answer.AnswerText}

	question, ok := questions[answer.QuestionID]
	if !ok {
		value.Kind = AnswerKindUnknown
		return value
	}

	switch question.QuestionType {
	case model.QuestionTypeText, model.QuestionTypeTextarea:
		value.Kind = AnswerKindText
		value.Text = strings.ToLower(answer.AnswerText)
	case model.QuestionTypeMultipleChoice:
		value.Kind = AnswerKindChoice
		value.Text = answer.AnswerText
	case model.QuestionTypeRating:
		value.Kind = AnswerKindRating
		// malformed rating text is "no signal", never an error
		if n, err := strconv.Atoi(strings.TrimSpace(answer.AnswerText)); err == nil {
			value.Rating = n
		}
	default:
		value.Kind = AnswerKindUnknown
	}
	return value
}
