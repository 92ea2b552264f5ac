package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/formpulse/formpulse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilenameSanitizesTitle(t *testing.T) {
	assert.Equal(t, "Q4_Survey___responses.csv", Filename("Q4 Survey!!"))
	assert.Equal(t, "plain_responses.csv", Filename("plain"))
	assert.Equal(t, "caf__feedback_responses.csv", Filename("café feedback"))
}

func TestWriteCSVRoundTrip(t *testing.T) {
	submitted := time.Date(2024, 1, 15, 15, 4, 5, 0, time.UTC)
	form := &model.Form{
		ID:    7,
		Title: "Q4 Survey!!",
		Questions: []model.Question{
			{ID: 1, QuestionText: "How did you hear about us?", OrderIndex: 0},
			{ID: 2, QuestionText: "Rate our support", OrderIndex: 1},
			{ID: 3, QuestionText: "Anything else?", OrderIndex: 2},
		},
		Responses: []model.Response{
			{ID: 101, SubmittedAt: submitted, Answers: []model.Answer{
				{QuestionID: 1, AnswerText: "A friend, \"word of mouth\""},
				{QuestionID: 2, AnswerText: "5"},
				{QuestionID: 3, AnswerText: "keep it up\nthanks"},
			}},
			{ID: 100, SubmittedAt: submitted.Add(-time.Hour), Answers: []model.Answer{
				{QuestionID: 2, AnswerText: "3"},
			}},
		},
	}

	data, err := WriteCSV(form)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	// N data rows, M+2 columns
	require.Len(t, records, 3)
	for _, record := range records {
		assert.Len(t, record, 5)
	}

	assert.Equal(t, []string{"Response ID", "Submitted At", "How did you hear about us?", "Rate our support", "Anything else?"}, records[0])

	// answered values round-trip exactly, including quotes and newlines
	assert.Equal(t, "101", records[1][0])
	assert.Equal(t, "01/15/2024, 03:04:05 PM UTC", records[1][1])
	assert.Equal(t, "A friend, \"word of mouth\"", records[1][2])
	assert.Equal(t, "5", records[1][3])
	assert.Equal(t, "keep it up\nthanks", records[1][4])

	// unanswered questions render as empty cells
	assert.Equal(t, "100", records[2][0])
	assert.Equal(t, "", records[2][2])
	assert.Equal(t, "3", records[2][3])
	assert.Equal(t, "", records[2][4])
}

func TestWriteCSVNoResponses(t *testing.T) {
	form := &model.Form{
		ID:        1,
		Title:     "Empty",
		Questions: []model.Question{{ID: 1, QuestionText: "Q1"}},
	}

	data, err := WriteCSV(form)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"Response ID", "Submitted At", "Q1"}, records[0])
}
