package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/formpulse/formpulse/internal/dto"
	"github.com/formpulse/formpulse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formWithResponses() *model.Form {
	now := time.Now()
	form := &model.Form{
		ID: 1, UserID: 1, Title: "Feedback", Status: model.FormStatusActive,
		Questions: []model.Question{
			{ID: 1, FormID: 1, QuestionText: "Rate us", QuestionType: model.QuestionTypeRating, OrderIndex: 0},
			{ID: 2, FormID: 1, QuestionText: "Comments", QuestionType: model.QuestionTypeTextarea, OrderIndex: 1},
		},
	}
	// newest first, the order the snapshot loader returns
	form.Responses = []model.Response{
		{ID: 3, FormID: 1, SubmittedAt: now.Add(-1 * time.Minute), Answers: []model.Answer{
			{QuestionID: 1, AnswerText: "5"},
			{QuestionID: 2, AnswerText: "great experience"},
		}},
		{ID: 2, FormID: 1, SubmittedAt: now.Add(-2 * time.Minute), Answers: []model.Answer{
			{QuestionID: 1, AnswerText: "1"},
			{QuestionID: 2, AnswerText: "terrible packaging"},
		}},
		{ID: 1, FormID: 1, SubmittedAt: now.Add(-3 * time.Minute), Answers: []model.Answer{
			{QuestionID: 2, AnswerText: "arrived on time"},
		}},
	}
	return form
}

func TestGetFormResponsesAssemblesPayload(t *testing.T) {
	svc := NewResponseService(newStubFormRepository(formWithResponses()))

	out, err := svc.GetFormResponses(1, 1, dto.ResponsesQuery{Page: 1, Limit: 50, Sentiment: "all"})
	require.NoError(t, err)

	assert.Equal(t, 3, out.Form.TotalResponses)
	require.NotNil(t, out.Form.LastResponse)
	require.Len(t, out.Responses, 3)
	assert.Equal(t, uint(3), out.Responses[0].ID)

	assert.Equal(t, 3.0, out.Analytics.AvgRating)
	assert.Equal(t, 100, out.Analytics.CompletionRate)
	require.Contains(t, out.QuestionSummaries, uint(1))
	assert.Equal(t, 1, out.QuestionSummaries[1]["5"])
	require.Len(t, out.Questions, 2)
}

func TestGetFormResponsesSentimentFilter(t *testing.T) {
	svc := NewResponseService(newStubFormRepository(formWithResponses()))

	out, err := svc.GetFormResponses(1, 1, dto.ResponsesQuery{Page: 1, Limit: 50, Sentiment: "positive"})
	require.NoError(t, err)

	require.Len(t, out.Responses, 1)
	assert.Equal(t, uint(3), out.Responses[0].ID)
	// analytics still cover the full response set
	assert.Equal(t, 3, out.Form.TotalResponses)
	assert.Equal(t, 100, out.Analytics.CompletionRate)
}

func TestGetFormResponsesSearchFilter(t *testing.T) {
	svc := NewResponseService(newStubFormRepository(formWithResponses()))

	out, err := svc.GetFormResponses(1, 1, dto.ResponsesQuery{Page: 1, Limit: 50, Search: "PACKAGING", Sentiment: "all"})
	require.NoError(t, err)

	require.Len(t, out.Responses, 1)
	assert.Equal(t, uint(2), out.Responses[0].ID)
}

func TestGetFormResponsesPagination(t *testing.T) {
	form := &model.Form{
		ID: 1, UserID: 1, Title: "Big",
		Questions: []model.Question{{ID: 1, FormID: 1, QuestionType: model.QuestionTypeText}},
	}
	now := time.Now()
	for i := 0; i < 7; i++ {
		form.Responses = append(form.Responses, model.Response{
			ID:          uint(100 - i),
			FormID:      1,
			SubmittedAt: now.Add(-time.Duration(i) * time.Minute),
			Answers:     []model.Answer{{QuestionID: 1, AnswerText: fmt.Sprintf("note %d", i)}},
		})
	}
	svc := NewResponseService(newStubFormRepository(form))

	page2, err := svc.GetFormResponses(1, 1, dto.ResponsesQuery{Page: 2, Limit: 3, Sentiment: "all"})
	require.NoError(t, err)
	require.Len(t, page2.Responses, 3)
	assert.Equal(t, uint(97), page2.Responses[0].ID)

	page3, err := svc.GetFormResponses(1, 1, dto.ResponsesQuery{Page: 3, Limit: 3, Sentiment: "all"})
	require.NoError(t, err)
	assert.Len(t, page3.Responses, 1)

	beyond, err := svc.GetFormResponses(1, 1, dto.ResponsesQuery{Page: 9, Limit: 3, Sentiment: "all"})
	require.NoError(t, err)
	assert.Empty(t, beyond.Responses)
}

func TestGetFormResponsesOwnership(t *testing.T) {
	svc := NewResponseService(newStubFormRepository(formWithResponses()))

	_, err := svc.GetFormResponses(42, 1, dto.ResponsesQuery{Page: 1, Limit: 50})
	assert.ErrorIs(t, err, ErrFormNotFound)
}
