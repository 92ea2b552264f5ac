package service

import (
	"regexp"
	"testing"

	"github.com/formpulse/formpulse/internal/dto"
	"github.com/formpulse/formpulse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormGeneratesSlugPublicURL(t *testing.T) {
	repo := newStubFormRepository()
	svc := NewFormService(repo)

	created, err := svc.CreateForm(1, dto.FormCreateDTO{
		Title: "Q4 Survey!!",
		Questions: []dto.QuestionCreateDTO{
			{QuestionText: "Rate us", QuestionType: model.QuestionTypeRating},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, model.FormStatusDraft, created.Status)
	assert.Regexp(t, regexp.MustCompile(`^q4-survey---[0-9a-f]{8}$`), created.PublicURL)
}

func TestCreateFormRejectsChoiceWithoutOptions(t *testing.T) {
	svc := NewFormService(newStubFormRepository())

	_, err := svc.CreateForm(1, dto.FormCreateDTO{
		Title: "Bad",
		Questions: []dto.QuestionCreateDTO{
			{QuestionText: "Pick one", QuestionType: model.QuestionTypeMultipleChoice},
		},
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.NotEmpty(t, vErr.Details)
}

func TestGetFormHidesForeignForms(t *testing.T) {
	repo := newStubFormRepository(&model.Form{ID: 5, UserID: 2, Title: "Theirs"})
	svc := NewFormService(repo)

	_, err := svc.GetForm(1, 5)
	assert.ErrorIs(t, err, ErrFormNotFound, "ownership failure reads as not-found")

	_, err = svc.GetForm(1, 999)
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestUpdateFormReplacesQuestionsWholesale(t *testing.T) {
	// pins the replace-on-edit behavior: editing questions drops the old set
	// and recreates it with fresh identifiers
	repo := newStubFormRepository(&model.Form{
		ID: 1, UserID: 1, Title: "Survey",
		Questions: []model.Question{
			{ID: 10, FormID: 1, QuestionText: "Old question", QuestionType: model.QuestionTypeText},
		},
	})
	svc := NewFormService(repo)

	updated, err := svc.UpdateForm(1, 1, dto.FormUpdateDTO{
		Questions: []dto.QuestionCreateDTO{
			{QuestionText: "New question", QuestionType: model.QuestionTypeText},
		},
	})
	require.NoError(t, err)

	require.Len(t, repo.replacedQuestion, 1, "questions were replaced, not patched")
	require.Len(t, updated.Questions, 1)
	assert.Equal(t, "New question", updated.Questions[0].QuestionText)
	assert.NotEqual(t, uint(10), updated.Questions[0].ID, "replacement questions get new ids")
}

func TestUpdateFormWithoutQuestionsKeepsExisting(t *testing.T) {
	repo := newStubFormRepository(&model.Form{
		ID: 1, UserID: 1, Title: "Survey",
		Questions: []model.Question{
			{ID: 10, FormID: 1, QuestionText: "Keep me", QuestionType: model.QuestionTypeText},
		},
	})
	svc := NewFormService(repo)

	newTitle := "Renamed"
	updated, err := svc.UpdateForm(1, 1, dto.FormUpdateDTO{Title: &newTitle})
	require.NoError(t, err)

	assert.Empty(t, repo.replacedQuestion)
	assert.Equal(t, "Renamed", updated.Title)
	require.Len(t, updated.Questions, 1)
	assert.Equal(t, uint(10), updated.Questions[0].ID)
}

func TestUpdateStatusMessages(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{model.FormStatusDraft, "Form saved as draft"},
		{model.FormStatusActive, "Form published successfully"},
		{model.FormStatusInactive, "Form unpublished"},
	}

	for _, tt := range tests {
		repo := newStubFormRepository(&model.Form{ID: 1, UserID: 1, Title: "Survey"})
		svc := NewFormService(repo)

		resp, err := svc.UpdateStatus(1, 1, tt.status)
		require.NoError(t, err)
		assert.Equal(t, tt.want, resp.Message)
		assert.Equal(t, tt.status, repo.updatedStatus[1])
	}
}

func TestDeleteFormChecksOwnership(t *testing.T) {
	repo := newStubFormRepository(&model.Form{ID: 1, UserID: 2})
	svc := NewFormService(repo)

	assert.ErrorIs(t, svc.DeleteForm(1, 1), ErrFormNotFound)
	require.NoError(t, svc.DeleteForm(2, 1))
	_, err := repo.FindByID(1)
	assert.Error(t, err)
}
