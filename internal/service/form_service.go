package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/formpulse/formpulse/internal/dto"
	"github.com/formpulse/formpulse/internal/model"
	"github.com/formpulse/formpulse/internal/repository"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var statusMessages = map[string]string{
	model.FormStatusDraft:    "Form saved as draft",
	model.FormStatusActive:   "Form published successfully",
	model.FormStatusInactive: "Form unpublished",
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]`)

type FormService interface {
	CreateForm(userID uint, req dto.FormCreateDTO) (*dto.FormDTO, error)
	ListForms(userID uint) ([]dto.FormDTO, error)
	GetForm(userID, formID uint) (*dto.FormDTO, error)
	UpdateForm(userID, formID uint, req dto.FormUpdateDTO) (*dto.FormDTO, error)
	UpdateStatus(userID, formID uint, status string) (*dto.FormMessageDTO, error)
	DeleteForm(userID, formID uint) error
}

type formService struct {
	formRepo repository.FormRepository
}

func NewFormService(formRepo repository.FormRepository) FormService {
	return &formService{formRepo: formRepo}
}

func (s *formService) CreateForm(userID uint, req dto.FormCreateDTO) (*dto.FormDTO, error) {
	questions := make([]model.Question, 0, len(req.Questions))
	for i, qDto := range req.Questions {
		if qDto.QuestionType == model.QuestionTypeMultipleChoice && len(qDto.Options) == 0 {
			return nil, newValidationError("Validation failed",
				fmt.Sprintf("question %d: MULTIPLE_CHOICE questions need at least one option", i+1))
		}
		orderIndex := qDto.OrderIndex
		if orderIndex == 0 {
			orderIndex = i
		}
		questions = append(questions, model.Question{
			QuestionText: qDto.QuestionText,
			QuestionType: qDto.QuestionType,
			IsRequired:   qDto.IsRequired,
			Options:      model.StringList(qDto.Options),
			OrderIndex:   orderIndex,
		})
	}

	form := model.Form{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.FormStatusDraft,
		PublicURL:   buildPublicURL(req.Title),
		Questions:   questions,
	}
	if err := s.formRepo.Create(&form); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("CreateForm: database error")
		return nil, fmt.Errorf("error creating form: %w", err)
	}

	created, err := s.formRepo.FindByIDWithQuestions(form.ID)
	if err != nil {
		log.Error().Err(err).Uint("formID", form.ID).Msg("CreateForm: failed to reload created form")
		created = &form
	}
	return formToDTO(created, 0), nil
}

func (s *formService) ListForms(userID uint) ([]dto.FormDTO, error) {
	formsWithCount, err := s.formRepo.FindAllByUserWithResponseCount(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("ListForms: failed to fetch forms")
		return nil, fmt.Errorf("error fetching forms: %w", err)
	}

	dtos := make([]dto.FormDTO, 0, len(formsWithCount))
	for _, fwc := range formsWithCount {
		dtos = append(dtos, *formToDTO(&fwc.Form, fwc.ResponseCount))
	}
	return dtos, nil
}

func (s *formService) GetForm(userID, formID uint) (*dto.FormDTO, error) {
	if err := s.checkOwnership(userID, formID); err != nil {
		return nil, err
	}

	form, err := s.formRepo.FindByIDWithQuestions(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		log.Error().Err(err).Uint("formID", formID).Msg("GetForm: failed to fetch form")
		return nil, fmt.Errorf("error fetching form: %w", err)
	}

	count, err := s.formRepo.CountResponses(formID)
	if err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("GetForm: failed to count responses")
		return nil, fmt.Errorf("error counting responses: %w", err)
	}
	return formToDTO(form, int(count)), nil
}

func (s *formService) UpdateForm(userID, formID uint, req dto.FormUpdateDTO) (*dto.FormDTO, error) {
	if err := s.checkOwnership(userID, formID); err != nil {
		return nil, err
	}

	form, err := s.formRepo.FindByID(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("error fetching form: %w", err)
	}

	if req.Title != nil {
		form.Title = *req.Title
	}
	if req.Description != nil {
		form.Description = *req.Description
	}
	if req.Status != nil {
		form.Status = *req.Status
	}

	var questions []model.Question
	if req.Questions != nil {
		for i, qDto := range req.Questions {
			if qDto.QuestionType == model.QuestionTypeMultipleChoice && len(qDto.Options) == 0 {
				return nil, newValidationError("Validation failed",
					fmt.Sprintf("question %d: MULTIPLE_CHOICE questions need at least one option", i+1))
			}
			orderIndex := qDto.OrderIndex
			if orderIndex == 0 {
				orderIndex = i
			}
			questions = append(questions, model.Question{
				QuestionText: qDto.QuestionText,
				QuestionType: qDto.QuestionType,
				IsRequired:   qDto.IsRequired,
				Options:      model.StringList(qDto.Options),
				OrderIndex:   orderIndex,
			})
		}
	}

	if err := s.formRepo.UpdateWithQuestions(form, questions); err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("UpdateForm: transaction failed")
		return nil, fmt.Errorf("error updating form: %w", err)
	}

	updated, err := s.formRepo.FindByIDWithQuestions(formID)
	if err != nil {
		return nil, fmt.Errorf("error reloading updated form: %w", err)
	}
	count, err := s.formRepo.CountResponses(formID)
	if err != nil {
		return nil, fmt.Errorf("error counting responses: %w", err)
	}
	return formToDTO(updated, int(count)), nil
}

func (s *formService) UpdateStatus(userID, formID uint, status string) (*dto.FormMessageDTO, error) {
	if err := s.checkOwnership(userID, formID); err != nil {
		return nil, err
	}

	if err := s.formRepo.UpdateStatus(formID, status); err != nil {
		log.Error().Err(err).Uint("formID", formID).Str("status", status).Msg("UpdateStatus: database error")
		return nil, fmt.Errorf("error updating form status: %w", err)
	}

	form, err := s.formRepo.FindByIDWithQuestions(formID)
	if err != nil {
		return nil, fmt.Errorf("error reloading form: %w", err)
	}
	count, err := s.formRepo.CountResponses(formID)
	if err != nil {
		return nil, fmt.Errorf("error counting responses: %w", err)
	}

	return &dto.FormMessageDTO{
		Message: statusMessages[status],
		Form:    *formToDTO(form, int(count)),
	}, nil
}

func (s *formService) DeleteForm(userID, formID uint) error {
	if err := s.checkOwnership(userID, formID); err != nil {
		return err
	}
	if err := s.formRepo.Delete(formID); err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("DeleteForm: database error")
		return fmt.Errorf("error deleting form: %w", err)
	}
	return nil
}

func (s *formService) checkOwnership(userID, formID uint) error {
	owned, err := s.formRepo.OwnedBy(formID, userID)
	if err != nil {
		log.Error().Err(err).Uint("formID", formID).Uint("userID", userID).Msg("Ownership check failed")
		return fmt.Errorf("error checking form ownership: %w", err)
	}
	if !owned {
		return ErrFormNotFound
	}
	return nil
}

// buildPublicURL slugifies the title and appends the first 8 characters of a
// UUID so two forms with the same title get distinct public links.
func buildPublicURL(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return slug + "-" + uuid.NewString()[:8]
}

func formToDTO(form *model.Form, responseCount int) *dto.FormDTO {
	var out dto.FormDTO
	if err := copier.Copy(&out, form); err != nil {
		log.Error().Err(err).Uint("formID", form.ID).Msg("Failed to copy form model to DTO")
	}
	out.ResponseCount = responseCount
	return &out
}
