package repository

import (
	"github.com/formpulse/formpulse/internal/model"
	"gorm.io/gorm"
)

type FormRepository interface {
	Create(form *model.Form) error
	FindByID(id uint) (*model.Form, error)
	FindByIDWithQuestions(id uint) (*model.Form, error)
	// FindByIDWithResponses loads the full analytics snapshot: questions in
	// declared order, responses newest first with their answers.
	FindByIDWithResponses(id uint) (*model.Form, error)
	FindByPublicURL(publicURL, status string) (*model.Form, error)
	FindAllByUserWithResponseCount(userID uint) ([]FormWithResponseCount, error)
	OwnedBy(formID, userID uint) (bool, error)
	CountResponses(formID uint) (int64, error)
	UpdateStatus(formID uint, status string) error
	// UpdateWithQuestions updates form fields and, when questions is non-nil,
	// deletes every existing question and recreates the given set. Runs in a
	// single transaction.
	UpdateWithQuestions(form *model.Form, questions []model.Question) error
	Delete(id uint) error
}

type FormWithResponseCount struct {
	model.Form
	ResponseCount int
}

type formRepository struct {
	db *gorm.DB
}

func NewFormRepository(db *gorm.DB) FormRepository {
	return &formRepository{db: db}
}

func (r *formRepository) Create(form *model.Form) error {
	// association create persists the questions together with the form
	return r.db.Create(form).Error
}

func (r *formRepository) FindByID(id uint) (*model.Form, error) {
	var form model.Form
	err := r.db.First(&form, id).Error
	return &form, err
}

func (r *formRepository) FindByIDWithQuestions(id uint) (*model.Form, error) {
	var form model.Form
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_index ASC")
	}).First(&form, id).Error
	return &form, err
}

func (r *formRepository) FindByIDWithResponses(id uint) (*model.Form, error) {
	var form model.Form
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_index ASC")
		}).
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("responses.submitted_at DESC")
		}).
		Preload("Responses.Answers").
		First(&form, id).Error
	return &form, err
}

func (r *formRepository) FindByPublicURL(publicURL, status string) (*model.Form, error) {
	var form model.Form
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_index ASC")
		}).
		Preload("User").
		Where("public_url = ? AND status = ?", publicURL, status).
		First(&form).Error
	return &form, err
}

func (r *formRepository) FindAllByUserWithResponseCount(userID uint) ([]FormWithResponseCount, error) {
	var results []FormWithResponseCount
	err := r.db.Model(&model.Form{}).
		Select("forms.*, (SELECT COUNT(*) FROM responses WHERE responses.form_id = forms.id AND responses.deleted_at IS NULL) as response_count").
		Where("forms.user_id = ? AND forms.deleted_at IS NULL", userID).
		Order("forms.created_at DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for i := range results {
		var questions []model.Question
		if err := r.db.Where("form_id = ?", results[i].ID).Order("order_index ASC").Find(&questions).Error; err != nil {
			return nil, err
		}
		results[i].Questions = questions
	}
	return results, nil
}

func (r *formRepository) OwnedBy(formID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Form{}).
		Where("id = ? AND user_id = ?", formID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *formRepository) CountResponses(formID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Response{}).Where("form_id = ?", formID).Count(&count).Error
	return count, err
}

func (r *formRepository) UpdateStatus(formID uint, status string) error {
	return r.db.Model(&model.Form{}).Where("id = ?", formID).Update("status", status).Error
}

func (r *formRepository) UpdateWithQuestions(form *model.Form, questions []model.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Form{}).Where("id = ?", form.ID).
			Updates(map[string]interface{}{
				"title":       form.Title,
				"description": form.Description,
				"status":      form.Status,
			}).Error; err != nil {
			return err
		}

		if questions == nil {
			return nil
		}

		// replace-on-edit: existing questions are dropped and recreated with
		// fresh identifiers; historical answers keep referencing the old ids
		if err := tx.Where("form_id = ?", form.ID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ID = 0
			questions[i].FormID = form.ID
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *formRepository) Delete(id uint) error {
	return r.db.Delete(&model.Form{}, id).Error
}
