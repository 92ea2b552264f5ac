package repository

import (
	"github.com/formpulse/formpulse/internal/model"
	"gorm.io/gorm"
)

type ResponseRepository interface {
	// CreateWithAnswers persists a response together with all of its answers
	// as one transaction; either everything lands or nothing does.
	CreateWithAnswers(response *model.Response) error
	CountByFormID(formID uint) (int64, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) CreateWithAnswers(response *model.Response) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(response).Error
	})
}

func (r *responseRepository) CountByFormID(formID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Response{}).Where("form_id = ?", formID).Count(&count).Error
	return count, err
}
