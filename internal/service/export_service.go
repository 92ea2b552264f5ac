package service

import (
	"errors"
	"fmt"

	"github.com/formpulse/formpulse/internal/export"
	"github.com/formpulse/formpulse/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ExportService renders a form's responses into a downloadable CSV buffer.
type ExportService interface {
	ExportCSV(userID, formID uint) (filename string, data []byte, err error)
}

type exportService struct {
	formRepo repository.FormRepository
}

func NewExportService(formRepo repository.FormRepository) ExportService {
	return &exportService{formRepo: formRepo}
}

func (s *exportService) ExportCSV(userID, formID uint) (string, []byte, error) {
	owned, err := s.formRepo.OwnedBy(formID, userID)
	if err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("ExportCSV: ownership check failed")
		return "", nil, fmt.Errorf("error checking form ownership: %w", err)
	}
	if !owned {
		return "", nil, ErrFormNotFound
	}

	form, err := s.formRepo.FindByIDWithResponses(formID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrFormNotFound
		}
		log.Error().Err(err).Uint("formID", formID).Msg("ExportCSV: failed to load snapshot")
		return "", nil, fmt.Errorf("error fetching form for export: %w", err)
	}

	data, err := export.WriteCSV(form)
	if err != nil {
		log.Error().Err(err).Uint("formID", formID).Msg("ExportCSV: CSV generation failed")
		return "", nil, fmt.Errorf("error generating export: %w", err)
	}

	return export.Filename(form.Title), data, nil
}
