package form

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/formpulse/formpulse/internal/dto"
	"github.com/formpulse/formpulse/internal/middleware"
	"github.com/formpulse/formpulse/internal/service"
)

// FormController serves the authenticated dashboard surface: form CRUD,
// publishing, the response analytics listing and the CSV export.
type FormController struct {
	formService     service.FormService
	responseService service.ResponseService
	exportService   service.ExportService
}

func NewFormController(formService service.FormService, responseService service.ResponseService, exportService service.ExportService) *FormController {
	return &FormController{
		formService:     formService,
		responseService: responseService,
		exportService:   exportService,
	}
}

// CreateForm godoc
// @Summary Create a form
// @Description Create a draft form with its questions for the authenticated user
// @Tags Forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param form body dto.FormCreateDTO true "Form title, description and questions"
// @Success 201 {object} dto.FormDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid form payload"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forms [post]
func (c *FormController) CreateForm(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}

	var req dto.FormCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateForm: failed to bind request")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	form, err := c.formService.CreateForm(userID, req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to create form")
		return
	}
	ctx.JSON(http.StatusCreated, form)
}

// ListForms godoc
// @Summary List the caller's forms
// @Description All forms owned by the authenticated user, each with its response count
// @Tags Forms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.FormDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forms [get]
func (c *FormController) ListForms(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}

	forms, err := c.formService.ListForms(userID)
	if err != nil {
		respondServiceError(ctx, err, "Failed to list forms")
		return
	}
	ctx.JSON(http.StatusOK, forms)
}

// GetForm godoc
// @Summary Get one form
// @Description A single owned form with its questions
// @Tags Forms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Success 200 {object} dto.FormDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid form ID"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /forms/{id} [get]
func (c *FormController) GetForm(ctx *gin.Context) {
	userID, formID, ok := c.callerAndForm(ctx)
	if !ok {
		return
	}

	form, err := c.formService.GetForm(userID, formID)
	if err != nil {
		respondServiceError(ctx, err, "Failed to fetch form")
		return
	}
	ctx.JSON(http.StatusOK, form)
}

// UpdateForm godoc
// @Summary Update a form
// @Description Update title, description or status. Supplying questions replaces the existing set.
// @Tags Forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Param form body dto.FormUpdateDTO true "Fields to change"
// @Success 200 {object} dto.FormDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /forms/{id} [put]
func (c *FormController) UpdateForm(ctx *gin.Context) {
	userID, formID, ok := c.callerAndForm(ctx)
	if !ok {
		return
	}

	var req dto.FormUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	form, err := c.formService.UpdateForm(userID, formID, req)
	if err != nil {
		respondServiceError(ctx, err, "Failed to update form")
		return
	}
	ctx.JSON(http.StatusOK, form)
}

// UpdateStatus godoc
// @Summary Change a form's status
// @Description Move a form between DRAFT, ACTIVE and INACTIVE. Activating publishes the public link.
// @Tags Forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Param status body dto.StatusUpdateDTO true "New status"
// @Success 200 {object} dto.FormMessageDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /forms/{id}/status [put]
func (c *FormController) UpdateStatus(ctx *gin.Context) {
	userID, formID, ok := c.callerAndForm(ctx)
	if !ok {
		return
	}

	var req dto.StatusUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.formService.UpdateStatus(userID, formID, req.Status)
	if err != nil {
		respondServiceError(ctx, err, "Failed to update form status")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// DeleteForm godoc
// @Summary Delete a form
// @Description Remove an owned form together with its questions and responses
// @Tags Forms
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid form ID"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /forms/{id} [delete]
func (c *FormController) DeleteForm(ctx *gin.Context) {
	userID, formID, ok := c.callerAndForm(ctx)
	if !ok {
		return
	}

	if err := c.formService.DeleteForm(userID, formID); err != nil {
		respondServiceError(ctx, err, "Failed to delete form")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetResponses godoc
// @Summary List a form's responses with analytics
// @Description Paginated responses plus sentiment breakdown, rating aggregates, keywords and per-question summaries. Pagination is applied before the search and sentiment filters; analytics always cover every response.
// @Tags Responses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 200)" default(50)
// @Param search query string false "Case-insensitive text to match against answers"
// @Param sentiment query string false "Sentiment filter" Enums(all, positive, neutral, negative)
// @Success 200 {object} dto.FormResponsesDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /forms/{id}/responses [get]
func (c *FormController) GetResponses(ctx *gin.Context) {
	userID, formID, ok := c.callerAndForm(ctx)
	if !ok {
		return
	}

	var query dto.ResponsesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid query parameters", Details: []string{err.Error()}})
		return
	}

	payload, err := c.responseService.GetFormResponses(userID, formID, query)
	if err != nil {
		respondServiceError(ctx, err, "Failed to load responses")
		return
	}
	ctx.JSON(http.StatusOK, payload)
}

// ExportResponses godoc
// @Summary Export a form's responses as CSV
// @Description Download every response as a CSV attachment, newest first
// @Tags Responses
// @Produce text/csv
// @Security BearerAuth
// @Param id path int true "Form ID"
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} dto.ErrorResponse "Invalid form ID"
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /forms/{id}/export [get]
func (c *FormController) ExportResponses(ctx *gin.Context) {
	userID, formID, ok := c.callerAndForm(ctx)
	if !ok {
		return
	}

	filename, data, err := c.exportService.ExportCSV(userID, formID)
	if err != nil {
		respondServiceError(ctx, err, "Failed to export responses")
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv", data)
}

// callerAndForm resolves the authenticated user and the :id path parameter,
// writing the error response itself when either is missing.
func (c *FormController) callerAndForm(ctx *gin.Context) (userID, formID uint, ok bool) {
	userID, ok = middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return 0, 0, false
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid form ID format"})
		return 0, 0, false
	}
	return userID, uint(id), true
}

func respondServiceError(ctx *gin.Context, err error, fallback string) {
	var vErr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrFormNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Form not found"})
	case errors.As(err, &vErr):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: vErr.Message, Details: vErr.Details})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg(fallback)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: fallback})
	}
}
