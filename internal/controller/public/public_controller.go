package public

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/formpulse/formpulse/internal/dto"
	"github.com/formpulse/formpulse/internal/middleware"
	"github.com/formpulse/formpulse/internal/service"
)

// PublicController serves the anonymous respondent surface. No authentication
// is involved; forms are addressed by their public URL slug and only ACTIVE
// forms resolve.
type PublicController struct {
	submissionService service.SubmissionService
}

func NewPublicController(submissionService service.SubmissionService) *PublicController {
	return &PublicController{submissionService: submissionService}
}

// GetForm godoc
// @Summary Fetch a published form
// @Description The questions and author of an ACTIVE form, addressed by its public slug
// @Tags Public
// @Produce json
// @Param public_url path string true "Public form slug"
// @Success 200 {object} dto.PublicFormDTO
// @Failure 404 {object} dto.ErrorResponse "Form not found or not published"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /public/forms/{public_url} [get]
func (c *PublicController) GetForm(ctx *gin.Context) {
	form, err := c.submissionService.GetPublicForm(ctx.Param("public_url"))
	if err != nil {
		if errors.Is(err, service.ErrFormNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Form not found or not accepting responses"})
			return
		}
		log.Error().Err(err).Msg("GetPublicForm: unexpected failure")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load form"})
		return
	}
	ctx.JSON(http.StatusOK, form)
}

// Submit godoc
// @Summary Submit a response
// @Description Record an anonymous response to an ACTIVE form. All required questions must be answered. Throttled per client IP.
// @Tags Public
// @Accept json
// @Produce json
// @Param public_url path string true "Public form slug"
// @Param response body dto.SubmitRequest true "Answers keyed by question ID"
// @Success 201 {object} dto.SubmitResultDTO
// @Failure 400 {object} dto.ErrorResponse "Missing required answers or unknown questions"
// @Failure 404 {object} dto.ErrorResponse "Form not found or not published"
// @Failure 429 {object} dto.RateLimitedResponse "Submission rate limit exceeded"
// @Router /public/forms/{public_url}/submit [post]
func (c *PublicController) Submit(ctx *gin.Context) {
	var req dto.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.submissionService.SubmitResponse(
		ctx.Param("public_url"),
		middleware.ClientIP(ctx),
		ctx.Request.UserAgent(),
		req,
	)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrFormNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Form not found or not accepting responses"})
		case errors.As(err, &vErr):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: vErr.Message, Details: vErr.Details})
		default:
			log.Error().Err(err).Msg("SubmitResponse: unexpected failure")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to record response"})
		}
		return
	}
	ctx.JSON(http.StatusCreated, result)
}
