package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lpavone/examtrack/internal/app/models/dto"
	"github.com/lpavone/examtrack/internal/app/services"
	"github.com/lpavone/examtrack/internal/middleware"
)

// ExamController handles exam record operations. All routes it serves sit
// behind the session gate, so a principal is always present in the context.
type ExamController struct {
	examService services.ExamService
}

// NewExamController creates a new ExamController
func NewExamController(examService services.ExamService) *ExamController {
	return &ExamController{
		examService: examService,
	}
}

// ListExams returns the exams owned by the calling principal
func (c *ExamController) ListExams(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("not authenticated"))
		return
	}

	exams, err := c.examService.ListExams(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, exams)
}

// CreateExam records a new exam for the calling principal. Success is an
// empty 201 acknowledgment.
func (c *ExamController) CreateExam(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("not authenticated"))
		return
	}

	var req dto.ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity,
			dto.NewValidationErrorResponse(dto.FieldErrorsFromBinding(err)))
		return
	}

	if err := c.examService.CreateExam(ctx.Request.Context(), user.ID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusCreated)
}

// UpdateExam updates the calling principal's exam identified by the body's
// course code and confirms with the affected record's id.
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("not authenticated"))
		return
	}

	var req dto.ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity,
			dto.NewValidationErrorResponse(dto.FieldErrorsFromBinding(err)))
		return
	}

	id, err := c.examService.UpdateExam(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UpdateExamResponse{
		ID:      id,
		Message: fmt.Sprintf("Exam %s updated.", req.Code),
	})
}

// DeleteExam removes the calling principal's exam identified by the :code
// path parameter. Success is an empty 204.
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("not authenticated"))
		return
	}

	code := ctx.Param("code")

	if err := c.examService.DeleteExam(ctx.Request.Context(), user.ID, code); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
