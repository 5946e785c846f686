package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/lpavone/examtrack/internal/pkg/validation"
)

// init registers the strict date rule with gin's binding validator so a
// malformed date surfaces in the field-error list like every other violated
// constraint.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("examdate", func(fl validator.FieldLevel) bool {
			_, ok := validation.ParseExamDate(fl.Field().String())
			return ok
		})
	}
}

// ExamRequest is the body of exam creation and update requests:
// {code: string(7), score: integer, date: "YYYY-MM-DD"}
type ExamRequest struct {
	Code  string `json:"code" binding:"required,len=7"`
	Score int    `json:"score" binding:"required,min=18,max=31"`
	Date  string `json:"date" binding:"required,examdate"`
}

// UpdateExamResponse confirms an exam update with the affected record id.
type UpdateExamResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}
