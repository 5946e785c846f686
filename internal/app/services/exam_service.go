package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lpavone/examtrack/internal/app/models"
	"github.com/lpavone/examtrack/internal/app/models/dto"
	"github.com/lpavone/examtrack/internal/pkg/apperrors"
	"github.com/lpavone/examtrack/internal/pkg/validation"
)

// ExamStore is the storage collaborator for exam records.
type ExamStore interface {
	ListExamsByUser(ctx context.Context, userID int64) ([]*models.Exam, error)
	CreateExam(ctx context.Context, exam *models.Exam) error
	UpdateExam(ctx context.Context, exam *models.Exam) (int64, error)
	DeleteExam(ctx context.Context, userID int64, code string) error
}

// ExamService defines the interface for exam record operations. Every
// operation is scoped to the calling principal.
type ExamService interface {
	ListExams(ctx context.Context, userID int64) ([]*models.Exam, error)
	CreateExam(ctx context.Context, userID int64, req *dto.ExamRequest) error
	UpdateExam(ctx context.Context, userID int64, req *dto.ExamRequest) (int64, error)
	DeleteExam(ctx context.Context, userID int64, code string) error
}

// examServiceImpl implements the ExamService interface
type examServiceImpl struct {
	examRepo ExamStore
	// now is the clock used for the future-date check
	now func() time.Time
}

// NewExamService creates a new exam service instance
func NewExamService(examRepo ExamStore) ExamService {
	return &examServiceImpl{
		examRepo: examRepo,
		now:      time.Now,
	}
}

// validateExam validates an exam payload before any storage delegation.
// Mirrors the creation rules: score in [18,31], code of length 7, strict
// YYYY-MM-DD date that is not in the future.
func (s *examServiceImpl) validateExam(req *dto.ExamRequest) error {
	if req == nil {
		return apperrors.NewValidationError("exam payload is missing")
	}

	if !validation.IsValidScore(req.Score) {
		return apperrors.NewValidationError(fmt.Sprintf(
			"score %d is out of range [%d,%d]", req.Score, validation.ScoreMin, validation.ScoreMax))
	}

	if len(req.Code) != validation.CourseCodeLength {
		return apperrors.NewValidationError(fmt.Sprintf(
			"course code must be %d characters long", validation.CourseCodeLength))
	}

	date, ok := validation.ParseExamDate(req.Date)
	if !ok {
		return apperrors.NewValidationError(fmt.Sprintf("date %q is not a valid YYYY-MM-DD date", req.Date))
	}

	if date.After(s.now()) {
		return apperrors.NewValidationError(fmt.Sprintf(
			"date %s is not valid: an exam cannot be in the future", date.Format("02/01/2006")))
	}

	return nil
}

// ListExams retrieves the exams owned by the given principal
func (s *examServiceImpl) ListExams(ctx context.Context, userID int64) ([]*models.Exam, error) {
	exams, err := s.examRepo.ListExamsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving exams: %w", err)
	}
	return exams, nil
}

// CreateExam records a new exam owned by the given principal
func (s *examServiceImpl) CreateExam(ctx context.Context, userID int64, req *dto.ExamRequest) error {
	if err := s.validateExam(req); err != nil {
		return err
	}

	exam := &models.Exam{
		UserID: userID,
		Code:   req.Code,
		Date:   req.Date,
		Score:  req.Score,
	}

	if err := s.examRepo.CreateExam(ctx, exam); err != nil {
		return apperrors.NewStorageFailureError(fmt.Sprintf("DB error during the creation of exam %s", req.Code))
	}
	return nil
}

// UpdateExam updates the principal's exam identified by req.Code and returns
// the affected record's id
func (s *examServiceImpl) UpdateExam(ctx context.Context, userID int64, req *dto.ExamRequest) (int64, error) {
	if err := s.validateExam(req); err != nil {
		return 0, err
	}

	exam := &models.Exam{
		UserID: userID,
		Code:   req.Code,
		Date:   req.Date,
		Score:  req.Score,
	}

	id, err := s.examRepo.UpdateExam(ctx, exam)
	if err != nil {
		if errors.Is(err, apperrors.ErrExamNotFound) {
			return 0, apperrors.ErrExamNotFound
		}
		return 0, apperrors.NewStorageFailureError(fmt.Sprintf("DB error during the update of exam %s", req.Code))
	}
	return id, nil
}

// DeleteExam removes the principal's exam identified by code
func (s *examServiceImpl) DeleteExam(ctx context.Context, userID int64, code string) error {
	if !validation.IsValidCourseCode(code) {
		return apperrors.NewValidationError(fmt.Sprintf("invalid course code %q", code))
	}

	if err := s.examRepo.DeleteExam(ctx, userID, code); err != nil {
		if errors.Is(err, apperrors.ErrExamNotFound) {
			return apperrors.ErrExamNotFound
		}
		return apperrors.NewStorageFailureError(fmt.Sprintf("DB error during the deletion of exam %s", code))
	}
	return nil
}
