package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lpavone/examtrack/internal/app/models"
	"github.com/lpavone/examtrack/internal/pkg/apperrors"
	"github.com/lpavone/examtrack/internal/pkg/validation"
)

// CourseReader is the storage collaborator for the course catalog.
type CourseReader interface {
	ListCourses(ctx context.Context) ([]*models.Course, error)
	GetCourseByCode(ctx context.Context, code string) (*models.Course, error)
}

// CourseService defines the interface for course catalog operations
type CourseService interface {
	ListCourses(ctx context.Context) ([]*models.Course, error)
	GetCourse(ctx context.Context, code string) (*models.Course, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo CourseReader
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo CourseReader) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
	}
}

// ListCourses retrieves the full course catalog
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courseRepo.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// GetCourse retrieves a single course. The code shape is validated before
// storage is consulted.
func (s *courseServiceImpl) GetCourse(ctx context.Context, code string) (*models.Course, error) {
	if !validation.IsValidCourseCode(code) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid course code %q", code))
	}

	course, err := s.courseRepo.GetCourseByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}
