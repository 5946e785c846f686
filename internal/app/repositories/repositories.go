package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository *CourseRepository
	ExamRepository   *ExamRepository
	UserRepository   *UserRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CourseRepository: NewCourseRepository(db),
		ExamRepository:   NewExamRepository(db),
		UserRepository:   NewUserRepository(db),
	}
}
