package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lpavone/examtrack/internal/app/models"
	"github.com/lpavone/examtrack/internal/pkg/apperrors"
	"github.com/lpavone/examtrack/internal/pkg/logger"
)

// ExamRepository handles exam database operations. Every operation is keyed
// by the owning user; one user never sees or touches another user's rows.
type ExamRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewExamRepository creates a new ExamRepository
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListExamsByUser retrieves the exams owned by the given user, newest first
func (r *ExamRepository) ListExamsByUser(ctx context.Context, userID int64) ([]*models.Exam, error) {
	sql, args, err := r.sb.Select("id", "user_id", "course_code", "to_char(date, 'YYYY-MM-DD')", "score").
		From("exams").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC", "course_code ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list exams SQL")
		return nil, fmt.Errorf("failed to build list exams query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing list exams query")
		return nil, fmt.Errorf("error querying exams: %w", err)
	}
	defer rows.Close()

	exams := []*models.Exam{}
	for rows.Next() {
		exam := &models.Exam{}
		if err := rows.Scan(&exam.ID, &exam.UserID, &exam.Code, &exam.Date, &exam.Score); err != nil {
			logger.Error().Err(err).Msg("Error scanning exam row")
			return nil, fmt.Errorf("error scanning exam row: %w", err)
		}
		exams = append(exams, exam)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating exam rows")
		return nil, fmt.Errorf("error iterating exam rows: %w", err)
	}

	return exams, nil
}

// CreateExam inserts a new exam record owned by exam.UserID
func (r *ExamRepository) CreateExam(ctx context.Context, exam *models.Exam) error {
	sql, args, err := r.sb.Insert("exams").
		Columns("user_id", "course_code", "date", "score").
		Values(exam.UserID, exam.Code, exam.Date, exam.Score).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create exam SQL")
		return fmt.Errorf("failed to build create exam query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exam.ID); err != nil {
		logger.Error().Err(err).Str("code", exam.Code).Int64("userID", exam.UserID).Msg("Error executing create exam query")
		return fmt.Errorf("error creating exam: %w", err)
	}

	return nil
}

// UpdateExam updates the exam identified by (exam.UserID, exam.Code) and
// returns the affected record's id
func (r *ExamRepository) UpdateExam(ctx context.Context, exam *models.Exam) (int64, error) {
	sql, args, err := r.sb.Update("exams").
		SetMap(map[string]interface{}{
			"date":  exam.Date,
			"score": exam.Score,
		}).
		Where(squirrel.Eq{"user_id": exam.UserID, "course_code": exam.Code}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update exam SQL")
		return 0, fmt.Errorf("failed to build update exam query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrExamNotFound
		}
		logger.Error().Err(err).Str("code", exam.Code).Int64("userID", exam.UserID).Msg("Error executing update exam query")
		return 0, fmt.Errorf("error updating exam: %w", err)
	}

	return id, nil
}

// DeleteExam removes the exam identified by (userID, code)
func (r *ExamRepository) DeleteExam(ctx context.Context, userID int64, code string) error {
	sql, args, err := r.sb.Delete("exams").
		Where(squirrel.Eq{"user_id": userID, "course_code": code}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete exam SQL")
		return fmt.Errorf("failed to build delete exam query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("code", code).Int64("userID", userID).Msg("Error executing delete exam query")
		return fmt.Errorf("error deleting exam: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}

	return nil
}
