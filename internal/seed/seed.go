package seed

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/lpavone/examtrack/internal/app/models"
	"github.com/lpavone/examtrack/internal/db"
	"github.com/lpavone/examtrack/internal/pkg/auth"
)

// defaultCourses is the reference course catalog. Codes follow the
// two-digits-five-letters shape.
var defaultCourses = []models.Course{
	{Code: "01ABCDE", Name: "Web Applications I", Credits: 6},
	{Code: "01NYHOV", Name: "System and Device Programming", Credits: 6},
	{Code: "01OTWOV", Name: "Computer Network Technologies and Services", Credits: 6},
	{Code: "01SQJOV", Name: "Data Science and Database Technology", Credits: 8},
	{Code: "01TYMOV", Name: "Information Systems Security", Credits: 6},
	{Code: "02LSEOV", Name: "Computer Architectures", Credits: 10},
	{Code: "04GSPOV", Name: "Software Engineering", Credits: 8},
}

// defaultUsers are demo principals; passwords are bcrypt-hashed at seed time.
var defaultUsers = []struct {
	username string
	name     string
	password string
}{
	{username: "john.doe", name: "John Doe", password: "password"},
	{username: "mario.rossi", name: "Mario Rossi", password: "password"},
}

// CreateDefaultData inserts the course catalog and the demo users when they
// are not present yet. Runs inside a single transaction so a partially
// seeded database never occurs.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (courses/users)...")

	return db.WithTransaction(ctx, dbPool, func(ctx context.Context, tx pgx.Tx) error {
		for _, course := range defaultCourses {
			_, err := tx.Exec(ctx,
				`INSERT INTO courses (code, name, credits) VALUES ($1, $2, $3)
				 ON CONFLICT (code) DO NOTHING`,
				course.Code, course.Name, course.Credits)
			if err != nil {
				lgr.Error().Err(err).Str("code", course.Code).Msg("Error seeding course")
				return err
			}
		}

		for _, user := range defaultUsers {
			hash, err := auth.HashPassword(user.password)
			if err != nil {
				lgr.Error().Err(err).Str("username", user.username).Msg("Error hashing seed password")
				return err
			}

			_, err = tx.Exec(ctx,
				`INSERT INTO users (username, name, password) VALUES ($1, $2, $3)
				 ON CONFLICT (username) DO NOTHING`,
				user.username, user.name, hash)
			if err != nil {
				lgr.Error().Err(err).Str("username", user.username).Msg("Error seeding user")
				return err
			}
		}

		return nil
	})
}
