package controllers_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lpavone/examtrack/internal/app/controllers"
	"github.com/lpavone/examtrack/internal/app/models"
	"github.com/lpavone/examtrack/internal/app/routes"
	"github.com/lpavone/examtrack/internal/app/services"
	"github.com/lpavone/examtrack/internal/middleware"
	"github.com/lpavone/examtrack/internal/pkg/apperrors"
	"github.com/lpavone/examtrack/internal/pkg/auth"
	"github.com/lpavone/examtrack/internal/pkg/session"
)

// In-memory storage collaborators backing the full HTTP stack under test.

type memCourseStore struct {
	courses []*models.Course
}

func (s *memCourseStore) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courses, nil
}

func (s *memCourseStore) GetCourseByCode(ctx context.Context, code string) (*models.Course, error) {
	for _, course := range s.courses {
		if course.Code == code {
			return course, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

type memExamStore struct {
	exams  map[int64]map[string]*models.Exam
	nextID int64
	fail   bool
}

func newMemExamStore() *memExamStore {
	return &memExamStore{exams: map[int64]map[string]*models.Exam{}}
}

func (s *memExamStore) ListExamsByUser(ctx context.Context, userID int64) ([]*models.Exam, error) {
	if s.fail {
		return nil, errors.New("connection refused")
	}
	out := []*models.Exam{}
	for _, exam := range s.exams[userID] {
		out = append(out, exam)
	}
	return out, nil
}

func (s *memExamStore) CreateExam(ctx context.Context, exam *models.Exam) error {
	if s.fail {
		return errors.New("connection refused")
	}
	if s.exams[exam.UserID] == nil {
		s.exams[exam.UserID] = map[string]*models.Exam{}
	}
	s.nextID++
	exam.ID = s.nextID
	s.exams[exam.UserID][exam.Code] = exam
	return nil
}

func (s *memExamStore) UpdateExam(ctx context.Context, exam *models.Exam) (int64, error) {
	if s.fail {
		return 0, errors.New("connection refused")
	}
	existing, ok := s.exams[exam.UserID][exam.Code]
	if !ok {
		return 0, apperrors.ErrExamNotFound
	}
	existing.Date = exam.Date
	existing.Score = exam.Score
	return existing.ID, nil
}

func (s *memExamStore) DeleteExam(ctx context.Context, userID int64, code string) error {
	if s.fail {
		return errors.New("connection refused")
	}
	if _, ok := s.exams[userID][code]; !ok {
		return apperrors.ErrExamNotFound
	}
	delete(s.exams[userID], code)
	return nil
}

type memUserStore struct {
	users []*models.User
}

func (s *memUserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *memUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// passwordHash caches the bcrypt hash shared by the demo users; hashing is
// expensive enough to be worth doing once per test binary.
var (
	passwordHashOnce sync.Once
	passwordHash     string
)

func demoPasswordHash(t *testing.T) string {
	t.Helper()
	passwordHashOnce.Do(func() {
		hash, err := auth.HashPassword("password")
		if err != nil {
			t.Fatalf("hashing demo password: %v", err)
		}
		passwordHash = hash
	})
	return passwordHash
}

// testAPI wires the real services, controllers, middleware and session
// store on top of in-memory storage.
type testAPI struct {
	router *gin.Engine
	exams  *memExamStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash := demoPasswordHash(t)
	users := &memUserStore{users: []*models.User{
		{ID: 1, Username: "john.doe", Name: "John Doe", Password: hash},
		{ID: 2, Username: "mario.rossi", Name: "Mario Rossi", Password: hash},
	}}
	courses := &memCourseStore{courses: []*models.Course{
		{Code: "01ABCDE", Name: "Web Applications I", Credits: 6},
		{Code: "04GSPOV", Name: "Software Engineering", Credits: 8},
	}}
	exams := newMemExamStore()

	sessions := session.NewStore(session.Config{Secret: "test-secret", MaxAge: 3600})

	authService := services.NewAuthService(users, zerolog.Nop())
	courseService := services.NewCourseService(courses)
	examService := services.NewExamService(exams)

	authMiddleware := middleware.NewAuthMiddleware(sessions, authService)

	router := gin.New()
	routes.SetupRouter(router,
		controllers.NewCourseController(courseService),
		controllers.NewExamController(examService),
		controllers.NewSessionController(authService, sessions, zerolog.Nop()),
		authMiddleware,
	)

	return &testAPI{router: router, exams: exams}
}

// do performs a request against the test router.
func (a *testAPI) do(method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// login authenticates the given user and returns the session cookies.
func (a *testAPI) login(t *testing.T, username, password string) []*http.Cookie {
	t.Helper()
	w := a.do(http.MethodPost, "/api/sessions",
		`{"username":"`+username+`","password":"`+password+`"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}
