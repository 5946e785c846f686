package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lpavone/examtrack/internal/pkg/apperrors"
)

func newTestStore() *Store {
	return NewStore(Config{Secret: "test-secret", MaxAge: 3600})
}

func newTestContext(w *httptest.ResponseRecorder, cookies []*http.Cookie) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	c.Request = req
	return c
}

func TestEstablishAndResolveSession(t *testing.T) {
	store := newTestStore()

	w := httptest.NewRecorder()
	c := newTestContext(w, nil)
	require.NoError(t, store.Establish(c, 42))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, SessionName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	c2 := newTestContext(httptest.NewRecorder(), cookies)
	userID, err := store.CurrentUserID(c2)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestCurrentUserIDWithoutSession(t *testing.T) {
	store := newTestStore()

	c := newTestContext(httptest.NewRecorder(), nil)
	_, err := store.CurrentUserID(c)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestCurrentUserIDWithTamperedCookie(t *testing.T) {
	store := newTestStore()

	c := newTestContext(httptest.NewRecorder(), []*http.Cookie{
		{Name: SessionName, Value: "garbage"},
	})
	_, err := store.CurrentUserID(c)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestExpiredSessionCookieDoesNotResolve(t *testing.T) {
	store := NewStore(Config{Secret: "test-secret", MaxAge: 1})

	w := httptest.NewRecorder()
	require.NoError(t, store.Establish(newTestContext(w, nil), 42))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// The cookie still decodes within its lifetime.
	_, err := store.CurrentUserID(newTestContext(httptest.NewRecorder(), cookies))
	require.NoError(t, err)

	// Past the lifetime, replaying the same cookie must not resolve even
	// though the client never discarded it.
	time.Sleep(2 * time.Second)
	_, err = store.CurrentUserID(newTestContext(httptest.NewRecorder(), cookies))
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestEndSessionIsIdempotent(t *testing.T) {
	store := newTestStore()

	// Ending a session that never existed is not an error.
	c := newTestContext(httptest.NewRecorder(), nil)
	require.NoError(t, store.End(c))
	require.NoError(t, store.End(c))

	// Ending an established session expires the cookie.
	w := httptest.NewRecorder()
	require.NoError(t, store.Establish(newTestContext(w, nil), 42))

	w2 := httptest.NewRecorder()
	c2 := newTestContext(w2, w.Result().Cookies())
	require.NoError(t, store.End(c2))

	cookies := w2.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Negative(t, cookies[0].MaxAge)
}
