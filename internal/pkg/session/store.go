// Package session provides the cookie-backed session store used by the
// authentication gate. A session never holds more than the principal's id.
package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/lpavone/examtrack/internal/pkg/apperrors"
)

const (
	// SessionName is the cookie name under which the session travels.
	SessionName = "examtrack_session"

	userIDKey = "userID"
)

// Store wraps a gorilla CookieStore and scopes it to the single session
// cookie this application uses.
type Store struct {
	cookies *sessions.CookieStore
}

// Config holds session store configuration.
type Config struct {
	// Secret signs the session cookie.
	Secret string
	// MaxAge is the session lifetime in seconds.
	MaxAge int
	// Secure marks the cookie as HTTPS-only.
	Secure bool
}

// NewStore creates a cookie session store.
func NewStore(cfg Config) *Store {
	cs := sessions.NewCookieStore([]byte(cfg.Secret))
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	// MaxAge must also reach the securecookie codecs so a replayed cookie
	// stops validating server-side once the lifetime has passed.
	cs.MaxAge(cfg.MaxAge)
	return &Store{cookies: cs}
}

// Establish creates a session for the given principal id and writes the
// session cookie to the response.
func (s *Store) Establish(c *gin.Context, userID int64) error {
	sess, _ := s.cookies.Get(c.Request, SessionName)
	sess.Values[userIDKey] = userID
	return sess.Save(c.Request, c.Writer)
}

// CurrentUserID resolves the request's session back to a principal id.
// A missing, expired or undecodable session yields ErrUnauthenticated.
func (s *Store) CurrentUserID(c *gin.Context) (int64, error) {
	sess, err := s.cookies.Get(c.Request, SessionName)
	if err != nil {
		// Undecodable cookies (rotated secret, tampering) count as no session.
		return 0, apperrors.ErrUnauthenticated
	}
	userID, ok := sess.Values[userIDKey].(int64)
	if !ok {
		return 0, apperrors.ErrUnauthenticated
	}
	return userID, nil
}

// End destroys the request's session. Ending a session that does not exist
// is not an error.
func (s *Store) End(c *gin.Context) error {
	sess, err := s.cookies.Get(c.Request, SessionName)
	if err != nil {
		return nil
	}
	delete(sess.Values, userIDKey)
	sess.Options.MaxAge = -1
	return sess.Save(c.Request, c.Writer)
}
