package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lpavone/examtrack/internal/app/models"
	"github.com/lpavone/examtrack/internal/app/models/dto"
	"github.com/lpavone/examtrack/internal/app/services"
	"github.com/lpavone/examtrack/internal/pkg/session"
)

// ContextUserKey is the gin context key under which the authenticated
// principal is stored.
const ContextUserKey = "currentUser"

// AuthMiddleware gates routes that require an authenticated principal
type AuthMiddleware struct {
	sessions    *session.Store
	authService services.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessions *session.Store, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:    sessions,
		authService: authService,
	}
}

// RequireSession rejects requests without a valid session with 401 and no
// further processing. On success the full principal record is placed in the
// request context.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := m.sessions.CurrentUserID(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("not authenticated"))
			return
		}

		// A session naming a principal that no longer exists is not a
		// valid session.
		user, err := m.authService.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("not authenticated"))
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser extracts the authenticated principal set by RequireSession.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
