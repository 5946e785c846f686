package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lpavone/examtrack/internal/app/models/dto"
	"github.com/lpavone/examtrack/internal/app/services"
	"github.com/lpavone/examtrack/internal/middleware"
	"github.com/lpavone/examtrack/internal/pkg/session"
)

// SessionController handles login, logout and session introspection
type SessionController struct {
	authService services.AuthService
	sessions    *session.Store
	logger      zerolog.Logger
}

// NewSessionController creates a new SessionController
func NewSessionController(authService services.AuthService, sessions *session.Store, logger zerolog.Logger) *SessionController {
	return &SessionController{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// Login verifies the credential pair, establishes a session and returns the
// full user record
func (c *SessionController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity,
			dto.NewValidationErrorResponse(dto.FieldErrorsFromBinding(err)))
		return
	}

	user, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.sessions.Establish(ctx, user.ID); err != nil {
		c.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to establish session")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse("internal server error"))
		return
	}

	c.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User logged in")
	ctx.JSON(http.StatusOK, user)
}

// Logout destroys the current session. Logging out without a session is not
// an error.
func (c *SessionController) Logout(ctx *gin.Context) {
	if err := c.sessions.End(ctx); err != nil {
		c.logger.Error().Err(err).Msg("Failed to end session")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse("internal server error"))
		return
	}

	ctx.Status(http.StatusOK)
}

// GetCurrentSession reports whether the caller is logged in, returning the
// principal's record when it is
func (c *SessionController) GetCurrentSession(ctx *gin.Context) {
	userID, err := c.sessions.CurrentUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthenticated user!"))
		return
	}

	user, err := c.authService.GetUserByID(ctx.Request.Context(), userID)
	if err != nil {
		// A session naming a vanished principal counts as no session.
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthenticated user!"))
		return
	}

	ctx.JSON(http.StatusOK, user)
}
