package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lpavone/examtrack/internal/app/controllers"
	"github.com/lpavone/examtrack/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	examController *controllers.ExamController,
	sessionController *controllers.SessionController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public course catalog routes ---
	courses := api.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.GET("/:code", courseController.GetCourse)
	}

	// --- Exam routes, all behind the session gate ---
	exams := api.Group("/exams")
	exams.Use(authMiddleware.RequireSession())
	{
		exams.GET("", examController.ListExams)
		exams.POST("", examController.CreateExam)
		exams.PUT("", examController.UpdateExam)
		exams.DELETE("/:code", examController.DeleteExam)
	}

	// --- Session routes; these manage their own auth state ---
	sessions := api.Group("/sessions")
	{
		sessions.POST("", sessionController.Login)
		sessions.DELETE("/current", sessionController.Logout)
		sessions.GET("/current", sessionController.GetCurrentSession)
	}

	// Health check endpoint (public)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
