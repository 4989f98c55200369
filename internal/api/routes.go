package api

import (
	"github.com/gin-gonic/gin"

	"sopquiz/internal/api/handlers"
)

// SetupRoutes sets up the API routes
func SetupRoutes(router *gin.Engine, handler *handlers.Handler) {
	// Apply CORS middleware
	router.Use(CORSMiddleware())

	api := router.Group("/api")
	{
		// --- Quiz Routes ---
		api.POST("/quizzes/generate", handler.HandleGenerateQuiz)          // Generate quiz from an uploaded SOP document
		api.POST("/quizzes/generate-text", handler.HandleGenerateFromText) // Generate quiz from pasted text (extraction recovery path)
		api.GET("/quizzes", handler.HandleListQuizzes)                     // List stored quizzes
		api.GET("/quizzes/:quizId", handler.HandleGetQuiz)                 // Get a specific quiz by ID
		api.DELETE("/quizzes/:quizId", handler.HandleDeleteQuiz)           // Delete a specific quiz

		// --- Attempt Routes ---
		api.POST("/quizzes/:quizId/attempts", handler.HandleSubmitAttempt) // Submit answers for grading
		api.GET("/quizzes/:quizId/attempts", handler.HandleListAttempts)   // List graded attempts for a quiz
	}
}
