package router

import (
	"github.com/gin-gonic/gin"

	"quizgen/internal/handler"
	"quizgen/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	fileH *handler.FileHandler,
	questionH *handler.QuestionHandler,
	generateH *handler.GenerateHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// File routes
	files := v1.Group("/files")
	files.POST("/upload", fileH.Upload)
	files.GET("", fileH.List)
	files.GET("/:id", fileH.GetByID)
	files.DELETE("/:id", fileH.Delete)
	files.POST("/:id/extract", generateH.Extract)

	// Question bank routes
	questions := v1.Group("/questions")
	questions.POST("", questionH.Create)
	questions.GET("", questionH.List)
	questions.GET("/export", questionH.Export)
	questions.GET("/by-teacher/:teacherId", questionH.ListByTeacher)
	questions.GET("/:id", questionH.GetByID)
	questions.PUT("/:id", questionH.Update)
	questions.DELETE("/:id", questionH.Delete)

	// Teacher-scoped routes
	v1.DELETE("/teachers/:teacherId/questions", questionH.DeleteByTeacher)

	// Generation routes
	generate := v1.Group("/generate")
	generate.POST("/upload-and-generate", generateH.UploadAndGenerate)
	generate.POST("/from-file/:id", generateH.GenerateFromFile)
	generate.POST("/from-text", generateH.GenerateFromText)

	return r
}
