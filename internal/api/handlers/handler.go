package handlers

import (
	"log"

	"sopquiz/internal/db"
	"sopquiz/internal/models"
	"sopquiz/internal/quizgen"
	"sopquiz/internal/r2"

	"github.com/gin-gonic/gin"
)

// Handler contains the API handlers dependencies
type Handler struct {
	DB        *db.DB
	R2        *r2.Client
	Generator *quizgen.Generator
}

// NewHandler creates a new Handler. r2Client may be nil, in which case
// document archiving is disabled.
func NewHandler(database *db.DB, r2Client *r2.Client, generator *quizgen.Generator) *Handler {
	return &Handler{
		DB:        database,
		R2:        r2Client,
		Generator: generator,
	}
}

// respondError logs an error and aborts the request with a JSON error body.
func (h *Handler) respondError(c *gin.Context, statusCode int, errorContext string, err error) {
	log.Printf("ERROR: %s: %v (Path: %s)", errorContext, err, c.Request.URL.Path)
	c.AbortWithStatusJSON(statusCode, models.ErrorResponse{Error: errorContext})
}
