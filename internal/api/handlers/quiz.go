package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"sopquiz/internal/db"
	"sopquiz/internal/extract"
	"sopquiz/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DefaultPassingScore is the pass threshold (percent) applied when the
// request does not specify one.
const DefaultPassingScore = 70

// GenerateQuizResponse is the payload returned after a successful generation.
type GenerateQuizResponse struct {
	Quiz    models.Quiz `json:"quiz"`
	Warning string      `json:"warning,omitempty"`
}

// fallbackWarning is shown to the user when the served questions are the
// built-in generic set rather than content derived from their document.
const fallbackWarning = "Question generation was unavailable; a generic question set was saved instead. Review the quiz before assigning it."

// HandleGenerateQuiz handles the request to generate a quiz from an uploaded
// SOP document.
func (h *Handler) HandleGenerateQuiz(c *gin.Context) {
	startTime := time.Now()
	ctx := c.Request.Context()

	// 1. Get the uploaded file
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "A document file is required (multipart field \"file\")", err)
		return
	}
	log.Printf("INFO: Handling quiz generation for file: %s (Size: %d)", fileHeader.Filename, fileHeader.Size)

	if fileHeader.Size > extract.MaxFileSize {
		h.respondError(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File exceeds the %d MiB upload limit", extract.MaxFileSize>>20),
			fmt.Errorf("file size %d bytes", fileHeader.Size))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to read uploaded file", err)
		return
	}

	// 2. Resolve the document format. The declared Content-Type wins; fall
	// back to the filename extension when the part has no usable type.
	format, err := resolveFormat(fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		h.respondError(c, http.StatusUnsupportedMediaType,
			"Unsupported document format. Supported formats: PDF, DOCX, XLSX, plain text", err)
		return
	}

	// 3. Extract text from the document
	text, err := extract.Text(data, format)
	if err != nil {
		if errors.Is(err, extract.ErrNoTextContent) {
			h.respondError(c, http.StatusUnprocessableEntity,
				"No text content could be extracted from the document. Paste the text manually via /api/quizzes/generate-text", err)
			return
		}
		var extractErr *extract.ExtractionError
		if errors.As(err, &extractErr) {
			h.respondError(c, http.StatusUnprocessableEntity,
				"The document could not be read. Paste the text manually via /api/quizzes/generate-text", err)
			return
		}
		h.respondError(c, http.StatusInternalServerError, "Failed to extract document text", err)
		return
	}
	log.Printf("INFO: Extracted %d characters from %s", len(text), fileHeader.Filename)

	// 4. Generate questions (never fails; may serve fallback content)
	result := h.Generator.Generate(ctx, text)

	// 5. Persist quiz and questions in a single transaction
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		title = fileHeader.Filename
	}
	passingScore, err := parsePassingScore(c.PostForm("passing_score"))
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "passing_score must be an integer between 0 and 100", err)
		return
	}

	quiz, err := h.persistQuiz(ctx, title, fileHeader.Filename, passingScore, result)
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to save quiz", err)
		return
	}

	// 6. Archive the source document to R2, best effort. A failed upload
	// never fails the request; the quiz is already saved.
	if h.R2 != nil {
		if sourceURL, upErr := h.R2.UploadDocument(ctx, quiz.ID, fileHeader.Filename, bytes.NewReader(data)); upErr != nil {
			log.Printf("WARN: Failed to archive source document for quiz %s: %v", quiz.ID, upErr)
		} else {
			quiz.SourceURL = sourceURL
			if dbErr := h.DB.Queries.UpdateQuizSourceURL(ctx, quiz.ID, sourceURL); dbErr != nil {
				log.Printf("WARN: Failed to record source URL for quiz %s: %v", quiz.ID, dbErr)
			}
		}
	}

	log.Printf("INFO: Quiz %s created with %d questions in %s (fallback: %t)",
		quiz.ID, len(quiz.Questions), time.Since(startTime), quiz.IsFallback)

	resp := GenerateQuizResponse{Quiz: quiz}
	if result.IsFallback {
		resp.Warning = fallbackWarning
	}
	c.JSON(http.StatusCreated, resp)
}

// GenerateFromTextRequest is the body for the manual-paste recovery path.
type GenerateFromTextRequest struct {
	Title        string `json:"title"`
	Text         string `json:"text" binding:"required"`
	PassingScore *int   `json:"passing_score"`
}

// HandleGenerateFromText generates a quiz from pasted text. This is the
// recovery path for documents the extractors cannot read.
func (h *Handler) HandleGenerateFromText(c *gin.Context) {
	ctx := c.Request.Context()

	var req GenerateFromTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Request body must include non-empty \"text\"", err)
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		h.respondError(c, http.StatusUnprocessableEntity, "Pasted text is empty", errors.New("no text content"))
		return
	}

	passingScore := DefaultPassingScore
	if req.PassingScore != nil {
		passingScore = *req.PassingScore
		if passingScore < 0 || passingScore > 100 {
			h.respondError(c, http.StatusBadRequest, "passing_score must be an integer between 0 and 100",
				fmt.Errorf("passing_score %d out of range", passingScore))
			return
		}
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Pasted document"
	}

	result := h.Generator.Generate(ctx, text)

	quiz, err := h.persistQuiz(ctx, title, "", passingScore, result)
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to save quiz", err)
		return
	}

	log.Printf("INFO: Quiz %s created from pasted text with %d questions (fallback: %t)",
		quiz.ID, len(quiz.Questions), quiz.IsFallback)

	resp := GenerateQuizResponse{Quiz: quiz}
	if result.IsFallback {
		resp.Warning = fallbackWarning
	}
	c.JSON(http.StatusCreated, resp)
}

// HandleGetQuiz returns a quiz and its questions by ID.
func (h *Handler) HandleGetQuiz(c *gin.Context) {
	ctx := c.Request.Context()

	quizID, err := uuid.Parse(c.Param("quizId"))
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid quiz ID", err)
		return
	}

	quiz, err := h.DB.Queries.GetQuizByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			h.respondError(c, http.StatusNotFound, "Quiz not found", err)
			return
		}
		h.respondError(c, http.StatusInternalServerError, "Failed to fetch quiz", err)
		return
	}

	questions, err := h.DB.Queries.ListQuestionsByQuizID(ctx, quizID)
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to fetch quiz questions", err)
		return
	}
	quiz.Questions = questions

	c.JSON(http.StatusOK, quiz)
}

// HandleListQuizzes returns all stored quizzes, newest first, without
// question bodies.
func (h *Handler) HandleListQuizzes(c *gin.Context) {
	quizzes, err := h.DB.Queries.ListQuizzes(c.Request.Context())
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to list quizzes", err)
		return
	}
	if quizzes == nil {
		quizzes = []models.Quiz{}
	}
	c.JSON(http.StatusOK, models.QuizListResponse{Quizzes: quizzes, Total: len(quizzes)})
}

// HandleDeleteQuiz deletes a quiz; its questions and attempts cascade.
func (h *Handler) HandleDeleteQuiz(c *gin.Context) {
	ctx := c.Request.Context()

	quizID, err := uuid.Parse(c.Param("quizId"))
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid quiz ID", err)
		return
	}

	if _, err := h.DB.Queries.GetQuizByID(ctx, quizID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			h.respondError(c, http.StatusNotFound, "Quiz not found", err)
			return
		}
		h.respondError(c, http.StatusInternalServerError, "Failed to fetch quiz", err)
		return
	}

	if err := h.DB.Queries.DeleteQuiz(ctx, quizID); err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to delete quiz", err)
		return
	}

	log.Printf("INFO: Deleted quiz %s", quizID)
	c.Status(http.StatusNoContent)
}

// persistQuiz saves the quiz record and its questions atomically and returns
// the stored quiz with questions attached.
func (h *Handler) persistQuiz(ctx context.Context, title, sourceFilename string, passingScore int, result *models.GenerationResult) (models.Quiz, error) {
	tx, err := h.DB.Pool.Begin(ctx)
	if err != nil {
		return models.Quiz{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := h.DB.Queries.WithTx(tx)

	quiz, err := qtx.CreateQuiz(ctx, db.CreateQuizParams{
		Title:          title,
		SourceFilename: sourceFilename,
		IsFallback:     result.IsFallback,
		PassingScore:   int32(passingScore),
	})
	if err != nil {
		return models.Quiz{}, fmt.Errorf("failed to create quiz: %w", err)
	}

	for i, question := range result.Questions {
		err := qtx.CreateQuestion(ctx, db.CreateQuestionParams{
			QuizID:        quiz.ID,
			Position:      int32(i),
			Question:      question.Question,
			Options:       question.Options,
			CorrectAnswer: int32(question.CorrectAnswer),
		})
		if err != nil {
			return models.Quiz{}, fmt.Errorf("failed to create question %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Quiz{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	quiz.Questions = result.Questions
	return quiz, nil
}

// resolveFormat picks the document format from the declared Content-Type,
// falling back to the filename extension. Browsers frequently send generic
// types like application/octet-stream for Office documents.
func resolveFormat(contentType, filename string) (extract.Format, error) {
	if contentType != "" {
		mediaType := contentType
		if idx := strings.Index(mediaType, ";"); idx >= 0 {
			mediaType = mediaType[:idx]
		}
		if format, err := extract.ParseFormat(mediaType); err == nil {
			return format, nil
		}
	}
	return extract.FormatForFilename(filename)
}

// parsePassingScore validates an optional form value, defaulting to
// DefaultPassingScore when absent.
func parsePassingScore(value string) (int, error) {
	if strings.TrimSpace(value) == "" {
		return DefaultPassingScore, nil
	}
	score, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	if score < 0 || score > 100 {
		return 0, fmt.Errorf("passing_score %d out of range", score)
	}
	return score, nil
}
