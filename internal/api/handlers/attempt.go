package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"sopquiz/internal/db"
	"sopquiz/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SubmitAttemptRequest is the body for grading a candidate's answers.
// Answers holds one selected option index per question, in quiz order; -1
// marks a question left unanswered.
type SubmitAttemptRequest struct {
	CandidateName string `json:"candidate_name" binding:"required"`
	Answers       []int  `json:"answers" binding:"required"`
}

// SubmitAttemptResponse returns the graded attempt together with the
// per-question correct indices so the frontend can show a review screen.
type SubmitAttemptResponse struct {
	Attempt        models.Attempt `json:"attempt"`
	CorrectAnswers []int          `json:"correct_answers"`
}

// HandleSubmitAttempt grades a candidate's answers against the stored quiz
// and records the result.
func (h *Handler) HandleSubmitAttempt(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. Resolve the quiz
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

	// 2. Bind and validate the submission
	var req SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Request body must include candidate_name and answers", err)
		return
	}
	if strings.TrimSpace(req.CandidateName) == "" {
		h.respondError(c, http.StatusBadRequest, "candidate_name cannot be empty", errors.New("blank candidate name"))
		return
	}

	questions, err := h.DB.Queries.ListQuestionsByQuizID(ctx, quizID)
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to fetch quiz questions", err)
		return
	}
	if len(req.Answers) != len(questions) {
		h.respondError(c, http.StatusBadRequest,
			fmt.Sprintf("Expected %d answers, got %d", len(questions), len(req.Answers)),
			errors.New("answer count mismatch"))
		return
	}

	// 3. Grade
	score := gradeAnswers(questions, req.Answers)
	passed := score >= quiz.PassingScore

	// 4. Record the attempt
	answers := make([]int32, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = int32(a)
	}
	attempt, err := h.DB.Queries.CreateAttempt(ctx, db.CreateAttemptParams{
		QuizID:        quizID,
		CandidateName: strings.TrimSpace(req.CandidateName),
		Answers:       answers,
		Score:         int32(score),
		Passed:        passed,
	})
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to save attempt", err)
		return
	}

	log.Printf("INFO: Attempt %s recorded for quiz %s: score %d%%, passed=%t", attempt.ID, quizID, score, passed)

	correct := make([]int, len(questions))
	for i, q := range questions {
		correct[i] = q.CorrectAnswer
	}
	c.JSON(http.StatusCreated, SubmitAttemptResponse{Attempt: attempt, CorrectAnswers: correct})
}

// HandleListAttempts returns a quiz's recorded attempts, newest first.
func (h *Handler) HandleListAttempts(c *gin.Context) {
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

	attempts, err := h.DB.Queries.ListAttemptsByQuizID(ctx, quizID)
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to list attempts", err)
		return
	}
	if attempts == nil {
		attempts = []models.Attempt{}
	}
	c.JSON(http.StatusOK, gin.H{"attempts": attempts, "total": len(attempts)})
}

// gradeAnswers computes the percentage score, rounded down. An empty quiz
// grades to 0.
func gradeAnswers(questions []models.Question, answers []int) int {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	return correct * 100 / len(questions)
}
