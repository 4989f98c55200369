package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"sopquiz/internal/models"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the same
// queries run inside and outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries bundles all database operations.
type Queries struct {
	db DBTX
}

// New creates a Queries instance over a pool or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries bound to the given transaction.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// CreateQuizParams holds the fields for a new quiz record.
type CreateQuizParams struct {
	Title          string
	SourceFilename string
	SourceURL      string
	IsFallback     bool
	PassingScore   int32
}

const createQuiz = `
INSERT INTO quizzes (id, title, source_filename, source_url, is_fallback, passing_score)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, title, source_filename, source_url, is_fallback, passing_score, created_at
`

// CreateQuiz inserts a new quiz record and returns it.
func (q *Queries) CreateQuiz(ctx context.Context, params CreateQuizParams) (models.Quiz, error) {
	var quiz models.Quiz
	err := q.db.QueryRow(ctx, createQuiz,
		uuid.New(), params.Title, params.SourceFilename, params.SourceURL,
		params.IsFallback, params.PassingScore,
	).Scan(&quiz.ID, &quiz.Title, &quiz.SourceFilename, &quiz.SourceURL,
		&quiz.IsFallback, &quiz.PassingScore, &quiz.CreatedAt)
	return quiz, err
}

// CreateQuestionParams holds the fields for a new question record.
type CreateQuestionParams struct {
	QuizID        uuid.UUID
	Position      int32
	Question      string
	Options       []string
	CorrectAnswer int32
}

const createQuestion = `
INSERT INTO questions (id, quiz_id, position, question, options, correct_answer)
VALUES ($1, $2, $3, $4, $5, $6)
`

// CreateQuestion inserts a question belonging to a quiz.
func (q *Queries) CreateQuestion(ctx context.Context, params CreateQuestionParams) error {
	_, err := q.db.Exec(ctx, createQuestion,
		uuid.New(), params.QuizID, params.Position, params.Question,
		params.Options, params.CorrectAnswer)
	return err
}

const getQuizByID = `
SELECT id, title, source_filename, source_url, is_fallback, passing_score, created_at
FROM quizzes
WHERE id = $1
`

// GetQuizByID returns a quiz without its questions. pgx.ErrNoRows is
// returned when the quiz does not exist.
func (q *Queries) GetQuizByID(ctx context.Context, id uuid.UUID) (models.Quiz, error) {
	var quiz models.Quiz
	err := q.db.QueryRow(ctx, getQuizByID, id).Scan(
		&quiz.ID, &quiz.Title, &quiz.SourceFilename, &quiz.SourceURL,
		&quiz.IsFallback, &quiz.PassingScore, &quiz.CreatedAt)
	return quiz, err
}

const listQuestionsByQuizID = `
SELECT question, options, correct_answer
FROM questions
WHERE quiz_id = $1
ORDER BY position
`

// ListQuestionsByQuizID returns a quiz's questions in authored order.
func (q *Queries) ListQuestionsByQuizID(ctx context.Context, quizID uuid.UUID) ([]models.Question, error) {
	rows, err := q.db.Query(ctx, listQuestionsByQuizID, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var question models.Question
		var correct int32
		if err := rows.Scan(&question.Question, &question.Options, &correct); err != nil {
			return nil, err
		}
		question.CorrectAnswer = int(correct)
		questions = append(questions, question)
	}
	return questions, rows.Err()
}

const listQuizzes = `
SELECT id, title, source_filename, source_url, is_fallback, passing_score, created_at
FROM quizzes
ORDER BY created_at DESC
`

// ListQuizzes returns all quizzes, newest first, without questions.
func (q *Queries) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	rows, err := q.db.Query(ctx, listQuizzes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []models.Quiz
	for rows.Next() {
		var quiz models.Quiz
		if err := rows.Scan(&quiz.ID, &quiz.Title, &quiz.SourceFilename, &quiz.SourceURL,
			&quiz.IsFallback, &quiz.PassingScore, &quiz.CreatedAt); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, rows.Err()
}

const updateQuizSourceURL = `
UPDATE quizzes
SET source_url = $2
WHERE id = $1
`

// UpdateQuizSourceURL records the archive URL of the quiz's source document.
func (q *Queries) UpdateQuizSourceURL(ctx context.Context, id uuid.UUID, sourceURL string) error {
	_, err := q.db.Exec(ctx, updateQuizSourceURL, id, sourceURL)
	return err
}

const deleteQuiz = `
DELETE FROM quizzes
WHERE id = $1
`

// DeleteQuiz removes a quiz; questions and attempts cascade.
func (q *Queries) DeleteQuiz(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteQuiz, id)
	return err
}

// CreateAttemptParams holds the fields for a graded attempt record.
type CreateAttemptParams struct {
	QuizID        uuid.UUID
	CandidateName string
	Answers       []int32
	Score         int32
	Passed        bool
}

const createAttempt = `
INSERT INTO attempts (id, quiz_id, candidate_name, answers, score, passed)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, quiz_id, candidate_name, score, passed, created_at
`

// CreateAttempt records a candidate's graded submission.
func (q *Queries) CreateAttempt(ctx context.Context, params CreateAttemptParams) (models.Attempt, error) {
	var attempt models.Attempt
	err := q.db.QueryRow(ctx, createAttempt,
		uuid.New(), params.QuizID, params.CandidateName, params.Answers,
		params.Score, params.Passed,
	).Scan(&attempt.ID, &attempt.QuizID, &attempt.CandidateName,
		&attempt.Score, &attempt.Passed, &attempt.CreatedAt)
	if err != nil {
		return attempt, err
	}
	attempt.Answers = make([]int, len(params.Answers))
	for i, a := range params.Answers {
		attempt.Answers[i] = int(a)
	}
	return attempt, nil
}

const listAttemptsByQuizID = `
SELECT id, quiz_id, candidate_name, answers, score, passed, created_at
FROM attempts
WHERE quiz_id = $1
ORDER BY created_at DESC
`

// ListAttemptsByQuizID returns a quiz's attempts, newest first.
func (q *Queries) ListAttemptsByQuizID(ctx context.Context, quizID uuid.UUID) ([]models.Attempt, error) {
	rows, err := q.db.Query(ctx, listAttemptsByQuizID, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var attempt models.Attempt
		var answers []int32
		if err := rows.Scan(&attempt.ID, &attempt.QuizID, &attempt.CandidateName,
			&answers, &attempt.Score, &attempt.Passed, &attempt.CreatedAt); err != nil {
			return nil, err
		}
		attempt.Answers = make([]int, len(answers))
		for i, a := range answers {
			attempt.Answers[i] = int(a)
		}
		attempts = append(attempts, attempt)
	}
	return attempts, rows.Err()
}
