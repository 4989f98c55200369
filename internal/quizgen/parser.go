package quizgen

import (
	"log"
	"regexp"
	"strings"

	"sopquiz/internal/models"
)

// The model's response is free text, not JSON: numbered questions followed by
// lettered options and an answer line. These patterns drive a small state
// machine over the lines.
var (
	// "Question 3: ..." style question header.
	questionLabelRe = regexp.MustCompile(`^Question\s*\d+:`)
	// "3. Capitalized question text" style question header.
	questionNumberRe = regexp.MustCompile(`^\d+\.\s*[A-Z]`)
	// "A) text", "B. text", "c: text", "D text" option lines. Ordering of
	// emitted options is strictly line order, not letter value.
	optionRe = regexp.MustCompile(`^(?i)[A-D][).:]?\s+(.+)`)
)

// parserState is the tagged state of the line parser.
type parserState int

const (
	// stateSeekingQuestion: no question open yet; only a question header
	// advances the parser.
	stateSeekingQuestion parserState = iota
	// stateCollectingQuestion: a question is open and accumulating option
	// and answer lines until the next header or end of input. Options and
	// the answer line interleave freely, so they share one state rather
	// than splitting into collect-options and await-answer.
	stateCollectingQuestion
)

// pendingQuestion accumulates one question while its lines are being read.
type pendingQuestion struct {
	text    string
	options []string
	answer  int
}

// ParseQuestions parses the model's free-text response into validated
// questions. Malformed items (missing prompt, fewer than two options, or an
// answer index outside the collected options) are dropped rather than emitted
// in violation of the Question contract.
func ParseQuestions(content string) []models.Question {
	var questions []models.Question
	var current *pendingQuestion
	state := stateSeekingQuestion

	flush := func() {
		if current == nil {
			return
		}
		q := models.Question{
			Question:      current.text,
			Options:       current.options,
			CorrectAnswer: current.answer,
		}
		if q.Valid() {
			questions = append(questions, q)
		} else {
			log.Printf("WARN: Dropping malformed question from model response: %q (%d options, answer %d)",
				q.Question, len(q.Options), q.CorrectAnswer)
		}
		current = nil
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case questionLabelRe.MatchString(line) || questionNumberRe.MatchString(line):
			flush()
			current = &pendingQuestion{text: questionText(line)}
			state = stateCollectingQuestion

		case state == stateCollectingQuestion && optionRe.MatchString(line):
			m := optionRe.FindStringSubmatch(line)
			current.options = append(current.options, strings.TrimSpace(m[1]))

		case state == stateCollectingQuestion && isAnswerLine(line):
			current.answer = answerIndex(line)
		}
	}
	flush()

	return questions
}

// questionText strips the question header ("Question <n>:" or "<n>.") from a
// header line, leaving the prompt itself.
func questionText(line string) string {
	if questionLabelRe.MatchString(line) {
		return strings.TrimSpace(line[strings.Index(line, ":")+1:])
	}
	return strings.TrimSpace(line[strings.Index(line, ".")+1:])
}

func isAnswerLine(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "correct answer:") || strings.Contains(lower, "answer:")
}

// answerIndex maps an answer line to a zero-based option index. If the text
// after the colon starts with a letter A-D (case-insensitive) that letter
// wins; otherwise the first occurrence of A, B, C, or D in the remainder is
// used, defaulting to 0 when none is found.
func answerIndex(line string) int {
	rest := strings.TrimSpace(line[strings.Index(line, ":")+1:])
	if rest != "" {
		first := rest[0]
		if first >= 'A' && first <= 'D' {
			return int(first - 'A')
		}
		if first >= 'a' && first <= 'd' {
			return int(first - 'a')
		}
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] >= 'A' && rest[i] <= 'D' {
			return int(rest[i] - 'A')
		}
	}
	return 0
}
