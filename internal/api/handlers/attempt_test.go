package handlers

import (
	"testing"

	"sopquiz/internal/models"
)

func questionsFixture() []models.Question {
	return []models.Question{
		{Question: "Q1", Options: []string{"a", "b"}, CorrectAnswer: 0},
		{Question: "Q2", Options: []string{"a", "b", "c"}, CorrectAnswer: 2},
		{Question: "Q3", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1},
	}
}

func TestGradeAnswers(t *testing.T) {
	cases := []struct {
		name    string
		answers []int
		want    int
	}{
		{"all correct", []int{0, 2, 1}, 100},
		{"all wrong", []int{1, 0, 0}, 0},
		{"partial rounds down", []int{0, 0, 0}, 33},
		{"two of three", []int{0, 2, 0}, 66},
		{"unanswered counts wrong", []int{0, -1, -1}, 33},
	}
	for _, tc := range cases {
		if got := gradeAnswers(questionsFixture(), tc.answers); got != tc.want {
			t.Fatalf("%s: score = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestGradeAnswersEmptyQuiz(t *testing.T) {
	if got := gradeAnswers(nil, nil); got != 0 {
		t.Fatalf("score = %d, want 0", got)
	}
}

func TestResolveFormat(t *testing.T) {
	cases := []struct {
		contentType string
		filename    string
		want        string
	}{
		{"application/pdf", "doc.bin", "pdf"},
		{"application/pdf; charset=binary", "doc.bin", "pdf"},
		{"application/octet-stream", "handbook.docx", "docx"},
		{"", "audit.xlsx", "xlsx"},
		{"text/plain; charset=utf-8", "notes", "txt"},
	}
	for _, tc := range cases {
		format, err := resolveFormat(tc.contentType, tc.filename)
		if err != nil {
			t.Fatalf("resolveFormat(%q, %q): %v", tc.contentType, tc.filename, err)
		}
		if string(format) != tc.want {
			t.Fatalf("resolveFormat(%q, %q) = %q, want %q", tc.contentType, tc.filename, format, tc.want)
		}
	}

	if _, err := resolveFormat("image/png", "scan.png"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestParsePassingScore(t *testing.T) {
	if got, err := parsePassingScore(""); err != nil || got != DefaultPassingScore {
		t.Fatalf("parsePassingScore(\"\") = %d, %v; want %d, nil", got, err, DefaultPassingScore)
	}
	if got, err := parsePassingScore(" 85 "); err != nil || got != 85 {
		t.Fatalf("parsePassingScore(85) = %d, %v", got, err)
	}
	for _, bad := range []string{"abc", "-1", "101"} {
		if _, err := parsePassingScore(bad); err == nil {
			t.Fatalf("parsePassingScore(%q): expected error", bad)
		}
	}
}
