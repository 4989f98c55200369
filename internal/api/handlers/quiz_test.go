package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
)

// postDocument sends a multipart upload to HandleGenerateQuiz and returns the
// recorded response. The handler's format and extraction checks run before any
// generator or database access, so a zero-value Handler suffices for the
// rejection paths.
func postDocument(t *testing.T, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create multipart part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write part content: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := &Handler{}
	router.POST("/api/quizzes/generate", handler.HandleGenerateQuiz)

	req := httptest.NewRequest(http.MethodPost, "/api/quizzes/generate", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not a JSON error body: %v (%s)", err, rec.Body.String())
	}
	return body.Error
}

func TestHandleGenerateQuizUnsupportedFormat(t *testing.T) {
	rec := postDocument(t, "scan.png", "image/png", []byte{0x89, 'P', 'N', 'G'})

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnsupportedMediaType)
	}
	if msg := errorBody(t, rec); msg == "" {
		t.Fatalf("expected an error message in the response body")
	}
}

func TestHandleGenerateQuizNoTextContent(t *testing.T) {
	rec := postDocument(t, "notes.txt", "text/plain", []byte("   \n\t  \n"))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	// The message must point at the manual-paste recovery path.
	if msg := errorBody(t, rec); !bytes.Contains([]byte(msg), []byte("generate-text")) {
		t.Fatalf("error message does not mention the recovery path: %q", msg)
	}
}

func TestHandleGenerateQuizCorruptDocument(t *testing.T) {
	rec := postDocument(t, "handbook.docx",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		[]byte("this is not a zip archive"))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	if msg := errorBody(t, rec); !bytes.Contains([]byte(msg), []byte("generate-text")) {
		t.Fatalf("error message does not mention the recovery path: %q", msg)
	}
}

func TestHandleGenerateQuizMissingFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := &Handler{}
	router.POST("/api/quizzes/generate", handler.HandleGenerateQuiz)

	req := httptest.NewRequest(http.MethodPost, "/api/quizzes/generate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
