package quiz_report_handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/IT-Nick/teachassist/internal/infra/logger"
)

const quizBody = `{
	"quiz": {"title": "Fractions", "questions": [
		{"text": "1/2 + 1/2 = ?", "type": "multiple_choice", "options": [{"text": "1", "isCorrect": true}, {"text": "2"}]},
		{"text": "Explain", "type": "paragraph"}
	]},
	"answers": {"0": 0},
	"student_name": "Ann Lee",
	"time_taken": 95
}`

func TestQuizReport(t *testing.T) {
	h := NewQuizReportHandler(logger.NewNop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reports/quiz", strings.NewReader(quizBody)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %s", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "quiz_report_Ann_Lee.pdf") {
		t.Errorf("disposition = %s", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Errorf("body is not a PDF")
	}
}

func TestQuizReportBadRequest(t *testing.T) {
	h := NewQuizReportHandler(logger.NewNop())

	for _, body := range []string{`{`, `{"quiz":{"questions":[]}}`, `{}`} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reports/quiz", strings.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", body, rec.Code)
		}
	}
}
