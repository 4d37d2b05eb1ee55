package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/IT-Nick/teachassist/internal/domain/model"
)

func TestWritePDFReport(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDFReport(&buf, ReportData{
		QuizTitle:   "Fractions",
		StudentName: "Zoë",
		Team:        "Team A",
		Score:       1,
		MaxScore:    2,
		TimeTaken:   754,
		Questions: []model.Question{
			{Text: "1/2 + 1/2?", Type: model.QuestionMultipleChoice, Options: []model.Option{{Text: "1", IsCorrect: true}, {Text: "2"}}},
			{Text: "Is 3/3 one?", Type: model.QuestionTrueFalse, Options: []model.Option{{Text: "True", IsCorrect: true}, {Text: "False"}}},
			{Text: "Explain.", Type: model.QuestionParagraph},
		},
		Answers:     map[int]int{0: 0, 1: 7},
		GeneratedAt: time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[int]string{0: "00:00", 59: "00:59", 754: "12:34", -5: "00:00"}
	for in, want := range tests {
		if got := FormatDuration(in); got != want {
			t.Errorf("FormatDuration(%d) = %s, want %s", in, got, want)
		}
	}
}

func TestFilename(t *testing.T) {
	tests := map[string]string{
		"Ann Lee": "quiz_report_Ann_Lee.pdf",
		"  ":      "quiz_report.pdf",
		"a/../b":  "quiz_report_a_b.pdf",
		"Zoë-2":   "quiz_report_Zo_-2.pdf",
	}
	for in, want := range tests {
		if got := Filename(in); got != want {
			t.Errorf("Filename(%q) = %s, want %s", in, got, want)
		}
	}
}
