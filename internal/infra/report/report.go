package report

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/IT-Nick/teachassist/internal/domain/model"
	"github.com/jung-kurt/gofpdf"
)

// ReportData содержит данные для отчёта о прохождении квиза.
type ReportData struct {
	QuizTitle   string
	StudentName string
	Team        string
	Score       int
	MaxScore    int
	TimeTaken   int
	Questions   []model.Question
	Answers     map[int]int
	GeneratedAt time.Time
}

// WritePDFReport формирует PDF-отчёт и пишет его в w.
// Отчёт формируется в виде непрерывного текста с переносами (без таблицы).
func WritePDFReport(w io.Writer, r ReportData) error {
	const op = "report.WritePDFReport"

	pdf := gofpdf.New("P", "mm", "A4", "")
	// встроенный шрифт, символы вне cp1252 заменяются
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	title := r.QuizTitle
	if title == "" {
		title = "Quiz"
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 10, tr(title+" - Results"), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	var info strings.Builder
	fmt.Fprintf(&info, "Student: %s\n", r.StudentName)
	if r.Team != "" {
		fmt.Fprintf(&info, "Team: %s\n", r.Team)
	}
	fmt.Fprintf(&info, "Score: %d / %d\n", r.Score, r.MaxScore)
	fmt.Fprintf(&info, "Time: %s\n", FormatDuration(r.TimeTaken))
	if !r.GeneratedAt.IsZero() {
		fmt.Fprintf(&info, "Date: %s\n", r.GeneratedAt.Format("2006-01-02 15:04"))
	}
	pdf.MultiCell(0, 8, tr(info.String()), "", "L", false)
	pdf.Ln(4)

	for i, q := range r.Questions {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 8, fmt.Sprintf("Question %d:", i+1), "", "L", false)

		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 8, tr(q.Text), "", "L", false)
		pdf.Ln(2)

		if !q.Type.Scorable() {
			pdf.MultiCell(0, 8, "Open answer, not scored", "", "L", false)
			pdf.Ln(4)
			continue
		}

		answer := "-"
		if idx, ok := r.Answers[i]; ok && idx >= 0 && idx < len(q.Options) {
			answer = q.Options[idx].Text
		}
		correct := "-"
		if idx := q.CorrectOption(); idx >= 0 {
			correct = q.Options[idx].Text
		}
		pdf.MultiCell(0, 8, tr(fmt.Sprintf("Your answer: %s\nCorrect: %s\n", answer, correct)), "", "L", false)
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FormatDuration секунды в виде mm:ss
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Filename имя файла отчёта по имени ученика
func Filename(student string) string {
	name := strings.Trim(unsafeName.ReplaceAllString(student, "_"), "_")
	if name == "" {
		return "quiz_report.pdf"
	}
	return "quiz_report_" + name + ".pdf"
}
