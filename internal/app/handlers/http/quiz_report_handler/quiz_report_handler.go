package quiz_report_handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/IT-Nick/teachassist/internal/domain/model"
	submissionsService "github.com/IT-Nick/teachassist/internal/domain/submissions/service"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
	"github.com/IT-Nick/teachassist/internal/infra/report"
	httpError "github.com/IT-Nick/teachassist/pkg/http"
)

// QuizReportRequest структура для данных запроса
type QuizReportRequest struct {
	Quiz        *model.QuizPreview `json:"quiz"`
	Answers     map[int]int        `json:"answers"`
	StudentName string             `json:"student_name"`
	Team        string             `json:"team"`
	TimeTaken   int                `json:"time_taken"`
}

// QuizReportHandler PDF-отчёт о прохождении квиза
type QuizReportHandler struct {
	log *logger.Logger
	now func() time.Time
}

// NewQuizReportHandler создает новый экземпляр обработчика
func NewQuizReportHandler(log *logger.Logger) *QuizReportHandler {
	return &QuizReportHandler{log: log, now: time.Now}
}

// ServeHTTP метод для обработки запроса
func (h *QuizReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req QuizReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Quiz == nil || len(req.Quiz.Questions) == 0 {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Missing quiz questions")
		return
	}

	var buf bytes.Buffer
	err := report.WritePDFReport(&buf, report.ReportData{
		QuizTitle:   req.Quiz.Title,
		StudentName: req.StudentName,
		Team:        req.Team,
		Score:       submissionsService.Score(req.Quiz, req.Answers),
		MaxScore:    submissionsService.MaxScore(req.Quiz),
		TimeTaken:   req.TimeTaken,
		Questions:   req.Quiz.Questions,
		Answers:     req.Answers,
		GeneratedAt: h.now(),
	})
	if err != nil {
		h.log.Error("failed to build quiz report", "error", err)
		httpError.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(req.StudentName)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
