package worksheet_submission_handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/IT-Nick/teachassist/internal/app/session"
	worksheetsService "github.com/IT-Nick/teachassist/internal/domain/worksheets/service"
	httpError "github.com/IT-Nick/teachassist/pkg/http"
)

// WorksheetSubmissionRequest результат проверки: числами или текстом значка "12/15"
type WorksheetSubmissionRequest struct {
	worksheetsService.Score
	Badge string `json:"badge,omitempty"`
}

// WorksheetSubmissionHandler запоминает результат рабочего листа
type WorksheetSubmissionHandler struct {
	pages *session.Pages
}

// NewWorksheetSubmissionHandler создает новый экземпляр обработчика
func NewWorksheetSubmissionHandler(pages *session.Pages) *WorksheetSubmissionHandler {
	return &WorksheetSubmissionHandler{pages: pages}
}

// ServeHTTP метод для обработки запроса
func (h *WorksheetSubmissionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Missing worksheet id")
		return
	}

	var req WorksheetSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	score := req.Score
	if req.Badge != "" {
		parsed, ok := worksheetsService.ParseScoreBadge(req.Badge)
		if !ok {
			httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid score badge")
			return
		}
		parsed.EvaluatedByAI = req.EvaluatedByAI
		score = parsed
	}

	rec := h.pages.Request(r).Worksheets.Track(r.Context(), id, score)
	httpError.JSONResponse(w, http.StatusCreated, rec)
}
