package history_handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/IT-Nick/teachassist/internal/app/session"
	historyService "github.com/IT-Nick/teachassist/internal/domain/history/service"
	httpError "github.com/IT-Nick/teachassist/pkg/http"
)

// HistoryHandler страница истории квизов с фильтрами из query
type HistoryHandler struct {
	pages *session.Pages
}

// NewHistoryHandler создает новый экземпляр обработчика
func NewHistoryHandler(pages *session.Pages) *HistoryHandler {
	return &HistoryHandler{pages: pages}
}

// ServeHTTP метод для обработки запроса
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid page")
			return
		}
		page = n
	}

	history := h.pages.Request(r).History
	history.Init(r.Context())

	history.SetSearch(q.Get("search"))
	history.SetDateRange(historyService.ParseDateRange(q.Get("date")))
	history.SetType(q.Get("type"))
	if field := q.Get("sort"); field != "" {
		history.SetSort(field, !strings.EqualFold(q.Get("dir"), "asc"))
	}

	httpError.JSONResponse(w, http.StatusOK, history.GoTo(page))
}
