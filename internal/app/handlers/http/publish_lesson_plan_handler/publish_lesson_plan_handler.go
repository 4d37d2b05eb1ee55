package publish_lesson_plan_handler

import (
	"net/http"

	"github.com/IT-Nick/teachassist/internal/app/handlers/http/apierr"
	"github.com/IT-Nick/teachassist/internal/app/session"
	httpError "github.com/IT-Nick/teachassist/pkg/http"
)

// PublishLessonPlanHandler структура для обработчика
type PublishLessonPlanHandler struct {
	pages *session.Pages
}

// NewPublishLessonPlanHandler создает новый экземпляр обработчика
func NewPublishLessonPlanHandler(pages *session.Pages) *PublishLessonPlanHandler {
	return &PublishLessonPlanHandler{pages: pages}
}

// ServeHTTP метод для обработки запроса
func (h *PublishLessonPlanHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page := h.pages.Request(r)

	published, err := page.LessonPlans.Publish(r.Context(), r.PathValue("id"))
	if err != nil {
		apierr.Write(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, published)
}
