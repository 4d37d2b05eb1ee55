package flashcard_link_handler

import (
	"encoding/json"
	"net/http"

	"github.com/IT-Nick/teachassist/internal/app/handlers/http/apierr"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	shareService "github.com/IT-Nick/teachassist/internal/domain/share/service"
	httpError "github.com/IT-Nick/teachassist/pkg/http"
)

// FlashcardLinkRequest структура для данных запроса
type FlashcardLinkRequest struct {
	SetID      string           `json:"set_id"`
	QuizID     string           `json:"quiz_id"`
	Appearance model.Appearance `json:"appearance"`
}

// FlashcardLinkResponse ссылка на набор карточек
type FlashcardLinkResponse struct {
	URL string `json:"url"`
}

// FlashcardLinkHandler структура для обработчика
type FlashcardLinkHandler struct {
	share *shareService.ShareService
}

// NewFlashcardLinkHandler создает новый экземпляр обработчика
func NewFlashcardLinkHandler(share *shareService.ShareService) *FlashcardLinkHandler {
	return &FlashcardLinkHandler{share: share}
}

// ServeHTTP метод для обработки запроса
func (h *FlashcardLinkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req FlashcardLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	url, err := h.share.FlashcardLink(req.SetID, req.QuizID, req.Appearance)
	if err != nil {
		apierr.Write(w, err)
		return
	}
	httpError.JSONResponse(w, http.StatusOK, FlashcardLinkResponse{URL: url})
}
