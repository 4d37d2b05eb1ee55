package share_quiz_handler

import (
	"encoding/json"
	"net/http"

	"github.com/IT-Nick/teachassist/internal/app/handlers/http/apierr"
	shareService "github.com/IT-Nick/teachassist/internal/domain/share/service"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
	httpError "github.com/IT-Nick/teachassist/pkg/http"
)

// ShareQuizResponse ссылка на квиз и QR-код (PNG, в JSON как base64)
type ShareQuizResponse struct {
	URL    string `json:"url"`
	QRCode []byte `json:"qr_code"`
}

// ShareQuizHandler структура для обработчика
type ShareQuizHandler struct {
	share *shareService.ShareService
	log   *logger.Logger
}

// NewShareQuizHandler создает новый экземпляр обработчика
func NewShareQuizHandler(share *shareService.ShareService, log *logger.Logger) *ShareQuizHandler {
	return &ShareQuizHandler{share: share, log: log}
}

// ServeHTTP метод для обработки запроса
func (h *ShareQuizHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req shareService.QuizShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	url, err := h.share.QuizURL(req)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	// без QR-кода ссылка всё равно отдаётся
	png, err := shareService.QRCode(url, shareService.QuizQRSize)
	if err != nil {
		h.log.Warn("failed to build quiz QR code", "quiz_id", req.QuizID, "error", err)
	}

	httpError.JSONResponse(w, http.StatusOK, ShareQuizResponse{URL: url, QRCode: png})
}
