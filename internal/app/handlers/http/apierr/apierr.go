// Package apierr переводит ошибки сервисов в HTTP-ответы
package apierr

import (
	"net/http"

	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	httpError "github.com/IT-Nick/teachassist/pkg/http"
)

// Status HTTP-статус для ошибки сервиса
func Status(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindUserInput:
		return http.StatusBadRequest
	case apperr.KindAuth:
		return http.StatusUnauthorized
	case apperr.KindTimeout:
		return http.StatusGatewayTimeout
	case apperr.KindNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Write отправляет ошибку с текстом для пользователя
func Write(w http.ResponseWriter, err error) {
	httpError.ErrorResponse(w, Status(err), apperr.UserMessage(err))
}
