package logout_handler

import (
	"context"

	"github.com/IT-Nick/teachassist/internal/app/session"
	"gopkg.in/telebot.v4"
)

// LogoutHandler удаляет токен чата
type LogoutHandler struct {
	pages *session.Pages
}

func NewLogoutHandler(pages *session.Pages) *LogoutHandler {
	return &LogoutHandler{pages: pages}
}

func (h *LogoutHandler) Handle(c telebot.Context) error {
	h.pages.Chat(c.Chat().ID).Tokens.Clear(context.Background())
	return c.Send("🔓 Logged out.")
}

func (h *LogoutHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
