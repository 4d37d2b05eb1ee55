package login_handler

import (
	"context"
	"time"

	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/views"
	"github.com/IT-Nick/teachassist/internal/app/session"
	tokenService "github.com/IT-Nick/teachassist/internal/domain/token/service"
	"gopkg.in/telebot.v4"
)

// LoginHandler сохраняет токен чата (/login <token>)
type LoginHandler struct {
	pages *session.Pages
}

func NewLoginHandler(pages *session.Pages) *LoginHandler {
	return &LoginHandler{pages: pages}
}

func (h *LoginHandler) Handle(c telebot.Context) error {
	page := h.pages.Chat(c.Chat().ID)
	token := c.Message().Payload

	if err := page.Tokens.Save(context.Background(), token); err != nil {
		return c.Send(views.ErrorText(err))
	}

	// сообщение с токеном в чате не оставляем
	if err := c.Delete(); err != nil {
		page.Log.Debug("could not delete login message", "error", err)
	}

	if info := tokenService.Inspect(token, time.Now()); info.Expired {
		return c.Send("⚠️ Token saved, but it looks expired.")
	}
	return c.Send("🔒 Token saved.")
}

func (h *LoginHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
