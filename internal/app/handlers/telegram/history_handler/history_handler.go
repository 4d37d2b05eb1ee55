package history_handler

import (
	"context"

	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/views"
	"github.com/IT-Nick/teachassist/internal/app/session"
	"gopkg.in/telebot.v4"
)

// HistoryHandler загружает историю квизов (/history [поиск])
type HistoryHandler struct {
	pages *session.Pages
}

func NewHistoryHandler(pages *session.Pages) *HistoryHandler {
	return &HistoryHandler{pages: pages}
}

func (h *HistoryHandler) Handle(c telebot.Context) error {
	page := h.pages.Chat(c.Chat().ID)

	page.History.Init(context.Background())
	page.History.SetSearch(c.Message().Payload)

	v := page.History.View()
	f, field, desc := page.History.Filters()
	return c.Send(views.HistoryText(v, f, field, desc), &telebot.SendOptions{
		ReplyMarkup: views.HistoryKeyboard(v),
	})
}

func (h *HistoryHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
