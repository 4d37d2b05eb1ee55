package team_pick_handler

import (
	"strconv"

	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/views"
	"github.com/IT-Nick/teachassist/internal/app/session"
	"gopkg.in/telebot.v4"
)

// TeamPickHandler выбор плитки команды. Data кнопки индекс команды.
type TeamPickHandler struct {
	pages *session.Pages
}

func NewTeamPickHandler(pages *session.Pages) *TeamPickHandler {
	return &TeamPickHandler{pages: pages}
}

func (h *TeamPickHandler) Handle(c telebot.Context) error {
	page := h.pages.Chat(c.Chat().ID)

	collab, ok := page.Collaboration()
	if !ok {
		return c.Respond(&telebot.CallbackResponse{Text: "Open a collaboration quiz first."})
	}

	idx, err := strconv.Atoi(c.Data())
	tiles := collab.Tiles()
	if err != nil || idx < 0 || idx >= len(tiles) {
		return c.Respond(&telebot.CallbackResponse{Text: "Unknown team."})
	}
	if err := collab.Select(tiles[idx].Name); err != nil {
		return c.Respond(&telebot.CallbackResponse{Text: views.ErrorText(err)})
	}

	tiles = collab.Tiles()
	if err := c.Edit(views.TeamText(tiles), &telebot.SendOptions{
		ReplyMarkup: views.TeamKeyboard(tiles, collab.CanContinue()),
	}); err != nil {
		page.Log.Debug("could not update team tiles", "error", err)
	}
	return c.Respond()
}

func (h *TeamPickHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
