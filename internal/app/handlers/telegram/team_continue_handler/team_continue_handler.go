package team_continue_handler

import (
	"context"
	"fmt"

	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/views"
	"github.com/IT-Nick/teachassist/internal/app/session"
	"gopkg.in/telebot.v4"
)

// TeamContinueHandler подтверждает выбранную команду
type TeamContinueHandler struct {
	pages *session.Pages
}

func NewTeamContinueHandler(pages *session.Pages) *TeamContinueHandler {
	return &TeamContinueHandler{pages: pages}
}

func (h *TeamContinueHandler) Handle(c telebot.Context) error {
	page := h.pages.Chat(c.Chat().ID)

	collab, ok := page.Collaboration()
	if !ok {
		return c.Respond(&telebot.CallbackResponse{Text: "Open a collaboration quiz first."})
	}

	banner, err := collab.Continue(context.Background())
	if err != nil {
		return c.Respond(&telebot.CallbackResponse{Text: views.ErrorText(err)})
	}

	if err := c.Edit(fmt.Sprintf("🏳️ %s\nTeam %s · %s", banner.Text, banner.Letter, banner.Color)); err != nil {
		page.Log.Debug("could not show team banner", "error", err)
	}
	return c.Respond()
}

func (h *TeamContinueHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
