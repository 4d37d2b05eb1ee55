package quiz_link_handler

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/views"
	"github.com/IT-Nick/teachassist/internal/app/session"
	modesService "github.com/IT-Nick/teachassist/internal/domain/modes/service"
	"gopkg.in/telebot.v4"
)

// QuizLinkHandler открывает квиз по ссылке (/quiz <link>) и выбирает режим
type QuizLinkHandler struct {
	pages *session.Pages
}

func NewQuizLinkHandler(pages *session.Pages) *QuizLinkHandler {
	return &QuizLinkHandler{pages: pages}
}

func (h *QuizLinkHandler) Handle(c telebot.Context) error {
	page := h.pages.Chat(c.Chat().ID)

	query, err := ParseQuery(c.Message().Payload)
	if err != nil {
		return c.Send("⚠️ Usage: /quiz <quiz link or id=...&mode=...>")
	}
	req, ok := modesService.ParseRequest(query)
	if !ok {
		return c.Send("⚠️ The link has no quiz id.")
	}

	student := req.Student
	if student == "" && c.Sender() != nil {
		student = strings.TrimSpace(c.Sender().FirstName + " " + c.Sender().LastName)
	}

	handler := page.OpenMode(context.Background(), req, student)
	text := modesService.Describe(handler)
	if req.Academy != "" {
		text = "🏫 " + req.Academy + "\n" + text
	}

	if collab, ok := handler.(*modesService.Collaboration); ok {
		tiles := collab.Tiles()
		return c.Send(text+"\n\n"+views.TeamText(tiles), &telebot.SendOptions{
			ReplyMarkup: views.TeamKeyboard(tiles, collab.CanContinue()),
		})
	}
	return c.Send(text + "\nUse /take <set id> to start a flashcard quiz.")
}

// ParseQuery принимает полную ссылку на квиз или только её query
func ParseQuery(payload string) (url.Values, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, errors.New("empty link")
	}
	if _, query, ok := strings.Cut(payload, "?"); ok {
		payload = query
	}
	return url.ParseQuery(payload)
}

func (h *QuizLinkHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
