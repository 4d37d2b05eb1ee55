package publish_handler

import (
	"bytes"
	"context"

	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/views"
	"github.com/IT-Nick/teachassist/internal/app/session"
	"gopkg.in/telebot.v4"
)

// PublishHandler публикация плана урока (/publish <id>)
type PublishHandler struct {
	pages *session.Pages
}

func NewPublishHandler(pages *session.Pages) *PublishHandler {
	return &PublishHandler{pages: pages}
}

func (h *PublishHandler) Handle(c telebot.Context) error {
	page := h.pages.Chat(c.Chat().ID)

	published, err := page.LessonPlans.Publish(context.Background(), c.Message().Payload)
	if err != nil {
		return c.Send(views.ErrorText(err))
	}

	text := "📤 Lesson plan is public:\n" + published.PublicURL + "\n\nShare by email:\n" + published.Mailto
	if err := c.Send(text); err != nil {
		return err
	}
	if len(published.QRCode) == 0 {
		return nil
	}
	return c.Send(&telebot.Photo{File: telebot.FromReader(bytes.NewReader(published.QRCode)), Caption: "QR code"})
}

func (h *PublishHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
