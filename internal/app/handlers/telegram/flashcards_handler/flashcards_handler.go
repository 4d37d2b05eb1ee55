package flashcards_handler

import (
	"context"
	"fmt"

	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/views"
	"github.com/IT-Nick/teachassist/internal/app/session"
	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	flashcardsService "github.com/IT-Nick/teachassist/internal/domain/flashcards/service"
	optionsService "github.com/IT-Nick/teachassist/internal/domain/options/service"
	"gopkg.in/telebot.v4"
)

// FlashcardsHandler генерация набора карточек по теме (/flashcards <тема>).
// Вместе с набором сразу создаётся квиз.
type FlashcardsHandler struct {
	pages *session.Pages
}

func NewFlashcardsHandler(pages *session.Pages) *FlashcardsHandler {
	return &FlashcardsHandler{pages: pages}
}

func (h *FlashcardsHandler) Handle(c telebot.Context) error {
	ctx := context.Background()
	page := h.pages.Chat(c.Chat().ID)

	_ = c.Notify(telebot.Typing)

	res, err := page.Flashcards.Generate(ctx, flashcardsService.Request{
		Source:           flashcardsService.SourceTopic,
		Topic:            c.Message().Payload,
		AutoGenerateQuiz: true,
		QuizOptions:      optionsService.Read(optionsService.FormValues{}),
	})
	if err != nil {
		return c.Send(views.ErrorText(err))
	}

	text := fmt.Sprintf("🃏 Generated %d flashcards (set %s).", len(res.Flashcards), res.SetID)
	if res.Link != "" {
		text += "\n" + res.Link
	}
	if err := c.Send(text); err != nil {
		return err
	}

	switch {
	case res.Quiz != nil:
		return c.Send(views.QuizPreviewText(res.Quiz, false), &telebot.SendOptions{ReplyMarkup: views.QuizPreviewKeyboard(false)})
	case res.QuizErr != nil:
		msg := "⚠️ Flashcards are ready, but the quiz failed: " + apperr.UserMessage(res.QuizErr)
		return c.Send(msg, &telebot.SendOptions{ReplyMarkup: views.RetryKeyboard()})
	}
	return nil
}

func (h *FlashcardsHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
