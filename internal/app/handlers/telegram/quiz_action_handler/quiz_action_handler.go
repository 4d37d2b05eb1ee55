package quiz_action_handler

import (
	"context"
	"strings"

	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/flashquiz_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/quizrun"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/views"
	"github.com/IT-Nick/teachassist/internal/app/session"
	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	"gopkg.in/telebot.v4"
)

// QuizActionHandler кнопки предпросмотра квиза: повтор, правка, сохранение, отмена, прохождение.
// action совпадает с Unique кнопки.
type QuizActionHandler struct {
	pages  *session.Pages
	runner *quizrun.Runner
	action string
}

func NewQuizActionHandler(pages *session.Pages, runner *quizrun.Runner, action string) *QuizActionHandler {
	return &QuizActionHandler{pages: pages, runner: runner, action: action}
}

func (h *QuizActionHandler) Handle(c telebot.Context) error {
	ctx := context.Background()
	page := h.pages.Chat(c.Chat().ID)
	quizzes := page.Quizzes

	switch h.action {
	case model.QuizRetryKey:
		preview, err := quizzes.Retry(ctx)
		if err != nil {
			_ = c.Respond()
			return flashquiz_handler.SendError(c, err)
		}
		return h.edit(c, flashquiz_handler.PreviewText(preview), false)

	case model.QuizEditKey:
		if err := quizzes.EnableEditing(); err != nil {
			return c.Respond(&telebot.CallbackResponse{Text: apperr.UserMessage(err)})
		}
		return h.edit(c, views.QuizPreviewText(quizzes.Quiz(), true), true)

	case model.QuizSaveKey:
		quiz, saved, err := quizzes.SaveChanges(ctx)
		if err != nil {
			return c.Respond(&telebot.CallbackResponse{Text: apperr.UserMessage(err)})
		}
		text := views.QuizPreviewText(quiz, false) + "\n✅ Changes saved."
		if !saved.OK() {
			text += "\nNot saved to the server: " + apperr.UserMessage(saved.Err)
		}
		return h.edit(c, text, false)

	case model.QuizCancelKey:
		quiz := quizzes.CancelEditing()
		if quiz == nil {
			return c.Respond()
		}
		return h.edit(c, views.QuizPreviewText(quiz, false), false)

	case model.QuizTakeKey:
		quiz := quizzes.Quiz()
		if quiz == nil {
			return c.Respond(&telebot.CallbackResponse{Text: "No quiz to take yet."})
		}
		_ = c.Respond()
		if err := h.runner.Start(c.Chat(), page, quiz, studentName(c)); err != nil {
			return c.Send(views.ErrorText(err))
		}
		return nil
	}
	return c.Respond()
}

func (h *QuizActionHandler) edit(c telebot.Context, text string, editing bool) error {
	if err := c.Edit(text, &telebot.SendOptions{ReplyMarkup: views.QuizPreviewKeyboard(editing)}); err != nil {
		return c.Send(text, &telebot.SendOptions{ReplyMarkup: views.QuizPreviewKeyboard(editing)})
	}
	return c.Respond()
}

func studentName(c telebot.Context) string {
	if c.Sender() == nil {
		return ""
	}
	return strings.TrimSpace(c.Sender().FirstName + " " + c.Sender().LastName)
}

func (h *QuizActionHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
