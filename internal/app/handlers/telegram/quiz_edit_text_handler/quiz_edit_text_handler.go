package quiz_edit_text_handler

import (
	"fmt"

	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/views"
	"github.com/IT-Nick/teachassist/internal/app/session"
	"gopkg.in/telebot.v4"
)

// QuizEditTextHandler принимает правки квиза текстом, пока включено редактирование
type QuizEditTextHandler struct {
	pages *session.Pages
}

func NewQuizEditTextHandler(pages *session.Pages) *QuizEditTextHandler {
	return &QuizEditTextHandler{pages: pages}
}

func (h *QuizEditTextHandler) Handle(c telebot.Context) error {
	page := h.pages.Chat(c.Chat().ID)
	if !page.Quizzes.Editing() {
		return nil
	}

	question, path, value, err := views.ParseEdit(c.Text())
	if err != nil {
		return c.Send("⚠️ " + err.Error())
	}
	if err := page.Quizzes.Edit(question, path, value); err != nil {
		return c.Send(views.ErrorText(err))
	}
	return c.Send(fmt.Sprintf("✏️ Question %d: %s staged. Tap Save to apply.", question+1, path))
}

func (h *QuizEditTextHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
