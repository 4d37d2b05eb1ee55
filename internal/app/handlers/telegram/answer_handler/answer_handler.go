package answer_handler

import (
	"context"

	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/quizrun"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/views"
	"github.com/IT-Nick/teachassist/internal/app/session"
	"gopkg.in/telebot.v4"
)

// AnswerHandler ответ на вопрос. Data кнопки: "<вопрос>|<вариант>".
type AnswerHandler struct {
	pages  *session.Pages
	runner *quizrun.Runner
}

func NewAnswerHandler(pages *session.Pages, runner *quizrun.Runner) *AnswerHandler {
	return &AnswerHandler{pages: pages, runner: runner}
}

func (h *AnswerHandler) Handle(c telebot.Context) error {
	page := h.pages.Chat(c.Chat().ID)

	question, option, err := views.ParseAnswer(c.Data())
	if err != nil {
		return c.Respond(&telebot.CallbackResponse{Text: "Invalid answer."})
	}

	run, done, err := page.Answer(question, option)
	if err != nil {
		return c.Respond(&telebot.CallbackResponse{Text: err.Error()})
	}

	// убираем кнопки у отвеченного вопроса
	if err := c.Edit(c.Message().Text + "\n\n✔️ Answered"); err != nil {
		page.Log.Debug("could not mark question answered", "error", err)
	}
	_ = c.Respond()

	if done {
		return h.runner.Finish(context.Background(), c.Chat(), page)
	}
	return h.runner.SendQuestion(c.Chat(), run.Quiz, run.Current)
}

func (h *AnswerHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
