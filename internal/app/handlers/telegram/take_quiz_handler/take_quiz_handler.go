package take_quiz_handler

import (
	"context"
	"strings"

	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/flashquiz_handler"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/quizrun"
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/views"
	"github.com/IT-Nick/teachassist/internal/app/session"
	optionsService "github.com/IT-Nick/teachassist/internal/domain/options/service"
	"gopkg.in/telebot.v4"
)

// TakeQuizHandler начинает прохождение квиза по набору (/take [set id])
type TakeQuizHandler struct {
	pages  *session.Pages
	runner *quizrun.Runner
}

func NewTakeQuizHandler(pages *session.Pages, runner *quizrun.Runner) *TakeQuizHandler {
	return &TakeQuizHandler{pages: pages, runner: runner}
}

func (h *TakeQuizHandler) Handle(c telebot.Context) error {
	ctx := context.Background()
	page := h.pages.Chat(c.Chat().ID)

	setID := strings.TrimSpace(c.Message().Payload)
	if setID == "" {
		setID, _ = page.Flashcards.CurrentSet(ctx)
	}

	// текущий квиз, затем сохранённый в local storage, затем генерация
	quiz := page.Quizzes.Quiz()
	if quiz == nil || (setID != "" && quiz.FlashcardSetID != setID) {
		quiz = nil
		if cached, ok := page.Quizzes.Cached(ctx, setID); ok && setID != "" {
			quiz = cached
			page.Quizzes.Display(cached)
		}
	}
	if quiz == nil {
		preview, err := page.Quizzes.GenerateQuiz(ctx, setID, optionsService.Read(optionsService.FormValues{}))
		if err != nil {
			return flashquiz_handler.SendError(c, err)
		}
		quiz = preview.Quiz
	}

	student := ""
	if c.Sender() != nil {
		student = strings.TrimSpace(c.Sender().FirstName + " " + c.Sender().LastName)
	}
	if err := h.runner.Start(c.Chat(), page, quiz, student); err != nil {
		return c.Send(views.ErrorText(err))
	}
	return nil
}

func (h *TakeQuizHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
