package flashquiz_handler

import (
	"context"
	"strings"

	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/views"
	"github.com/IT-Nick/teachassist/internal/app/session"
	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	flashquizService "github.com/IT-Nick/teachassist/internal/domain/flashquiz/service"
	optionsService "github.com/IT-Nick/teachassist/internal/domain/options/service"
	"gopkg.in/telebot.v4"
)

// FlashquizHandler квиз по набору карточек (/flashquiz [set id] [число вопросов] [тип])
type FlashquizHandler struct {
	pages *session.Pages
}

func NewFlashquizHandler(pages *session.Pages) *FlashquizHandler {
	return &FlashquizHandler{pages: pages}
}

func (h *FlashquizHandler) Handle(c telebot.Context) error {
	ctx := context.Background()
	page := h.pages.Chat(c.Chat().ID)

	args := c.Args()
	setID := ""
	form := optionsService.FormValues{}
	if len(args) > 0 {
		setID = args[0]
	}
	if len(args) > 1 {
		form[optionsService.FieldQuestionCount] = args[1]
	}
	if len(args) > 2 {
		form[optionsService.FieldQuestionType] = args[2]
	}
	if setID == "" {
		setID, _ = page.Flashcards.CurrentSet(ctx)
	}

	opts := optionsService.Read(form)
	if err := optionsService.Validate(opts); err != nil {
		return c.Send(views.ErrorText(err))
	}

	preview, err := page.Quizzes.GenerateQuiz(ctx, setID, opts)
	if err != nil {
		return SendError(c, err)
	}
	return c.Send(PreviewText(preview), &telebot.SendOptions{ReplyMarkup: views.QuizPreviewKeyboard(false)})
}

// PreviewText текст предпросмотра с пометкой о сохранении на сервере
func PreviewText(p *flashquizService.Preview) string {
	text := views.QuizPreviewText(p.Quiz, false)
	var notes []string
	if p.Existing {
		notes = append(notes, "Loaded the quiz saved for this set.")
	}
	if !p.Saved.OK() {
		notes = append(notes, "Not saved to the server: "+apperr.UserMessage(p.Saved.Err))
	}
	if len(notes) > 0 {
		text += "\n" + strings.Join(notes, "\n")
	}
	return text
}

// SendError ошибка с кнопкой повтора, если повтор имеет смысл
func SendError(c telebot.Context, err error) error {
	if apperr.Retryable(err) {
		return c.Send(views.ErrorText(err), &telebot.SendOptions{ReplyMarkup: views.RetryKeyboard()})
	}
	return c.Send(views.ErrorText(err))
}

func (h *FlashquizHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
