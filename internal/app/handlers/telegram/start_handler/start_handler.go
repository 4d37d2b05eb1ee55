package start_handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/IT-Nick/teachassist/internal/app/session"
	tokenService "github.com/IT-Nick/teachassist/internal/domain/token/service"
	"gopkg.in/telebot.v4"
)

const helpText = `👋 Teacher Assistance

/login <token> - save your access token
/logout - forget the token
/quiz <link> - open a shared quiz
/history [search] - your quizzes and worksheets
/flashcards <topic> - generate a flashcard set
/flashquiz <set id> - quiz from a flashcard set
/take <set id> - take a flashcard quiz
/share <id> [mode] [teams] - share a quiz link
/publish <lesson id> - publish a lesson plan`

// StartHandler структура для обработки команды /start
type StartHandler struct {
	pages *session.Pages
}

// NewStartHandler возвращает структуру обработчика
func NewStartHandler(pages *session.Pages) *StartHandler {
	return &StartHandler{pages: pages}
}

// Handle показывает список команд и состояние входа
func (h *StartHandler) Handle(c telebot.Context) error {
	page := h.pages.Chat(c.Chat().ID)

	var b strings.Builder
	b.WriteString(helpText)
	b.WriteString("\n\n")

	token, ok := page.Tokens.Token(context.Background())
	switch info := tokenService.Inspect(token, time.Now()); {
	case !ok:
		b.WriteString("🔓 You are not logged in.")
	case info.Expired:
		b.WriteString("⚠️ Your token has expired, please /login again.")
	case info.Subject != "":
		fmt.Fprintf(&b, "🔒 Logged in as %s.", info.Subject)
	default:
		b.WriteString("🔒 Logged in.")
	}

	return c.Send(b.String())
}

func (h *StartHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
