package share_handler

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/views"
	"github.com/IT-Nick/teachassist/internal/app/session"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	shareService "github.com/IT-Nick/teachassist/internal/domain/share/service"
	"gopkg.in/telebot.v4"
)

const usage = "Usage: /share <quiz id> [relaxed|competition|collaboration] [teams] [letters|numbers|colors|custom] [names...]"

// ShareHandler ссылка и QR-код для учеников
type ShareHandler struct {
	pages *session.Pages
}

func NewShareHandler(pages *session.Pages) *ShareHandler {
	return &ShareHandler{pages: pages}
}

func (h *ShareHandler) Handle(c telebot.Context) error {
	page := h.pages.Chat(c.Chat().ID)

	req, err := ParseArgs(c.Args())
	if err != nil {
		return c.Send(usage)
	}

	url, err := page.Share.QuizURL(req)
	if err != nil {
		return c.Send(views.ErrorText(err))
	}
	if err := c.Send("🔗 " + url); err != nil {
		return err
	}

	png, err := shareService.QRCode(url, shareService.QuizQRSize)
	if err != nil {
		page.Log.Warn("failed to build quiz QR code", "error", err)
		return nil
	}
	return c.Send(&telebot.Photo{File: telebot.FromReader(bytes.NewReader(png))})
}

// ParseArgs разбирает аргументы команды: id, режим, число команд, способ именования и имена
func ParseArgs(args []string) (shareService.QuizShareRequest, error) {
	var req shareService.QuizShareRequest
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return req, errors.New("quiz id is required")
	}
	req.QuizID = args[0]
	if len(args) > 1 {
		req.Mode = model.Mode(strings.ToLower(args[1]))
	}
	if req.Mode != model.ModeCollaboration {
		return req, nil
	}
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return req, err
		}
		req.Teams = n
	}
	if len(args) > 3 {
		req.TeamNaming = strings.ToLower(args[3])
	}
	if len(args) > 4 {
		req.TeamNames = args[4:]
	}
	return req, nil
}

func (h *ShareHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
