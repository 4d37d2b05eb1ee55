package history_nav_handler

import (
	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/views"
	"github.com/IT-Nick/teachassist/internal/app/session"
	historyService "github.com/IT-Nick/teachassist/internal/domain/history/service"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	"gopkg.in/telebot.v4"
)

// HistoryNavHandler кнопки таблицы истории. Одна структура на все кнопки,
// action совпадает с Unique кнопки.
type HistoryNavHandler struct {
	pages  *session.Pages
	action string
}

func NewHistoryNavHandler(pages *session.Pages, action string) *HistoryNavHandler {
	return &HistoryNavHandler{pages: pages, action: action}
}

func (h *HistoryNavHandler) Handle(c telebot.Context) error {
	page := h.pages.Chat(c.Chat().ID)
	m := page.History

	var v historyService.PageView
	switch h.action {
	case model.HistoryNextKey:
		v = m.Next()
	case model.HistoryPrevKey:
		v = m.Prev()
	case model.HistoryEndKey:
		v = m.Last()
	case model.HistoryDateKey:
		m.SetDateRange(historyService.ParseDateRange(c.Data()))
		v = m.View()
	case model.HistoryTypeKey:
		m.SetType(c.Data())
		v = m.View()
	case model.HistorySortKey:
		// повторное нажатие на то же поле меняет направление
		_, field, desc := m.Filters()
		next := historyService.SortField(c.Data())
		if next == field {
			desc = !desc
		} else {
			desc = true
		}
		m.SetSort(next, desc)
		v = m.View()
	default:
		v = m.View()
	}

	f, field, desc := m.Filters()
	if err := c.Edit(views.HistoryText(v, f, field, desc), &telebot.SendOptions{
		ReplyMarkup: views.HistoryKeyboard(v),
	}); err != nil {
		// telegram отвечает ошибкой, если текст не изменился
		page.Log.Debug("history message not updated", "error", err)
	}
	return c.Respond()
}

func (h *HistoryNavHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
