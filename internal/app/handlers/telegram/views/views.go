// Package views текст и клавиатуры сообщений бота.
package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	historyService "github.com/IT-Nick/teachassist/internal/domain/history/service"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	teamsService "github.com/IT-Nick/teachassist/internal/domain/teams/service"
	"gopkg.in/telebot.v4"
)

// ErrorText сообщение об ошибке для пользователя
func ErrorText(err error) string {
	msg := apperr.UserMessage(err)
	switch apperr.KindOf(err) {
	case apperr.KindAuth:
		return "🔒 " + msg + "\nUse /login <token> to sign in."
	case apperr.KindUserInput:
		return "⚠️ " + msg
	}
	return "❌ " + msg
}

// TeamText экран выбора команды
func TeamText(tiles []teamsService.Tile) string {
	var b strings.Builder
	b.WriteString("👥 Choose your team\n\n")
	for _, t := range tiles {
		mark := "▫️"
		if t.Selected {
			mark = "✅"
		}
		fmt.Fprintf(&b, "%s %s (%s) %s\n", mark, t.Name, t.Color, t.Badge)
	}
	return b.String()
}

// TeamKeyboard плитки команд и кнопка "Continue"
func TeamKeyboard(tiles []teamsService.Tile, canContinue bool) *telebot.ReplyMarkup {
	var rows [][]telebot.InlineButton
	for i, t := range tiles {
		text := t.Letter + " · " + t.Name
		if t.Selected {
			text = "✅ " + text
		}
		rows = append(rows, []telebot.InlineButton{{Text: text, Unique: model.TeamPickKey, Data: strconv.Itoa(i)}})
	}
	if canContinue {
		rows = append(rows, []telebot.InlineButton{{Text: "Continue ▶️", Unique: model.TeamContinueKey}})
	}
	return &telebot.ReplyMarkup{InlineKeyboard: rows}
}

// HistoryText страница истории квизов
func HistoryText(v historyService.PageView, f historyService.Filters, field string, desc bool) string {
	if v.Empty {
		return "📭 No quizzes found."
	}
	var b strings.Builder
	dir := "↑"
	if desc {
		dir = "↓"
	}
	fmt.Fprintf(&b, "📚 Quiz history (%d), page %d/%d\n", v.Total, v.Page, max(v.TotalPages, 1))
	fmt.Fprintf(&b, "Date: %s · Type: %s · Sort: %s %s\n", f.Date, f.Type, field, dir)
	if f.Search != "" {
		fmt.Fprintf(&b, "Search: %q\n", f.Search)
	}
	b.WriteString("\n")
	for _, q := range v.Items {
		mode := q.EffectiveMode()
		fmt.Fprintf(&b, "• %s [%s] %s", q.Title, mode.Label(), q.Topic)
		if q.Source == model.SourceWorksheet {
			fmt.Fprintf(&b, " · %d submissions, avg %.0f%%", q.SubmissionCount, q.AverageScore)
		}
		if !q.CreatedAt.IsZero() {
			fmt.Fprintf(&b, " · %s", q.CreatedAt.Format("2006-01-02"))
		}
		fmt.Fprintf(&b, "\n  %s\n", historyService.ScoresURL(q))
	}
	return b.String()
}

// HistoryKeyboard пагинация, фильтры и сортировка
func HistoryKeyboard(v historyService.PageView) *telebot.ReplyMarkup {
	var nav []telebot.InlineButton
	if v.HasPrev {
		nav = append(nav, telebot.InlineButton{Text: "<", Unique: model.HistoryPrevKey})
	}
	if v.HasNext {
		nav = append(nav, telebot.InlineButton{Text: ">", Unique: model.HistoryNextKey})
		nav = append(nav, telebot.InlineButton{Text: "End", Unique: model.HistoryEndKey})
	}

	dates := []telebot.InlineButton{
		{Text: "All", Unique: model.HistoryDateKey, Data: string(historyService.DateAll)},
		{Text: "Today", Unique: model.HistoryDateKey, Data: string(historyService.DateToday)},
		{Text: "Week", Unique: model.HistoryDateKey, Data: string(historyService.DateWeek)},
		{Text: "Month", Unique: model.HistoryDateKey, Data: string(historyService.DateMonth)},
	}
	types := []telebot.InlineButton{
		{Text: "Any", Unique: model.HistoryTypeKey, Data: historyService.TypeAll},
		{Text: "Relaxed", Unique: model.HistoryTypeKey, Data: string(model.ModeRelaxed)},
		{Text: "Teams", Unique: model.HistoryTypeKey, Data: string(model.ModeCollaboration)},
		{Text: "Worksheets", Unique: model.HistoryTypeKey, Data: string(model.ModeWorksheet)},
	}
	sorts := []telebot.InlineButton{
		{Text: "Date", Unique: model.HistorySortKey, Data: historyService.SortCreatedAt},
		{Text: "Title", Unique: model.HistorySortKey, Data: historyService.SortTitle},
		{Text: "Score", Unique: model.HistorySortKey, Data: historyService.SortAverageScore},
	}

	rows := [][]telebot.InlineButton{dates, types, sorts}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	return &telebot.ReplyMarkup{InlineKeyboard: rows}
}

// QuizPreviewText предпросмотр квиза по карточкам
func QuizPreviewText(q *model.QuizPreview, editing bool) string {
	var b strings.Builder
	title := q.Title
	if title == "" {
		title = "Flashcard Quiz"
	}
	fmt.Fprintf(&b, "📝 %s (%d questions)\n\n", title, len(q.Questions))
	for i, question := range q.Questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, question.Text)
		for j, o := range question.Options {
			mark := "   "
			if o.IsCorrect {
				mark = " ✓ "
			}
			fmt.Fprintf(&b, "%s%c) %s\n", mark, 'a'+rune(j%26), o.Text)
		}
	}
	if editing {
		b.WriteString("\n✏️ Send edits as \"<n> text: <new text>\" or \"<n> options[i].text: <new text>\".")
	}
	return b.String()
}

// QuizPreviewKeyboard действия над квизом
func QuizPreviewKeyboard(editing bool) *telebot.ReplyMarkup {
	if editing {
		return &telebot.ReplyMarkup{InlineKeyboard: [][]telebot.InlineButton{{
			{Text: "💾 Save", Unique: model.QuizSaveKey},
			{Text: "Cancel", Unique: model.QuizCancelKey},
		}}}
	}
	return &telebot.ReplyMarkup{InlineKeyboard: [][]telebot.InlineButton{
		{{Text: "✏️ Edit", Unique: model.QuizEditKey}, {Text: "▶️ Take quiz", Unique: model.QuizTakeKey}},
	}}
}

// RetryKeyboard кнопка повтора для сетевых ошибок
func RetryKeyboard() *telebot.ReplyMarkup {
	return &telebot.ReplyMarkup{InlineKeyboard: [][]telebot.InlineButton{{{Text: "🔄 Retry", Unique: model.QuizRetryKey}}}}
}

// QuestionText вопрос с номером и общим количеством
func QuestionText(q model.Question, index, total int) string {
	text := fmt.Sprintf("❓ Question %d/%d:\n%s", index+1, total, q.Text)
	if !q.Type.Scorable() {
		text += "\n\nOpen question, tap Skip to continue."
	}
	return text
}

// QuestionKeyboard варианты ответа. Data кнопки: "<вопрос>|<вариант>".
func QuestionKeyboard(q model.Question, index int) *telebot.ReplyMarkup {
	var rows [][]telebot.InlineButton
	for i, o := range q.Options {
		rows = append(rows, []telebot.InlineButton{{
			Text:   fmt.Sprintf("%d. %s", i+1, o.Text),
			Unique: model.AnswerKey,
			Data:   fmt.Sprintf("%d|%d", index, i),
		}})
	}
	if len(rows) == 0 {
		rows = append(rows, []telebot.InlineButton{{Text: "Skip", Unique: model.AnswerKey, Data: fmt.Sprintf("%d|-1", index)}})
	}
	return &telebot.ReplyMarkup{InlineKeyboard: rows}
}

// ParseAnswer разбирает Data кнопки ответа
func ParseAnswer(data string) (question, option int, err error) {
	q, o, ok := strings.Cut(data, "|")
	if !ok {
		return 0, 0, fmt.Errorf("invalid answer data: %s", data)
	}
	if question, err = strconv.Atoi(q); err != nil {
		return 0, 0, fmt.Errorf("invalid question index: %w", err)
	}
	if option, err = strconv.Atoi(o); err != nil {
		return 0, 0, fmt.Errorf("invalid option index: %w", err)
	}
	return question, option, nil
}

// ParseEdit разбирает правку "<n> <path>: <text>", n с единицы
func ParseEdit(text string) (question int, path, value string, err error) {
	head, value, ok := strings.Cut(text, ":")
	if !ok {
		return 0, "", "", fmt.Errorf("expected <n> <field>: <text>")
	}
	fields := strings.Fields(head)
	if len(fields) != 2 {
		return 0, "", "", fmt.Errorf("expected <n> <field>: <text>")
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 1 {
		return 0, "", "", fmt.Errorf("invalid question number: %s", fields[0])
	}
	return n - 1, fields[1], strings.TrimSpace(value), nil
}
