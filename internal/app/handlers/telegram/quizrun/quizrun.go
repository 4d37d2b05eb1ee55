// Package quizrun прохождение квиза в чате: вопросы, таймер и отправка результатов.
package quizrun

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/IT-Nick/teachassist/internal/app/handlers/telegram/views"
	"github.com/IT-Nick/teachassist/internal/app/session"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	submissionsService "github.com/IT-Nick/teachassist/internal/domain/submissions/service"
	"github.com/IT-Nick/teachassist/internal/infra/report"
	"github.com/IT-Nick/teachassist/internal/infra/timer"
	"gopkg.in/telebot.v4"
)

// Runner ведёт прохождение квиза в чате
type Runner struct {
	bot *telebot.Bot
}

// NewRunner создает новый экземпляр Runner
func NewRunner(bot *telebot.Bot) *Runner {
	return &Runner{bot: bot}
}

// Start отправляет сообщение с таймером и первый вопрос
func (r *Runner) Start(chat *telebot.Chat, page *session.Page, quiz *model.QuizPreview, student string) error {
	if quiz == nil || len(quiz.Questions) == 0 {
		return fmt.Errorf("quiz has no questions")
	}
	page.StartRun(quiz, student)

	limit := time.Duration(submissionsService.DefaultQuizTimeSeconds) * time.Second
	if quiz.TimeLimit > 0 {
		limit = time.Duration(quiz.TimeLimit) * time.Minute
	}

	timerMsg, err := r.bot.Send(chat, timer.Format(limit, 1, len(quiz.Questions)))
	if err != nil {
		return fmt.Errorf("failed to send timer message: %w", err)
	}

	countdown := timer.NewCountdown(limit, timer.UpdateInterval,
		func(_ context.Context, left time.Duration) error {
			current := 1
			if cur, ok := page.CurrentRun(); ok {
				current = min(cur.Current+1, len(quiz.Questions))
			}
			_, err := r.bot.Edit(timerMsg, timer.Format(left, current, len(quiz.Questions)))
			return err
		},
		func(ctx context.Context) {
			if _, err := r.bot.Edit(timerMsg, "⏰ Time is up!"); err != nil {
				page.Log.Warn("failed to update timer message", "error", err)
			}
			if err := r.Finish(ctx, chat, page); err != nil {
				page.Log.Error("failed to finish quiz on timeout", "error", err)
			}
		},
		page.Log)
	page.AttachCountdown(countdown)
	countdown.Start(context.Background())

	return r.SendQuestion(chat, quiz, 0)
}

// SendQuestion отправляет вопрос с вариантами ответа
func (r *Runner) SendQuestion(chat *telebot.Chat, quiz *model.QuizPreview, index int) error {
	q := quiz.Questions[index]
	_, err := r.bot.Send(chat, views.QuestionText(q, index, len(quiz.Questions)), &telebot.SendOptions{
		ReplyMarkup: views.QuestionKeyboard(q, index),
	})
	if err != nil {
		return fmt.Errorf("failed to send question: %w", err)
	}
	return nil
}

// Finish отправляет результаты, ссылку на пояснения и PDF-отчёт.
// Повторный вызов после отправки ничего не делает.
func (r *Runner) Finish(ctx context.Context, chat *telebot.Chat, page *session.Page) error {
	attempt, ok := page.FinishRun()
	if !ok {
		return nil
	}

	res, err := page.Submissions.Submit(ctx, attempt)
	if err != nil {
		_, sendErr := r.bot.Send(chat, views.ErrorText(err))
		return sendErr
	}

	text := fmt.Sprintf("🏁 Quiz complete!\nScore: %d/%d\nTime: %s", res.Score, res.MaxScore, report.FormatDuration(res.TimeTaken))
	if link, err := submissionsService.ExplanationURL(page.Share.BaseURL(), res.QuizID, res.StudentName); err == nil {
		text += "\nExplanations: " + link
	}
	if _, err := r.bot.Send(chat, text); err != nil {
		return fmt.Errorf("failed to send results: %w", err)
	}

	data := report.ReportData{
		QuizTitle:   attempt.Quiz.Title,
		StudentName: res.StudentName,
		Score:       res.Score,
		MaxScore:    res.MaxScore,
		TimeTaken:   res.TimeTaken,
		Questions:   attempt.Quiz.Questions,
		Answers:     attempt.Answers,
		GeneratedAt: time.Now(),
	}
	if collab, ok := page.Collaboration(); ok {
		data.Team = collab.Team()
	}

	var buf bytes.Buffer
	if err := report.WritePDFReport(&buf, data); err != nil {
		page.Log.Warn("failed to build quiz report", "error", err)
		return nil
	}
	doc := &telebot.Document{
		File:     telebot.FromReader(&buf),
		FileName: report.Filename(res.StudentName),
		MIME:     "application/pdf",
	}
	if _, err := r.bot.Send(chat, doc); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	return nil
}
