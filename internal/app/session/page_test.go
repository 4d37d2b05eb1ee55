package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IT-Nick/teachassist/internal/domain/model"
	"github.com/IT-Nick/teachassist/internal/infra/apiclient"
	"github.com/IT-Nick/teachassist/internal/infra/config"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
	"github.com/IT-Nick/teachassist/internal/infra/storage"
	"github.com/IT-Nick/teachassist/internal/infra/timer"
)

func newPages() (*Pages, *storage.Backends) {
	backends := &storage.Backends{Local: storage.NewMemoryStore(), Session: storage.NewMemoryStore()}
	return NewPages(Deps{Backends: backends, Log: logger.NewNop()}), backends
}

func quiz(n int) *model.QuizPreview {
	q := &model.QuizPreview{Title: "Quiz"}
	for range n {
		q.Questions = append(q.Questions, model.Question{
			Type:    model.QuestionMultipleChoice,
			Options: []model.Option{{Text: "a", IsCorrect: true}, {Text: "b"}},
		})
	}
	return q
}

func TestChatPagesAreIsolated(t *testing.T) {
	ctx := context.Background()
	pages, backends := newPages()

	first := pages.Chat(1)
	if pages.Chat(1) != first {
		t.Fatal("same chat must reuse its page")
	}
	if err := first.Tokens.Save(ctx, "tok-1"); err != nil {
		t.Fatal(err)
	}

	if _, ok := pages.Chat(2).Tokens.Token(ctx); ok {
		t.Error("token leaked into another chat")
	}
	if v, ok, _ := backends.Local.Get(ctx, "chat:1:"+storage.TokenKey); !ok || v != "tok-1" {
		t.Errorf("stored token = %q %v", v, ok)
	}
}

func TestRequestPage(t *testing.T) {
	ctx := context.Background()
	pages, _ := newPages()

	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"bearer", "Bearer abc", "", "abc"},
		{"case insensitive", "bearer abc", "", "abc"},
		{"cookie", "", "from-cookie", "from-cookie"},
		{"none", "", "", ""},
		{"not bearer", "Basic abc", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/quizzes/history", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: "token", Value: tt.cookie})
			}
			got, _ := pages.Request(r).Tokens.Token(ctx)
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunLifecycle(t *testing.T) {
	page := NewPage(Deps{Log: logger.NewNop()}, storage.NewMemoryBrowser(), logger.NewNop())

	if _, _, err := page.Answer(0, 0); err == nil {
		t.Fatal("answer without a run must fail")
	}

	page.StartRun(quiz(2), "Ann")
	if _, _, err := page.Answer(1, 0); err == nil {
		t.Error("answering ahead must fail")
	}
	if _, done, err := page.Answer(0, 0); err != nil || done {
		t.Fatalf("first answer done = %v err = %v", done, err)
	}
	run, done, err := page.Answer(1, 1)
	if err != nil || !done || run.Answers[1] != 1 {
		t.Fatalf("last answer done = %v err = %v", done, err)
	}

	attempt, ok := page.FinishRun()
	if !ok || attempt.StudentName != "Ann" || len(attempt.Answers) != 2 || attempt.SecondsLeft != nil {
		t.Errorf("attempt = %+v", attempt)
	}
	if _, ok := page.FinishRun(); ok {
		t.Error("second finish must be ignored")
	}
	if _, ok := page.CurrentRun(); ok {
		t.Error("submitted run is still current")
	}
}

func TestFinishRunStopsCountdown(t *testing.T) {
	page := NewPage(Deps{Log: logger.NewNop()}, storage.NewMemoryBrowser(), logger.NewNop())
	page.StartRun(quiz(1), "")

	c := timer.NewCountdown(time.Minute, time.Hour, nil, nil, logger.NewNop())
	page.AttachCountdown(c)
	c.Start(context.Background())

	attempt, ok := page.FinishRun()
	if !ok || attempt.SecondsLeft == nil || *attempt.SecondsLeft <= 0 || *attempt.SecondsLeft > 60 {
		t.Fatalf("attempt = %+v", attempt)
	}
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Error("countdown was not stopped")
	}
}

// По истечении времени результаты отправляются, хотя FinishRun останавливает таймер
func TestCountdownExpirySubmits(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/submit-quiz" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"submission_id":"s-1"}`))
	}))
	defer srv.Close()

	log := logger.NewNop()
	api := apiclient.New(config.API{BaseURL: srv.URL, Timeout: 2 * time.Second, FlashcardTimeout: 2 * time.Second}, log)
	page := NewPage(Deps{API: api, Log: log}, storage.NewMemoryBrowser(), log)
	page.StartRun(quiz(2), "Ann")

	errs := make(chan error, 1)
	c := timer.NewCountdown(20*time.Millisecond, 5*time.Millisecond, nil, func(ctx context.Context) {
		attempt, ok := page.FinishRun()
		if !ok {
			errs <- errors.New("run already finished")
			return
		}
		_, err := page.Submissions.Submit(ctx, attempt)
		errs <- err
	}, log)
	page.AttachCountdown(c)
	c.Start(context.Background())

	select {
	case err := <-errs:
		if err != nil {
			t.Fatalf("submit on expiry: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("countdown did not expire")
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d", hits.Load())
	}
}

// Local HTTP-страниц разделён по токену
func TestRequestLocalScopedByToken(t *testing.T) {
	ctx := context.Background()
	pages, _ := newPages()

	request := func(header, cookie string) *Page {
		r := httptest.NewRequest(http.MethodGet, "/quizzes/history", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		if cookie != "" {
			r.AddCookie(&http.Cookie{Name: "token", Value: cookie})
		}
		return pages.Request(r)
	}

	if err := request("Bearer alice", "").Browser.Local.Set(ctx, "k", "alice"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
		cookie string
		found  bool
	}{
		{"same bearer", "Bearer alice", "", true},
		{"same token from cookie", "", "alice", true},
		{"other bearer", "Bearer bob", "", false},
		{"anonymous", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := request(tt.header, tt.cookie).Browser.Local.Get(ctx, "k")
			if err != nil || ok != tt.found {
				t.Errorf("found = %v err = %v, want %v", ok, err, tt.found)
			}
		})
	}

	if RequestNamespace("alice") == RequestNamespace("bob") || RequestNamespace(" ") != RequestNamespace("") {
		t.Error("unexpected namespaces")
	}
}
