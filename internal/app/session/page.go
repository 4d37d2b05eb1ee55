package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"sync"

	flashcardsService "github.com/IT-Nick/teachassist/internal/domain/flashcards/service"
	flashquizService "github.com/IT-Nick/teachassist/internal/domain/flashquiz/service"
	historyService "github.com/IT-Nick/teachassist/internal/domain/history/service"
	lessonplansService "github.com/IT-Nick/teachassist/internal/domain/lessonplans/service"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	modesService "github.com/IT-Nick/teachassist/internal/domain/modes/service"
	shareService "github.com/IT-Nick/teachassist/internal/domain/share/service"
	submissionsService "github.com/IT-Nick/teachassist/internal/domain/submissions/service"
	teamsRepo "github.com/IT-Nick/teachassist/internal/domain/teams/repository"
	teamsService "github.com/IT-Nick/teachassist/internal/domain/teams/service"
	tokenService "github.com/IT-Nick/teachassist/internal/domain/token/service"
	worksheetsService "github.com/IT-Nick/teachassist/internal/domain/worksheets/service"
	"github.com/IT-Nick/teachassist/internal/infra/apiclient"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
	"github.com/IT-Nick/teachassist/internal/infra/storage"
	"github.com/IT-Nick/teachassist/internal/infra/timer"
)

// Deps общие для всех страниц зависимости
type Deps struct {
	API      *apiclient.Client
	Backends *storage.Backends
	Share    *shareService.ShareService
	Log      *logger.Logger
}

// Page контекст одной страницы: свои хранилища, токен, хуки и состояние квиза.
// В Telegram страница живёт столько же, сколько чат, в HTTP одну обработку запроса.
type Page struct {
	Browser     *storage.Browser
	Tokens      *tokenService.TokenService
	Pipeline    *submissionsService.Pipeline
	Submissions *submissionsService.SubmissionService
	Quizzes     *flashquizService.QuizManager
	History     *historyService.Manager
	Flashcards  *flashcardsService.FlashcardService
	LessonPlans *lessonplansService.LessonPlanService
	Worksheets  *worksheetsService.Tracker
	Modes       *modesService.Factory
	Share       *shareService.ShareService
	Log         *logger.Logger

	mu   sync.Mutex
	mode modesService.Handler
	req  modesService.Request
	run  *Run
}

// NewPage собирает сервисы страницы поверх её хранилищ
func NewPage(deps Deps, browser *storage.Browser, log *logger.Logger) *Page {
	tokens := tokenService.NewTokenService(browser, log)
	pipeline := submissionsService.NewPipeline()
	quizzes := flashquizService.NewQuizManager(deps.API, tokens, browser.Local, log)
	collaboration := teamsService.NewCollaborationService(teamsRepo.NewRosterRepository(browser.Local, deps.API), tokens, log)

	return &Page{
		Browser:     browser,
		Tokens:      tokens,
		Pipeline:    pipeline,
		Submissions: submissionsService.NewSubmissionService(deps.API, tokens, pipeline, log),
		Quizzes:     quizzes,
		History:     historyService.NewHistoryService(deps.API, tokens, log).NewManager(),
		Flashcards:  flashcardsService.NewFlashcardService(deps.API, tokens, browser.Session, quizzes, deps.Share, log),
		LessonPlans: lessonplansService.NewLessonPlanService(deps.API, tokens, log),
		Worksheets:  worksheetsService.NewTracker(browser, log),
		Modes:       modesService.NewFactory(collaboration, log),
		Share:       deps.Share,
		Log:         log,
	}
}

// OpenMode создаёт обработчик режима по ссылке на квиз и запоминает его
func (p *Page) OpenMode(ctx context.Context, req modesService.Request, student string) modesService.Handler {
	h := p.Modes.New(req, student, p.Pipeline)
	h.Init(ctx)

	p.mu.Lock()
	p.mode = h
	p.req = req
	p.mu.Unlock()
	return h
}

// Mode текущий обработчик режима и параметры ссылки
func (p *Page) Mode() (modesService.Handler, modesService.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode, p.req
}

// Collaboration текущий режим, если это выбор команды
func (p *Page) Collaboration() (*modesService.Collaboration, bool) {
	h, _ := p.Mode()
	c, ok := h.(*modesService.Collaboration)
	return c, ok
}

// Run прохождение квиза на странице
type Run struct {
	Quiz      *model.QuizPreview
	Answers   map[int]int
	Current   int
	Student   string
	Countdown *timer.Countdown

	submitted bool
}

// StartRun начинает новое прохождение, предыдущее останавливается
func (p *Page) StartRun(quiz *model.QuizPreview, student string) *Run {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.run != nil && p.run.Countdown != nil {
		p.run.Countdown.Stop()
	}
	p.run = &Run{Quiz: quiz, Answers: make(map[int]int), Student: student}
	return p.run
}

// AttachCountdown привязывает таймер к текущему прохождению
func (p *Page) AttachCountdown(c *timer.Countdown) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.run != nil {
		p.run.Countdown = c
	}
}

// Answer запоминает ответ на текущий вопрос и переходит к следующему.
// done=true, когда вопросы закончились.
func (p *Page) Answer(question, option int) (run *Run, done bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.run == nil || p.run.submitted {
		return nil, false, fmt.Errorf("no quiz in progress")
	}
	if question != p.run.Current {
		return p.run, false, fmt.Errorf("question %d is not current", question+1)
	}
	p.run.Answers[question] = option
	p.run.Current++
	return p.run, p.run.Current >= len(p.run.Quiz.Questions), nil
}

// FinishRun помечает прохождение отправленным и возвращает попытку.
// false, если отправка уже была: таймер и последний ответ могут сработать одновременно.
func (p *Page) FinishRun() (submissionsService.Attempt, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.run == nil || p.run.submitted {
		return submissionsService.Attempt{}, false
	}
	p.run.submitted = true

	a := submissionsService.Attempt{
		Quiz:            p.run.Quiz,
		Answers:         p.run.Answers,
		FlashcardSetID:  p.run.Quiz.FlashcardSetID,
		StudentName:     p.run.Student,
		IsFlashcardQuiz: p.run.Quiz.FlashcardSetID != "",
		URLQuizID:       p.req.QuizID,
		URLSubmissionID: p.req.SubmissionID,
	}
	if p.run.Countdown != nil {
		p.run.Countdown.Stop()
		left := p.run.Countdown.SecondsLeft()
		a.SecondsLeft = &left
	}
	return a, true
}

// CurrentRun прохождение, которое ещё не отправлено
func (p *Page) CurrentRun() (*Run, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.run, p.run != nil && !p.run.submitted
}

// Pages страницы Telegram-чатов
type Pages struct {
	deps  Deps
	mu    sync.Mutex
	pages map[int64]*Page
}

// NewPages создает новый экземпляр Pages
func NewPages(deps Deps) *Pages {
	return &Pages{deps: deps, pages: make(map[int64]*Page)}
}

// Chat страница чата, создаётся при первом обращении
func (ps *Pages) Chat(chatID int64) *Page {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if p, ok := ps.pages[chatID]; ok {
		return p
	}
	prefix := fmt.Sprintf("chat:%d:", chatID)
	p := NewPage(ps.deps, ps.deps.Backends.Page(prefix, nil), ps.deps.Log.With("chat_id", chatID))
	ps.pages[chatID] = p
	return p
}

// Request страница HTTP-запроса. Bearer-токен из заголовка кладётся в session страницы.
// Local общий для запросов с одним и тем же токеном.
func (ps *Pages) Request(r *http.Request) *Page {
	cookies := storage.RequestCookies(r)
	token, ok := BearerToken(r)
	owner := token
	if !ok {
		owner, _ = cookies.Cookie(storage.TokenKey)
	}

	browser := &storage.Browser{
		Local:   storage.Namespaced(ps.deps.Backends.Local, RequestNamespace(owner)),
		Session: storage.NewMemoryStore(),
		Cookies: cookies,
	}
	p := NewPage(ps.deps, browser, ps.deps.Log.With("path", r.URL.Path))

	if ok {
		if err := browser.Session.Set(r.Context(), storage.TokenKey, token); err != nil {
			ps.deps.Log.Warn("failed to keep request token", "error", err)
		}
	}
	return p
}

// RequestNamespace префикс local для HTTP-запросов: хеш токена, без токена общий анонимный
func RequestNamespace(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return "http:anon:"
	}
	sum := sha256.Sum256([]byte(token))
	return "http:" + hex.EncodeToString(sum[:8]) + ":"
}

// BearerToken токен из заголовка Authorization
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(h[7:])
	return token, token != ""
}
