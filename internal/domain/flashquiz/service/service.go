package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	"github.com/IT-Nick/teachassist/internal/domain/dto"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	optionsService "github.com/IT-Nick/teachassist/internal/domain/options/service"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
	"github.com/IT-Nick/teachassist/internal/infra/storage"
)

const (
	DefaultTimeLimit = 30

	MsgNoSet       = "No flashcard set available. Please generate flashcards first."
	MsgNoCards     = "No flashcards found to create quiz questions"
	MsgInvalidQuiz = "Invalid quiz data received from server"
	MsgNoQuizEdit  = "No quiz data available to edit"
	MsgNoQuizSave  = "No quiz data available to save"
	MsgNoToken     = "No authentication token available"
)

// API методы сервера для квиза по карточкам
type API interface {
	GetFlashcardSet(ctx context.Context, token, setID string) (*dto.FlashcardSetResponse, error)
	GetFlashcardSetQuiz(ctx context.Context, token, setID string) (*dto.QuizEnvelope, bool, error)
	GenerateQuiz(ctx context.Context, token string, req dto.GenerateQuizRequest) (*dto.QuizEnvelope, error)
	SaveFlashcardSetQuiz(ctx context.Context, token, setID string, quiz *model.QuizPreview) error
}

// Tokens источник bearer-токена страницы
type Tokens interface {
	Token(ctx context.Context) (string, bool)
	ClearIfUnauthorized(ctx context.Context, err error) bool
}

// Preview результат генерации
type Preview struct {
	Quiz     *model.QuizPreview
	Existing bool
	Saved    apperr.BestEffort
}

type edit struct {
	question int
	option   int // -1 для текста вопроса
	text     string
}

var optionFieldRe = regexp.MustCompile(`^options\[(\d+)\]\.text$`)

// QuizManager предпросмотр и редактирование квиза по набору карточек.
// Последний завершившийся запрос генерации перезаписывает квиз.
type QuizManager struct {
	api    API
	tokens Tokens
	local  storage.Store
	log    *logger.Logger

	mu       sync.Mutex
	quiz     *model.QuizPreview
	lastSet  string
	lastOpts model.QuizOptions
	editing  bool
	staged   []edit
}

// NewQuizManager создает новый экземпляр QuizManager
func NewQuizManager(api API, tokens Tokens, local storage.Store, log *logger.Logger) *QuizManager {
	return &QuizManager{api: api, tokens: tokens, local: local, log: log}
}

// GenerateQuiz берёт существующий квиз набора или генерирует новый.
// QuestionCount == 0 означает "не задано": тогда вопросов DefaultQuestionCount.
func (m *QuizManager) GenerateQuiz(ctx context.Context, setID string, opts model.QuizOptions) (*Preview, error) {
	const op = "flashquiz.GenerateQuiz"

	setID = strings.TrimSpace(setID)
	if setID == "" {
		return nil, apperr.UserInput(op, MsgNoSet)
	}

	m.mu.Lock()
	m.lastSet, m.lastOpts = setID, opts
	m.mu.Unlock()

	token, _ := m.tokens.Token(ctx)

	set, err := m.api.GetFlashcardSet(ctx, token, setID)
	if err != nil {
		m.tokens.ClearIfUnauthorized(ctx, err)
		return nil, err
	}
	if len(set.Flashcards) == 0 {
		return nil, apperr.Network(op, 0, MsgNoCards, nil)
	}

	numQuestions := opts.QuestionCount
	if numQuestions <= 0 {
		numQuestions = optionsService.DefaultQuestionCount
	}

	env, found, err := m.api.GetFlashcardSetQuiz(ctx, token, setID)
	if err != nil {
		m.tokens.ClearIfUnauthorized(ctx, err)
		return nil, err
	}
	if !found {
		env, err = m.api.GenerateQuiz(ctx, token, buildRequest(set, opts, numQuestions))
		if err != nil {
			m.tokens.ClearIfUnauthorized(ctx, err)
			return nil, err
		}
	}
	if env == nil || (env.QuizData == nil && env.QuizID == "") {
		return nil, apperr.Network(op, 0, MsgInvalidQuiz, nil)
	}

	quiz := env.QuizData.Clone()
	if quiz == nil {
		quiz = &model.QuizPreview{}
	}
	if quiz.ID == "" {
		quiz.ID = env.QuizID
	}
	quiz.FlashcardSetID = setID
	if len(quiz.Questions) > numQuestions {
		m.log.Debug("limiting quiz to requested question count", "requested", numQuestions, "received", len(quiz.Questions))
		quiz.Questions = quiz.Questions[:numQuestions]
	}

	m.mu.Lock()
	m.quiz = quiz
	m.editing = false
	m.staged = nil
	m.mu.Unlock()

	saved := m.persist(ctx, quiz)
	return &Preview{Quiz: quiz.Clone(), Existing: found, Saved: saved}, nil
}

func buildRequest(set *dto.FlashcardSetResponse, opts model.QuizOptions, numQuestions int) dto.GenerateQuizRequest {
	topic := set.FlashcardSet.Title
	if topic == "" {
		topic = "Flashcard Quiz"
	}
	grade := set.FlashcardSet.GradeLevel
	if grade == "" {
		grade = "all"
	}
	qType := opts.QuestionType
	if qType == "" {
		qType = model.QuestionMultipleChoice
	}
	mode := opts.QuizMode
	if mode == "" {
		mode = "list"
	}
	timeLimit := DefaultTimeLimit
	if opts.TimeLimit != nil && *opts.TimeLimit > 0 {
		timeLimit = *opts.TimeLimit
	}

	parts := make([]string, len(set.Flashcards))
	for i, card := range set.Flashcards {
		parts[i] = card.Front + ": " + card.Back
	}

	return dto.GenerateQuizRequest{
		Topic:        topic,
		GradeLevel:   grade,
		NumQuestions: numQuestions,
		Types:        []string{string(qType)},
		Mode:         mode,
		TimeLimit:    timeLimit,
		ContentText:  strings.Join(parts, "\n\n"),
	}
}

// Retry повторяет генерацию для последнего набора
func (m *QuizManager) Retry(ctx context.Context) (*Preview, error) {
	m.mu.Lock()
	setID, opts := m.lastSet, m.lastOpts
	m.mu.Unlock()
	return m.GenerateQuiz(ctx, setID, opts)
}

// LastSetID набор, для которого последний раз генерировался квиз
func (m *QuizManager) LastSetID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSet
}

// Cached квиз набора из local storage
func (m *QuizManager) Cached(ctx context.Context, setID string) (*model.QuizPreview, bool) {
	var quiz model.QuizPreview
	ok, err := storage.GetJSON(ctx, m.local, storage.FlashcardQuizKey(setID), &quiz)
	if err != nil {
		m.log.Warn("failed to read cached quiz", "set_id", setID, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return &quiz, true
}

// Display показывает готовый квиз, например пришедший вместе с карточками
func (m *QuizManager) Display(quiz *model.QuizPreview) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quiz = quiz.Clone()
	m.editing = false
	m.staged = nil
	if quiz != nil && quiz.FlashcardSetID != "" {
		m.lastSet = quiz.FlashcardSetID
	}
}

// Quiz копия текущего квиза
func (m *QuizManager) Quiz() *model.QuizPreview {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.quiz.Clone()
}

// Editing включён ли режим редактирования
func (m *QuizManager) Editing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editing
}

// EnableEditing включает редактирование
func (m *QuizManager) EnableEditing() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.quiz == nil {
		return apperr.UserInput("flashquiz.EnableEditing", MsgNoQuizEdit)
	}
	m.editing = true
	m.staged = nil
	return nil
}

// Edit запоминает правку поля. fieldPath: "text" или "options[i].text".
func (m *QuizManager) Edit(questionIndex int, fieldPath, text string) error {
	const op = "flashquiz.Edit"

	e := edit{question: questionIndex, option: -1, text: text}
	switch fieldPath = strings.TrimSpace(fieldPath); {
	case fieldPath == "text":
	case optionFieldRe.MatchString(fieldPath):
		n, err := strconv.Atoi(optionFieldRe.FindStringSubmatch(fieldPath)[1])
		if err != nil {
			return apperr.UserInput(op, fmt.Sprintf("Unknown field: %s", fieldPath))
		}
		e.option = n
	default:
		return apperr.UserInput(op, fmt.Sprintf("Unknown field: %s", fieldPath))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.editing {
		return apperr.UserInput(op, "Editing is not enabled")
	}
	m.staged = append(m.staged, e)
	return nil
}

// SaveChanges применяет правки. Несуществующие вопросы и варианты пропускаются.
func (m *QuizManager) SaveChanges(ctx context.Context) (*model.QuizPreview, apperr.BestEffort, error) {
	m.mu.Lock()
	if m.quiz == nil {
		m.mu.Unlock()
		return nil, apperr.BestEffort{}, apperr.UserInput("flashquiz.SaveChanges", MsgNoQuizSave)
	}
	quiz := m.quiz.Clone()
	for _, e := range m.staged {
		if e.question < 0 || e.question >= len(quiz.Questions) {
			continue
		}
		q := &quiz.Questions[e.question]
		if e.option < 0 {
			q.Text = e.text
			continue
		}
		if e.option < len(q.Options) {
			q.Options[e.option].Text = e.text
		}
	}
	m.quiz = quiz
	m.editing = false
	m.staged = nil
	m.mu.Unlock()

	var saved apperr.BestEffort
	if quiz.FlashcardSetID != "" {
		saved = m.persist(ctx, quiz)
	}
	return quiz.Clone(), saved, nil
}

// CancelEditing отбрасывает несохранённые правки
func (m *QuizManager) CancelEditing() *model.QuizPreview {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editing = false
	m.staged = nil
	return m.quiz.Clone()
}

// persist local storage, затем сервер (только с токеном)
func (m *QuizManager) persist(ctx context.Context, quiz *model.QuizPreview) apperr.BestEffort {
	const op = "flashquiz.SaveToServer"

	if err := storage.SetJSON(ctx, m.local, storage.FlashcardQuizKey(quiz.FlashcardSetID), quiz); err != nil {
		m.log.Warn("failed to store quiz data", "set_id", quiz.FlashcardSetID, "error", err)
	}

	token, ok := m.tokens.Token(ctx)
	if !ok {
		return apperr.Skipped(op, MsgNoToken).Log(m.log)
	}
	return apperr.Try(op, m.api.SaveFlashcardSetQuiz(ctx, token, quiz.FlashcardSetID, quiz)).Log(m.log)
}
