package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	"github.com/IT-Nick/teachassist/internal/domain/dto"
	flashquizService "github.com/IT-Nick/teachassist/internal/domain/flashquiz/service"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
	"github.com/IT-Nick/teachassist/internal/infra/storage"
	"github.com/go-playground/validator/v10"
)

// Source откуда берётся материал для карточек
type Source string

const (
	SourceTopic Source = "topic"
	SourceText  Source = "text"
	SourceFile  Source = "file"
)

const (
	DefaultCardType    = "definition"
	DefaultNumCards    = 10
	DefaultDifficulty  = "medium"
	DefaultTimePerCard = 30

	MsgNoTopic = "Please enter a topic"
	MsgNoText  = "Please enter some text content"
	MsgNoFile  = "Please upload a file"
	MsgNoToken = "Please login to generate flashcards"

	topicPreviewLen = 30
)

// API метод генерации карточек
type API interface {
	GenerateFlashcards(ctx context.Context, token string, req dto.GenerateFlashcardsRequest) (*dto.GenerateFlashcardsResponse, error)
}

// Tokens источник bearer-токена страницы
type Tokens interface {
	Token(ctx context.Context) (string, bool)
	ClearIfUnauthorized(ctx context.Context, err error) bool
}

// Quizzes генерация квиза по набору, когда сервер не вернул его сразу
type Quizzes interface {
	GenerateQuiz(ctx context.Context, setID string, opts model.QuizOptions) (*flashquizService.Preview, error)
	Display(quiz *model.QuizPreview)
}

// Links ссылка на набор карточек
type Links interface {
	FlashcardLink(setID, quizID string, appearance model.Appearance) (string, error)
}

// Request данные формы генерации карточек
type Request struct {
	Source           Source
	Topic            string
	Text             string
	FileName         string
	GradeLevel       string
	NumCards         int
	CardTypes        []string
	Difficulty       string
	TimePerCard      int
	AutoGenerateQuiz bool
	Appearance       model.Appearance
	QuizOptions      model.QuizOptions
}

// Result сгенерированный набор. Quiz заполнен, если квиз пришёл сразу или был догенерирован.
// QuizErr ошибка догенерации квиза: набор при этом уже создан.
type Result struct {
	SetID      string
	Flashcards []model.Flashcard
	Link       string
	Quiz       *model.QuizPreview
	InlineQuiz bool
	QuizErr    error
}

var validate = validator.New()

// FlashcardService генерирует наборы карточек
type FlashcardService struct {
	api     API
	tokens  Tokens
	session storage.Store
	quizzes Quizzes
	links   Links
	log     *logger.Logger
}

// NewFlashcardService создает новый экземпляр FlashcardService
func NewFlashcardService(api API, tokens Tokens, session storage.Store, quizzes Quizzes, links Links, log *logger.Logger) *FlashcardService {
	return &FlashcardService{api: api, tokens: tokens, session: session, quizzes: quizzes, links: links, log: log}
}

// BuildRequest проверяет источник и собирает тело запроса. Сеть не используется.
func BuildRequest(req Request) (dto.GenerateFlashcardsRequest, error) {
	const op = "flashcards.BuildRequest"

	out := dto.GenerateFlashcardsRequest{
		GradeLevel:         req.GradeLevel,
		NumCards:           req.NumCards,
		CardTypes:          req.CardTypes,
		Difficulty:         req.Difficulty,
		TimePerCard:        req.TimePerCard,
		AutoGenerateQuiz:   req.AutoGenerateQuiz,
		AppearanceSettings: req.Appearance,
		QuizOptions:        req.QuizOptions,
	}

	switch req.Source {
	case SourceText:
		text := strings.TrimSpace(req.Text)
		if text == "" {
			return out, apperr.UserInput(op, MsgNoText)
		}
		out.Topic = "Text-based flashcards: " + preview(text, topicPreviewLen)
		out.ContentText = text
		out.SourceType = string(SourceText)
	case SourceFile:
		name := strings.TrimSpace(req.FileName)
		if name == "" {
			return out, apperr.UserInput(op, MsgNoFile)
		}
		out.Topic = "File-based flashcards: " + name
		out.SourceType = string(SourceFile)
	default:
		topic := strings.TrimSpace(req.Topic)
		if topic == "" {
			return out, apperr.UserInput(op, MsgNoTopic)
		}
		out.Topic = topic
		out.SourceType = string(SourceTopic)
	}

	if len(out.CardTypes) == 0 {
		out.CardTypes = []string{DefaultCardType}
	}
	if out.NumCards == 0 {
		out.NumCards = DefaultNumCards
	}
	if out.Difficulty == "" {
		out.Difficulty = DefaultDifficulty
	}
	if out.TimePerCard == 0 {
		out.TimePerCard = DefaultTimePerCard
	}

	// настройки квиза проверяет форма квиза
	if err := validate.StructExcept(out, "QuizOptions"); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return out, apperr.UserInput(op, fmt.Sprintf("Invalid value for %s", verrs[0].Field()))
		}
		return out, apperr.UserInput(op, err.Error())
	}
	return out, nil
}

// preview первые n символов и "..." если текст длиннее
func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// Generate создаёт набор карточек. При включённой автогенерации квиз
// берётся из ответа, а если его там нет, генерируется отдельным запросом.
func (s *FlashcardService) Generate(ctx context.Context, req Request) (*Result, error) {
	const op = "flashcards.Generate"

	body, err := BuildRequest(req)
	if err != nil {
		return nil, err
	}

	token, ok := s.tokens.Token(ctx)
	if !ok {
		return nil, apperr.Auth(op, 0, MsgNoToken, nil)
	}

	resp, err := s.api.GenerateFlashcards(ctx, token, body)
	if err != nil {
		if s.tokens.ClearIfUnauthorized(ctx, err) {
			s.log.Info("token rejected while generating flashcards")
		}
		return nil, err
	}

	res := &Result{
		SetID:      resp.FlashcardSetID.String(),
		Flashcards: resp.Flashcards,
	}

	if err := s.session.Set(ctx, storage.CurrentFlashcardSetKey, res.SetID); err != nil {
		s.log.Warn("failed to remember current flashcard set", "set_id", res.SetID, "error", err)
	}

	quizID := resp.QuizID.String()
	if resp.QuizData != nil {
		res.Quiz = resp.QuizData.Clone()
		res.Quiz.FlashcardSetID = res.SetID
		res.InlineQuiz = true
		if quizID == "" {
			quizID = res.Quiz.ID.String()
		}
		if s.quizzes != nil {
			s.quizzes.Display(res.Quiz)
		}
	}

	if req.AutoGenerateQuiz && res.Quiz == nil && s.quizzes != nil {
		p, err := s.quizzes.GenerateQuiz(ctx, res.SetID, req.QuizOptions)
		if err != nil {
			s.log.Warn("quiz generation after flashcards failed", "set_id", res.SetID, "error", err)
			res.QuizErr = err
		} else {
			res.Quiz = p.Quiz
			quizID = p.Quiz.ID.String()
		}
	}

	if s.links != nil {
		link, err := s.links.FlashcardLink(res.SetID, quizID, req.Appearance)
		if err != nil {
			s.log.Warn("failed to build flashcard link", "set_id", res.SetID, "error", err)
		}
		res.Link = link
	}

	return res, nil
}

// CurrentSet набор, сгенерированный последним на этой странице
func (s *FlashcardService) CurrentSet(ctx context.Context) (string, bool) {
	v, ok, err := s.session.Get(ctx, storage.CurrentFlashcardSetKey)
	if err != nil {
		s.log.Warn("failed to read current flashcard set", "error", err)
		return "", false
	}
	return v, ok && v != ""
}
