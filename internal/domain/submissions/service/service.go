package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	"github.com/IT-Nick/teachassist/internal/domain/dto"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
	"github.com/IT-Nick/teachassist/pkg/uricomp"
	"github.com/google/uuid"
)

const (
	DefaultStudentName     = "Anonymous Student"
	DefaultTimeTaken       = 600
	DefaultQuizTimeSeconds = 1800

	MsgSubmitFailed   = "Failed to submit quiz results. Please try again."
	MsgNoExplanations = "Cannot load explanations without a quiz ID."
)

// API методы удалённого сервиса для отправки результатов
type API interface {
	SubmitQuiz(ctx context.Context, token string, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	SaveQuizResults(ctx context.Context, token string, req dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
}

// Tokens источник bearer-токена страницы
type Tokens interface {
	Token(ctx context.Context) (string, bool)
}

// Attempt пройденный квиз: ответы по индексу вопроса и данные страницы
type Attempt struct {
	Quiz            *model.QuizPreview
	Answers         map[int]int
	URLQuizID       string
	FlashcardSetID  string
	StudentName     string
	SecondsLeft     *int
	URLSubmissionID string
	IsFlashcardQuiz bool
}

// Result итог отправки
type Result struct {
	QuizID          string
	StudentName     string
	Score           int
	MaxScore        int
	TimeTaken       int
	SubmissionID    string
	URLSubmissionID string
	Endpoint        string
	Hooks           []apperr.BestEffort
	Answers         map[string]dto.FormattedAnswer
}

// SubmissionRef id отправки: из ответа сервера, затем из submission_id страницы
func (r Result) SubmissionRef() string {
	if r.SubmissionID != "" {
		return r.SubmissionID
	}
	return r.URLSubmissionID
}

// SubmissionService отправляет результаты квиза
type SubmissionService struct {
	api      API
	tokens   Tokens
	pipeline *Pipeline
	log      *logger.Logger
	newID    func() string
}

// NewSubmissionService создает новый экземпляр SubmissionService
func NewSubmissionService(api API, tokens Tokens, pipeline *Pipeline, log *logger.Logger) *SubmissionService {
	if pipeline == nil {
		pipeline = NewPipeline()
	}
	return &SubmissionService{
		api:      api,
		tokens:   tokens,
		pipeline: pipeline,
		log:      log,
		newID:    func() string { return uuid.New().String() },
	}
}

// Pipeline хуки, которые вызываются после отправки
func (s *SubmissionService) Pipeline() *Pipeline {
	return s.pipeline
}

// Submit отправляет результаты на /api/submit-quiz, при неудаче на /api/save-quiz-results.
// Хуки вызываются только после успешной отправки.
func (s *SubmissionService) Submit(ctx context.Context, a Attempt) (*Result, error) {
	const op = "submissions.Submit"

	if a.Quiz == nil {
		return nil, apperr.UserInput(op, "Quiz data not available")
	}

	res := &Result{
		QuizID:          s.quizID(a),
		StudentName:     a.StudentName,
		Score:           Score(a.Quiz, a.Answers),
		MaxScore:        MaxScore(a.Quiz),
		TimeTaken:       TimeTaken(a.Quiz.TimeLimit, a.SecondsLeft),
		URLSubmissionID: a.URLSubmissionID,
		Answers:         FormatAnswers(a.Quiz, a.Answers),
	}
	if strings.TrimSpace(res.StudentName) == "" {
		res.StudentName = DefaultStudentName
	}

	req := dto.SubmitQuizRequest{
		QuizID:          res.QuizID,
		StudentName:     res.StudentName,
		Score:           res.Score,
		MaxScore:        res.MaxScore,
		TimeTaken:       res.TimeTaken,
		Answers:         res.Answers,
		IsFlashcardQuiz: a.IsFlashcardQuiz,
	}

	token, _ := s.tokens.Token(ctx)

	resp, err := s.api.SubmitQuiz(ctx, token, req)
	res.Endpoint = "/api/submit-quiz"
	if err != nil {
		s.log.Warn("failed to submit quiz results, trying alternate endpoint", "quiz_id", res.QuizID, "error", err)

		var altErr error
		resp, altErr = s.api.SaveQuizResults(ctx, token, req)
		res.Endpoint = "/api/save-quiz-results"
		if altErr != nil {
			s.log.Error("failed to submit to alternate endpoint", "quiz_id", res.QuizID, "error", altErr)
			return nil, apperr.Network(op, apperr.StatusOf(altErr), MsgSubmitFailed, altErr)
		}
	}
	if resp != nil {
		res.SubmissionID = resp.Submission()
	}

	s.log.Info("quiz results submitted", "quiz_id", res.QuizID, "score", res.Score, "max_score", res.MaxScore, "endpoint", res.Endpoint)

	res.Hooks = s.pipeline.Run(ctx, *res, s.log)
	return res, nil
}

func (s *SubmissionService) quizID(a Attempt) string {
	if a.URLQuizID != "" {
		return a.URLQuizID
	}
	if a.Quiz != nil && a.Quiz.ID != "" {
		return a.Quiz.ID.String()
	}
	setID := a.FlashcardSetID
	if setID == "" {
		setID = s.newID()
	}
	return "flashcard-quiz-" + setID
}

// Score число правильных ответов на вопросы с выбором варианта
func Score(quiz *model.QuizPreview, answers map[int]int) int {
	score := 0
	for i, q := range quiz.Questions {
		if !q.Type.Scorable() {
			continue
		}
		selected, ok := answers[i]
		if ok && selected >= 0 && selected < len(q.Options) && q.Options[selected].IsCorrect {
			score++
		}
	}
	return score
}

// MaxScore число вопросов с выбором варианта
func MaxScore(quiz *model.QuizPreview) int {
	n := 0
	for _, q := range quiz.Questions {
		if q.Type.Scorable() {
			n++
		}
	}
	return n
}

// TimeTaken секунды, потраченные на квиз. Без таймера 600.
func TimeTaken(timeLimitMinutes int, secondsLeft *int) int {
	if secondsLeft == nil {
		return DefaultTimeTaken
	}
	total := timeLimitMinutes * 60
	if total == 0 {
		total = DefaultQuizTimeSeconds
	}
	return total - *secondsLeft
}

// FormatAnswers ответы по индексу вопроса, неотвеченные пропускаются
func FormatAnswers(quiz *model.QuizPreview, answers map[int]int) map[string]dto.FormattedAnswer {
	out := make(map[string]dto.FormattedAnswer, len(answers))
	for i, q := range quiz.Questions {
		selected, ok := answers[i]
		if !ok {
			continue
		}
		id := q.ID
		if id == "" {
			id = fmt.Sprintf("q%d", i)
		}
		fa := dto.FormattedAnswer{
			QuestionID:     id,
			SelectedOption: selected,
			AnswerType:     q.Type,
		}
		if q.Type.Scorable() && selected >= 0 && selected < len(q.Options) {
			fa.IsCorrect = q.Options[selected].IsCorrect
		}
		out[strconv.Itoa(i)] = fa
	}
	return out
}

// ExplanationURL ссылка на разбор ответов ученика
func ExplanationURL(baseURL, quizID, student string) (string, error) {
	if strings.TrimSpace(quizID) == "" {
		return "", apperr.UserInput("submissions.ExplanationURL", MsgNoExplanations)
	}
	if strings.TrimSpace(student) == "" {
		student = "Anonymous"
	}
	return strings.TrimRight(baseURL, "/") + "/explanation.html?id=" + uricomp.Encode(quizID) + "&student=" + uricomp.Encode(student), nil
}
