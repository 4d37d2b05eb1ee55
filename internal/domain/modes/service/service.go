package service

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/IT-Nick/teachassist/internal/domain/model"
	submissionsService "github.com/IT-Nick/teachassist/internal/domain/submissions/service"
	teamsService "github.com/IT-Nick/teachassist/internal/domain/teams/service"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
	"github.com/IT-Nick/teachassist/pkg/uricomp"
)

// Kind режим квиза, для которого есть обработчик
type Kind string

const (
	KindRelaxed       Kind = Kind(model.ModeRelaxed)
	KindCompetition   Kind = Kind(model.ModeCompetition)
	KindCollaboration Kind = Kind(model.ModeCollaboration)
)

// ParseKind неизвестные режимы молча становятся relaxed
func ParseKind(s string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindCompetition:
		return KindCompetition
	case KindCollaboration:
		return KindCollaboration
	default:
		return KindRelaxed
	}
}

// Request параметры страницы квиза из URL
type Request struct {
	QuizID           string
	Mode             Kind
	Teams            int
	TeamNaming       string
	TeamNames        []string
	Academy          string
	Student          string
	SubmissionID     string
	ShowExplanations bool
}

// ParseRequest разбирает query страницы квиза. false, если нет id.
func ParseRequest(q url.Values) (Request, bool) {
	req := Request{
		QuizID:       strings.TrimSpace(q.Get("id")),
		Mode:         ParseKind(q.Get("mode")),
		Teams:        2,
		TeamNaming:   teamsService.NamingLetters,
		Academy:      strings.TrimSpace(q.Get("academy")),
		Student:      strings.TrimSpace(q.Get("student")),
		SubmissionID: strings.TrimSpace(q.Get("submission_id")),
	}
	if req.QuizID == "" {
		return Request{}, false
	}

	if n, err := strconv.Atoi(q.Get("teams")); err == nil && n > 0 {
		req.Teams = n
	}
	if naming := strings.TrimSpace(q.Get("teamNaming")); naming != "" {
		req.TeamNaming = naming
	}
	if raw := q.Get("teamNames"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			name, err := uricomp.Decode(part)
			if err != nil {
				name = part
			}
			req.TeamNames = append(req.TeamNames, name)
		}
	}
	if v, err := strconv.ParseBool(q.Get("showExplanations")); err == nil {
		req.ShowExplanations = v
	}
	return req, true
}

// Handler обработчик режима. Набор реализаций закрыт: Relaxed, Competition, Collaboration.
type Handler interface {
	Kind() Kind
	QuizID() string
	// Init ничего не возвращает: ошибки логируются внутри
	Init(ctx context.Context)
	mode()
}

// Relaxed обычный квиз без дополнительной логики
type Relaxed struct {
	quizID string
	log    *logger.Logger
}

func (h *Relaxed) Kind() Kind     { return KindRelaxed }
func (h *Relaxed) QuizID() string { return h.quizID }
func (h *Relaxed) mode()          {}

func (h *Relaxed) Init(context.Context) {
	h.log.Info("relaxed mode initialized")
}

// Competition таблица лидеров пока не реализована
type Competition struct {
	quizID string
	log    *logger.Logger
}

func (h *Competition) Kind() Kind     { return KindCompetition }
func (h *Competition) QuizID() string { return h.quizID }
func (h *Competition) mode()          {}

func (h *Competition) Init(context.Context) {
	h.log.Info("competition mode initialized, leaderboard is not available yet")
}

// Collaboration выбор команды перед квизом
type Collaboration struct {
	*teamsService.Session
	pipeline *submissionsService.Pipeline
	log      *logger.Logger
}

func (h *Collaboration) Kind() Kind { return KindCollaboration }
func (h *Collaboration) mode()      {}

// Continue подтверждает команду и подключает хук отправки результатов (один раз)
func (h *Collaboration) Continue(ctx context.Context) (teamsService.Banner, error) {
	banner, err := h.Session.Continue(ctx)
	if err != nil {
		return banner, err
	}
	if h.pipeline != nil && h.pipeline.Register(teamsService.HookName, h.SubmissionHook()) {
		h.log.Debug("submission hook registered", "hook", teamsService.HookName)
	}
	return banner, nil
}

// Factory создаёт обработчик режима
type Factory struct {
	collaboration *teamsService.CollaborationService
	log           *logger.Logger
}

// NewFactory создает новый экземпляр Factory
func NewFactory(collaboration *teamsService.CollaborationService, log *logger.Logger) *Factory {
	return &Factory{collaboration: collaboration, log: log}
}

// New выбирает обработчик по режиму. pipeline принадлежит странице, на которой идёт квиз.
// Хук команды прошлой сессии на этом pipeline снимается.
func (f *Factory) New(req Request, student string, pipeline *submissionsService.Pipeline) Handler {
	log := f.log.With("quiz_id", req.QuizID, "mode", string(req.Mode))

	if pipeline != nil && pipeline.Unregister(teamsService.HookName) {
		log.Debug("previous submission hook removed", "hook", teamsService.HookName)
	}

	switch req.Mode {
	case KindCompetition:
		return &Competition{quizID: req.QuizID, log: log}
	case KindCollaboration:
		session := f.collaboration.NewSession(req.QuizID, teamsService.Options{
			NumTeams:   req.Teams,
			TeamNaming: req.TeamNaming,
			TeamNames:  req.TeamNames,
		}, student)
		return &Collaboration{Session: session, pipeline: pipeline, log: log}
	default:
		return &Relaxed{quizID: req.QuizID, log: log}
	}
}

// Describe короткое описание режима для пользователя
func Describe(h Handler) string {
	switch h := h.(type) {
	case *Relaxed:
		return "Relaxed mode: take the quiz at your own pace."
	case *Competition:
		return "Competition mode: your score counts towards the class leaderboard."
	case *Collaboration:
		return "Collaboration mode: choose one of " + strconv.Itoa(len(h.Teams())) + " teams to begin."
	default:
		return ""
	}
}
