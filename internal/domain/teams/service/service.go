package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	"github.com/IT-Nick/teachassist/internal/domain/dto"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	submissionsService "github.com/IT-Nick/teachassist/internal/domain/submissions/service"
	"github.com/IT-Nick/teachassist/internal/domain/teams/repository"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
)

// HookName имя хука, который дописывает команду к отправке
const HookName = "collaboration-team"

// DefaultStudent имя ученика, если страница его не знает
const DefaultStudent = "Anonymous"

var tileColors = []string{"#FF5722", "#2196F3", "#4CAF50", "#9C27B0", "#FFC107", "#00BCD4", "#795548", "#607D8B"}

// State этап выбора команды
type State int

const (
	StateTeamSetup State = iota
	StateTeamDataLoad
	StateSelecting
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateTeamDataLoad:
		return "team_data_load"
	case StateSelecting:
		return "selecting"
	case StateCommitted:
		return "committed"
	default:
		return "team_setup"
	}
}

// Tokens источник bearer-токена страницы
type Tokens interface {
	Token(ctx context.Context) (string, bool)
}

// Options настройки команд из ссылки на квиз
type Options struct {
	NumTeams   int
	TeamNaming string
	TeamNames  []string
}

// Tile плитка команды на экране выбора
type Tile struct {
	Name     string
	Letter   string
	Color    string
	Members  int
	Badge    string
	Selected bool
}

// Banner плашка выбранной команды, видна до конца квиза
type Banner struct {
	Team   string
	Letter string
	Color  string
	Text   string
}

// CollaborationService создаёт сессии выбора команды
type CollaborationService struct {
	repo   *repository.RosterRepository
	tokens Tokens
	log    *logger.Logger
}

// NewCollaborationService создает новый экземпляр CollaborationService
func NewCollaborationService(repo *repository.RosterRepository, tokens Tokens, log *logger.Logger) *CollaborationService {
	return &CollaborationService{repo: repo, tokens: tokens, log: log}
}

// NewSession начальное состояние TeamSetup: имена команд уже определены
func (s *CollaborationService) NewSession(quizID string, opts Options, student string) *Session {
	if strings.TrimSpace(student) == "" {
		student = DefaultStudent
	}
	names := ResolveNames(opts.NumTeams, opts.TeamNaming, opts.TeamNames)
	return &Session{
		svc:     s,
		quizID:  quizID,
		names:   names,
		student: student,
		teams:   defaultRoster(names),
		log:     s.log.With("quiz_id", quizID),
	}
}

// Session выбор команды одним учеником на одной странице
type Session struct {
	svc     *CollaborationService
	quizID  string
	names   []string
	student string
	log     *logger.Logger

	mu        sync.Mutex
	state     State
	teams     []model.Team
	selected  string
	committed string
}

func (s *Session) QuizID() string  { return s.quizID }
func (s *Session) Student() string { return s.student }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Teams копия текущего состава
func (s *Session) Teams() []model.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneTeams(s.teams)
}

// Team выбранная и подтверждённая команда
func (s *Session) Team() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}

// Init загружает состав: local storage важнее имён по умолчанию, сервер важнее local storage.
// Ошибки только логируются.
func (s *Session) Init(ctx context.Context) {
	s.mu.Lock()
	s.state = StateTeamDataLoad
	s.mu.Unlock()

	teams := defaultRoster(s.names)
	stored, ok, err := s.svc.repo.LoadLocal(ctx, s.quizID)
	switch {
	case err != nil:
		s.log.Warn("failed to load team data", "error", err)
	case ok:
		teams = stored
	}

	token, _ := s.svc.tokens.Token(ctx)
	remote, res := s.svc.repo.FetchRemote(ctx, token, s.quizID)
	if res.OK() {
		teams = remote
	} else if token != "" {
		res.Log(s.log)
	}

	s.mu.Lock()
	s.teams = teams
	s.state = StateSelecting
	s.mu.Unlock()
}

// Tiles плитки по текущему составу
func (s *Session) Tiles() []Tile {
	s.mu.Lock()
	defer s.mu.Unlock()

	tiles := make([]Tile, len(s.teams))
	for i, t := range s.teams {
		tiles[i] = Tile{
			Name:     t.Name,
			Letter:   BadgeLetter(t.Name),
			Color:    tileColors[i%len(tileColors)],
			Members:  len(t.Members),
			Badge:    MembersBadge(len(t.Members)),
			Selected: t.Name == s.selected,
		}
	}
	return tiles
}

// Select отмечает команду. Неизвестные имена отклоняются.
func (s *Session) Select(name string) error {
	const op = "teams.Select"

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateCommitted:
		return apperr.UserInput(op, "Team already chosen")
	case StateSelecting:
	default:
		return apperr.UserInput(op, "Teams are not loaded yet")
	}
	if indexOf(s.teams, name) < 0 {
		return apperr.UserInput(op, fmt.Sprintf("Unknown team: %s", name))
	}
	s.selected = name
	return nil
}

// CanContinue кнопка продолжения активна только после выбора
func (s *Session) CanContinue() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateSelecting && s.selected != ""
}

// Continue записывает ученика в команду и сохраняет состав локально и, по возможности, на сервере
func (s *Session) Continue(ctx context.Context) (Banner, error) {
	const op = "teams.Continue"

	s.mu.Lock()
	if s.state == StateCommitted {
		s.mu.Unlock()
		return s.banner(), nil
	}
	if s.selected == "" {
		s.mu.Unlock()
		return Banner{}, apperr.UserInput(op, "Please select a team")
	}
	i := indexOf(s.teams, s.selected)
	if s.state != StateSelecting || i < 0 {
		s.selected = ""
		s.mu.Unlock()
		return Banner{}, apperr.UserInput(op, "Please select a team")
	}
	if !s.teams[i].HasMember(s.student) {
		s.teams[i].Members = append(s.teams[i].Members, s.student)
	}
	s.committed = s.selected
	s.state = StateCommitted
	teams := model.CloneTeams(s.teams)
	team := s.committed
	s.mu.Unlock()

	if err := s.svc.repo.SaveLocal(ctx, s.quizID, teams, team); err != nil {
		s.log.Warn("failed to persist team selection", "error", err)
	}

	token, _ := s.svc.tokens.Token(ctx)
	s.svc.repo.SaveRemote(ctx, token, s.quizID, dto.SaveTeamsRequest{
		Teams:       teams,
		StudentTeam: team,
		StudentName: s.student,
	}).Log(s.log)

	s.log.Info("team selected", "team", team, "student", s.student)
	return s.banner(), nil
}

func (s *Session) banner() Banner {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.teams, s.committed)
	color := tileColors[0]
	if i >= 0 {
		color = tileColors[i%len(tileColors)]
	}
	return Banner{
		Team:   s.committed,
		Letter: BadgeLetter(s.committed),
		Color:  color,
		Text:   "You are on " + s.committed,
	}
}

// SubmissionHook дописывает выбранную команду к отправке результатов
func (s *Session) SubmissionHook() submissionsService.Hook {
	return func(ctx context.Context, res submissionsService.Result) apperr.BestEffort {
		team := s.Team()
		if team == "" {
			s.log.Warn("no team data available for submission enhancement")
			return apperr.Skipped(HookName, "no team selected")
		}
		if res.QuizID != "" && res.QuizID != s.quizID {
			return apperr.Skipped(HookName, "submission belongs to another quiz")
		}
		return s.svc.repo.AttachToSubmission(ctx, res.SubmissionRef(), dto.SubmissionTeamRequest{
			Team:        team,
			QuizID:      s.quizID,
			StudentName: s.student,
		})
	}
}

func defaultRoster(names []string) []model.Team {
	teams := make([]model.Team, len(names))
	for i, n := range names {
		teams[i] = model.Team{Name: n, Members: []string{}}
	}
	return teams
}

func indexOf(teams []model.Team, name string) int {
	for i, t := range teams {
		if t.Name == name {
			return i
		}
	}
	return -1
}
