package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	"github.com/IT-Nick/teachassist/internal/domain/dto"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	"github.com/IT-Nick/teachassist/internal/infra/storage"
)

// API методы сервера для составов команд
type API interface {
	QuizTeams(ctx context.Context, token, quizID string) ([]model.Team, error)
	SaveQuizTeams(ctx context.Context, token, quizID string, req dto.SaveTeamsRequest) error
	AttachSubmissionTeam(ctx context.Context, submissionID string, req dto.SubmissionTeamRequest) error
}

// RosterRepository состав команд квиза: local storage страницы и зеркало на сервере
type RosterRepository struct {
	local storage.Store
	api   API
}

// NewRosterRepository создает новый экземпляр RosterRepository
func NewRosterRepository(local storage.Store, api API) *RosterRepository {
	return &RosterRepository{local: local, api: api}
}

// LoadLocal читает состав из quiz_<id>_teams. false, если записи нет.
func (r *RosterRepository) LoadLocal(ctx context.Context, quizID string) ([]model.Team, bool, error) {
	var teams []model.Team
	ok, err := storage.GetJSON(ctx, r.local, storage.QuizTeamsKey(quizID), &teams)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load teams: %w", err)
	}
	return teams, ok, nil
}

// SaveLocal сохраняет состав и выбранную команду
func (r *RosterRepository) SaveLocal(ctx context.Context, quizID string, teams []model.Team, selected string) error {
	if err := storage.SetJSON(ctx, r.local, storage.QuizTeamsKey(quizID), teams); err != nil {
		return fmt.Errorf("failed to save teams: %w", err)
	}
	if err := r.local.Set(ctx, storage.SelectedTeamKey(quizID), selected); err != nil {
		return fmt.Errorf("failed to save selected team: %w", err)
	}
	return nil
}

// SelectedTeam ранее выбранная команда из quiz_<id>_selected_team
func (r *RosterRepository) SelectedTeam(ctx context.Context, quizID string) (string, error) {
	v, _, err := r.local.Get(ctx, storage.SelectedTeamKey(quizID))
	if err != nil {
		return "", fmt.Errorf("failed to load selected team: %w", err)
	}
	return v, nil
}

// FetchRemote состав с сервера. Пустой состав считается отсутствием данных.
func (r *RosterRepository) FetchRemote(ctx context.Context, token, quizID string) ([]model.Team, apperr.BestEffort) {
	const op = "teams.FetchRemote"

	if token == "" {
		return nil, apperr.Skipped(op, "no authentication token")
	}
	teams, err := r.api.QuizTeams(ctx, token, quizID)
	if err != nil {
		return nil, apperr.Try(op, err)
	}
	if len(teams) == 0 {
		return nil, apperr.Try(op, errors.New("server returned no teams"))
	}
	return teams, apperr.Try(op, nil)
}

// SaveRemote зеркалирует состав на сервер, только с токеном
func (r *RosterRepository) SaveRemote(ctx context.Context, token, quizID string, req dto.SaveTeamsRequest) apperr.BestEffort {
	const op = "teams.SaveRemote"

	if token == "" {
		return apperr.Skipped(op, "no authentication token")
	}
	return apperr.Try(op, r.api.SaveQuizTeams(ctx, token, quizID, req))
}

// AttachToSubmission дописывает команду к отправке результатов
func (r *RosterRepository) AttachToSubmission(ctx context.Context, submissionID string, req dto.SubmissionTeamRequest) apperr.BestEffort {
	const op = "teams.AttachToSubmission"

	if submissionID == "" {
		return apperr.Skipped(op, "could not find submission ID for team enhancement")
	}
	return apperr.Try(op, r.api.AttachSubmissionTeam(ctx, submissionID, req))
}
