package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	"github.com/IT-Nick/teachassist/internal/domain/dto"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	submissionsService "github.com/IT-Nick/teachassist/internal/domain/submissions/service"
	"github.com/IT-Nick/teachassist/internal/domain/teams/repository"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
	"github.com/IT-Nick/teachassist/internal/infra/storage"
)

type fakeAPI struct {
	remote    []model.Team
	remoteErr error
	saved     *dto.SaveTeamsRequest
	attached  map[string]dto.SubmissionTeamRequest
}

func (f *fakeAPI) QuizTeams(context.Context, string, string) ([]model.Team, error) {
	return f.remote, f.remoteErr
}

func (f *fakeAPI) SaveQuizTeams(_ context.Context, _, _ string, req dto.SaveTeamsRequest) error {
	f.saved = &req
	return nil
}

func (f *fakeAPI) AttachSubmissionTeam(_ context.Context, id string, req dto.SubmissionTeamRequest) error {
	if f.attached == nil {
		f.attached = make(map[string]dto.SubmissionTeamRequest)
	}
	f.attached[id] = req
	return nil
}

type staticTokens string

func (s staticTokens) Token(context.Context) (string, bool) { return string(s), s != "" }

func newTestService(local storage.Store, api *fakeAPI, token string) *CollaborationService {
	return NewCollaborationService(repository.NewRosterRepository(local, api), staticTokens(token), logger.NewNop())
}

func TestGenerateNames(t *testing.T) {
	for _, naming := range []string{NamingLetters, NamingNumbers, NamingColors, "unknown"} {
		for _, n := range []int{1, 6, 7, 27, 60} {
			names := GenerateNames(n, naming)
			if len(names) != n {
				t.Fatalf("%s/%d: got %d names", naming, n, len(names))
			}
			seen := make(map[string]bool)
			for _, name := range names {
				if name == "" || seen[name] {
					t.Fatalf("%s/%d: empty or duplicate name %q in %v", naming, n, name, names)
				}
				seen[name] = true
			}
		}
	}

	tests := []struct {
		naming string
		n      int
		want   []string
	}{
		{NamingLetters, 3, []string{"Team A", "Team B", "Team C"}},
		{NamingNumbers, 2, []string{"Team 1", "Team 2"}},
		{NamingColors, 7, []string{"Red Team", "Blue Team", "Green Team", "Yellow Team", "Purple Team", "Orange Team", "Red Team 2"}},
		{"custom", 2, []string{"Team 1", "Team 2"}},
	}
	for _, tt := range tests {
		t.Run(tt.naming, func(t *testing.T) {
			if got := GenerateNames(tt.n, tt.naming); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GenerateNames = %v", got)
			}
		})
	}

	if got := GenerateNames(28, NamingLetters); got[26] != "Team AA" || got[27] != "Team AB" {
		t.Errorf("letters after Z = %v", got[25:])
	}
}

func TestResolveNames(t *testing.T) {
	if got := ResolveNames(2, NamingCustom, []string{"Owls", "Hawks", "Extra"}); !reflect.DeepEqual(got, []string{"Owls", "Hawks"}) {
		t.Errorf("supplied names = %v", got)
	}
	if got := ResolveNames(3, NamingLetters, []string{"Owls"}); !reflect.DeepEqual(got, []string{"Team A", "Team B", "Team C"}) {
		t.Errorf("too few names = %v", got)
	}
	if got := ResolveNames(0, "", nil); !reflect.DeepEqual(got, []string{"Team A", "Team B"}) {
		t.Errorf("defaults = %v", got)
	}

	tests := []struct {
		name     string
		supplied []string
		want     []string
	}{
		{"repeated", []string{"Red", "Red", " Red "}, []string{"Red", "Red 2", "Red 3"}},
		{"blank after custom number", []string{"Team 2", "", "Owls"}, []string{"Team 2", "Team 3", "Owls"}},
		{"blank slots", []string{"", "", "Team 1"}, []string{"Team 2", "Team 3", "Team 1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveNames(3, NamingCustom, tt.supplied); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveNames(%q) = %q, want %q", tt.supplied, got, tt.want)
			}
		})
	}
}

// Выбор Team B добавляет Alex после Sam и сохраняет выбор
func TestContinueScenario(t *testing.T) {
	ctx := context.Background()
	local := storage.NewMemoryStore()
	_ = storage.SetJSON(ctx, local, storage.QuizTeamsKey("q1"), []model.Team{
		{Name: "Team A", Members: []string{}},
		{Name: "Team B", Members: []string{"Sam"}},
	})

	api := &fakeAPI{}
	s := newTestService(local, api, "").NewSession("q1", Options{NumTeams: 2}, "Alex")
	s.Init(ctx)

	if s.CanContinue() {
		t.Fatal("continue must be disabled before a selection")
	}
	if err := s.Select("Team Z"); apperr.KindOf(err) != apperr.KindUserInput {
		t.Errorf("unknown team: err = %v", err)
	}
	if err := s.Select("Team B"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !s.CanContinue() {
		t.Fatal("continue must be enabled after a selection")
	}

	banner, err := s.Continue(ctx)
	if err != nil {
		t.Fatalf("Continue: %v", err)
	}
	if banner.Team != "Team B" || banner.Letter != "B" || banner.Color != "#2196F3" {
		t.Errorf("banner = %+v", banner)
	}

	want := []model.Team{{Name: "Team A", Members: []string{}}, {Name: "Team B", Members: []string{"Sam", "Alex"}}}
	if got := s.Teams(); !reflect.DeepEqual(got, want) {
		t.Errorf("teams = %+v", got)
	}

	selected, _, _ := local.Get(ctx, storage.SelectedTeamKey("q1"))
	if selected != "Team B" {
		t.Errorf("selected team = %q", selected)
	}
	var stored []model.Team
	_, _ = storage.GetJSON(ctx, local, storage.QuizTeamsKey("q1"), &stored)
	if !reflect.DeepEqual(stored, want) {
		t.Errorf("stored teams = %+v", stored)
	}
	if api.saved != nil {
		t.Error("roster must not be sent to the server without a token")
	}

	// повторный выбор не дублирует ученика
	if _, err := s.Continue(ctx); err != nil {
		t.Fatal(err)
	}
	if got := s.Teams()[1].Members; len(got) != 2 {
		t.Errorf("members = %v", got)
	}
}

func TestSelectRequiresLoadedRoster(t *testing.T) {
	ctx := context.Background()
	local := storage.NewMemoryStore()
	s := newTestService(local, &fakeAPI{}, "").NewSession("q1", Options{NumTeams: 2}, "Alex")

	if err := s.Select("Team B"); apperr.KindOf(err) != apperr.KindUserInput {
		t.Errorf("select before init: err = %v", err)
	}

	s.Init(ctx)
	if err := s.Select("Team B"); err != nil {
		t.Fatal(err)
	}

	// состав перечитан и выбранной команды в нём больше нет
	_ = storage.SetJSON(ctx, local, storage.QuizTeamsKey("q1"), []model.Team{{Name: "Solo", Members: []string{}}})
	s.Init(ctx)
	if _, err := s.Continue(ctx); apperr.KindOf(err) != apperr.KindUserInput {
		t.Errorf("continue with a stale selection: err = %v", err)
	}
	if s.State() != StateSelecting || s.CanContinue() {
		t.Errorf("state = %v, can continue = %v", s.State(), s.CanContinue())
	}
}

func TestInitPrecedence(t *testing.T) {
	ctx := context.Background()
	remote := []model.Team{{Name: "Server Team", Members: []string{"Kim"}}}

	t.Run("server wins with token", func(t *testing.T) {
		local := storage.NewMemoryStore()
		_ = storage.SetJSON(ctx, local, storage.QuizTeamsKey("q1"), []model.Team{{Name: "Local"}})
		s := newTestService(local, &fakeAPI{remote: remote}, "tok").NewSession("q1", Options{}, "")
		s.Init(ctx)
		if got := s.Teams(); !reflect.DeepEqual(got, remote) {
			t.Errorf("teams = %+v", got)
		}
		if s.State() != StateSelecting {
			t.Errorf("state = %v", s.State())
		}
	})

	t.Run("server failure keeps local", func(t *testing.T) {
		local := storage.NewMemoryStore()
		_ = storage.SetJSON(ctx, local, storage.QuizTeamsKey("q1"), []model.Team{{Name: "Local", Members: []string{}}})
		s := newTestService(local, &fakeAPI{remoteErr: errors.New("down")}, "tok").NewSession("q1", Options{}, "")
		s.Init(ctx)
		if got := s.Teams(); len(got) != 1 || got[0].Name != "Local" {
			t.Errorf("teams = %+v", got)
		}
	})

	t.Run("defaults without storage", func(t *testing.T) {
		s := newTestService(storage.NewMemoryStore(), &fakeAPI{}, "").NewSession("q1", Options{NumTeams: 3, TeamNaming: NamingNumbers}, "")
		s.Init(ctx)
		tiles := s.Tiles()
		if len(tiles) != 3 || tiles[2].Name != "Team 3" || tiles[2].Badge != "0 members" || tiles[2].Letter != "3" {
			t.Errorf("tiles = %+v", tiles)
		}
	})
}

func TestContinueSendsRosterWithToken(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	s := newTestService(storage.NewMemoryStore(), api, "tok").NewSession("q1", Options{}, "")
	s.Init(ctx)
	_ = s.Select("Team A")
	if _, err := s.Continue(ctx); err != nil {
		t.Fatal(err)
	}

	if api.saved == nil || api.saved.StudentTeam != "Team A" || api.saved.StudentName != DefaultStudent {
		t.Errorf("saved = %+v", api.saved)
	}
}

func TestSubmissionHook(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	s := newTestService(storage.NewMemoryStore(), api, "").NewSession("q1", Options{}, "Alex")
	s.Init(ctx)
	hook := s.SubmissionHook()

	if res := hook(ctx, submissionsService.Result{SubmissionID: "1"}); res.OK() {
		t.Error("hook without a team must be skipped")
	}

	_ = s.Select("Team B")
	_, _ = s.Continue(ctx)

	res := hook(ctx, submissionsService.Result{SubmissionID: "from-response", URLSubmissionID: "from-url"})
	if !res.OK() {
		t.Fatalf("hook: %v", res.Err)
	}
	want := dto.SubmissionTeamRequest{Team: "Team B", QuizID: "q1", StudentName: "Alex"}
	if got := api.attached["from-response"]; got != want {
		t.Errorf("attached = %+v", api.attached)
	}

	_ = hook(ctx, submissionsService.Result{URLSubmissionID: "from-url"})
	if _, ok := api.attached["from-url"]; !ok {
		t.Error("url submission id must be used when the response has none")
	}

	if res := hook(ctx, submissionsService.Result{}); res.OK() {
		t.Error("missing submission id must be skipped")
	}

	if res := hook(ctx, submissionsService.Result{QuizID: "q2", SubmissionID: "other"}); res.OK() {
		t.Error("submission of another quiz must be skipped")
	}
	if _, ok := api.attached["other"]; ok {
		t.Error("team attached to another quiz")
	}
}

func TestMembersBadge(t *testing.T) {
	if MembersBadge(1) != "1 member" || MembersBadge(0) != "0 members" || MembersBadge(4) != "4 members" {
		t.Error("unexpected badge text")
	}
	if BadgeLetter("Red Team 2") != "2" || BadgeLetter("Owls") != "O" || BadgeLetter("") != "" {
		t.Error("unexpected badge letter")
	}
}
