package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/IT-Nick/teachassist/internal/domain/dto"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
)

type fakeAPI struct {
	quizzes    []model.QuizSummary
	quizErr    error
	worksheets []dto.WorksheetSummary
	wsErr      error
	quizCalls  int
}

func (f *fakeAPI) UserQuizzes(context.Context, string) ([]model.QuizSummary, error) {
	f.quizCalls++
	return f.quizzes, f.quizErr
}

func (f *fakeAPI) WorksheetSubmissions(context.Context) ([]dto.WorksheetSummary, error) {
	return f.worksheets, f.wsErr
}

type staticTokens string

func (s staticTokens) Token(context.Context) (string, bool) { return string(s), s != "" }

func ts(t time.Time) model.Timestamp { return model.Timestamp{Time: t} }

func ids(items []model.QuizSummary) []string {
	out := make([]string, len(items))
	for i, q := range items {
		out[i] = q.ID.String()
	}
	return out
}

func TestLoad(t *testing.T) {
	api := &fakeAPI{
		quizzes:    []model.QuizSummary{{ID: "1", Title: "Q"}},
		worksheets: []dto.WorksheetSummary{{ID: "w1", Title: "W", Subject: "Math", SubmissionCount: 3, AverageScore: 71.5}},
	}

	t.Run("with token", func(t *testing.T) {
		items := NewHistoryService(api, staticTokens("tok"), logger.NewNop()).Load(context.Background())
		if len(items) != 2 || items[0].Source != model.SourceQuiz {
			t.Fatalf("items = %+v", items)
		}
		ws := items[1]
		want := model.QuizSummary{
			ID: "w1", Title: "W", Topic: "Math", GradeLevel: "-", QuizMode: model.ModeWorksheet,
			Source: model.SourceWorksheet, SubmissionCount: 3, AverageScore: 71.5,
		}
		if !reflect.DeepEqual(ws, want) {
			t.Errorf("worksheet = %+v", ws)
		}
	})

	t.Run("without token only worksheets", func(t *testing.T) {
		api.quizCalls = 0
		items := NewHistoryService(api, staticTokens(""), logger.NewNop()).Load(context.Background())
		if len(items) != 1 || api.quizCalls != 0 {
			t.Errorf("items = %+v calls = %d", items, api.quizCalls)
		}
	})

	t.Run("failures yield empty parts", func(t *testing.T) {
		failing := &fakeAPI{quizErr: errors.New("down"), wsErr: errors.New("down")}
		items := NewHistoryService(failing, staticTokens("tok"), logger.NewNop()).Load(context.Background())
		if len(items) != 0 {
			t.Errorf("items = %+v", items)
		}
	})
}

func TestFilterToday(t *testing.T) {
	loc := time.UTC
	current := time.Date(2024, 3, 14, 15, 0, 0, 0, loc) // четверг
	items := []model.QuizSummary{
		{ID: "morning", CreatedAt: ts(time.Date(2024, 3, 14, 0, 0, 0, 0, loc))},
		{ID: "night", CreatedAt: ts(time.Date(2024, 3, 14, 23, 59, 0, 0, loc))},
		{ID: "yesterday", CreatedAt: ts(time.Date(2024, 3, 13, 23, 59, 0, 0, loc))},
		{ID: "unknown"},
	}

	got := Filter(items, Filters{Date: DateToday}, current)
	for _, q := range got {
		y1, m1, d1 := q.CreatedAt.Date()
		y2, m2, d2 := current.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			t.Errorf("%s is not from today", q.ID)
		}
	}
	if !reflect.DeepEqual(ids(got), []string{"morning", "night"}) {
		t.Errorf("today = %v", ids(got))
	}
}

func TestFilterWeekAndMonth(t *testing.T) {
	loc := time.UTC
	current := time.Date(2024, 3, 14, 15, 0, 0, 0, loc) // четверг, неделя с воскресенья 10 марта
	items := []model.QuizSummary{
		{ID: "sunday", CreatedAt: ts(time.Date(2024, 3, 10, 1, 0, 0, 0, loc))},
		{ID: "saturday-before", CreatedAt: ts(time.Date(2024, 3, 9, 23, 0, 0, 0, loc))},
		{ID: "saturday", CreatedAt: ts(time.Date(2024, 3, 16, 22, 0, 0, 0, loc))},
		{ID: "march-1", CreatedAt: ts(time.Date(2024, 3, 1, 0, 0, 0, 0, loc))},
		{ID: "feb", CreatedAt: ts(time.Date(2024, 2, 29, 0, 0, 0, 0, loc))},
	}

	if got := ids(Filter(items, Filters{Date: DateWeek}, current)); !reflect.DeepEqual(got, []string{"sunday", "saturday"}) {
		t.Errorf("week = %v", got)
	}
	if got := ids(Filter(items, Filters{Date: DateMonth}, current)); !reflect.DeepEqual(got, []string{"sunday", "saturday-before", "saturday", "march-1"}) {
		t.Errorf("month = %v", got)
	}
}

func TestFilterSearchAndType(t *testing.T) {
	items := []model.QuizSummary{
		{ID: "1", Title: "Fractions", Topic: "Math"},
		{ID: "2", Title: "Cells", Topic: "Biology", QuizMode: model.ModeCollaboration},
		{ID: "3", Title: "Worksheet", Topic: "Math Review", QuizMode: model.ModeWorksheet},
	}

	tests := []struct {
		name string
		f    Filters
		want []string
	}{
		{"search title", Filters{Search: "FRAC"}, []string{"1"}},
		{"search topic", Filters{Search: "math"}, []string{"1", "3"}},
		{"empty mode is relaxed", Filters{Type: "relaxed"}, []string{"1"}},
		{"type and search", Filters{Search: "math", Type: "worksheet"}, []string{"3"}},
		{"all", Filters{Type: TypeAll, Date: DateAll}, []string{"1", "2", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(Filter(items, tt.f, time.Now())); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter = %v, want %v", got, tt.want)
			}
		})
	}
}

// Сортировка по дате по убыванию и по возрастанию даёт обратный порядок
func TestSortRoundTrip(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var items []model.QuizSummary
	for i, d := range []int{5, 1, 9, 3, 7} {
		items = append(items, model.QuizSummary{ID: model.ID(fmt.Sprint(i)), CreatedAt: ts(base.AddDate(0, 0, d))})
	}

	desc := ids(Sort(items, SortCreatedAt, true))
	asc := ids(Sort(items, SortCreatedAt, false))
	for i := range desc {
		if desc[i] != asc[len(asc)-1-i] {
			t.Fatalf("desc = %v, asc = %v", desc, asc)
		}
	}
}

func TestSortStable(t *testing.T) {
	limit := 10
	items := []model.QuizSummary{
		{ID: "a", Title: "Same"},
		{ID: "b", Title: "Alpha"},
		{ID: "c", Title: "Same"},
		{ID: "d", TimeLimit: &limit},
	}
	if got := ids(Sort(items, SortTitle, false)); !reflect.DeepEqual(got, []string{"d", "b", "a", "c"}) {
		t.Errorf("title asc = %v", got)
	}
	if got := ids(Sort(items, SortTitle, true)); !reflect.DeepEqual(got, []string{"a", "c", "b", "d"}) {
		t.Errorf("title desc = %v", got)
	}
	if got := ids(Sort(items, SortTimeLimit, true)); !reflect.DeepEqual(got, []string{"d", "a", "b", "c"}) {
		t.Errorf("time limit desc = %v", got)
	}
}

func TestPaginate(t *testing.T) {
	items := make([]model.QuizSummary, 23)

	if v := Paginate(items, 3, 10); len(v.Items) != 3 || v.TotalPages != 3 || v.HasNext || !v.HasPrev {
		t.Errorf("page 3 = %+v", v)
	}
	for _, p := range []int{4, 10, math.MaxInt} {
		if v := Paginate(items, p, 10); len(v.Items) != 0 {
			t.Errorf("page %d has %d items", p, len(v.Items))
		}
	}

	many := make([]model.QuizSummary, 95)
	tests := []struct {
		page int
		want []int
	}{
		{1, []int{1, 2, 3, 4, 5}},
		{5, []int{3, 4, 5, 6, 7}},
		{10, []int{6, 7, 8, 9, 10}},
		{9, []int{6, 7, 8, 9, 10}},
	}
	for _, tt := range tests {
		if got := Paginate(many, tt.page, 10).Pages; !reflect.DeepEqual(got, tt.want) {
			t.Errorf("window for page %d = %v, want %v", tt.page, got, tt.want)
		}
	}

	if v := Paginate(items, math.MaxInt, 10); !reflect.DeepEqual(v.Pages, []int{1, 2, 3}) || v.HasNext {
		t.Errorf("page past the end = %+v", v)
	}

	if v := Paginate(nil, 1, 10); !v.Empty || v.Pages != nil || v.TotalPages != 0 {
		t.Errorf("empty = %+v", v)
	}
}

// Смена фильтра возвращает на первую страницу
func TestManagerResetsPage(t *testing.T) {
	svc := NewHistoryService(&fakeAPI{}, staticTokens(""), logger.NewNop())
	m := svc.NewManager()

	items := make([]model.QuizSummary, 25)
	for i := range items {
		items[i] = model.QuizSummary{ID: model.ID(fmt.Sprint(i)), Title: fmt.Sprintf("Quiz %d", i)}
	}
	m.SetItems(items)

	if v := m.Last(); v.Page != 3 || len(v.Items) != 5 {
		t.Fatalf("last = %+v", v)
	}
	if v := m.Next(); v.Page != 3 {
		t.Errorf("next past the end moved to %d", v.Page)
	}

	m.SetSearch("Quiz 1")
	v := m.View()
	if v.Page != 1 || v.Total != 11 {
		t.Errorf("after search = page %d total %d", v.Page, v.Total)
	}
	if v := m.Prev(); v.Page != 1 {
		t.Errorf("prev before the start moved to %d", v.Page)
	}
}

func TestURLs(t *testing.T) {
	ws := model.QuizSummary{ID: "7", Source: model.SourceWorksheet}
	quiz := model.QuizSummary{ID: "8", Source: model.SourceQuiz}

	if ScoresURL(ws) != "/scores.html?worksheet_id=7" || ScoresURL(quiz) != "/scores.html?id=8" {
		t.Errorf("scores = %s %s", ScoresURL(ws), ScoresURL(quiz))
	}
	if AnalyticsURL(ws) != "/performance.html?worksheet_id=7" || AnalyticsURL(quiz) != "/performance.html?id=8" {
		t.Errorf("analytics = %s %s", AnalyticsURL(ws), AnalyticsURL(quiz))
	}
}
