package service

import (
	"cmp"
	"sort"
	"strings"
	"time"

	"github.com/IT-Nick/teachassist/internal/domain/model"
	"github.com/jinzhu/now"
)

// DateRange фильтр по дате создания
type DateRange string

const (
	DateAll   DateRange = "all"
	DateToday DateRange = "today"
	DateWeek  DateRange = "week"
	DateMonth DateRange = "month"
)

// TypeAll фильтр по режиму выключен
const TypeAll = "all"

// Поля, по которым можно сортировать таблицу
const (
	SortCreatedAt       = "created_at"
	SortTitle           = "title"
	SortTopic           = "topic"
	SortGradeLevel      = "grade_level"
	SortTimeLimit       = "time_limit"
	SortQuizMode        = "quiz_mode"
	SortSource          = "source"
	SortSubmissionCount = "submission_count"
	SortAverageScore    = "average_score"
)

// Filters активные фильтры таблицы
type Filters struct {
	Search string
	Date   DateRange
	Type   string
}

// ParseDateRange неизвестные значения означают "all"
func ParseDateRange(s string) DateRange {
	switch r := DateRange(strings.ToLower(strings.TrimSpace(s))); r {
	case DateToday, DateWeek, DateMonth:
		return r
	}
	return DateAll
}

// Filter записи, которые проходят все фильтры одновременно. Исходный срез не меняется.
func Filter(items []model.QuizSummary, f Filters, current time.Time) []model.QuizSummary {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	inRange := dateMatcher(f.Date, current)

	out := make([]model.QuizSummary, 0, len(items))
	for _, q := range items {
		if search != "" && !strings.Contains(strings.ToLower(q.Title), search) && !strings.Contains(strings.ToLower(q.Topic), search) {
			continue
		}
		if !inRange(q.CreatedAt) {
			continue
		}
		if f.Type != "" && f.Type != TypeAll && string(q.EffectiveMode()) != f.Type {
			continue
		}
		out = append(out, q)
	}
	return out
}

func dateMatcher(r DateRange, current time.Time) func(model.Timestamp) bool {
	// неделя начинается в воскресенье
	cfg := &now.Config{WeekStartDay: time.Sunday, TimeLocation: current.Location()}
	n := cfg.With(current)

	var from, to time.Time
	switch r {
	case DateToday:
		from, to = n.BeginningOfDay(), n.EndOfDay()
	case DateWeek:
		from, to = n.BeginningOfWeek(), n.EndOfWeek()
	case DateMonth:
		from, to = n.BeginningOfMonth(), n.EndOfMonth()
	default:
		return func(model.Timestamp) bool { return true }
	}

	return func(ts model.Timestamp) bool {
		if ts.IsZero() {
			return false
		}
		t := ts.In(current.Location())
		return !t.Before(from) && !t.After(to)
	}
}

// Sort устойчивая сортировка копии по полю. Равные записи сохраняют порядок.
func Sort(items []model.QuizSummary, field string, desc bool) []model.QuizSummary {
	out := append([]model.QuizSummary(nil), items...)
	compare := comparator(field)
	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func comparator(field string) func(a, b model.QuizSummary) int {
	switch field {
	case SortTitle:
		return func(a, b model.QuizSummary) int { return cmp.Compare(a.Title, b.Title) }
	case SortTopic:
		return func(a, b model.QuizSummary) int { return cmp.Compare(a.Topic, b.Topic) }
	case SortGradeLevel:
		return func(a, b model.QuizSummary) int { return cmp.Compare(a.GradeLevel, b.GradeLevel) }
	case SortTimeLimit:
		return func(a, b model.QuizSummary) int { return cmp.Compare(intOrZero(a.TimeLimit), intOrZero(b.TimeLimit)) }
	case SortQuizMode:
		return func(a, b model.QuizSummary) int { return cmp.Compare(a.QuizMode, b.QuizMode) }
	case SortSource:
		return func(a, b model.QuizSummary) int { return cmp.Compare(a.Source, b.Source) }
	case SortSubmissionCount:
		return func(a, b model.QuizSummary) int { return cmp.Compare(a.SubmissionCount, b.SubmissionCount) }
	case SortAverageScore:
		return func(a, b model.QuizSummary) int { return cmp.Compare(a.AverageScore, b.AverageScore) }
	default:
		return func(a, b model.QuizSummary) int { return a.CreatedAt.Compare(b.CreatedAt.Time) }
	}
}

// SortField неизвестные поля заменяются на created_at
func SortField(field string) string {
	switch field {
	case SortTitle, SortTopic, SortGradeLevel, SortTimeLimit, SortQuizMode, SortSource, SortSubmissionCount, SortAverageScore:
		return field
	}
	return SortCreatedAt
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
