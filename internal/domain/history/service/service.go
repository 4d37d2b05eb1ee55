package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/IT-Nick/teachassist/internal/domain/dto"
	"github.com/IT-Nick/teachassist/internal/domain/model"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
	"github.com/IT-Nick/teachassist/pkg/uricomp"
	"golang.org/x/sync/errgroup"
)

const (
	PageSize       = 10
	MaxPagesToShow = 5
)

// API методы сервера для истории квизов
type API interface {
	UserQuizzes(ctx context.Context, token string) ([]model.QuizSummary, error)
	WorksheetSubmissions(ctx context.Context) ([]dto.WorksheetSummary, error)
}

// Tokens источник bearer-токена страницы
type Tokens interface {
	Token(ctx context.Context) (string, bool)
}

// PageView одна страница таблицы
type PageView struct {
	Items      []model.QuizSummary `json:"items"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
	Total      int                 `json:"total"`
	Pages      []int               `json:"pages"`
	HasPrev    bool                `json:"has_prev"`
	HasNext    bool                `json:"has_next"`
	Empty      bool                `json:"empty"`
}

// HistoryService загружает историю квизов и рабочих листов
type HistoryService struct {
	api    API
	tokens Tokens
	log    *logger.Logger
}

// NewHistoryService создает новый экземпляр HistoryService
func NewHistoryService(api API, tokens Tokens, log *logger.Logger) *HistoryService {
	return &HistoryService{api: api, tokens: tokens, log: log}
}

// Load квизы пользователя (только с токеном) и публичные рабочие листы, параллельно.
// Неудача любого из запросов даёт пустую часть списка.
func (s *HistoryService) Load(ctx context.Context) []model.QuizSummary {
	var quizzes, worksheets []model.QuizSummary

	g, gctx := errgroup.WithContext(ctx)

	if token, ok := s.tokens.Token(ctx); ok {
		g.Go(func() error {
			items, err := s.api.UserQuizzes(gctx, token)
			if err != nil {
				s.log.Warn("could not load quizzes", "error", err)
				return nil
			}
			quizzes = make([]model.QuizSummary, len(items))
			for i, q := range items {
				q.Source = model.SourceQuiz
				quizzes[i] = q
			}
			return nil
		})
	}

	g.Go(func() error {
		items, err := s.api.WorksheetSubmissions(gctx)
		if err != nil {
			s.log.Warn("could not load worksheets", "error", err)
			return nil
		}
		worksheets = make([]model.QuizSummary, len(items))
		for i, ws := range items {
			worksheets[i] = FromWorksheet(ws)
		}
		return nil
	})

	_ = g.Wait()

	return append(quizzes, worksheets...)
}

// FromWorksheet рабочий лист в виде строки истории
func FromWorksheet(ws dto.WorksheetSummary) model.QuizSummary {
	return model.QuizSummary{
		ID:              ws.ID,
		Title:           ws.Title,
		Topic:           ws.Subject,
		GradeLevel:      "-",
		QuizMode:        model.ModeWorksheet,
		CreatedAt:       ws.CreatedAt,
		Source:          model.SourceWorksheet,
		SubmissionCount: ws.SubmissionCount,
		AverageScore:    ws.AverageScore,
	}
}

// Manager состояние таблицы истории одной страницы
type Manager struct {
	svc *HistoryService
	now func() time.Time

	mu       sync.Mutex
	all      []model.QuizSummary
	filtered []model.QuizSummary
	filters  Filters
	field    string
	desc     bool
	page     int
}

// NewManager по умолчанию сортировка по дате создания, новые сверху
func (s *HistoryService) NewManager() *Manager {
	return &Manager{
		svc:     s,
		now:     time.Now,
		filters: Filters{Date: DateAll, Type: TypeAll},
		field:   SortCreatedAt,
		desc:    true,
		page:    1,
	}
}

// Init загружает данные заново
func (m *Manager) Init(ctx context.Context) {
	items := m.svc.Load(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.all = items
	m.page = 1
	m.apply()
}

// SetItems подменяет загруженный список
func (m *Manager) SetItems(items []model.QuizSummary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.all = append([]model.QuizSummary(nil), items...)
	m.page = 1
	m.apply()
}

// Любое изменение фильтра возвращает на первую страницу

func (m *Manager) SetSearch(search string) {
	m.update(func() { m.filters.Search = strings.ToLower(search) })
}

func (m *Manager) SetDateRange(r DateRange) {
	m.update(func() { m.filters.Date = r })
}

func (m *Manager) SetType(t string) {
	if t == "" {
		t = TypeAll
	}
	m.update(func() { m.filters.Type = t })
}

// SetSort сортировка по полю и направлению
func (m *Manager) SetSort(field string, desc bool) {
	m.update(func() {
		m.field = SortField(field)
		m.desc = desc
	})
}

// Filters текущие фильтры и сортировка
func (m *Manager) Filters() (Filters, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filters, m.field, m.desc
}

func (m *Manager) update(change func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	change()
	m.page = 1
	m.apply()
}

// apply вызывается под мьютексом
func (m *Manager) apply() {
	m.filtered = Sort(Filter(m.all, m.filters, m.now()), m.field, m.desc)
}

// GoTo переход на страницу. Номер не ограничивается: за последней страницей пусто.
func (m *Manager) GoTo(page int) PageView {
	m.mu.Lock()
	defer m.mu.Unlock()
	if page < 1 {
		page = 1
	}
	m.page = page
	return Paginate(m.filtered, m.page, PageSize)
}

func (m *Manager) Next() PageView {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.page < totalPages(len(m.filtered), PageSize) {
		m.page++
	}
	return Paginate(m.filtered, m.page, PageSize)
}

func (m *Manager) Prev() PageView {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.page > 1 {
		m.page--
	}
	return Paginate(m.filtered, m.page, PageSize)
}

// Last переход на последнюю страницу
func (m *Manager) Last() PageView {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n := totalPages(len(m.filtered), PageSize); n > 0 {
		m.page = n
	}
	return Paginate(m.filtered, m.page, PageSize)
}

// View текущая страница
func (m *Manager) View() PageView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Paginate(m.filtered, m.page, PageSize)
}

// Paginate страница page (с 1) и окно из не более чем MaxPagesToShow номеров
func Paginate(items []model.QuizSummary, page, size int) PageView {
	if size <= 0 {
		size = PageSize
	}
	if page < 1 {
		page = 1
	}
	total := totalPages(len(items), size)

	v := PageView{
		Items:      []model.QuizSummary{},
		Page:       page,
		TotalPages: total,
		Total:      len(items),
		Empty:      len(items) == 0,
		HasPrev:    page > 1,
		HasNext:    page < total,
	}

	// страницы после последней пустые
	if page <= total {
		start := (page - 1) * size
		end := min(start+size, len(items))
		v.Items = append(v.Items, items[start:end]...)
	}

	if total > 0 {
		first := max(1, min(page, total)-MaxPagesToShow/2)
		last := min(total, first+MaxPagesToShow-1)
		if last-first+1 < MaxPagesToShow {
			first = max(1, last-MaxPagesToShow+1)
		}
		for p := first; p <= last; p++ {
			v.Pages = append(v.Pages, p)
		}
	}
	return v
}

func totalPages(n, size int) int {
	return (n + size - 1) / size
}

// ScoresURL страница результатов записи
func ScoresURL(q model.QuizSummary) string {
	return "/scores.html?" + idParam(q)
}

// AnalyticsURL страница аналитики записи
func AnalyticsURL(q model.QuizSummary) string {
	return "/performance.html?" + idParam(q)
}

func idParam(q model.QuizSummary) string {
	if q.Source == model.SourceWorksheet {
		return "worksheet_id=" + uricomp.Encode(q.ID.String())
	}
	return "id=" + uricomp.Encode(q.ID.String())
}
