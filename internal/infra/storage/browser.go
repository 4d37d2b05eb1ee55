package storage

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/IT-Nick/teachassist/internal/infra/config"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

// Ключи, которые страницы кладут в хранилище
const (
	TokenKey                = "token"
	WorksheetSubmissionsKey = "worksheetSubmissions"
	CurrentFlashcardSetKey  = "current_flashcard_set_id"
)

func FlashcardQuizKey(setID string) string { return "flashcard_quiz_" + setID }
func QuizTeamsKey(quizID string) string     { return "quiz_" + quizID + "_teams" }
func SelectedTeamKey(quizID string) string  { return "quiz_" + quizID + "_selected_team" }

// CookieJar cookie текущей страницы
type CookieJar interface {
	Cookie(name string) (string, bool)
	ClearCookie(name string)
}

// Browser хранилища одной страницы: local, session и cookie
type Browser struct {
	Local   Store
	Session Store
	Cookies CookieJar
}

// StaticCookies cookie в памяти. Телеграм-чаты cookie не имеют, поэтому там jar пустой.
type StaticCookies struct {
	mu     sync.Mutex
	values map[string]string
}

func NewStaticCookies(values map[string]string) *StaticCookies {
	c := &StaticCookies{values: make(map[string]string, len(values))}
	for k, v := range values {
		c.values[k] = v
	}
	return c
}

func (c *StaticCookies) Cookie(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[name]
	return v, ok
}

func (c *StaticCookies) ClearCookie(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, name)
}

// RequestCookies cookie входящего HTTP-запроса
func RequestCookies(r *http.Request) *StaticCookies {
	values := make(map[string]string)
	for _, c := range r.Cookies() {
		values[c.Name] = c.Value
	}
	return NewStaticCookies(values)
}

// Backends общие хранилища процесса, из которых нарезаются страницы
type Backends struct {
	Local   Store
	Session Store
}

// Open создаёт хранилища по конфигурации. db и rdb нужны только для своих бэкендов.
func Open(ctx context.Context, cfg config.Storage, db *pgxpool.Pool, rdb *goredis.Client) (*Backends, error) {
	const op = "storage.Open"

	b := &Backends{}
	switch cfg.Local {
	case config.StorageJSON:
		s, err := NewJSONStore(cfg.JSONFile)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		b.Local = s
	case config.StoragePostgres:
		if db == nil {
			return nil, fmt.Errorf("%s: postgres storage requires a database pool", op)
		}
		s, err := NewPostgresStore(ctx, db, "local")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		b.Local = s
	default:
		b.Local = NewMemoryStore()
	}

	switch cfg.Session {
	case config.StorageRedis:
		if rdb == nil {
			return nil, fmt.Errorf("%s: redis storage requires a redis client", op)
		}
		b.Session = NewRedisStore(rdb, "session:", cfg.SessionTTL)
	default:
		b.Session = NewMemoryStore()
	}
	return b, nil
}

// Page браузер отдельной страницы поверх общих бэкендов
func (b *Backends) Page(prefix string, cookies CookieJar) *Browser {
	if cookies == nil {
		cookies = NewStaticCookies(nil)
	}
	return &Browser{
		Local:   Namespaced(b.Local, prefix),
		Session: Namespaced(b.Session, prefix),
		Cookies: cookies,
	}
}

// NewMemoryBrowser полностью in-memory браузер, удобен в тестах
func NewMemoryBrowser() *Browser {
	return &Browser{
		Local:   NewMemoryStore(),
		Session: NewMemoryStore(),
		Cookies: NewStaticCookies(nil),
	}
}
