package storage

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/IT-Nick/teachassist/internal/infra/config"
)

// exerciseStore общий сценарий для всех реализаций Store.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get отсутствующего ключа: ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "token", "abc"); err != nil {
		t.Fatalf("Set вернул ошибку: %v", err)
	}
	v, ok, err := s.Get(ctx, "token")
	if err != nil || !ok || v != "abc" {
		t.Fatalf("Get = %q, %v, %v", v, ok, err)
	}
	if err := s.Set(ctx, "token", "def"); err != nil {
		t.Fatalf("повторный Set вернул ошибку: %v", err)
	}
	if v, _, _ := s.Get(ctx, "token"); v != "def" {
		t.Errorf("значение не перезаписано: %q", v)
	}
	if err := s.Remove(ctx, "token"); err != nil {
		t.Fatalf("Remove вернул ошибку: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "token"); ok {
		t.Error("ключ остался после Remove")
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	s, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore вернул ошибку: %v", err)
	}
	exerciseStore(t, s)

	// значения переживают пересоздание хранилища
	if err := s.Set(context.Background(), "quiz_1_teams", `[{"name":"Team A","members":[]}]`); err != nil {
		t.Fatalf("Set вернул ошибку: %v", err)
	}
	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore вернул ошибку: %v", err)
	}
	if _, ok, _ := reopened.Get(context.Background(), "quiz_1_teams"); !ok {
		t.Error("значение потеряно после повторного открытия файла")
	}
}

func TestNamespacedIsolation(t *testing.T) {
	ctx := context.Background()
	shared := NewMemoryStore()
	a := Namespaced(shared, "chat:1:")
	b := Namespaced(shared, "chat:2:")

	exerciseStore(t, a)
	if err := a.Set(ctx, "token", "one"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := b.Get(ctx, "token"); ok {
		t.Error("страницы видят ключи друг друга")
	}
	keys := shared.Keys()
	if len(keys) != 1 || keys[0] != "chat:1:token" {
		t.Errorf("неожиданные ключи: %v", keys)
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	type team struct {
		Name    string   `json:"name"`
		Members []string `json:"members"`
	}
	in := []team{{Name: "Team A", Members: []string{"Sam"}}}
	if err := SetJSON(ctx, s, QuizTeamsKey("7"), in); err != nil {
		t.Fatalf("SetJSON вернул ошибку: %v", err)
	}
	raw, _, _ := s.Get(ctx, "quiz_7_teams")
	if raw != `[{"name":"Team A","members":["Sam"]}]` {
		t.Errorf("неожиданный JSON: %s", raw)
	}

	var out []team
	ok, err := GetJSON(ctx, s, QuizTeamsKey("7"), &out)
	if err != nil || !ok || len(out) != 1 || out[0].Members[0] != "Sam" {
		t.Fatalf("GetJSON = %v, %v, %+v", ok, err, out)
	}

	_ = s.Set(ctx, "broken", "{not json")
	if _, err := GetJSON(ctx, s, "broken", &out); err == nil {
		t.Error("ожидалась ошибка разбора")
	}
}

func TestOpenAndPage(t *testing.T) {
	b, err := Open(context.Background(), config.Storage{Local: config.StorageMemory, Session: config.StorageMemory}, nil, nil)
	if err != nil {
		t.Fatalf("Open вернул ошибку: %v", err)
	}
	page := b.Page("http:", nil)
	if err := page.Local.Set(context.Background(), TokenKey, "x"); err != nil {
		t.Fatal(err)
	}
	if _, ok := page.Cookies.Cookie(TokenKey); ok {
		t.Error("пустой jar не должен содержать cookie")
	}

	if _, err := Open(context.Background(), config.Storage{Local: config.StoragePostgres}, nil, nil); err == nil {
		t.Error("postgres без пула должен давать ошибку")
	}
}

func TestRequestCookies(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Cookie", "token=abc; theme=dark")
	jar := RequestCookies(r)
	if v, ok := jar.Cookie("token"); !ok || v != "abc" {
		t.Errorf("cookie token = %q, %v", v, ok)
	}
	jar.ClearCookie("token")
	if _, ok := jar.Cookie("token"); ok {
		t.Error("cookie не удалена")
	}
}

func TestKeys(t *testing.T) {
	if FlashcardQuizKey("12") != "flashcard_quiz_12" {
		t.Error("FlashcardQuizKey")
	}
	if SelectedTeamKey("5") != "quiz_5_selected_team" {
		t.Error("SelectedTeamKey")
	}
}
