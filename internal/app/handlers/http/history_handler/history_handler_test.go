package history_handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/IT-Nick/teachassist/internal/app/session"
	historyService "github.com/IT-Nick/teachassist/internal/domain/history/service"
	"github.com/IT-Nick/teachassist/internal/infra/apiclient"
	"github.com/IT-Nick/teachassist/internal/infra/config"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
	"github.com/IT-Nick/teachassist/internal/infra/storage"
)

const upstream = `{"quizzes":[
	{"id":1,"title":"Fractions","topic":"Math","quiz_mode":"competition"},
	{"id":2,"title":"Cells","topic":"Biology"},
	{"id":3,"title":"Algebra","topic":"Math"}
]}`

func newPages(t *testing.T, sawToken *string) *session.Pages {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user/quizzes":
			*sawToken = r.Header.Get("Authorization")
			w.Write([]byte(upstream))
		case "/api/worksheet-submissions":
			w.Write([]byte(`{"worksheets":[{"id":"w1","title":"Math Worksheet","subject":"Math"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	log := logger.NewNop()
	api := apiclient.New(config.API{BaseURL: srv.URL, Timeout: 2 * time.Second, FlashcardTimeout: 2 * time.Second}, log)
	backends := &storage.Backends{Local: storage.NewMemoryStore(), Session: storage.NewMemoryStore()}
	return session.NewPages(session.Deps{API: api, Backends: backends, Log: log})
}

func get(t *testing.T, h http.Handler, target string, token string) (*httptest.ResponseRecorder, historyService.PageView) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var view historyService.PageView
	if rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
			t.Fatal(err)
		}
	}
	return rec, view
}

func TestHistoryFilters(t *testing.T) {
	var sawToken string
	h := NewHistoryHandler(newPages(t, &sawToken))

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"all", "/quizzes/history", nil},
		{"search", "/quizzes/history?search=math", nil},
		{"type", "/quizzes/history?type=competition", []string{"1"}},
		{"worksheets", "/quizzes/history?type=worksheet", []string{"w1"}},
		{"sort by title asc", "/quizzes/history?type=relaxed&sort=title&dir=asc", []string{"3", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, view := get(t, h, tt.target, "tok")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if tt.want == nil {
				return
			}
			var got []string
			for _, q := range view.Items {
				got = append(got, q.ID.String())
			}
			if len(got) != len(tt.want) {
				t.Fatalf("items = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("items = %v, want %v", got, tt.want)
				}
			}
		})
	}

	if sawToken != "Bearer tok" {
		t.Errorf("upstream saw %q", sawToken)
	}

	if _, view := get(t, h, "/quizzes/history", "tok"); view.Total != 4 {
		t.Errorf("total = %d", view.Total)
	}
	if _, view := get(t, h, "/quizzes/history?search=math", "tok"); view.Total != 3 {
		t.Errorf("search total = %d", view.Total)
	}
}

func TestHistoryWithoutToken(t *testing.T) {
	var sawToken string
	h := NewHistoryHandler(newPages(t, &sawToken))

	rec, view := get(t, h, "/quizzes/history", "")
	if rec.Code != http.StatusOK || view.Total != 1 || sawToken != "" {
		t.Errorf("status = %d total = %d token = %q", rec.Code, view.Total, sawToken)
	}
}

func TestHistoryBadPage(t *testing.T) {
	var sawToken string
	h := NewHistoryHandler(newPages(t, &sawToken))

	if rec, _ := get(t, h, "/quizzes/history?page=zero", "tok"); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHistoryPagePastTheEnd(t *testing.T) {
	var sawToken string
	h := NewHistoryHandler(newPages(t, &sawToken))

	rec, view := get(t, h, "/quizzes/history?page=9223372036854775807", "tok")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(view.Items) != 0 || view.Total != 4 || view.HasNext {
		t.Errorf("view = %+v", view)
	}
}
