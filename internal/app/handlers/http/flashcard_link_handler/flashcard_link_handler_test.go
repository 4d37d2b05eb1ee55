package flashcard_link_handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	shareService "github.com/IT-Nick/teachassist/internal/domain/share/service"
)

func TestFlashcardLink(t *testing.T) {
	h := NewFlashcardLinkHandler(shareService.NewShareService("https://example.org"))

	tests := []struct {
		name   string
		body   string
		status int
		prefix string
	}{
		{"defaults", `{"set_id":"42"}`, http.StatusOK, "https://example.org/flashcards.html?id=42&fb=%23ffffff"},
		{"with quiz", `{"set_id":"42","quiz_id":"7","appearance":{"showSnowflakes":true}}`, http.StatusOK, "https://example.org/flashcards.html?id=42&quiz=7&"},
		{"missing set", `{"quiz_id":"7"}`, http.StatusBadRequest, ""},
		{"malformed", `[`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/flashcards/link", strings.NewReader(tt.body)))
			if rec.Code != tt.status {
				t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
			}
			if tt.prefix == "" {
				return
			}
			var resp FlashcardLinkResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(resp.URL, tt.prefix) {
				t.Errorf("url = %s", resp.URL)
			}
		})
	}
}
