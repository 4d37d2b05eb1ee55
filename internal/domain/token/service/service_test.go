package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
	"github.com/IT-Nick/teachassist/internal/infra/storage"
	"github.com/golang-jwt/jwt/v5"
)

func TestTokenPriority(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		local   string
		session string
		cookie  string
		want    string
		found   bool
	}{
		{"local wins", "L", "S", "C", "L", true},
		{"session before cookie", "", "S", "C", "S", true},
		{"cookie last", "", "", "C", "C", true},
		{"blank values skipped", "  ", "", "", "", false},
		{"absent", "", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := storage.NewMemoryBrowser()
			if tt.local != "" {
				_ = b.Local.Set(ctx, storage.TokenKey, tt.local)
			}
			if tt.session != "" {
				_ = b.Session.Set(ctx, storage.TokenKey, tt.session)
			}
			if tt.cookie != "" {
				b.Cookies = storage.NewStaticCookies(map[string]string{"token": tt.cookie})
			}

			got, ok := NewTokenService(b, logger.NewNop()).Token(ctx)
			if got != tt.want || ok != tt.found {
				t.Errorf("Token() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.found)
			}
		})
	}
}

// Токен сбрасывается только на 401
func TestClearIfUnauthorized(t *testing.T) {
	ctx := context.Background()

	b := storage.NewMemoryBrowser()
	b.Cookies = storage.NewStaticCookies(map[string]string{"token": "C"})
	_ = b.Local.Set(ctx, storage.TokenKey, "L")
	_ = b.Session.Set(ctx, storage.TokenKey, "S")
	s := NewTokenService(b, logger.NewNop())

	if s.ClearIfUnauthorized(ctx, apperr.Network("op", 500, "boom", nil)) {
		t.Fatal("500 must not clear the token")
	}
	if s.ClearIfUnauthorized(ctx, errors.New("plain")) {
		t.Fatal("plain error must not clear the token")
	}
	if _, ok := s.Token(ctx); !ok {
		t.Fatal("token should still be present")
	}

	if !s.ClearIfUnauthorized(ctx, apperr.Auth("op", 401, "denied", nil)) {
		t.Fatal("401 should clear the token")
	}
	if tok, ok := s.Token(ctx); ok {
		t.Errorf("token still present: %q", tok)
	}
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	s := NewTokenService(storage.NewMemoryBrowser(), logger.NewNop())

	if err := s.Save(ctx, " "); apperr.KindOf(err) != apperr.KindUserInput {
		t.Errorf("empty token: err = %v", err)
	}
	if err := s.Save(ctx, "abc"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if tok, _ := s.Token(ctx); tok != "abc" {
		t.Errorf("Token() = %q", tok)
	}
}

func TestInspect(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	sign := func(claims jwt.MapClaims) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return tok
	}

	t.Run("valid", func(t *testing.T) {
		info := Inspect(sign(jwt.MapClaims{"sub": "teacher-1", "exp": now.Add(time.Hour).Unix()}), now)
		if info.Subject != "teacher-1" || info.Expired {
			t.Errorf("info = %+v", info)
		}
	})

	t.Run("expired", func(t *testing.T) {
		info := Inspect(sign(jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), now)
		if !info.Expired {
			t.Errorf("info = %+v", info)
		}
	})

	t.Run("opaque token", func(t *testing.T) {
		if info := Inspect("not-a-jwt", now); info != (Info{}) {
			t.Errorf("info = %+v", info)
		}
	})
}
