package service

import (
	"context"
	"strings"
	"time"

	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
	"github.com/IT-Nick/teachassist/internal/infra/storage"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService ищет bearer-токен страницы: local, затем session, затем cookie
type TokenService struct {
	browser *storage.Browser
	log     *logger.Logger
}

// NewTokenService создает новый экземпляр TokenService
func NewTokenService(browser *storage.Browser, log *logger.Logger) *TokenService {
	return &TokenService{browser: browser, log: log}
}

// Token возвращает первый непустой токен. Ошибки хранилища считаются отсутствием значения.
func (s *TokenService) Token(ctx context.Context) (string, bool) {
	for _, store := range []storage.Store{s.browser.Local, s.browser.Session} {
		if store == nil {
			continue
		}
		v, ok, err := store.Get(ctx, storage.TokenKey)
		if err != nil {
			s.log.Warn("failed to read token", "error", err)
			continue
		}
		if ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	if s.browser.Cookies != nil {
		if v, ok := s.browser.Cookies.Cookie(storage.TokenKey); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// Save кладёт токен в local storage (аналог входа на сайте)
func (s *TokenService) Save(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperr.UserInput("token.Save", "Token is empty")
	}
	if err := s.browser.Local.Set(ctx, storage.TokenKey, token); err != nil {
		return apperr.Network("token.Save", 0, "Failed to save token", err)
	}
	return nil
}

// Clear удаляет токен из всех мест
func (s *TokenService) Clear(ctx context.Context) {
	for _, store := range []storage.Store{s.browser.Local, s.browser.Session} {
		if store == nil {
			continue
		}
		if err := store.Remove(ctx, storage.TokenKey); err != nil {
			s.log.Warn("failed to remove token", "error", err)
		}
	}
	if s.browser.Cookies != nil {
		s.browser.Cookies.ClearCookie(storage.TokenKey)
	}
}

// ClearIfUnauthorized сбрасывает токен, если сервер ответил 401
func (s *TokenService) ClearIfUnauthorized(ctx context.Context, err error) bool {
	if !apperr.IsUnauthorized(err) {
		return false
	}
	s.Clear(ctx)
	return true
}

// Info то, что удалось прочитать из JWT без проверки подписи
type Info struct {
	Subject   string
	ExpiresAt time.Time
	Expired   bool
}

// Inspect разбирает claims токена. Не-JWT токены дают пустой Info.
func Inspect(token string, now time.Time) Info {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Info{}
	}

	var info Info
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
		info.Expired = !now.Before(exp.Time)
	}
	return info
}
