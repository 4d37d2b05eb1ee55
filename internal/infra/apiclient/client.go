package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/IT-Nick/teachassist/internal/domain/apperr"
	"github.com/IT-Nick/teachassist/internal/infra/config"
	"github.com/IT-Nick/teachassist/internal/infra/logger"
	"github.com/go-resty/resty/v2"
)

// Тексты ошибок, которые показываются пользователю как есть
const (
	MsgTimeout      = "Request timed out. The server may be overloaded. Please try again later."
	MsgUnauthorized = "Authentication failed. Please log in again."
	MsgTooMany      = "Too many requests. Please wait a moment before trying again."
	MsgServerError  = "The server is currently experiencing technical difficulties. Please try again later."
	MsgUnreachable  = "Could not reach the server. Please check your connection and try again."
)

// Client клиент удалённого API Teacher Assistance
type Client struct {
	rc               *resty.Client
	log              *logger.Logger
	timeout          time.Duration
	flashcardTimeout time.Duration
}

// New создаёт клиента. Таймауты накладываются на контекст каждого запроса,
// поэтому у генерации карточек может быть собственный дедлайн.
func New(cfg config.API, log *logger.Logger) *Client {
	log = log.With("component", "apiclient")

	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{log})

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	flashcardTimeout := cfg.FlashcardTimeout
	if flashcardTimeout <= 0 {
		flashcardTimeout = 20 * time.Second
	}

	return &Client{rc: rc, log: log, timeout: timeout, flashcardTimeout: flashcardTimeout}
}

// request готовит запрос. Пустой токен означает анонимный вызов.
func (c *Client) request(ctx context.Context, token string) *resty.Request {
	r := c.rc.R().SetContext(ctx)
	if token != "" {
		r.SetAuthToken(token)
	}
	return r
}

// call выполняет запрос с дедлайном и раскладывает JSON-ответ в out (если out != nil)
func (c *Client) call(ctx context.Context, op string, timeout time.Duration, send func(ctx context.Context) (*resty.Response, error), out any) (*resty.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := send(ctx)
	if err != nil {
		return resp, transportError(op, err)
	}
	if err := statusError(op, resp.StatusCode()); err != nil {
		c.log.Debug("api call failed", "op", op, "status", resp.StatusCode())
		return resp, err
	}
	if out != nil {
		if err := decode(op, resp, out); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

// decode раскладывает тело ответа. Content-Type не проверяется: сервер не всегда его ставит.
func decode(op string, resp *resty.Response, out any) error {
	if len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return apperr.Network(op, resp.StatusCode(), "Invalid response received from server", err)
	}
	return nil
}

func transportError(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperr.Timeout(op, MsgTimeout, err)
	}
	return apperr.Network(op, 0, MsgUnreachable, err)
}

// statusError переводит HTTP-статус в ошибку
func statusError(op string, status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return apperr.Auth(op, status, MsgUnauthorized, nil)
	case status == http.StatusTooManyRequests:
		return apperr.Network(op, status, MsgTooMany, nil)
	case status >= 500:
		return apperr.Network(op, status, MsgServerError, nil)
	default:
		return apperr.Network(op, status, fmt.Sprintf("Request failed with status: %d", status), nil)
	}
}

type restyLogger struct {
	log *logger.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, v...))
}
