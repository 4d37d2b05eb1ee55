package middleware

import (
	"errors"
	"fmt"

	"github.com/IT-Nick/teachassist/internal/infra/logger"
	"gopkg.in/telebot.v4"
)

// Recover перехватывает панику в обработчике, пишет её в лог и возвращает как ошибку
func Recover(log *logger.Logger) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					switch x := r.(type) {
					case error:
						err = x
					case string:
						err = errors.New(x)
					default:
						err = fmt.Errorf("panic: %v", x)
					}
					log.Error("recovered from panic in telegram handler", "error", err)
				}
			}()
			return next(c)
		}
	}
}

// Logger пишет в debug-лог краткое описание входящего обновления
func Logger(log *logger.Logger) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			kv := []interface{}{"action", Action(c)}
			if chat := c.Chat(); chat != nil {
				kv = append(kv, "chat_id", chat.ID)
			}
			log.Debug("telegram update", kv...)

			err := next(c)
			if err != nil {
				log.Warn("telegram handler failed", append(kv, "error", err)...)
			}
			return err
		}
	}
}

// Action тип обновления без пользовательского текста: токены и ответы в лог не попадают
func Action(c telebot.Context) string {
	if cb := c.Callback(); cb != nil {
		return "callback:" + cb.Unique
	}
	if msg := c.Message(); msg != nil {
		if len(msg.Text) > 0 && msg.Text[0] == '/' {
			cmd := msg.Text
			for i, r := range cmd {
				if r == ' ' || r == '@' {
					cmd = cmd[:i]
					break
				}
			}
			return "command:" + cmd
		}
		return "message"
	}
	return "unknown"
}
