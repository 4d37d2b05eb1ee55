package apperr

import (
	"errors"
	"fmt"
)

// Kind классифицирует ошибки, которые видит пользователь
type Kind int

const (
	KindUnknown Kind = iota
	// KindUserInput не заполнено обязательное поле, запрос в сеть не отправлялся
	KindUserInput
	// KindAuth нет токена или сервер его отверг
	KindAuth
	// KindNetwork сбой транспорта или не-2xx статус
	KindNetwork
	// KindTimeout запрос прерван по дедлайну
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindUserInput:
		return "user_input"
	case KindAuth:
		return "auth"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error ошибка операции с текстом для пользователя
type Error struct {
	Kind    Kind
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func UserInput(op, message string) error {
	return &Error{Kind: KindUserInput, Op: op, Message: message}
}

func Auth(op string, status int, message string, err error) error {
	return &Error{Kind: KindAuth, Op: op, Status: status, Message: message, Err: err}
}

func Network(op string, status int, message string, err error) error {
	return &Error{Kind: KindNetwork, Op: op, Status: status, Message: message, Err: err}
}

func Timeout(op, message string, err error) error {
	return &Error{Kind: KindTimeout, Op: op, Message: message, Err: err}
}

// KindOf возвращает вид ошибки, KindUnknown для чужих ошибок
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusOf возвращает HTTP-статус, с которым ответил сервер, или 0
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// IsUnauthorized сообщает, что сервер ответил 401
func IsUnauthorized(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindAuth && e.Status == 401
}

// Retryable ошибки, для которых пользователю показывается кнопка повтора
func Retryable(err error) bool {
	k := KindOf(err)
	return k == KindNetwork || k == KindTimeout
}

// UserMessage текст, который можно показать пользователю
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Message != "" {
			return e.Message
		}
		if e.Err != nil {
			return e.Err.Error()
		}
	}
	return err.Error()
}
