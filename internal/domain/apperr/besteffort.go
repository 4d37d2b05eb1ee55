package apperr

// Logger минимальный интерфейс логгера для BestEffort
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// BestEffort результат второстепенного вызова (зеркало в сервер, метаданные команды).
// Неудача только логируется и никогда не откатывает основное действие.
type BestEffort struct {
	Op  string
	Err error
}

// Try оборачивает ошибку второстепенного вызова
func Try(op string, err error) BestEffort {
	return BestEffort{Op: op, Err: err}
}

// Skipped вызов не выполнялся по понятной причине (нет токена, нет id отправки)
func Skipped(op, reason string) BestEffort {
	return BestEffort{Op: op, Err: skipError(reason)}
}

func (b BestEffort) OK() bool { return b.Err == nil }

// Log пишет результат в лог и возвращает его же
func (b BestEffort) Log(l Logger) BestEffort {
	if l == nil {
		return b
	}
	if b.Err != nil {
		l.Warn("best-effort call failed", "op", b.Op, "error", b.Err)
		return b
	}
	l.Debug("best-effort call succeeded", "op", b.Op)
	return b
}

type skipError string

func (s skipError) Error() string { return string(s) }
