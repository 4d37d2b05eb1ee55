package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Logger обёртка над zap.SugaredLogger с маскированием секретов в парах ключ-значение
type Logger struct {
	sugar *zap.SugaredLogger
}

// New создаёт логгер. mode "prod" включает JSON-вывод, всё остальное считается dev.
func New(mode string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)

	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logger.New: %w", err)
	}
	return &Logger{sugar: z.Sugar()}, nil
}

// NewNop логгер, который ничего не пишет
func NewNop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, mask(keysAndValues)...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, mask(keysAndValues)...)
}

func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, mask(keysAndValues)...)
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, mask(keysAndValues)...)
}

// With возвращает дочерний логгер с постоянными полями
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(mask(keysAndValues)...)}
}

func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

const redacted = "[REDACTED]"

func mask(kv []interface{}) []interface{} {
	if len(kv) < 2 {
		return kv
	}
	out := make([]interface{}, len(kv))
	copy(out, kv)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		if secretKey(key) {
			out[i+1] = redacted
			continue
		}
		if s, ok := out[i+1].(string); ok && looksLikeJWT(s) {
			out[i+1] = redacted
		}
	}
	return out
}

func secretKey(key string) bool {
	k := strings.ToLower(key)
	for _, part := range []string{"token", "authorization", "cookie", "password", "secret"} {
		if strings.Contains(k, part) {
			return true
		}
	}
	return false
}

func looksLikeJWT(s string) bool {
	parts := strings.Split(s, ".")
	return len(parts) == 3 && len(parts[0]) > 10 && len(parts[1]) > 10
}
