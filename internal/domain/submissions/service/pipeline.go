package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/IT-Nick/teachassist/internal/domain/apperr"
)

// Hook действие после успешной отправки результатов. Ошибка хука не влияет на отправку.
type Hook func(ctx context.Context, res Result) apperr.BestEffort

// Pipeline упорядоченный список хуков. Повторная регистрация под тем же именем ничего не меняет.
type Pipeline struct {
	mu    sync.Mutex
	order []string
	hooks map[string]Hook
}

func NewPipeline() *Pipeline {
	return &Pipeline{hooks: make(map[string]Hook)}
}

// Register добавляет хук в конец списка. false, если имя уже занято.
func (p *Pipeline) Register(name string, hook Hook) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.hooks[name]; ok {
		return false
	}
	p.hooks[name] = hook
	p.order = append(p.order, name)
	return true
}

// Unregister убирает хук. false, если его не было.
func (p *Pipeline) Unregister(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.hooks[name]; !ok {
		return false
	}
	delete(p.hooks, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return true
}

// Names имена хуков в порядке вызова
func (p *Pipeline) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.order...)
}

// Run вызывает хуки по порядку и логирует каждый результат
func (p *Pipeline) Run(ctx context.Context, res Result, log apperr.Logger) []apperr.BestEffort {
	p.mu.Lock()
	names := append([]string(nil), p.order...)
	hooks := make([]Hook, len(names))
	for i, name := range names {
		hooks[i] = p.hooks[name]
	}
	p.mu.Unlock()

	results := make([]apperr.BestEffort, 0, len(hooks))
	for i, hook := range hooks {
		results = append(results, runHook(ctx, names[i], hook, res).Log(log))
	}
	return results
}

func runHook(ctx context.Context, name string, hook Hook, res Result) (out apperr.BestEffort) {
	defer func() {
		if r := recover(); r != nil {
			out = apperr.Try(name, fmt.Errorf("hook panicked: %v", r))
		}
	}()
	out = hook(ctx, res)
	if out.Op == "" {
		out.Op = name
	}
	return out
}
