package timer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/IT-Nick/teachassist/internal/infra/logger"
)

// UpdateInterval как часто обновляется сообщение с таймером
const UpdateInterval = 5 * time.Second

// Countdown обратный отсчёт квиза. Каждые interval вызывает onTick с оставшимся
// временем, по истечении вызывает onExpire ровно один раз.
// Контекст onExpire не отменяется вызовом Stop.
type Countdown struct {
	deadline time.Time
	interval time.Duration
	onTick   func(ctx context.Context, left time.Duration) error
	onExpire func(ctx context.Context)
	log      *logger.Logger
	now      func() time.Time

	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewCountdown создает новый экземпляр Countdown
func NewCountdown(limit, interval time.Duration, onTick func(ctx context.Context, left time.Duration) error, onExpire func(ctx context.Context), log *logger.Logger) *Countdown {
	if interval <= 0 {
		interval = UpdateInterval
	}
	return &Countdown{
		deadline: time.Now().Add(limit),
		interval: interval,
		onTick:   onTick,
		onExpire: onExpire,
		log:      log,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start запускает отсчёт в отдельной горутине
func (c *Countdown) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	go c.run(ctx)
}

func (c *Countdown) run(ctx context.Context) {
	defer close(c.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.Debug("countdown canceled")
			return
		case <-ticker.C:
			left := c.deadline.Sub(c.now())
			if left <= 0 {
				if c.markStopped() {
					c.onExpire(context.WithoutCancel(ctx))
				}
				return
			}
			if c.onTick == nil {
				continue
			}
			if err := c.onTick(ctx, left); err != nil {
				c.log.Warn("failed to update timer message", "error", err)
			}
		}
	}
}

func (c *Countdown) markStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return false
	}
	c.stopped = true
	return true
}

// Stop останавливает отсчёт до истечения. Повторные вызовы ничего не делают.
// Возвращает false, если время уже вышло.
func (c *Countdown) Stop() bool {
	stopped := c.markStopped()
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	return stopped
}

// Done закрывается, когда горутина отсчёта завершилась
func (c *Countdown) Done() <-chan struct{} {
	return c.done
}

// SecondsLeft оставшиеся секунды, не меньше нуля
func (c *Countdown) SecondsLeft() int {
	left := int(c.deadline.Sub(c.now()).Seconds())
	if left < 0 {
		return 0
	}
	return left
}

// Format оставшееся время в виде текста для сообщения
func Format(left time.Duration, question, total int) string {
	if left < 0 {
		left = 0
	}
	minutes := int(left.Minutes())
	seconds := int(left.Seconds()) % 60
	return fmt.Sprintf("⏰ Time left: %02d:%02d, question %d/%d", minutes, seconds, question, total)
}
