package timer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IT-Nick/teachassist/internal/infra/logger"
)

func TestCountdownExpires(t *testing.T) {
	var ticks, expired atomic.Int32
	c := NewCountdown(60*time.Millisecond, 10*time.Millisecond,
		func(context.Context, time.Duration) error { ticks.Add(1); return nil },
		func(context.Context) { expired.Add(1) },
		logger.NewNop())
	c.Start(context.Background())

	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("countdown did not finish")
	}
	if expired.Load() != 1 || ticks.Load() == 0 {
		t.Errorf("ticks = %d expired = %d", ticks.Load(), expired.Load())
	}
	if c.Stop() {
		t.Error("Stop after expiry must report false")
	}
	if c.SecondsLeft() != 0 {
		t.Errorf("seconds left = %d", c.SecondsLeft())
	}
}

func TestCountdownStop(t *testing.T) {
	var expired atomic.Int32
	c := NewCountdown(time.Hour, 10*time.Millisecond, nil, func(context.Context) { expired.Add(1) }, logger.NewNop())
	c.Start(context.Background())

	if left := c.SecondsLeft(); left < 3590 {
		t.Errorf("seconds left = %d", left)
	}
	if !c.Stop() {
		t.Error("first Stop must report true")
	}
	<-c.Done()
	if c.Stop() || expired.Load() != 0 {
		t.Errorf("expired = %d", expired.Load())
	}
}

// Остановка таймера из onExpire не отменяет контекст, с которым идёт отправка
func TestCountdownExpireContextSurvivesStop(t *testing.T) {
	errs := make(chan error, 1)
	var c *Countdown
	c = NewCountdown(20*time.Millisecond, 5*time.Millisecond, nil, func(ctx context.Context) {
		c.Stop()
		errs <- ctx.Err()
	}, logger.NewNop())
	c.Start(context.Background())

	select {
	case err := <-errs:
		if err != nil {
			t.Errorf("expire ctx err = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("countdown did not expire")
	}
}

func TestFormat(t *testing.T) {
	if got := Format(754*time.Second, 2, 10); got != "⏰ Time left: 12:34, question 2/10" {
		t.Errorf("Format = %s", got)
	}
	if got := Format(-time.Second, 1, 1); got != "⏰ Time left: 00:00, question 1/1" {
		t.Errorf("Format = %s", got)
	}
}
