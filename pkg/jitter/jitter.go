// Package jitter добавляет случайность в интервалы повторов, чтобы клиенты
// не переподключались синхронно после общего сбоя.
package jitter

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func randFloat() float64 {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Float64()
}

// Duration возвращает d с джиттером в диапазоне [d, d*(1+factor)].
func Duration(d time.Duration, factor float64) time.Duration {
	return apply(d, factor, randFloat())
}

func apply(d time.Duration, factor, r float64) time.Duration {
	if factor <= 0 || d <= 0 {
		return d
	}
	return d + time.Duration(r*factor*float64(d))
}

// ExponentialBackoff возвращает base*2^attempt, ограниченное max, с джиттером.
// attempt нумеруется с нуля.
func ExponentialBackoff(base, max time.Duration, attempt int, factor float64) time.Duration {
	return Duration(exponential(base, max, attempt), factor)
}

func exponential(base, max time.Duration, attempt int) time.Duration {
	d := base
	for i := 0; i < attempt && d < max; i++ {
		d *= 2
	}
	if d > max {
		d = max
	}
	return d
}

// Backoff считает попытки для циклов переподключения. Не потокобезопасен.
type Backoff struct {
	base    time.Duration
	max     time.Duration
	factor  float64
	attempt int
}

func NewBackoff(base, max time.Duration) *Backoff {
	return &Backoff{base: base, max: max, factor: DefaultJitter}
}

// Next возвращает задержку перед следующей попыткой и увеличивает счётчик.
func (b *Backoff) Next() time.Duration {
	d := ExponentialBackoff(b.base, b.max, b.attempt, b.factor)
	b.attempt++
	return d
}

// Reset сбрасывает счётчик после успешной попытки.
func (b *Backoff) Reset() {
	b.attempt = 0
}

func (b *Backoff) Attempt() int {
	return b.attempt
}

// Wait ждёт Next() или отмены контекста.
func (b *Backoff) Wait(ctx context.Context) error {
	timer := time.NewTimer(b.Next())
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
