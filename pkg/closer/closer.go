package closer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Closer закрывает зарегистрированные ресурсы в обратном порядке (LIFO).
type Closer struct {
	mu            sync.Mutex
	once          sync.Once
	entries       []entry
	forcedTimeout time.Duration
}

// Func закрывает один ресурс.
type Func func(ctx context.Context) error

type entry struct {
	name string
	fn   Func
}

// NewCloser создает Closer. forcedTimeout — время на принудительное закрытие
// ресурсов, не успевших закрыться до отмены контекста Close.
func NewCloser(forcedTimeout time.Duration) *Closer {
	const defaultForcedTimeout = 2 * time.Second

	if forcedTimeout <= 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{forcedTimeout: forcedTimeout}
}

// Add регистрирует функцию закрытия. name попадает в текст ошибки.
func (c *Closer) Add(name string, f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry{name: name, fn: f})
}

// AddFunc регистрирует функцию без контекста, например pool.Close.
func (c *Closer) AddFunc(name string, f func()) {
	c.Add(name, func(context.Context) error {
		f()
		return nil
	})
}

// AddErrFunc регистрирует io.Closer-подобную функцию.
func (c *Closer) AddErrFunc(name string, f func() error) {
	c.Add(name, func(context.Context) error {
		return f()
	})
}

// Close выполняется один раз. Если ctx отменяется раньше, чем все функции
// завершились, оставшиеся запускаются параллельно с forcedTimeout.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		entries := make([]entry, len(c.entries))
		copy(entries, c.entries)
		c.mu.Unlock()

		remaining, errs := c.gracefulClose(ctx, entries)
		if len(remaining) == 0 {
			if len(errs) > 0 {
				err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(errs, "\n"))
			}
			return
		}

		errs = append(errs, c.forcedClose(remaining)...)
		err = fmt.Errorf(
			"shutdown interrupted after %d/%d funcs:\n%s",
			len(entries)-len(remaining),
			len(entries),
			strings.Join(errs, "\n"),
		)
	})

	return err
}

// gracefulClose возвращает незакрытые записи, если ctx был отменён.
func (c *Closer) gracefulClose(ctx context.Context, entries []entry) ([]entry, []string) {
	var errs []string
	for i := len(entries) - 1; i >= 0; i-- {
		ent := entries[i]
		done := make(chan error, 1)

		go func() {
			done <- ent.fn(ctx)
		}()

		select {
		case err := <-done:
			if err != nil {
				errs = append(errs, fmt.Sprintf("[!] %s: %v", ent.name, err))
			}
		case <-ctx.Done():
			// текущая функция ещё выполняется, в forced она не повторяется
			return entries[:i], append(errs, fmt.Sprintf("[TIMEOUT] %s", ent.name))
		}
	}

	return nil, errs
}

func (c *Closer) forcedClose(entries []entry) []string {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []string
	)

	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	for _, ent := range entries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ent.fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Sprintf("[FORCED] %s: %v", ent.name, err))
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return errs
}
