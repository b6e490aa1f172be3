// ratelimit реализует внутрипроцессный fixed-window лимитер запросов
// с ключом (идентичность клиента, путь).
//
// Окно фиксированное: счётчик сбрасывается, когда с начала окна прошла
// его полная длительность; это не скользящее среднее. Блокировка — на
// уровне отдельного ключа, несвязанные запросы не сериализуются.
//
// Карта счётчиков не живёт бесконтрольно весь срок процесса: лимитер —
// владеющий компонент с фоновой уборкой, Janitor периодически выселяет
// счётчики, простоявшие без обращений два полных окна.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Key — ключ счётчика: идентичность клиента + путь запроса.
type Key struct {
	Identity string
	Path     string
}

// Config — параметры лимитера.
type Config struct {
	// Window — длительность окна (например, 60s).
	Window time.Duration
	// Threshold — максимум запросов на ключ в пределах окна.
	Threshold int
	// Sweep — период фоновой уборки; <= 0 отключает Janitor.
	Sweep time.Duration
}

type counter struct {
	mu          sync.Mutex
	count       int
	windowStart time.Time
}

// Limiter — конкурентно-безопасный fixed-window лимитер.
type Limiter struct {
	cfg      Config
	counters sync.Map // Key -> *counter

	// now подменяется в тестах.
	now func() time.Time
}

// New создаёт лимитер.
func New(cfg Config) *Limiter {
	return &Limiter{
		cfg: cfg,
		now: time.Now,
	}
}

// Allow учитывает запрос и сообщает, укладывается ли ключ в порог.
// (threshold+1)-й запрос внутри одного окна получает false.
func (l *Limiter) Allow(key Key) bool {
	now := l.now()

	v, _ := l.counters.LoadOrStore(key, &counter{})
	c := v.(*counter)

	c.mu.Lock()
	defer c.mu.Unlock()

	if now.Sub(c.windowStart) >= l.cfg.Window {
		c.windowStart = now
		c.count = 0
	}

	c.count++

	return c.count <= l.cfg.Threshold
}

// Janitor запускает фоновую уборку устаревших счётчиков и блокируется
// до отмены контекста. Запускать в отдельной горутине.
func (l *Limiter) Janitor(ctx context.Context) {
	if l.cfg.Sweep <= 0 {
		return
	}

	t := time.NewTicker(l.cfg.Sweep)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.sweep(l.now())
		}
	}
}

// sweep выселяет счётчики, простоявшие два полных окна.
// Гонка с параллельным Allow безобидна: в худшем случае только что
// возрождённый счётчик будет пересоздан со свежим окном.
func (l *Limiter) sweep(now time.Time) {
	l.counters.Range(func(k, v any) bool {
		c := v.(*counter)

		c.mu.Lock()
		stale := now.Sub(c.windowStart) >= 2*l.cfg.Window
		c.mu.Unlock()

		if stale {
			l.counters.Delete(k)
		}

		return true
	})
}

// Size возвращает текущее число отслеживаемых ключей.
func (l *Limiter) Size() int {
	n := 0
	l.counters.Range(func(any, any) bool {
		n++
		return true
	})

	return n
}
