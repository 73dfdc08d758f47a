// Пакет notify — подписка на уведомления об изменениях коллекций.
// Один выделенный LISTEN-коннект к PostgreSQL (канал record_changes,
// payload — имя таблицы), fan-out по подписчикам с ключом по таблице.
// Сигнал непрозрачный: подписчик делает полный re-fetch, без диффов.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Канал PostgreSQL с уведомлениями об изменениях коллекций.
const channelName = "record_changes"

// subscriber — один подписчик: набор таблиц и канал доставки.
type subscriber struct {
	tables map[string]bool
	ch     chan string
}

// Listener — слушатель изменений коллекций.
type Listener struct {
	pool      *pgxpool.Pool
	reconnect time.Duration
	logger    *slog.Logger

	mu     sync.Mutex
	subs   map[int]*subscriber
	nextID int

	cancel context.CancelFunc
	done   chan struct{}
}

// New создаёт Listener. reconnect — пауза перед переподключением
// LISTEN-соединения после обрыва.
func New(pool *pgxpool.Pool, reconnect time.Duration, logger *slog.Logger) *Listener {
	return &Listener{
		pool:      pool,
		reconnect: reconnect,
		logger:    logger.With(slog.String("component", "notify")),
		subs:      make(map[int]*subscriber),
	}
}

// Start запускает цикл LISTEN в фоновой горутине.
func (l *Listener) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})

	go func() {
		defer close(l.done)
		l.run(runCtx)
	}()

	l.logger.Info("Слушатель изменений запущен",
		slog.String("channel", channelName),
	)
}

// Stop останавливает цикл LISTEN и ожидает его завершения.
func (l *Listener) Stop() {
	if l.cancel == nil {
		return
	}
	l.cancel()
	<-l.done
	l.logger.Info("Слушатель изменений остановлен")
}

// Subscribe регистрирует подписку на изменения перечисленных таблиц.
// Возвращает канал с именами изменившихся таблиц и функцию освобождения.
// Освобождение обязательно при уходе с экрана (defer), иначе подписки
// накапливаются при повторной навигации. Канал с буфером 1:
// повторное уведомление медленному подписчику схлопывается —
// подписчик всё равно делает полный re-fetch.
func (l *Listener) Subscribe(tables ...string) (<-chan string, func()) {
	sub := &subscriber{
		tables: make(map[string]bool, len(tables)),
		ch:     make(chan string, 1),
	}
	for _, t := range tables {
		sub.tables[t] = true
	}

	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.subs[id] = sub
	l.mu.Unlock()

	release := func() {
		l.mu.Lock()
		if _, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(sub.ch)
		}
		l.mu.Unlock()
	}

	return sub.ch, release
}

// run — цикл LISTEN с переподключением после обрыва.
func (l *Listener) run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil && ctx.Err() == nil {
			l.logger.Warn("LISTEN-соединение потеряно, переподключение",
				slog.String("error", err.Error()),
				slog.String("reconnect", l.reconnect.String()),
			)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(l.reconnect):
		}
	}
}

// listen захватывает соединение, выполняет LISTEN и доставляет
// уведомления до первой ошибки или отмены контекста.
func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+channelName); err != nil {
		return err
	}

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		l.dispatch(notification.Payload)
	}
}

// dispatch доставляет имя изменившейся таблицы подписчикам.
// Отправка неблокирующая: переполненный буфер означает, что подписчик
// ещё не обработал предыдущий сигнал — новый ему не нужен.
func (l *Listener) dispatch(table string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, sub := range l.subs {
		if !sub.tables[table] {
			continue
		}
		select {
		case sub.ch <- table:
		default:
		}
	}
}
