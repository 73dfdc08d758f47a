// events.go — SSE endpoint уведомлений об изменениях коллекций.
// Каждый SSE-клиент обслуживается отдельной горутиной со своей
// подпиской на notify.Listener; подписка освобождается при отключении.
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bigkaa/firestation/admin-module/internal/notify"
)

// watchedTables — таблицы, изменения которых транслируются клиентам.
var watchedTables = []string{
	"personnel",
	"personnel_documents",
	"leave_requests",
	"clearance_requests",
	"equipment_items",
	"inventory_audit",
}

// EventsHandler — обработчик SSE endpoint.
type EventsHandler struct {
	listener  *notify.Listener
	keepalive time.Duration
	logger    *slog.Logger
}

// NewEventsHandler создаёт обработчик SSE.
// keepalive — интервал keepalive-комментариев (AM_SSE_KEEPALIVE),
// чтобы промежуточные прокси не закрывали простаивающее соединение.
func NewEventsHandler(listener *notify.Listener, keepalive time.Duration, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		listener:  listener,
		keepalive: keepalive,
		logger:    logger.With(slog.String("component", "events")),
	}
}

// Stream обрабатывает GET /api/v1/events — SSE endpoint.
// Параметр tables — список таблиц через запятую (по умолчанию все).
// Формат: event: record-change\ndata: {имя таблицы}\n\n.
// Сигнал непрозрачный: клиент делает полный re-fetch затронутого экрана.
// Graceful disconnect при закрытии клиентом соединения (context cancel).
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	tables := watchedTables
	if raw := strings.TrimSpace(r.URL.Query().Get("tables")); raw != "" {
		tables = nil
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tables = append(tables, t)
			}
		}
	}

	// Настраиваем заголовки SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Отключаем буферизацию Nginx

	// Используем http.ResponseController для корректной работы Flush()
	// через обёрнутый ResponseWriter (logging middleware и др.).
	// ResponseController вызывает Unwrap() и находит оригинальный http.Flusher.
	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		http.Error(w, "SSE не поддерживается", http.StatusInternalServerError)
		return
	}

	changes, release := h.listener.Subscribe(tables...)
	defer release()

	ctx := r.Context()

	h.logger.Debug("SSE клиент подключён",
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("tables", strings.Join(tables, ",")),
	)

	ticker := time.NewTicker(h.keepalive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Клиент отключился
			h.logger.Debug("SSE клиент отключён",
				slog.String("remote_addr", r.RemoteAddr),
			)
			return
		case table := <-changes:
			fmt.Fprintf(w, "event: record-change\ndata: %s\n\n", table)
			_ = rc.Flush()
		case <-ticker.C:
			// Комментарий-keepalive, клиентом игнорируется
			fmt.Fprint(w, ": keepalive\n\n")
			_ = rc.Flush()
		}
	}
}
