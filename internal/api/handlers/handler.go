// handler.go — основной обработчик API Admin Module.
// Объединяет доменные обработчики и делегирует запросы в сервисный слой.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bigkaa/firestation/admin-module/internal/service"
	"github.com/bigkaa/firestation/admin-module/internal/view"
)

// APIHandler — основной обработчик API Admin Module.
type APIHandler struct {
	health    *HealthHandler
	personnel *service.PersonnelService
	awards    *service.AwardsService
	activity  *service.ActivityService
	documents *service.DocumentsService
	events    *EventsHandler
	logger    *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	health *HealthHandler,
	personnel *service.PersonnelService,
	awards *service.AwardsService,
	activity *service.ActivityService,
	documents *service.DocumentsService,
	events *EventsHandler,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		health:    health,
		personnel: personnel,
		awards:    awards,
		activity:  activity,
		documents: documents,
		events:    events,
		logger:    logger.With(slog.String("component", "api_handler")),
	}
}

// HealthLive — liveness probe (делегируется в HealthHandler).
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness probe (делегируется в HealthHandler).
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики (делегируется в HealthHandler).
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// Events — SSE-поток уведомлений об изменениях (делегируется в EventsHandler).
func (h *APIHandler) Events(w http.ResponseWriter, r *http.Request) {
	h.events.Stream(w, r)
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// filterStateFromQuery строит состояние фильтра экрана из query-параметров:
// q — поиск, type — фильтр по классификации, quick — quick-фильтр,
// page — номер страницы (по умолчанию 1).
func filterStateFromQuery(r *http.Request) view.FilterState {
	q := r.URL.Query()

	st := view.NewFilterState()
	st.SetQuickFilter(q.Get("quick"))
	st.SetTypeFilter(q.Get("type"))
	st.SetQuery(q.Get("q"))

	if raw := q.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			st.SetPage(page)
		}
	}

	return st
}
