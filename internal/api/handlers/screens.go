// screens.go — обработчики табличных экранов: награды, повышения,
// лента активности. Все три экрана принимают одинаковые параметры
// фильтрации (quick, type, q, page) и возвращают строки текущей
// страницы, состояние пагинации и сводные счётчики.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/firestation/admin-module/internal/api/errors"
	"github.com/bigkaa/firestation/admin-module/internal/service"
)

// ListAwards — GET /api/v1/awards.
func (h *APIHandler) ListAwards(w http.ResponseWriter, r *http.Request) {
	page, err := h.awards.List(r.Context(), filterStateFromQuery(r))
	if err != nil {
		h.logger.Error("Ошибка построения экрана наград", slog.String("error", err.Error()))
		h.writeScreenError(w, err, "Ошибка построения экрана наград")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// ListPromotions — GET /api/v1/promotions.
func (h *APIHandler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	page, err := h.personnel.ListPromotions(r.Context(), filterStateFromQuery(r))
	if err != nil {
		h.logger.Error("Ошибка построения экрана повышений", slog.String("error", err.Error()))
		h.writeScreenError(w, err, "Ошибка построения экрана повышений")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// ListActivity — GET /api/v1/activity.
func (h *APIHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	page, err := h.activity.List(r.Context(), filterStateFromQuery(r))
	if err != nil {
		h.logger.Error("Ошибка построения ленты активности", slog.String("error", err.Error()))
		h.writeScreenError(w, err, "Ошибка построения ленты активности")
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// writeScreenError отображает ошибку сервисного слоя в HTTP-ответ экрана.
func (h *APIHandler) writeScreenError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, service.ErrStoreUnavailable) {
		apierrors.StoreUnavailable(w, message)
		return
	}
	apierrors.InternalError(w, message)
}
