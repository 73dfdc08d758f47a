// personnel.go — обработчики /api/v1/personnel endpoints.
// Список, карточка и повышение сотрудника.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/firestation/admin-module/internal/api/errors"
	"github.com/bigkaa/firestation/admin-module/internal/domain/model"
	"github.com/bigkaa/firestation/admin-module/internal/repository"
	"github.com/bigkaa/firestation/admin-module/internal/service"
)

// personItem — сотрудник в JSON-ответе API.
type personItem struct {
	ID                string  `json:"id"`
	FirstName         string  `json:"first_name"`
	MiddleName        *string `json:"middle_name,omitempty"`
	LastName          string  `json:"last_name"`
	Rank              string  `json:"rank"`
	BadgeNumber       string  `json:"badge_number"`
	HireDate          string  `json:"hire_date"`
	LastPromotionDate *string `json:"last_promotion_date,omitempty"`
	Status            string  `json:"status"`
	PhotoPath         *string `json:"photo_path,omitempty"`
	RankImagePath     *string `json:"rank_image_path,omitempty"`
}

// mapPerson преобразует запись сотрудника в JSON-представление.
func mapPerson(p *model.PersonRecord) personItem {
	item := personItem{
		ID:            p.ID,
		FirstName:     p.FirstName,
		MiddleName:    p.MiddleName,
		LastName:      p.LastName,
		Rank:          p.Rank,
		BadgeNumber:   p.BadgeNumber,
		HireDate:      p.HireDate.Format(time.RFC3339),
		Status:        p.Status,
		PhotoPath:     p.PhotoPath,
		RankImagePath: p.RankImagePath,
	}
	if p.LastPromotionDate != nil {
		s := p.LastPromotionDate.Format(time.RFC3339)
		item.LastPromotionDate = &s
	}
	return item
}

// personListResponse — ответ списка сотрудников.
type personListResponse struct {
	Items []personItem `json:"items"`
	Total int          `json:"total"`
}

// ListPersonnel — GET /api/v1/personnel.
// Опциональные параметры: status, rank.
func (h *APIHandler) ListPersonnel(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filters repository.PersonnelFilters
	if status := strings.TrimSpace(q.Get("status")); status != "" {
		filters.Status = &status
	}
	if rank := strings.TrimSpace(q.Get("rank")); rank != "" {
		filters.Rank = &rank
	}

	people, total, err := h.personnel.List(r.Context(), filters)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			apierrors.ValidationError(w, err.Error())
			return
		}
		h.logger.Error("Ошибка получения списка сотрудников", slog.String("error", err.Error()))
		apierrors.StoreUnavailable(w, "Ошибка получения списка сотрудников")
		return
	}

	items := make([]personItem, len(people))
	for i, p := range people {
		items[i] = mapPerson(p)
	}

	writeJSON(w, http.StatusOK, personListResponse{Items: items, Total: total})
}

// GetPersonnel — GET /api/v1/personnel/{id}.
func (h *APIHandler) GetPersonnel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	person, err := h.personnel.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Сотрудник не найден")
			return
		}
		h.logger.Error("Ошибка получения сотрудника", slog.String("personnel_id", id), slog.String("error", err.Error()))
		apierrors.StoreUnavailable(w, "Ошибка получения сотрудника")
		return
	}

	writeJSON(w, http.StatusOK, mapPerson(person))
}

// promoteRequest — тело запроса повышения.
type promoteRequest struct {
	// Actor — имя пользователя, выполняющего повышение
	Actor string `json:"actor"`
}

// PromotePersonnel — POST /api/v1/personnel/{id}/promote.
// Повышает сотрудника на следующее звание при достаточной выслуге.
func (h *APIHandler) PromotePersonnel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req promoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Actor) == "" {
		apierrors.ValidationError(w, "Поле actor обязательно")
		return
	}

	person, err := h.personnel.Promote(r.Context(), id, req.Actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			apierrors.NotFound(w, "Сотрудник не найден")
		case errors.Is(err, service.ErrNotEligible), errors.Is(err, service.ErrTopRank):
			apierrors.Conflict(w, err.Error())
		default:
			h.logger.Error("Ошибка повышения сотрудника", slog.String("personnel_id", id), slog.String("error", err.Error()))
			apierrors.StoreUnavailable(w, "Ошибка повышения сотрудника")
		}
		return
	}

	writeJSON(w, http.StatusOK, mapPerson(person))
}
