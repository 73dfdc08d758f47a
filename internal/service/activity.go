// activity.go — сервис ленты активности.
// Синтезирует единую ленту из пяти источников: заявки на отпуск, заявки
// на справки, журнал действий (админ-действия и инвентарь), изменения
// снаряжения. Заявка разворачивается в 1-2 записи (подача и решение),
// лента сортируется по времени, новые первыми.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/bigkaa/firestation/admin-module/internal/domain/model"
	"github.com/bigkaa/firestation/admin-module/internal/repository"
	"github.com/bigkaa/firestation/admin-module/internal/view"
)

// ActivityService — сервис ленты активности.
type ActivityService struct {
	requestRepo   repository.RequestRepository
	auditRepo     repository.AuditRepository
	equipmentRepo repository.EquipmentRepository
	personnelRepo repository.PersonnelRepository
	adminRepo     repository.AdminUserRepository
	pageSize      int
	logger        *slog.Logger
}

// NewActivityService создаёт сервис ленты активности.
// pageSize — размер страницы ленты (AM_PAGE_SIZE_ACTIVITY).
func NewActivityService(
	requestRepo repository.RequestRepository,
	auditRepo repository.AuditRepository,
	equipmentRepo repository.EquipmentRepository,
	personnelRepo repository.PersonnelRepository,
	adminRepo repository.AdminUserRepository,
	pageSize int,
	logger *slog.Logger,
) *ActivityService {
	return &ActivityService{
		requestRepo:   requestRepo,
		auditRepo:     auditRepo,
		equipmentRepo: equipmentRepo,
		personnelRepo: personnelRepo,
		adminRepo:     adminRepo,
		pageSize:      pageSize,
		logger:        logger.With(slog.String("component", "activity_service")),
	}
}

// ActivityPage — страница ленты активности.
type ActivityPage struct {
	// Rows — строки текущей страницы
	Rows []view.ActivityRow `json:"rows"`
	// Pagination — состояние пагинации
	Pagination view.Pagination `json:"pagination"`
	// Total — размер ленты до фильтрации
	Total int `json:"total"`
	// Summary — счётчики по вариантам (по всей ленте, до фильтрации)
	Summary map[string]int `json:"summary"`
}

// List строит ленту активности.
func (s *ActivityService) List(ctx context.Context, st view.FilterState) (*ActivityPage, error) {
	leaves, err := s.requestRepo.ListLeave(ctx, fetchAllLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err) //nolint:errorlint // намеренный двойной wrap
	}

	clearances, err := s.requestRepo.ListClearance(ctx, fetchAllLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err) //nolint:errorlint // намеренный двойной wrap
	}

	auditEntries, err := s.auditRepo.List(ctx, fetchAllLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err) //nolint:errorlint // намеренный двойной wrap
	}

	equipment, err := s.equipmentRepo.List(ctx, fetchAllLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err) //nolint:errorlint // намеренный двойной wrap
	}

	personNames, err := s.personNames(ctx)
	if err != nil {
		return nil, err
	}

	adminNames, err := s.adminNames(ctx)
	if err != nil {
		return nil, err
	}

	activities := make([]model.Activity, 0,
		2*len(leaves)+2*len(clearances)+len(auditEntries)+len(equipment))

	for _, req := range leaves {
		activities = append(activities, view.ExpandLeave(req, s.personName(personNames, req.PersonnelID))...)
	}
	for _, req := range clearances {
		activities = append(activities, view.ExpandClearance(req, s.personName(personNames, req.PersonnelID))...)
	}
	for _, e := range auditEntries {
		if display, ok := adminNames[e.Actor]; ok {
			e.Actor = display
		}
		activities = append(activities, view.ActivityFromAudit(e))
	}
	for _, item := range equipment {
		activities = append(activities, view.ActivityFromEquipment(item))
	}

	// Новые первыми. Стабильная сортировка: при равных временах
	// подача заявки остаётся перед решением по ней.
	slices.SortStableFunc(activities, func(a, b model.Activity) int {
		return b.OccurredAt().Compare(a.OccurredAt())
	})

	rows := make([]view.ActivityRow, 0, len(activities))
	summary := make(map[string]int)
	for _, a := range activities {
		row := view.ProjectActivity(a)
		summary[row.Kind]++
		rows = append(rows, row)
	}

	filtered := view.Apply(rows, st)
	pageRows, pagination := view.Paginated(filtered, s.pageSize, st.Page)

	return &ActivityPage{
		Rows:       pageRows,
		Pagination: pagination,
		Total:      len(rows),
		Summary:    summary,
	}, nil
}

// personNames строит отображение UUID сотрудника → полное имя.
func (s *ActivityService) personNames(ctx context.Context) (map[string]string, error) {
	people, err := s.personnelRepo.List(ctx, repository.PersonnelFilters{}, fetchAllLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err) //nolint:errorlint // намеренный двойной wrap
	}

	names := make(map[string]string, len(people))
	for _, p := range people {
		names[p.ID] = view.FullName(p.FirstName, p.MiddleName, p.LastName)
	}
	return names, nil
}

// adminNames строит отображение username администратора → отображаемое имя.
func (s *ActivityService) adminNames(ctx context.Context) (map[string]string, error) {
	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err) //nolint:errorlint // намеренный двойной wrap
	}

	names := make(map[string]string, len(admins))
	for _, a := range admins {
		if a.DisplayName != "" {
			names[a.Username] = a.DisplayName
		}
	}
	return names, nil
}

// personName возвращает имя сотрудника или заглушку для осиротевшей ссылки.
// Лента строится штатно даже при дырах в данных.
func (s *ActivityService) personName(names map[string]string, personnelID string) string {
	if name, ok := names[personnelID]; ok {
		return name
	}
	s.logger.Warn("Заявка ссылается на отсутствующего сотрудника",
		slog.String("personnel_id", personnelID),
	)
	return "N/A"
}
