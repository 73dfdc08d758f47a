// personnel.go — сервис личного состава.
// Список и карточка сотрудника, экран повышений, операция повышения.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/firestation/admin-module/internal/blobstore"
	"github.com/bigkaa/firestation/admin-module/internal/domain/model"
	"github.com/bigkaa/firestation/admin-module/internal/domain/rules"
	"github.com/bigkaa/firestation/admin-module/internal/repository"
	"github.com/bigkaa/firestation/admin-module/internal/view"
)

// Верхняя граница выборки коллекции для in-memory конвейера
// (проекция → фильтр → пагинация). Коллекции части — сотни записей.
const fetchAllLimit = 10000

// PersonnelService — сервис личного состава.
type PersonnelService struct {
	personnelRepo repository.PersonnelRepository
	auditRepo     repository.AuditRepository
	txRunner      *repository.TxRunner
	blobClient    *blobstore.Client
	rankBucket    string
	pageSize      int
	logger        *slog.Logger
}

// NewPersonnelService создаёт сервис личного состава.
// pageSize — размер страницы экрана повышений (AM_PAGE_SIZE_PROMOTIONS).
func NewPersonnelService(
	personnelRepo repository.PersonnelRepository,
	auditRepo repository.AuditRepository,
	txRunner *repository.TxRunner,
	blobClient *blobstore.Client,
	rankBucket string,
	pageSize int,
	logger *slog.Logger,
) *PersonnelService {
	return &PersonnelService{
		personnelRepo: personnelRepo,
		auditRepo:     auditRepo,
		txRunner:      txRunner,
		blobClient:    blobClient,
		rankBucket:    rankBucket,
		pageSize:      pageSize,
		logger:        logger.With(slog.String("component", "personnel_service")),
	}
}

// List возвращает список сотрудников с фильтрацией по статусу и званию.
func (s *PersonnelService) List(ctx context.Context, filters repository.PersonnelFilters) ([]*model.PersonRecord, int, error) {
	if filters.Rank != nil && !rules.IsValidRank(*filters.Rank) {
		return nil, 0, fmt.Errorf("%w: неизвестное звание %q", ErrValidation, *filters.Rank)
	}

	total, err := s.personnelRepo.Count(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrStoreUnavailable, err) //nolint:errorlint // намеренный двойной wrap
	}

	people, err := s.personnelRepo.List(ctx, filters, fetchAllLimit, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrStoreUnavailable, err) //nolint:errorlint // намеренный двойной wrap
	}

	return people, total, nil
}

// Get возвращает сотрудника по ID.
func (s *PersonnelService) Get(ctx context.Context, id string) (*model.PersonRecord, error) {
	person, err := s.personnelRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: сотрудник %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err) //nolint:errorlint // намеренный двойной wrap
	}
	return person, nil
}

// PromotionsPage — страница экрана повышений.
type PromotionsPage struct {
	// Rows — строки текущей страницы
	Rows []view.PromotionRow `json:"rows"`
	// Pagination — состояние пагинации
	Pagination view.Pagination `json:"pagination"`
	// Total — размер коллекции до фильтрации
	Total int `json:"total"`
	// EligibleCount — количество сотрудников с правом на повышение
	// (по всей коллекции, до фильтрации)
	EligibleCount int `json:"eligible_count"`
}

// ListPromotions строит экран повышений: проекция всех активных
// сотрудников, фильтрация, пагинация. Выслуга считается на момент вызова.
func (s *PersonnelService) ListPromotions(ctx context.Context, st view.FilterState) (*PromotionsPage, error) {
	status := model.PersonStatusActive
	people, err := s.personnelRepo.List(ctx, repository.PersonnelFilters{Status: &status}, fetchAllLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err) //nolint:errorlint // намеренный двойной wrap
	}

	now := time.Now().UTC()
	rows := make([]view.PromotionRow, 0, len(people))
	eligible := 0
	for _, p := range people {
		row := view.ProjectPromotion(p, now)
		if row.RankImagePath != "" {
			row.RankImageURL = s.blobClient.PublicURL(s.rankBucket, row.RankImagePath)
		}
		if row.Eligible {
			eligible++
		}
		rows = append(rows, row)
	}

	filtered := view.Apply(rows, st)
	pageRows, pagination := view.Paginated(filtered, s.pageSize, st.Page)

	return &PromotionsPage{
		Rows:          pageRows,
		Pagination:    pagination,
		Total:         len(rows),
		EligibleCount: eligible,
	}, nil
}

// Promote повышает сотрудника в звании.
// Проверяет выслугу и наличие следующего звания, затем в одной транзакции
// обновляет звание с датой повышения и пишет запись в журнал действий.
// actor — имя пользователя, выполняющего повышение.
func (s *PersonnelService) Promote(ctx context.Context, id, actor string) (*model.PersonRecord, error) {
	person, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	nextRank, ok := rules.NextRank(person.Rank)
	if !ok {
		return nil, fmt.Errorf("%w: звание %s", ErrTopRank, person.Rank)
	}

	reference := person.PromotionReference()
	now := time.Now().UTC()
	if !rules.PromotionEligible(reference, now) {
		return nil, fmt.Errorf("%w: выслуга %.1f лет, требуется %.0f",
			ErrNotEligible, rules.YearsInRank(reference, now), rules.MinYearsForPromotion)
	}

	entry := &model.AuditEntry{
		ID:         uuid.New().String(),
		EntityKind: model.AuditKindAdmin,
		Action:     "promoted",
		ItemLabel:  view.FullName(person.FirstName, person.MiddleName, person.LastName),
		Actor:      actor,
		Details:    fmt.Sprintf("%s → %s", person.Rank, nextRank),
		OccurredAt: now,
	}

	err = s.txRunner.RunInTx(ctx, func(tx pgx.Tx) error {
		if err := s.personnelRepo.Promote(ctx, tx, id, nextRank, now); err != nil {
			return err
		}
		return s.auditRepo.Insert(ctx, tx, entry)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: сотрудник %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err) //nolint:errorlint // намеренный двойной wrap
	}

	s.logger.Info("Сотрудник повышен в звании",
		slog.String("personnel_id", id),
		slog.String("old_rank", person.Rank),
		slog.String("new_rank", nextRank),
		slog.String("actor", actor),
	)

	return s.personnelRepo.GetByID(ctx, id)
}
