package repository

import (
	"context"
	"fmt"

	"github.com/bigkaa/firestation/admin-module/internal/domain/model"
)

// AuditRepository — интерфейс доступа к журналу действий (inventory_audit).
type AuditRepository interface {
	// Insert добавляет запись в журнал. db передаётся явно,
	// чтобы писать в журнал внутри транзакции повышения.
	Insert(ctx context.Context, db DBTX, e *model.AuditEntry) error
	// List возвращает записи журнала, новые первыми.
	List(ctx context.Context, limit, offset int) ([]*model.AuditEntry, error)
}

// auditRepo — реализация AuditRepository.
type auditRepo struct {
	db DBTX
}

// NewAuditRepository создаёт репозиторий журнала действий.
func NewAuditRepository(db DBTX) AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Insert(ctx context.Context, db DBTX, e *model.AuditEntry) error {
	query := `
		INSERT INTO inventory_audit (id, entity_kind, action, item_label, actor, details, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := db.Exec(ctx, query,
		e.ID, e.EntityKind, e.Action, e.ItemLabel, e.Actor, e.Details, e.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка записи в журнал действий: %w", err)
	}
	return nil
}

func (r *auditRepo) List(ctx context.Context, limit, offset int) ([]*model.AuditEntry, error) {
	query := `
		SELECT id, entity_kind, action, item_label, actor, details, occurred_at
		FROM inventory_audit
		ORDER BY occurred_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения журнала действий: %w", err)
	}
	defer rows.Close()

	var result []*model.AuditEntry
	for rows.Next() {
		e := &model.AuditEntry{}
		if err := rows.Scan(
			&e.ID, &e.EntityKind, &e.Action, &e.ItemLabel, &e.Actor, &e.Details, &e.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи журнала: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
