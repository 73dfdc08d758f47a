package repository

import (
	"context"
	"fmt"

	"github.com/bigkaa/firestation/admin-module/internal/domain/model"
)

// EquipmentRepository — интерфейс доступа к таблице equipment_items.
type EquipmentRepository interface {
	// List возвращает снаряжение, недавно изменённое первым.
	List(ctx context.Context, limit, offset int) ([]*model.EquipmentItem, error)
}

// equipmentRepo — реализация EquipmentRepository.
type equipmentRepo struct {
	db DBTX
}

// NewEquipmentRepository создаёт репозиторий снаряжения.
func NewEquipmentRepository(db DBTX) EquipmentRepository {
	return &equipmentRepo{db: db}
}

func (r *equipmentRepo) List(ctx context.Context, limit, offset int) ([]*model.EquipmentItem, error) {
	query := `
		SELECT id, name, serial_number, personnel_id, condition, updated_by, updated_at
		FROM equipment_items
		ORDER BY updated_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка снаряжения: %w", err)
	}
	defer rows.Close()

	var result []*model.EquipmentItem
	for rows.Next() {
		item := &model.EquipmentItem{}
		if err := rows.Scan(
			&item.ID, &item.Name, &item.SerialNumber, &item.PersonnelID,
			&item.Condition, &item.UpdatedBy, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования снаряжения: %w", err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
