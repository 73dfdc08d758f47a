package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/firestation/admin-module/internal/domain/model"
)

// PersonnelRepository — интерфейс доступа к таблице personnel.
type PersonnelRepository interface {
	// Create создаёт запись сотрудника.
	Create(ctx context.Context, p *model.PersonRecord) error
	// GetByID возвращает сотрудника по UUID.
	GetByID(ctx context.Context, id string) (*model.PersonRecord, error)
	// List возвращает список сотрудников с фильтрацией.
	List(ctx context.Context, filters PersonnelFilters, limit, offset int) ([]*model.PersonRecord, error)
	// Count возвращает количество сотрудников с фильтрацией.
	Count(ctx context.Context, filters PersonnelFilters) (int, error)
	// Promote выполняет частичное обновление при повышении:
	// новое звание и дата повышения. Прочие поля не трогаются.
	Promote(ctx context.Context, db DBTX, id, newRank string, promotedAt time.Time) error
}

// PersonnelFilters — фильтры для списка сотрудников.
type PersonnelFilters struct {
	Status *string
	Rank   *string
}

// personnelRepo — реализация PersonnelRepository.
type personnelRepo struct {
	db DBTX
}

// NewPersonnelRepository создаёт репозиторий personnel.
func NewPersonnelRepository(db DBTX) PersonnelRepository {
	return &personnelRepo{db: db}
}

// personnelColumns — список колонок в порядке сканирования.
const personnelColumns = `id, first_name, middle_name, last_name, rank, badge_number,
	hire_date, last_promotion_date, status, photo_path, rank_image_path,
	created_at, updated_at`

// scanPerson сканирует одну строку personnel.
func scanPerson(row pgx.Row) (*model.PersonRecord, error) {
	p := &model.PersonRecord{}
	err := row.Scan(
		&p.ID, &p.FirstName, &p.MiddleName, &p.LastName, &p.Rank, &p.BadgeNumber,
		&p.HireDate, &p.LastPromotionDate, &p.Status, &p.PhotoPath, &p.RankImagePath,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *personnelRepo) Create(ctx context.Context, p *model.PersonRecord) error {
	query := `
		INSERT INTO personnel (id, first_name, middle_name, last_name, rank, badge_number,
			hire_date, last_promotion_date, status, photo_path, rank_image_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		p.ID, p.FirstName, p.MiddleName, p.LastName, p.Rank, p.BadgeNumber,
		p.HireDate, p.LastPromotionDate, p.Status, p.PhotoPath, p.RankImagePath,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: сотрудник с таким жетоном уже зарегистрирован", ErrConflict)
		}
		return fmt.Errorf("ошибка создания сотрудника: %w", err)
	}
	return nil
}

func (r *personnelRepo) GetByID(ctx context.Context, id string) (*model.PersonRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM personnel WHERE id = $1`, personnelColumns)

	p, err := scanPerson(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения сотрудника: %w", err)
	}
	return p, nil
}

// buildPersonnelWhere строит WHERE-условие и аргументы для фильтрации.
func buildPersonnelWhere(filters PersonnelFilters, startArg int) (string, []any) {
	var conditions []string
	var args []any
	argNum := startArg

	if filters.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argNum))
		args = append(args, *filters.Status)
		argNum++
	}
	if filters.Rank != nil {
		conditions = append(conditions, fmt.Sprintf("rank = $%d", argNum))
		args = append(args, *filters.Rank)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	return where, args
}

func (r *personnelRepo) List(ctx context.Context, filters PersonnelFilters, limit, offset int) ([]*model.PersonRecord, error) {
	where, args := buildPersonnelWhere(filters, 1)
	argNum := len(args) + 1

	query := fmt.Sprintf(`
		SELECT %s
		FROM personnel
		%s
		ORDER BY last_name, first_name
		LIMIT $%d OFFSET $%d`, personnelColumns, where, argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка сотрудников: %w", err)
	}
	defer rows.Close()

	var result []*model.PersonRecord
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования сотрудника: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *personnelRepo) Count(ctx context.Context, filters PersonnelFilters) (int, error) {
	where, args := buildPersonnelWhere(filters, 1)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM personnel %s`, where)

	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта сотрудников: %w", err)
	}
	return count, nil
}

// Promote обновляет звание и дату повышения одной записи.
// db передаётся явно, чтобы вызывать внутри транзакции вместе
// с записью в журнал действий.
func (r *personnelRepo) Promote(ctx context.Context, db DBTX, id, newRank string, promotedAt time.Time) error {
	query := `
		UPDATE personnel
		SET rank = $2, last_promotion_date = $3, updated_at = now()
		WHERE id = $1`

	tag, err := db.Exec(ctx, query, id, newRank, promotedAt)
	if err != nil {
		return fmt.Errorf("ошибка повышения сотрудника: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
