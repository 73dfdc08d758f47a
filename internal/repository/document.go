package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/firestation/admin-module/internal/domain/model"
)

// DocumentRepository — интерфейс доступа к таблице personnel_documents.
// Документы неизменяемы: только чтение.
type DocumentRepository interface {
	// GetByID возвращает документ по UUID.
	GetByID(ctx context.Context, id string) (*model.DocumentRecord, error)
	// List возвращает список документов с фильтрацией,
	// отсортированный по времени загрузки (новые первыми).
	List(ctx context.Context, filters DocumentFilters, limit, offset int) ([]*model.DocumentRecord, error)
	// Count возвращает количество документов с фильтрацией.
	Count(ctx context.Context, filters DocumentFilters) (int, error)
}

// DocumentFilters — фильтры для списка документов.
type DocumentFilters struct {
	PersonnelID *string
	Category    *string
}

// documentRepo — реализация DocumentRepository.
type documentRepo struct {
	db DBTX
}

// NewDocumentRepository создаёт репозиторий документов.
func NewDocumentRepository(db DBTX) DocumentRepository {
	return &documentRepo{db: db}
}

const documentColumns = `id, personnel_id, category, file_name, file_path, uploaded_at, created_at`

func scanDocument(row pgx.Row) (*model.DocumentRecord, error) {
	d := &model.DocumentRecord{}
	err := row.Scan(&d.ID, &d.PersonnelID, &d.Category, &d.FileName, &d.FilePath, &d.UploadedAt, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *documentRepo) GetByID(ctx context.Context, id string) (*model.DocumentRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM personnel_documents WHERE id = $1`, documentColumns)

	d, err := scanDocument(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения документа: %w", err)
	}
	return d, nil
}

// buildDocumentWhere строит WHERE-условие и аргументы для фильтрации.
func buildDocumentWhere(filters DocumentFilters, startArg int) (string, []any) {
	var conditions []string
	var args []any
	argNum := startArg

	if filters.PersonnelID != nil {
		conditions = append(conditions, fmt.Sprintf("personnel_id = $%d", argNum))
		args = append(args, *filters.PersonnelID)
		argNum++
	}
	if filters.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argNum))
		args = append(args, *filters.Category)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	return where, args
}

func (r *documentRepo) List(ctx context.Context, filters DocumentFilters, limit, offset int) ([]*model.DocumentRecord, error) {
	where, args := buildDocumentWhere(filters, 1)
	argNum := len(args) + 1

	query := fmt.Sprintf(`
		SELECT %s
		FROM personnel_documents
		%s
		ORDER BY uploaded_at DESC
		LIMIT $%d OFFSET $%d`, documentColumns, where, argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка документов: %w", err)
	}
	defer rows.Close()

	var result []*model.DocumentRecord
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования документа: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (r *documentRepo) Count(ctx context.Context, filters DocumentFilters) (int, error) {
	where, args := buildDocumentWhere(filters, 1)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM personnel_documents %s`, where)

	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта документов: %w", err)
	}
	return count, nil
}
