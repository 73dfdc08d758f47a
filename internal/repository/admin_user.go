package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/firestation/admin-module/internal/domain/model"
)

// AdminUserRepository — интерфейс доступа к таблице admin_users.
type AdminUserRepository interface {
	// GetByUsername возвращает учётную запись по логину.
	GetByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	// List возвращает все учётные записи.
	List(ctx context.Context) ([]*model.AdminUser, error)
}

// adminUserRepo — реализация AdminUserRepository.
type adminUserRepo struct {
	db DBTX
}

// NewAdminUserRepository создаёт репозиторий учётных записей.
func NewAdminUserRepository(db DBTX) AdminUserRepository {
	return &adminUserRepo{db: db}
}

func (r *adminUserRepo) GetByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	query := `SELECT id, username, display_name, role FROM admin_users WHERE username = $1`

	u := &model.AdminUser{}
	err := r.db.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.DisplayName, &u.Role)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения учётной записи: %w", err)
	}
	return u, nil
}

func (r *adminUserRepo) List(ctx context.Context) ([]*model.AdminUser, error) {
	query := `SELECT id, username, display_name, role FROM admin_users ORDER BY username`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения учётных записей: %w", err)
	}
	defer rows.Close()

	var result []*model.AdminUser
	for rows.Next() {
		u := &model.AdminUser{}
		if err := rows.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Role); err != nil {
			return nil, fmt.Errorf("ошибка сканирования учётной записи: %w", err)
		}
		result = append(result, u)
	}
	return result, rows.Err()
}
