package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/firestation/admin-module/internal/domain/model"
)

// RequestRepository — интерфейс доступа к заявкам
// (таблицы leave_requests и clearance_requests).
type RequestRepository interface {
	// GetLeaveByID возвращает заявку на отпуск по UUID.
	GetLeaveByID(ctx context.Context, id string) (*model.LeaveRequest, error)
	// ListLeave возвращает заявки на отпуск, новые первыми.
	ListLeave(ctx context.Context, limit, offset int) ([]*model.LeaveRequest, error)
	// ListClearance возвращает заявки на справки, новые первыми.
	ListClearance(ctx context.Context, limit, offset int) ([]*model.ClearanceRequest, error)
	// UpdateLeaveStatus выполняет частичное обновление решения по заявке:
	// статус, актор и время решения.
	UpdateLeaveStatus(ctx context.Context, id, status, decidedBy string) error
}

// requestRepo — реализация RequestRepository.
type requestRepo struct {
	db DBTX
}

// NewRequestRepository создаёт репозиторий заявок.
func NewRequestRepository(db DBTX) RequestRepository {
	return &requestRepo{db: db}
}

const leaveColumns = `id, personnel_id, leave_type, date_from, date_to, reason,
	status, submitted_at, approved_by, decided_at`

func scanLeave(row pgx.Row) (*model.LeaveRequest, error) {
	lr := &model.LeaveRequest{}
	err := row.Scan(
		&lr.ID, &lr.PersonnelID, &lr.LeaveType, &lr.DateFrom, &lr.DateTo, &lr.Reason,
		&lr.Status, &lr.SubmittedAt, &lr.ApprovedBy, &lr.DecidedAt,
	)
	if err != nil {
		return nil, err
	}
	return lr, nil
}

func (r *requestRepo) GetLeaveByID(ctx context.Context, id string) (*model.LeaveRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM leave_requests WHERE id = $1`, leaveColumns)

	lr, err := scanLeave(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения заявки на отпуск: %w", err)
	}
	return lr, nil
}

func (r *requestRepo) ListLeave(ctx context.Context, limit, offset int) ([]*model.LeaveRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM leave_requests
		ORDER BY submitted_at DESC
		LIMIT $1 OFFSET $2`, leaveColumns)

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заявок на отпуск: %w", err)
	}
	defer rows.Close()

	var result []*model.LeaveRequest
	for rows.Next() {
		lr, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования заявки на отпуск: %w", err)
		}
		result = append(result, lr)
	}
	return result, rows.Err()
}

func (r *requestRepo) ListClearance(ctx context.Context, limit, offset int) ([]*model.ClearanceRequest, error) {
	query := `
		SELECT id, personnel_id, purpose, status, submitted_at, recommended_by, decided_at
		FROM clearance_requests
		ORDER BY submitted_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заявок на справки: %w", err)
	}
	defer rows.Close()

	var result []*model.ClearanceRequest
	for rows.Next() {
		cr := &model.ClearanceRequest{}
		if err := rows.Scan(
			&cr.ID, &cr.PersonnelID, &cr.Purpose, &cr.Status,
			&cr.SubmittedAt, &cr.RecommendedBy, &cr.DecidedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования заявки на справку: %w", err)
		}
		result = append(result, cr)
	}
	return result, rows.Err()
}

func (r *requestRepo) UpdateLeaveStatus(ctx context.Context, id, status, decidedBy string) error {
	query := `
		UPDATE leave_requests
		SET status = $2, approved_by = $3, decided_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status, decidedBy)
	if err != nil {
		return fmt.Errorf("ошибка обновления заявки на отпуск: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
