package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/bigkaa/firestation/admin-module/internal/blobstore"
	"github.com/bigkaa/firestation/admin-module/internal/domain/model"
	"github.com/bigkaa/firestation/admin-module/internal/repository"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testBlobClient создаёт клиент хранилища для тестов.
func testBlobClient(t *testing.T) *blobstore.Client {
	t.Helper()
	client, err := blobstore.New("https://storage.test", "", testLogger())
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func strPtr(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// --- Фейковые репозитории (in-memory) ---

type fakePersonnelRepo struct {
	people []*model.PersonRecord
	err    error
}

func (r *fakePersonnelRepo) Create(ctx context.Context, p *model.PersonRecord) error {
	r.people = append(r.people, p)
	return r.err
}

func (r *fakePersonnelRepo) GetByID(ctx context.Context, id string) (*model.PersonRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.people {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePersonnelRepo) List(ctx context.Context, filters repository.PersonnelFilters, limit, offset int) ([]*model.PersonRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	result := make([]*model.PersonRecord, 0, len(r.people))
	for _, p := range r.people {
		if filters.Status != nil && p.Status != *filters.Status {
			continue
		}
		if filters.Rank != nil && p.Rank != *filters.Rank {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *fakePersonnelRepo) Count(ctx context.Context, filters repository.PersonnelFilters) (int, error) {
	people, err := r.List(ctx, filters, 0, 0)
	return len(people), err
}

func (r *fakePersonnelRepo) Promote(ctx context.Context, db repository.DBTX, id, newRank string, promotedAt time.Time) error {
	if r.err != nil {
		return r.err
	}
	for _, p := range r.people {
		if p.ID == id {
			p.Rank = newRank
			t := promotedAt
			p.LastPromotionDate = &t
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeDocumentRepo struct {
	docs []*model.DocumentRecord
	err  error
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id string) (*model.DocumentRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, d := range r.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeDocumentRepo) List(ctx context.Context, filters repository.DocumentFilters, limit, offset int) ([]*model.DocumentRecord, error) {
	return r.docs, r.err
}

func (r *fakeDocumentRepo) Count(ctx context.Context, filters repository.DocumentFilters) (int, error) {
	return len(r.docs), r.err
}

type fakeRequestRepo struct {
	leaves     []*model.LeaveRequest
	clearances []*model.ClearanceRequest
	err        error
}

func (r *fakeRequestRepo) GetLeaveByID(ctx context.Context, id string) (*model.LeaveRequest, error) {
	for _, l := range r.leaves {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRequestRepo) ListLeave(ctx context.Context, limit, offset int) ([]*model.LeaveRequest, error) {
	return r.leaves, r.err
}

func (r *fakeRequestRepo) ListClearance(ctx context.Context, limit, offset int) ([]*model.ClearanceRequest, error) {
	return r.clearances, r.err
}

func (r *fakeRequestRepo) UpdateLeaveStatus(ctx context.Context, id, status, decidedBy string) error {
	return r.err
}

type fakeEquipmentRepo struct {
	items []*model.EquipmentItem
	err   error
}

func (r *fakeEquipmentRepo) List(ctx context.Context, limit, offset int) ([]*model.EquipmentItem, error) {
	return r.items, r.err
}

type fakeAuditRepo struct {
	entries []*model.AuditEntry
	err     error
}

func (r *fakeAuditRepo) Insert(ctx context.Context, db repository.DBTX, e *model.AuditEntry) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeAuditRepo) List(ctx context.Context, limit, offset int) ([]*model.AuditEntry, error) {
	return r.entries, r.err
}

type fakeAdminUserRepo struct {
	admins []*model.AdminUser
	err    error
}

func (r *fakeAdminUserRepo) GetByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	for _, a := range r.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAdminUserRepo) List(ctx context.Context) ([]*model.AdminUser, error) {
	return r.admins, r.err
}
