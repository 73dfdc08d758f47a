package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bigkaa/firestation/admin-module/internal/domain/model"
	"github.com/bigkaa/firestation/admin-module/internal/view"
)

// setupActivity собирает сервис ленты: заявка на отпуск с решением
// (2 записи), заявка на справку без решения (1 запись), запись журнала
// инвентаря, админ-запись журнала, изменение снаряжения.
func setupActivity(t *testing.T) *ActivityService {
	t.Helper()

	decided := date(2026, time.January, 12)

	requestRepo := &fakeRequestRepo{
		leaves: []*model.LeaveRequest{
			{
				ID:          "lr-001",
				PersonnelID: "p-001",
				LeaveType:   "vacation",
				DateFrom:    date(2026, time.February, 1),
				DateTo:      date(2026, time.February, 10),
				Reason:      "отпуск",
				Status:      "approved",
				SubmittedAt: date(2026, time.January, 10),
				ApprovedBy:  strPtr("chief"),
				DecidedAt:   &decided,
			},
		},
		clearances: []*model.ClearanceRequest{
			{
				ID:          "cr-001",
				PersonnelID: "p-002",
				Purpose:     "оформление допуска",
				Status:      "pending",
				SubmittedAt: date(2026, time.January, 11),
			},
		},
	}

	auditRepo := &fakeAuditRepo{
		entries: []*model.AuditEntry{
			{
				ID:         "au-001",
				EntityKind: model.AuditKindInventory,
				Action:     "added",
				ItemLabel:  "огнетушитель ОП-5",
				Actor:      "inspector",
				OccurredAt: date(2026, time.January, 8),
			},
			{
				ID:         "au-002",
				EntityKind: model.AuditKindAdmin,
				Action:     "promoted",
				ItemLabel:  "John Smith",
				Actor:      "chief",
				OccurredAt: date(2026, time.January, 14),
			},
		},
	}

	equipmentRepo := &fakeEquipmentRepo{
		items: []*model.EquipmentItem{
			{
				ID:           "eq-001",
				Name:         "дыхательный аппарат",
				SerialNumber: "SN-42",
				Condition:    "serviceable",
				UpdatedBy:    "inspector",
				UpdatedAt:    date(2026, time.January, 9),
			},
		},
	}

	personnelRepo := &fakePersonnelRepo{people: []*model.PersonRecord{
		{ID: "p-001", FirstName: "john", LastName: "smith", Rank: "SFO2", BadgeNumber: "B-1", HireDate: date(2018, time.June, 1), Status: model.PersonStatusActive},
		{ID: "p-002", FirstName: "anna", LastName: "jones", Rank: "FO2", BadgeNumber: "B-2", HireDate: date(2020, time.March, 1), Status: model.PersonStatusActive},
	}}

	adminRepo := &fakeAdminUserRepo{admins: []*model.AdminUser{
		{ID: "adm-001", Username: "chief", DisplayName: "Fire Chief Walker", Role: "admin"},
	}}

	return NewActivityService(
		requestRepo, auditRepo, equipmentRepo, personnelRepo, adminRepo,
		10,
		testLogger(),
	)
}

func TestActivityList(t *testing.T) {
	svc := setupActivity(t)

	page, err := svc.List(context.Background(), view.NewFilterState())
	if err != nil {
		t.Fatalf("List ошибка: %v", err)
	}

	// Заявка с решением развёрнута в 2 записи: итого 6
	if page.Total != 6 {
		t.Fatalf("Total = %d, ожидается 6", page.Total)
	}

	// Сортировка по времени, новые первыми
	for i := 1; i < len(page.Rows); i++ {
		if page.Rows[i-1].Timestamp.Before(page.Rows[i].Timestamp) {
			t.Errorf("строки %d и %d не отсортированы по убыванию времени", i-1, i)
		}
	}

	// Первая запись — админ-действие из журнала (14 января)
	if page.Rows[0].ID != "au-002" {
		t.Errorf("первая запись = %q, ожидается au-002", page.Rows[0].ID)
	}

	// Сводные счётчики по вариантам
	want := map[string]int{"leave": 1, "clearance": 1, "admin": 2, "inventory": 1, "equipment": 1}
	for kind, count := range want {
		if page.Summary[kind] != count {
			t.Errorf("Summary[%s] = %d, ожидается %d", kind, page.Summary[kind], count)
		}
	}
}

func TestActivityExpansion(t *testing.T) {
	svc := setupActivity(t)

	page, err := svc.List(context.Background(), view.NewFilterState())
	if err != nil {
		t.Fatalf("List ошибка: %v", err)
	}

	ids := map[string]view.ActivityRow{}
	for _, row := range page.Rows {
		ids[row.ID] = row
	}

	// Подача заявки и решение по ней — отдельные записи
	submission, ok := ids["lr-001-s"]
	if !ok {
		t.Fatal("нет записи подачи lr-001-s")
	}
	decision, ok := ids["lr-001-a"]
	if !ok {
		t.Fatal("нет записи решения lr-001-a")
	}

	if submission.Kind != "leave" {
		t.Errorf("запись подачи Kind = %q", submission.Kind)
	}
	if decision.Kind != "admin" {
		t.Errorf("запись решения Kind = %q", decision.Kind)
	}
	// Решение позже подачи
	if !decision.Timestamp.After(submission.Timestamp) {
		t.Error("решение должно быть позже подачи")
	}

	// Заявка без решения даёт только запись подачи
	if _, ok := ids["cr-001-a"]; ok {
		t.Error("заявка без решения не должна давать админ-запись")
	}
}

func TestActivityAdminDisplayName(t *testing.T) {
	svc := setupActivity(t)

	page, err := svc.List(context.Background(), view.NewFilterState())
	if err != nil {
		t.Fatalf("List ошибка: %v", err)
	}

	// Актор записи журнала chief заменён отображаемым именем
	for _, row := range page.Rows {
		if row.ID == "au-002" && row.Actor != "Fire Chief Walker" {
			t.Errorf("актор au-002 = %q, ожидается Fire Chief Walker", row.Actor)
		}
	}
}

func TestActivityQuickFilter(t *testing.T) {
	svc := setupActivity(t)

	st := view.NewFilterState()
	st.SetQuickFilter("admin")

	page, err := svc.List(context.Background(), st)
	if err != nil {
		t.Fatalf("List ошибка: %v", err)
	}

	if len(page.Rows) != 2 {
		t.Errorf("quick-фильтр admin дал %d строк, ожидается 2", len(page.Rows))
	}
	for _, row := range page.Rows {
		if row.Kind != "admin" {
			t.Errorf("строка %q прошла фильтр admin", row.Kind)
		}
	}
}

func TestActivityOrphanReference(t *testing.T) {
	svc := setupActivity(t)
	// Заявка ссылается на отсутствующего сотрудника
	requestRepo := &fakeRequestRepo{
		leaves: []*model.LeaveRequest{
			{
				ID:          "lr-999",
				PersonnelID: "p-999",
				LeaveType:   "sick",
				Status:      "pending",
				SubmittedAt: date(2026, time.January, 20),
			},
		},
	}
	svc.requestRepo = requestRepo

	page, err := svc.List(context.Background(), view.NewFilterState())
	if err != nil {
		t.Fatalf("List ошибка: %v", err)
	}

	// Лента строится штатно, имя заменено заглушкой
	found := false
	for _, row := range page.Rows {
		if row.ID == "lr-999-s" {
			found = true
			if row.Actor != "N/A" {
				t.Errorf("актор осиротевшей заявки = %q, ожидается N/A", row.Actor)
			}
		}
	}
	if !found {
		t.Error("осиротевшая заявка не попала в ленту")
	}
}

func TestActivityStoreUnavailable(t *testing.T) {
	svc := setupActivity(t)
	svc.requestRepo = &fakeRequestRepo{err: errors.New("connection refused")}

	_, err := svc.List(context.Background(), view.NewFilterState())
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("ожидается ErrStoreUnavailable, получено: %v", err)
	}
}
