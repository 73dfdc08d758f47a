package model

import "time"

// ActivityKind — дискриминатор варианта записи активности.
type ActivityKind string

// Варианты записей активности.
const (
	// ActivityLeave — подача заявки на отпуск.
	ActivityLeave ActivityKind = "leave"
	// ActivityClearance — подача заявки на справку/допуск.
	ActivityClearance ActivityKind = "clearance"
	// ActivityAdmin — административное действие (решение по заявке, повышение).
	ActivityAdmin ActivityKind = "admin"
	// ActivityInventory — действие над инвентарём.
	ActivityInventory ActivityKind = "inventory"
	// ActivityEquipment — действие над снаряжением.
	ActivityEquipment ActivityKind = "equipment"
)

// Activity — запись ленты активности. Синтезируется при каждой выборке
// из нескольких коллекций и никогда не сохраняется.
// Tagged union: по одному типу на дискриминатор, чтобы маппинг
// описаний/статусов/иконок проверялся на полноту при сборке.
type Activity interface {
	// Kind возвращает дискриминатор варианта.
	Kind() ActivityKind
	// ActivityID возвращает уникальный в пределах выборки идентификатор.
	ActivityID() string
	// OccurredAt возвращает время события.
	OccurredAt() time.Time
	// ActorName возвращает, кто связан с событием (заявитель или администратор).
	ActorName() string
}

// LeaveActivity — событие подачи заявки на отпуск.
type LeaveActivity struct {
	// SourceID — ID события (ID заявки + суффикс фазы)
	SourceID string
	// PersonName — сырое имя заявителя
	PersonName string
	// LeaveType — тип отпуска
	LeaveType string
	// DateFrom, DateTo — период отпуска
	DateFrom time.Time
	DateTo   time.Time
	// Reason — причина
	Reason string
	// Status — статус заявки в свободной форме
	Status string
	// Timestamp — время подачи
	Timestamp time.Time
}

func (a LeaveActivity) Kind() ActivityKind { return ActivityLeave }
func (a LeaveActivity) ActivityID() string { return a.SourceID }
func (a LeaveActivity) OccurredAt() time.Time { return a.Timestamp }
func (a LeaveActivity) ActorName() string { return a.PersonName }

// ClearanceActivity — событие подачи заявки на справку/допуск.
type ClearanceActivity struct {
	// SourceID — ID события (ID заявки + суффикс фазы)
	SourceID string
	// PersonName — сырое имя заявителя
	PersonName string
	// Purpose — назначение справки
	Purpose string
	// Status — статус заявки в свободной форме
	Status string
	// Timestamp — время подачи
	Timestamp time.Time
}

func (a ClearanceActivity) Kind() ActivityKind { return ActivityClearance }
func (a ClearanceActivity) ActivityID() string { return a.SourceID }
func (a ClearanceActivity) OccurredAt() time.Time { return a.Timestamp }
func (a ClearanceActivity) ActorName() string { return a.PersonName }

// AdminActivity — административное действие: решение по заявке,
// рекомендация, повышение, прочие действия из журнала.
type AdminActivity struct {
	// SourceID — ID события (ID источника + суффикс фазы)
	SourceID string
	// Action — действие в свободной форме (approved, rejected, promoted, ...)
	Action string
	// Subject — объект действия (имя заявителя, имя сотрудника)
	Subject string
	// Actor — кто выполнил действие
	Actor string
	// Detail — дополнительные детали
	Detail string
	// Timestamp — время действия
	Timestamp time.Time
}

func (a AdminActivity) Kind() ActivityKind { return ActivityAdmin }
func (a AdminActivity) ActivityID() string { return a.SourceID }
func (a AdminActivity) OccurredAt() time.Time { return a.Timestamp }
func (a AdminActivity) ActorName() string { return a.Actor }

// InventoryActivity — действие над инвентарём из журнала.
type InventoryActivity struct {
	// SourceID — ID записи журнала
	SourceID string
	// Action — действие (added, updated, deleted, ...)
	Action string
	// ItemLabel — имя объекта
	ItemLabel string
	// Actor — кто выполнил действие
	Actor string
	// Detail — детали
	Detail string
	// Timestamp — время действия
	Timestamp time.Time
}

func (a InventoryActivity) Kind() ActivityKind { return ActivityInventory }
func (a InventoryActivity) ActivityID() string { return a.SourceID }
func (a InventoryActivity) OccurredAt() time.Time { return a.Timestamp }
func (a InventoryActivity) ActorName() string { return a.Actor }

// EquipmentActivity — изменение единицы снаряжения.
type EquipmentActivity struct {
	// SourceID — ID единицы снаряжения
	SourceID string
	// Name — наименование
	Name string
	// SerialNumber — серийный номер
	SerialNumber string
	// Condition — состояние после изменения
	Condition string
	// Actor — кто внёс изменение
	Actor string
	// Timestamp — время изменения
	Timestamp time.Time
}

func (a EquipmentActivity) Kind() ActivityKind { return ActivityEquipment }
func (a EquipmentActivity) ActivityID() string { return a.SourceID }
func (a EquipmentActivity) OccurredAt() time.Time { return a.Timestamp }
func (a EquipmentActivity) ActorName() string { return a.Actor }
