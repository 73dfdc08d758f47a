package model

import "time"

// EquipmentItem — единица снаряжения.
// Хранится в таблице equipment_items.
type EquipmentItem struct {
	// ID — UUID единицы снаряжения
	ID string
	// Name — наименование
	Name string
	// SerialNumber — серийный номер
	SerialNumber string
	// PersonnelID — UUID сотрудника, за которым закреплено (nil — на складе)
	PersonnelID *string
	// Condition — состояние (serviceable, damaged, retired, ...)
	Condition string
	// UpdatedBy — кто внёс последнее изменение
	UpdatedBy string
	// UpdatedAt — время последнего изменения
	UpdatedAt time.Time
}

// AuditEntry — запись журнала действий (инвентарь, снаряжение, админ-действия).
// Хранится в таблице inventory_audit.
type AuditEntry struct {
	// ID — UUID записи
	ID string
	// EntityKind — вид сущности (inventory, equipment, admin)
	EntityKind string
	// Action — действие в свободной форме (added, updated, deleted, ...)
	Action string
	// ItemLabel — человекочитаемое имя объекта действия
	ItemLabel string
	// Actor — кто выполнил действие
	Actor string
	// Details — дополнительные детали
	Details string
	// OccurredAt — время действия
	OccurredAt time.Time
}

// Виды сущностей журнала действий.
const (
	// AuditKindInventory — действие над инвентарём.
	AuditKindInventory = "inventory"
	// AuditKindEquipment — действие над снаряжением.
	AuditKindEquipment = "equipment"
	// AuditKindAdmin — административное действие (в т.ч. повышение).
	AuditKindAdmin = "admin"
)
