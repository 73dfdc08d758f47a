package model

import "time"

// LeaveRequest — заявка на отпуск.
// Хранится в таблице leave_requests.
type LeaveRequest struct {
	// ID — UUID заявки
	ID string
	// PersonnelID — UUID заявителя
	PersonnelID string
	// LeaveType — тип отпуска (vacation, sick, emergency, ...)
	LeaveType string
	// DateFrom — начало отпуска
	DateFrom time.Time
	// DateTo — окончание отпуска
	DateTo time.Time
	// Reason — причина
	Reason string
	// Status — статус в свободной форме (pending, approved, rejected, ...)
	Status string
	// SubmittedAt — время подачи
	SubmittedAt time.Time
	// ApprovedBy — кто принял решение (nil — решения ещё нет)
	ApprovedBy *string
	// DecidedAt — время решения (nil — решения ещё нет)
	DecidedAt *time.Time
}

// ClearanceRequest — заявка на справку/допуск.
// Хранится в таблице clearance_requests.
type ClearanceRequest struct {
	// ID — UUID заявки
	ID string
	// PersonnelID — UUID заявителя
	PersonnelID string
	// Purpose — назначение справки
	Purpose string
	// Status — статус в свободной форме
	Status string
	// SubmittedAt — время подачи
	SubmittedAt time.Time
	// RecommendedBy — кто дал рекомендацию (nil — рекомендации ещё нет)
	RecommendedBy *string
	// DecidedAt — время решения (nil — решения ещё нет)
	DecidedAt *time.Time
}
