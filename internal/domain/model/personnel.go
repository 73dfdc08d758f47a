package model

import "time"

// Статусы записи личного состава.
const (
	// PersonStatusActive — сотрудник в строю.
	PersonStatusActive = "active"
	// PersonStatusInactive — сотрудник выведен из строя (отставка, перевод).
	PersonStatusInactive = "inactive"
)

// PersonRecord — запись сотрудника пожарной части.
// Хранится в таблице personnel.
type PersonRecord struct {
	// ID — UUID сотрудника
	ID string
	// FirstName — имя
	FirstName string
	// MiddleName — отчество/среднее имя (опционально)
	MiddleName *string
	// LastName — фамилия
	LastName string
	// Rank — звание (FO1..SFO4)
	Rank string
	// BadgeNumber — номер жетона
	BadgeNumber string
	// HireDate — дата приёма на службу
	HireDate time.Time
	// LastPromotionDate — дата последнего повышения (nil — не повышался)
	LastPromotionDate *time.Time
	// Status — статус (active, inactive)
	Status string
	// PhotoPath — путь к фотографии в bucket документов (опционально)
	PhotoPath *string
	// RankImagePath — путь к изображению звания в bucket rank_images (опционально)
	RankImagePath *string
	// CreatedAt — время создания записи
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time
}

// PromotionReference возвращает дату отсчёта выслуги в звании:
// дата последнего повышения, либо дата приёма, если повышений не было.
func (p *PersonRecord) PromotionReference() time.Time {
	if p.LastPromotionDate != nil {
		return *p.LastPromotionDate
	}
	return p.HireDate
}
