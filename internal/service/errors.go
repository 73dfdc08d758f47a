// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import "errors"

var (
	// ErrNotFound — ресурс не найден.
	ErrNotFound = errors.New("ресурс не найден")
	// ErrConflict — конфликт (дублирующийся ресурс).
	ErrConflict = errors.New("конфликт — ресурс уже существует")
	// ErrValidation — ошибка валидации входных данных.
	ErrValidation = errors.New("ошибка валидации")
	// ErrNotEligible — сотрудник не соответствует условиям повышения.
	ErrNotEligible = errors.New("сотрудник не соответствует условиям повышения")
	// ErrTopRank — сотрудник уже имеет высшее звание.
	ErrTopRank = errors.New("сотрудник уже имеет высшее звание")
	// ErrStoreUnavailable — хранилище записей недоступно.
	ErrStoreUnavailable = errors.New("хранилище записей недоступно")
)
