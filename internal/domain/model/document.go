package model

import "time"

// DocumentRecord — документ сотрудника (награда, сертификат, прочее).
// Хранится в таблице personnel_documents. С точки зрения Admin Module
// документы неизменяемы: только чтение и скачивание.
type DocumentRecord struct {
	// ID — UUID документа
	ID string
	// PersonnelID — UUID владельца (FK на personnel)
	PersonnelID string
	// Category — явная категория документа (nil — тип выводится из имени файла)
	Category *string
	// FileName — оригинальное имя файла
	FileName string
	// FilePath — путь к файлу в bucket personnel-documents
	FilePath string
	// UploadedAt — время загрузки
	UploadedAt time.Time
	// CreatedAt — время создания записи
	CreatedAt time.Time
}
