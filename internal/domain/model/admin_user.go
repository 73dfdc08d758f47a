package model

// AdminUser — учётная запись администратора дашборда.
// Хранится в таблице admin_users.
type AdminUser struct {
	// ID — UUID учётной записи
	ID string
	// Username — логин
	Username string
	// DisplayName — отображаемое имя
	DisplayName string
	// Role — роль (admin, readonly)
	Role string
}
