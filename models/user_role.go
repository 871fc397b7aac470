package models

type UserRole string

const (
	AdminRole    UserRole = "admin"
	HRRole       UserRole = "hr"
	EmployeeRole UserRole = "employee"
)

var roleHumanName = map[UserRole]string{
	AdminRole:    "Администратор",
	HRRole:       "HR-специалист",
	EmployeeRole: "Сотрудник",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

// IsApprover роли, которым доступна смена статуса заявок и расчёт
func (r UserRole) IsApprover() bool {
	return r == AdminRole || r == HRRole
}

const SystemUser = "Система"
