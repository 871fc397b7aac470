package scopes

import (
	"hr-admin-backend/lib/utils/helpers"
	dbmodels "hr-admin-backend/models/db"
	"strings"

	"gorm.io/gorm"
)

type Scope = func(tx *gorm.DB) *gorm.DB

func Tenant(tenantID uint) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("created_by = ?", tenantID)
	}
}

// Period фильтр по месяцу и году даты column, нулевые значения не фильтруют
func Period(column string, month, year int) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		switch {
		case year > 0 && month > 0:
			from, to := helpers.MonthRange(year, month)
			return tx.Where(column+" >= ? AND "+column+" < ?", from, to)
		case year > 0:
			from, to := helpers.YearRange(year)
			return tx.Where(column+" >= ? AND "+column+" < ?", from, to)
		case month > 0:
			return tx.Where("EXTRACT(MONTH FROM "+column+") = ?", month)
		}
		return tx
	}
}

func Status(status string) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		if status == "" {
			return tx
		}
		return tx.Where("status = ?", status)
	}
}

// EmployeeCompany записи сотрудников компании
func EmployeeCompany(companyID uint) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		if companyID == 0 {
			return tx
		}
		sub := tx.Session(&gorm.Session{NewDB: true}).
			Model(&dbmodels.Employee{}).
			Select("id").
			Where("company_id = ?", companyID)
		return tx.Where("employee_id IN (?)", sub)
	}
}

// Search поиск подстроки по колонкам и, если withEmployee, по имени сотрудника
func Search(search string, withEmployee bool, columns ...string) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		search = strings.TrimSpace(search)
		if search == "" {
			return tx
		}
		pattern := helpers.LikePattern(search)
		conditions := make([]string, 0, len(columns)+1)
		args := make([]interface{}, 0, len(columns)+1)
		for _, column := range columns {
			conditions = append(conditions, "LOWER("+column+") LIKE ?")
			args = append(args, pattern)
		}
		if withEmployee {
			sub := tx.Session(&gorm.Session{NewDB: true}).
				Model(&dbmodels.Employee{}).
				Select("id").
				Where("LOWER(name) LIKE ?", pattern)
			conditions = append(conditions, "employee_id IN (?)")
			args = append(args, sub)
		}
		if len(conditions) == 0 {
			return tx
		}
		return tx.Where("("+strings.Join(conditions, " OR ")+")", args...)
	}
}
