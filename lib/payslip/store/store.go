package payslipstore

import (
	"hr-admin-backend/lib/utils/scopes"
	apimodels "hr-admin-backend/models/api"
	dbmodels "hr-admin-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Payslip) (id uint, err error)
	// CreateBatch создает записи, уже существующие за период пропускаются
	CreateBatch(list []dbmodels.Payslip) (created int, err error)
	GetByID(tenantID, id uint) (rec *dbmodels.Payslip, err error)
	List(tenantID uint, filter apimodels.ListFilter) (list []dbmodels.Payslip, err error)
	Exists(tenantID, employeeID uint, month, year int) (bool, error)
	Update(tenantID, id uint, updMap map[string]interface{}) error
	Delete(tenantID, id uint) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Payslip) (id uint, err error) {
	rec.CalcNet()
	err = rec.Validate()
	if err != nil {
		return 0, err
	}
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) CreateBatch(list []dbmodels.Payslip) (created int, err error) {
	if len(list) == 0 {
		return 0, nil
	}
	for idx := range list {
		list[idx].CalcNet()
		if err = list[idx].Validate(); err != nil {
			return 0, errors.Wrapf(err, "сотрудник %v", list[idx].EmployeeID)
		}
	}
	tx := i.db.
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&list, 100)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return int(tx.RowsAffected), nil
}

func (i impl) GetByID(tenantID, id uint) (*dbmodels.Payslip, error) {
	rec := dbmodels.Payslip{}
	err := i.db.
		Scopes(scopes.Tenant(tenantID)).
		Where("id = ?", id).
		Preload("Employee").
		Preload("Employee.Company").
		Preload("Employee.Designation").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(tenantID uint, filter apimodels.ListFilter) (list []dbmodels.Payslip, err error) {
	list = []dbmodels.Payslip{}
	err = i.db.
		Scopes(
			scopes.Tenant(tenantID),
			scopes.EmployeeCompany(filter.CompanyID),
			period(filter.Month, filter.Year),
			scopes.Status(filter.Status),
			scopes.Search(filter.Search, true),
		).
		Preload("Employee").
		Order("year DESC").
		Order("month DESC").
		Order("id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Exists(tenantID, employeeID uint, month, year int) (bool, error) {
	var rowCount int64
	err := i.db.
		Model(&dbmodels.Payslip{}).
		Scopes(scopes.Tenant(tenantID)).
		Where("employee_id = ? AND month = ? AND year = ?", employeeID, month, year).
		Count(&rowCount).
		Error
	if err != nil {
		return false, err
	}
	return rowCount > 0, nil
}

func (i impl) Update(tenantID, id uint, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Payslip{}).
		Scopes(scopes.Tenant(tenantID)).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) Delete(tenantID, id uint) error {
	return i.db.
		Scopes(scopes.Tenant(tenantID)).
		Where("id = ?", id).
		Delete(&dbmodels.Payslip{}).
		Error
}

// period у расчетных листов месяц и год хранятся отдельными колонками
func period(month, year int) scopes.Scope {
	return func(tx *gorm.DB) *gorm.DB {
		if month > 0 {
			tx = tx.Where("month = ?", month)
		}
		if year > 0 {
			tx = tx.Where("year = ?", year)
		}
		return tx
	}
}
