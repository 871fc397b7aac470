package store

import (
	"hr-admin-backend/lib/utils/scopes"
	apimodels "hr-admin-backend/models/api"
	dbmodels "hr-admin-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Designation) (id uint, err error)
	GetByID(tenantID, id uint) (rec *dbmodels.Designation, err error)
	List(tenantID uint, filter apimodels.ListFilter) (list []dbmodels.Designation, err error)
	Update(tenantID, id uint, updMap map[string]interface{}) error
	Delete(tenantID, id uint) error
	InUse(tenantID, id uint) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Designation) (id uint, err error) {
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

func (i impl) GetByID(tenantID, id uint) (*dbmodels.Designation, error) {
	rec := dbmodels.Designation{}
	err := i.db.
		Scopes(scopes.Tenant(tenantID)).
		Where("id = ?", id).
		Preload("Company").
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

func (i impl) List(tenantID uint, filter apimodels.ListFilter) (list []dbmodels.Designation, err error) {
	list = []dbmodels.Designation{}
	tx := i.db.
		Scopes(scopes.Tenant(tenantID), scopes.Search(filter.Search, false, "name")).
		Preload("Company").
		Order("id DESC")
	if filter.CompanyID != 0 {
		tx = tx.Where("company_id = ?", filter.CompanyID)
	}
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(tenantID, id uint, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Designation{}).
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
		Delete(&dbmodels.Designation{}).
		Error
}

// InUse должность назначена сотрудникам или указана в повышениях
func (i impl) InUse(tenantID, id uint) (bool, error) {
	var employees, promotions int64
	err := i.db.Model(&dbmodels.Employee{}).
		Scopes(scopes.Tenant(tenantID)).
		Where("designation_id = ?", id).
		Count(&employees).
		Error
	if err != nil {
		return false, errors.Wrap(err, "ошибка проверки использования должности")
	}
	err = i.db.Model(&dbmodels.Promotion{}).
		Scopes(scopes.Tenant(tenantID)).
		Where("designation_id = ?", id).
		Count(&promotions).
		Error
	if err != nil {
		return false, errors.Wrap(err, "ошибка проверки использования должности")
	}
	return employees+promotions > 0, nil
}
