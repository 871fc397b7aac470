package store

import (
	"hr-admin-backend/lib/utils/scopes"
	dbmodels "hr-admin-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Company) (id uint, err error)
	GetByID(tenantID, id uint) (rec *dbmodels.Company, err error)
	FindByName(tenantID uint, name string) (list []dbmodels.Company, err error)
	Update(tenantID, id uint, updMap map[string]interface{}) error
	Delete(tenantID, id uint) error
	IsUnique(tenantID, selfID uint, name string) (bool, error)
	HasEmployees(tenantID, id uint) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Company) (id uint, err error) {
	err = rec.Validate()
	if err != nil {
		return 0, err
	}
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByID(tenantID, id uint) (*dbmodels.Company, error) {
	rec := dbmodels.Company{}
	err := i.db.
		Scopes(scopes.Tenant(tenantID)).
		Where("id = ?", id).
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

func (i impl) FindByName(tenantID uint, name string) (list []dbmodels.Company, err error) {
	list = []dbmodels.Company{}
	tx := i.db.
		Scopes(scopes.Tenant(tenantID), scopes.Search(name, false, "name")).
		Order("name")
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
		Model(&dbmodels.Company{}).
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
		Delete(&dbmodels.Company{}).
		Error
}

func (i impl) IsUnique(tenantID, selfID uint, name string) (bool, error) {
	var rowCount int64
	tx := i.db.Model(&dbmodels.Company{}).
		Scopes(scopes.Tenant(tenantID)).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if selfID != 0 {
		tx = tx.Where("id <> ?", selfID)
	}
	err := tx.Count(&rowCount).Error
	if err != nil {
		return false, errors.Wrap(err, "ошибка проверки уникальности компании")
	}
	return rowCount == 0, nil
}

func (i impl) HasEmployees(tenantID, id uint) (bool, error) {
	var rowCount int64
	err := i.db.Model(&dbmodels.Employee{}).
		Scopes(scopes.Tenant(tenantID)).
		Where("company_id = ?", id).
		Count(&rowCount).
		Error
	if err != nil {
		return false, errors.Wrap(err, "ошибка проверки сотрудников компании")
	}
	return rowCount > 0, nil
}
