package overtimestore

import (
	"hr-admin-backend/lib/utils/scopes"
	"hr-admin-backend/lib/workflow"
	"hr-admin-backend/models"
	apimodels "hr-admin-backend/models/api"
	dbmodels "hr-admin-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Overtime) (id uint, err error)
	GetByID(tenantID, id uint) (rec *dbmodels.Overtime, err error)
	List(tenantID uint, filter apimodels.ListFilter) (list []dbmodels.Overtime, err error)
	Update(tenantID, id uint, updMap map[string]interface{}) error
	// UpdateStatus обновляет запись, только если ее статус все еще from
	UpdateStatus(tenantID, id uint, from models.RequestStatus, updMap map[string]interface{}) error
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

func (i impl) Create(rec dbmodels.Overtime) (id uint, err error) {
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

func (i impl) GetByID(tenantID, id uint) (*dbmodels.Overtime, error) {
	rec := dbmodels.Overtime{}
	err := i.db.
		Scopes(scopes.Tenant(tenantID)).
		Where("id = ?", id).
		Preload("Employee").
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

func (i impl) List(tenantID uint, filter apimodels.ListFilter) (list []dbmodels.Overtime, err error) {
	list = []dbmodels.Overtime{}
	err = i.db.
		Scopes(
			scopes.Tenant(tenantID),
			scopes.EmployeeCompany(filter.CompanyID),
			scopes.Period("date", filter.Month, filter.Year),
			scopes.Status(filter.Status),
			scopes.Search(filter.Search, true, "reason"),
		).
		Preload("Employee").
		Order("date DESC").
		Order("id DESC").
		Find(&list).
		Error
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
		Model(&dbmodels.Overtime{}).
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

func (i impl) UpdateStatus(tenantID, id uint, from models.RequestStatus, updMap map[string]interface{}) error {
	tx := i.db.
		Model(&dbmodels.Overtime{}).
		Scopes(scopes.Tenant(tenantID)).
		Where("id = ?", id).
		Where("status = ?", from).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return workflow.ErrStatusChanged
	}
	return nil
}

func (i impl) Delete(tenantID, id uint) error {
	return i.db.
		Scopes(scopes.Tenant(tenantID)).
		Where("id = ?", id).
		Delete(&dbmodels.Overtime{}).
		Error
}
