package statushistorystore

import (
	"hr-admin-backend/lib/utils/scopes"
	dbmodels "hr-admin-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.StatusHistory) (id uint, err error)
	List(tenantID uint, entity string, entityID uint) (list []dbmodels.StatusHistory, err error)
	DeleteByEntity(tenantID uint, entity string, entityID uint) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.StatusHistory) (id uint, err error) {
	if err = rec.Validate(); err != nil {
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

func (i impl) List(tenantID uint, entity string, entityID uint) (list []dbmodels.StatusHistory, err error) {
	list = []dbmodels.StatusHistory{}
	err = i.db.
		Scopes(scopes.Tenant(tenantID)).
		Where("entity = ?", entity).
		Where("entity_id = ?", entityID).
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) DeleteByEntity(tenantID uint, entity string, entityID uint) error {
	return i.db.
		Scopes(scopes.Tenant(tenantID)).
		Where("entity = ?", entity).
		Where("entity_id = ?", entityID).
		Delete(&dbmodels.StatusHistory{}).
		Error
}
