package filesdbstorage

import (
	"hr-admin-backend/lib/utils/scopes"
	dbmodels "hr-admin-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	SaveFile(rec dbmodels.FileStorage) (id uint, err error)
	GetByID(tenantID, id uint) (rec *dbmodels.FileStorage, err error)
	Delete(tenantID, id uint) error
	// ListOrphans файлы старше before, на которые не ссылается ни одна заявка
	ListOrphans(before time.Time, limit int) (list []dbmodels.FileStorage, err error)
}

func NewInstance(db *gorm.DB) Provider {
	return &impl{db: db}
}

type impl struct {
	db *gorm.DB
}

func (i impl) SaveFile(rec dbmodels.FileStorage) (id uint, err error) {
	if err = rec.Validate(); err != nil {
		return 0, err
	}
	err = i.db.Create(&rec).Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByID(tenantID, id uint) (*dbmodels.FileStorage, error) {
	rec := dbmodels.FileStorage{}
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

func (i impl) Delete(tenantID, id uint) error {
	return i.db.
		Scopes(scopes.Tenant(tenantID)).
		Where("id = ?", id).
		Delete(&dbmodels.FileStorage{}).
		Error
}

func (i impl) ListOrphans(before time.Time, limit int) (list []dbmodels.FileStorage, err error) {
	list = []dbmodels.FileStorage{}
	used := i.db.Session(&gorm.Session{NewDB: true}).
		Model(&dbmodels.Reimbursement{}).
		Select("receipt_id").
		Where("receipt_id IS NOT NULL")
	err = i.db.
		Where("created_at < ?", before).
		Where("id NOT IN (?)", used).
		Order("id").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
