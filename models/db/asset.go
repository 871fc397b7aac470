package dbmodels

import (
	"hr-admin-backend/models"

	"github.com/pkg/errors"
)

type Asset struct {
	BaseTenantModel
	EmployeeID     uint                  `gorm:"index"`
	Employee       *Employee             `gorm:"foreignKey:EmployeeID"`
	Name           string                `gorm:"type:varchar(255)"`
	Brand          string                `gorm:"type:varchar(255)"`
	WarrantyStatus models.WarrantyStatus `gorm:"type:varchar(10)"`
	BuyingDate     models.Date
}

func (a Asset) Validate() error {
	if err := a.BaseTenantModel.Validate(); err != nil {
		return err
	}
	if a.EmployeeID == 0 {
		return errors.New("не указан сотрудник")
	}
	if a.Name == "" {
		return errors.New("не указано название")
	}
	if a.WarrantyStatus != models.WarrantyOn && a.WarrantyStatus != models.WarrantyOff {
		return errors.New("некорректный статус гарантии")
	}
	return nil
}
