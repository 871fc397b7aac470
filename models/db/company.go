package dbmodels

import "github.com/pkg/errors"

type Company struct {
	BaseTenantModel
	Name string `gorm:"type:varchar(255)"`
}

func (c Company) Validate() error {
	if err := c.BaseTenantModel.Validate(); err != nil {
		return err
	}
	if c.Name == "" {
		return errors.New("не указано название компании")
	}
	return nil
}

type Category struct {
	BaseTenantModel
	Name string `gorm:"type:varchar(255)"`
}

func (c Category) Validate() error {
	if err := c.BaseTenantModel.Validate(); err != nil {
		return err
	}
	if c.Name == "" {
		return errors.New("не указано название категории")
	}
	return nil
}

type Designation struct {
	BaseTenantModel
	CompanyID uint     `gorm:"index"`
	Company   *Company `gorm:"foreignKey:CompanyID"`
	Name      string   `gorm:"type:varchar(255)"`
}

func (d Designation) Validate() error {
	if err := d.BaseTenantModel.Validate(); err != nil {
		return err
	}
	if d.CompanyID == 0 {
		return errors.New("отсутствует ссылка на компанию")
	}
	if d.Name == "" {
		return errors.New("не указано название должности")
	}
	return nil
}
