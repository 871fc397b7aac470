package dbmodels

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type Employee struct {
	BaseTenantModel
	CompanyID     uint            `gorm:"index"`
	Company       *Company        `gorm:"foreignKey:CompanyID"`
	DesignationID *uint           `gorm:"index"`
	Designation   *Designation    `gorm:"foreignKey:DesignationID"`
	Name          string          `gorm:"type:varchar(255)"`
	Email         string          `gorm:"type:varchar(255);index"`
	Avatar        string          `gorm:"type:varchar(512)"`
	Salary        decimal.Decimal `gorm:"type:numeric(12,2);default:0"`
}

func (e Employee) Validate() error {
	if err := e.BaseTenantModel.Validate(); err != nil {
		return err
	}
	if e.CompanyID == 0 {
		return errors.New("отсутствует ссылка на компанию")
	}
	if e.Name == "" {
		return errors.New("не указано имя сотрудника")
	}
	if e.Salary.IsNegative() {
		return errors.New("оклад не может быть отрицательным")
	}
	return nil
}
