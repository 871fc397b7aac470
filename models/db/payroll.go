package dbmodels

import (
	"hr-admin-backend/models"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type Payslip struct {
	BaseTenantModel
	EmployeeID  uint                 `gorm:"uniqueIndex:idx_payslip_period"`
	Employee    *Employee            `gorm:"foreignKey:EmployeeID"`
	Month       int                  `gorm:"uniqueIndex:idx_payslip_period"`
	Year        int                  `gorm:"uniqueIndex:idx_payslip_period"`
	BasicSalary decimal.Decimal      `gorm:"type:numeric(12,2)"`
	Allowance   decimal.Decimal      `gorm:"type:numeric(12,2);default:0"`
	Deduction   decimal.Decimal      `gorm:"type:numeric(12,2);default:0"`
	NetSalary   decimal.Decimal      `gorm:"type:numeric(12,2)"`
	Status      models.PayslipStatus `gorm:"type:varchar(20);default:'generated'"`
}

// CalcNet оклад + надбавки - удержания
func (p *Payslip) CalcNet() {
	p.NetSalary = p.BasicSalary.Add(p.Allowance).Sub(p.Deduction)
}

func (p Payslip) Validate() error {
	if err := p.BaseTenantModel.Validate(); err != nil {
		return err
	}
	if p.EmployeeID == 0 {
		return errors.New("не указан сотрудник")
	}
	if p.Month < 1 || p.Month > 12 {
		return errors.New("некорректный месяц")
	}
	if p.Year < 2000 {
		return errors.New("некорректный год")
	}
	if p.NetSalary.IsNegative() {
		return errors.New("удержания превышают начисления")
	}
	return nil
}

type Promotion struct {
	BaseTenantModel
	EmployeeID    uint         `gorm:"index"`
	Employee      *Employee    `gorm:"foreignKey:EmployeeID"`
	DesignationID uint         `gorm:"index"`
	Designation   *Designation `gorm:"foreignKey:DesignationID"`
	PromotionDate models.Date
	Description   string `gorm:"type:text"`
}

func (p Promotion) Validate() error {
	if err := p.BaseTenantModel.Validate(); err != nil {
		return err
	}
	if p.EmployeeID == 0 {
		return errors.New("не указан сотрудник")
	}
	if p.DesignationID == 0 {
		return errors.New("не указана новая должность")
	}
	if p.PromotionDate.IsZero() {
		return errors.New("не указана дата повышения")
	}
	return nil
}
