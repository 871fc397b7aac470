package dbmodels

import (
	"hr-admin-backend/models"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	OvertimeEntity      = "overtime"
	ReimbursementEntity = "reimbursement"
)

type Overtime struct {
	BaseTenantModel
	EmployeeID uint      `gorm:"index"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID"`
	Date       models.Date
	Hours      decimal.Decimal `gorm:"type:numeric(5,2)"`
	Reason     string          `gorm:"type:text"`
	StatusWorkflow
}

func (o Overtime) Validate() error {
	if err := o.BaseTenantModel.Validate(); err != nil {
		return err
	}
	if o.EmployeeID == 0 {
		return errors.New("не указан сотрудник")
	}
	if o.Date.IsZero() {
		return errors.New("не указана дата")
	}
	if !o.Hours.IsPositive() {
		return errors.New("количество часов должно быть больше нуля")
	}
	return nil
}

type Reimbursement struct {
	BaseTenantModel
	EmployeeID  uint      `gorm:"index"`
	Employee    *Employee `gorm:"foreignKey:EmployeeID"`
	CategoryID  uint      `gorm:"index"`
	Category    *Category `gorm:"foreignKey:CategoryID"`
	Date        models.Date
	Amount      decimal.Decimal `gorm:"type:numeric(12,2)"`
	Description string          `gorm:"type:text"`
	ReceiptID   *uint
	Receipt     *FileStorage `gorm:"foreignKey:ReceiptID"`
	StatusWorkflow
}

func (r Reimbursement) Validate() error {
	if err := r.BaseTenantModel.Validate(); err != nil {
		return err
	}
	if r.EmployeeID == 0 {
		return errors.New("не указан сотрудник")
	}
	if r.CategoryID == 0 {
		return errors.New("не указана категория")
	}
	if r.Date.IsZero() {
		return errors.New("не указана дата")
	}
	if !r.Amount.IsPositive() {
		return errors.New("сумма должна быть больше нуля")
	}
	return nil
}

type Trip struct {
	BaseTenantModel
	EmployeeID uint      `gorm:"index"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID"`
	Place      string    `gorm:"type:varchar(255)"`
	Purpose    string    `gorm:"type:text"`
	StartDate  models.Date
	EndDate    models.Date
	Budget     decimal.Decimal `gorm:"type:numeric(12,2);default:0"`
}

func (t Trip) Validate() error {
	if err := t.BaseTenantModel.Validate(); err != nil {
		return err
	}
	if t.EmployeeID == 0 {
		return errors.New("не указан сотрудник")
	}
	if t.Place == "" {
		return errors.New("не указано место командировки")
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return errors.New("не указаны даты командировки")
	}
	if t.EndDate.Before(t.StartDate.Time) {
		return errors.New("дата окончания раньше даты начала")
	}
	return nil
}
