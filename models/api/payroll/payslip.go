package payrollapimodels

import (
	"hr-admin-backend/models"
	staffapimodels "hr-admin-backend/models/api/staff"
	dbmodels "hr-admin-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type PayslipData struct {
	EmployeeID  uint            `json:"employee_id"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	BasicSalary decimal.Decimal `json:"basic_salary"`
	Allowance   decimal.Decimal `json:"allowance"`
	Deduction   decimal.Decimal `json:"deduction"`
}

func (p PayslipData) Validate() error {
	if p.EmployeeID == 0 {
		return errors.New("не указан сотрудник")
	}
	if err := validatePeriod(p.Month, p.Year); err != nil {
		return err
	}
	if p.BasicSalary.IsNegative() || p.Allowance.IsNegative() || p.Deduction.IsNegative() {
		return errors.New("суммы не могут быть отрицательными")
	}
	return nil
}

type PayslipView struct {
	PayslipData
	ID        uint                        `json:"id"`
	CreatedBy uint                        `json:"created_by"`
	NetSalary decimal.Decimal             `json:"net_salary"`
	Status    models.PayslipStatus        `json:"status"`
	Employee  *staffapimodels.EmployeeRef `json:"employee,omitempty"`
}

func (v PayslipView) GetID() uint { return v.ID }

func PayslipConvert(rec dbmodels.Payslip) PayslipView {
	return PayslipView{
		PayslipData: PayslipData{
			EmployeeID:  rec.EmployeeID,
			Month:       rec.Month,
			Year:        rec.Year,
			BasicSalary: rec.BasicSalary,
			Allowance:   rec.Allowance,
			Deduction:   rec.Deduction,
		},
		ID:        rec.ID,
		CreatedBy: rec.CreatedBy,
		NetSalary: rec.NetSalary,
		Status:    rec.Status,
		Employee:  staffapimodels.EmployeeRefConvert(rec.Employee),
	}
}

type GenerateRequest struct {
	Month     int  `json:"month"`
	Year      int  `json:"year"`
	CompanyID uint `json:"company_id"`
}

func (g GenerateRequest) Validate() error {
	return validatePeriod(g.Month, g.Year)
}

type GenerateResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

type SalaryImportResult struct {
	Updated int      `json:"updated"`
	Skipped []string `json:"skipped"`
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return errors.New("некорректный месяц")
	}
	if year < 2000 || year > time.Now().Year()+1 {
		return errors.New("некорректный год")
	}
	return nil
}
