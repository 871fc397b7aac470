package requestapimodels

import (
	"hr-admin-backend/models"
	staffapimodels "hr-admin-backend/models/api/staff"
	dbmodels "hr-admin-backend/models/db"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type OvertimeData struct {
	EmployeeID uint            `json:"employee_id"`
	Date       models.Date     `json:"date"`
	Hours      decimal.Decimal `json:"hours"`
	Reason     string          `json:"reason"`
}

func (o OvertimeData) Validate() error {
	if o.EmployeeID == 0 {
		return errors.New("не указан сотрудник")
	}
	if o.Date.IsZero() {
		return errors.New("не указана дата")
	}
	if !o.Hours.IsPositive() {
		return errors.New("количество часов должно быть больше нуля")
	}
	if o.Hours.GreaterThan(decimal.NewFromInt(24)) {
		return errors.New("количество часов не может превышать 24")
	}
	return nil
}

type OvertimeView struct {
	OvertimeData
	WorkflowView
	ID        uint                        `json:"id"`
	CreatedBy uint                        `json:"created_by"`
	Employee  *staffapimodels.EmployeeRef `json:"employee,omitempty"`
}

func (v OvertimeView) GetID() uint { return v.ID }

func OvertimeConvert(rec dbmodels.Overtime) OvertimeView {
	return OvertimeView{
		OvertimeData: OvertimeData{
			EmployeeID: rec.EmployeeID,
			Date:       rec.Date,
			Hours:      rec.Hours,
			Reason:     rec.Reason,
		},
		WorkflowView: WorkflowConvert(rec.StatusWorkflow),
		ID:           rec.ID,
		CreatedBy:    rec.CreatedBy,
		Employee:     staffapimodels.EmployeeRefConvert(rec.Employee),
	}
}
