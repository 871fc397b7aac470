package requestapimodels

import (
	"hr-admin-backend/models"
	staffapimodels "hr-admin-backend/models/api/staff"
	dbmodels "hr-admin-backend/models/db"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type ReimbursementData struct {
	EmployeeID  uint            `json:"employee_id"`
	CategoryID  uint            `json:"category_id"`
	Date        models.Date     `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

func (r ReimbursementData) Validate() error {
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

// ReceiptFile чек, переданный в multipart запросе
type ReceiptFile struct {
	Name        string
	ContentType string
	Body        []byte
}

type ReimbursementView struct {
	ReimbursementData
	WorkflowView
	ID          uint                         `json:"id"`
	CreatedBy   uint                         `json:"created_by"`
	ReceiptID   *uint                        `json:"receipt_id,omitempty"`
	ReceiptName string                       `json:"receipt_name,omitempty"`
	Employee    *staffapimodels.EmployeeRef  `json:"employee,omitempty"`
	Category    *staffapimodels.CategoryView `json:"category,omitempty"`
}

func (v ReimbursementView) GetID() uint { return v.ID }

func ReimbursementConvert(rec dbmodels.Reimbursement) ReimbursementView {
	view := ReimbursementView{
		ReimbursementData: ReimbursementData{
			EmployeeID:  rec.EmployeeID,
			CategoryID:  rec.CategoryID,
			Date:        rec.Date,
			Amount:      rec.Amount,
			Description: rec.Description,
		},
		WorkflowView: WorkflowConvert(rec.StatusWorkflow),
		ID:           rec.ID,
		CreatedBy:    rec.CreatedBy,
		ReceiptID:    rec.ReceiptID,
		Employee:     staffapimodels.EmployeeRefConvert(rec.Employee),
	}
	if rec.Receipt != nil {
		view.ReceiptName = rec.Receipt.Name
	}
	if rec.Category != nil {
		category := staffapimodels.CategoryConvert(*rec.Category)
		view.Category = &category
	}
	return view
}
