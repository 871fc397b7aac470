package requestapimodels

import (
	"hr-admin-backend/models"
	staffapimodels "hr-admin-backend/models/api/staff"
	dbmodels "hr-admin-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type TripData struct {
	EmployeeID uint            `json:"employee_id"`
	Place      string          `json:"place"`
	Purpose    string          `json:"purpose"`
	StartDate  models.Date     `json:"start_date"`
	EndDate    models.Date     `json:"end_date"`
	Budget     decimal.Decimal `json:"budget"`
}

func (t TripData) Validate() error {
	if t.EmployeeID == 0 {
		return errors.New("не указан сотрудник")
	}
	if strings.TrimSpace(t.Place) == "" {
		return errors.New("не указано место командировки")
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return errors.New("не указаны даты командировки")
	}
	if t.EndDate.Before(t.StartDate.Time) {
		return errors.New("дата окончания раньше даты начала")
	}
	if t.Budget.IsNegative() {
		return errors.New("бюджет не может быть отрицательным")
	}
	return nil
}

type TripView struct {
	TripData
	ID        uint                        `json:"id"`
	CreatedBy uint                        `json:"created_by"`
	Employee  *staffapimodels.EmployeeRef `json:"employee,omitempty"`
}

func (v TripView) GetID() uint { return v.ID }

func TripConvert(rec dbmodels.Trip) TripView {
	return TripView{
		TripData: TripData{
			EmployeeID: rec.EmployeeID,
			Place:      rec.Place,
			Purpose:    rec.Purpose,
			StartDate:  rec.StartDate,
			EndDate:    rec.EndDate,
			Budget:     rec.Budget,
		},
		ID:        rec.ID,
		CreatedBy: rec.CreatedBy,
		Employee:  staffapimodels.EmployeeRefConvert(rec.Employee),
	}
}
