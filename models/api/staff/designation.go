package staffapimodels

import (
	"hr-admin-backend/models"
	dbmodels "hr-admin-backend/models/db"
	"strings"

	"github.com/pkg/errors"
)

type DesignationData struct {
	CompanyID uint   `json:"company_id"`
	Name      string `json:"name"`
}

func (d DesignationData) Validate() error {
	if d.CompanyID == 0 {
		return errors.New("не указана компания")
	}
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("не указано название должности")
	}
	return nil
}

type DesignationView struct {
	DesignationData
	ID        uint         `json:"id"`
	CreatedBy uint         `json:"created_by"`
	Company   *CompanyView `json:"company,omitempty"`
}

func (v DesignationView) GetID() uint { return v.ID }

func DesignationConvert(rec dbmodels.Designation) DesignationView {
	view := DesignationView{
		DesignationData: DesignationData{
			CompanyID: rec.CompanyID,
			Name:      rec.Name,
		},
		ID:        rec.ID,
		CreatedBy: rec.CreatedBy,
	}
	if rec.Company != nil {
		company := CompanyConvert(*rec.Company)
		view.Company = &company
	}
	return view
}

type PromotionData struct {
	EmployeeID    uint        `json:"employee_id"`
	DesignationID uint        `json:"designation_id"`
	PromotionDate models.Date `json:"promotion_date"`
	Description   string      `json:"description"`
}

func (p PromotionData) Validate() error {
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

type PromotionView struct {
	PromotionData
	ID          uint             `json:"id"`
	CreatedBy   uint             `json:"created_by"`
	Employee    *EmployeeRef     `json:"employee,omitempty"`
	Designation *DesignationView `json:"designation,omitempty"`
}

func (v PromotionView) GetID() uint { return v.ID }

func PromotionConvert(rec dbmodels.Promotion) PromotionView {
	view := PromotionView{
		PromotionData: PromotionData{
			EmployeeID:    rec.EmployeeID,
			DesignationID: rec.DesignationID,
			PromotionDate: rec.PromotionDate,
			Description:   rec.Description,
		},
		ID:        rec.ID,
		CreatedBy: rec.CreatedBy,
		Employee:  EmployeeRefConvert(rec.Employee),
	}
	if rec.Designation != nil {
		designation := DesignationConvert(*rec.Designation)
		view.Designation = &designation
	}
	return view
}
