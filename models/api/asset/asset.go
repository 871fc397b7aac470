package assetapimodels

import (
	"hr-admin-backend/models"
	staffapimodels "hr-admin-backend/models/api/staff"
	dbmodels "hr-admin-backend/models/db"
	"strings"

	"github.com/pkg/errors"
)

type AssetData struct {
	EmployeeID     uint                  `json:"employee_id"`
	Name           string                `json:"name"`
	Brand          string                `json:"brand"`
	WarrantyStatus models.WarrantyStatus `json:"warranty_status"`
	BuyingDate     models.Date           `json:"buying_date"`
}

func (a AssetData) Validate() error {
	if a.EmployeeID == 0 {
		return errors.New("не указан сотрудник")
	}
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("не указано название")
	}
	if a.WarrantyStatus != models.WarrantyOn && a.WarrantyStatus != models.WarrantyOff {
		return errors.New("некорректный статус гарантии")
	}
	return nil
}

type AssetView struct {
	AssetData
	ID        uint                        `json:"id"`
	CreatedBy uint                        `json:"created_by"`
	Employee  *staffapimodels.EmployeeRef `json:"employee,omitempty"`
}

func (v AssetView) GetID() uint { return v.ID }

func AssetConvert(rec dbmodels.Asset) AssetView {
	return AssetView{
		AssetData: AssetData{
			EmployeeID:     rec.EmployeeID,
			Name:           rec.Name,
			Brand:          rec.Brand,
			WarrantyStatus: rec.WarrantyStatus,
			BuyingDate:     rec.BuyingDate,
		},
		ID:        rec.ID,
		CreatedBy: rec.CreatedBy,
		Employee:  staffapimodels.EmployeeRefConvert(rec.Employee),
	}
}
