package staffapimodels

import (
	dbmodels "hr-admin-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// EmployeeRef проекция сотрудника, встраиваемая в записи заявок
type EmployeeRef struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	CompanyID uint   `json:"company_id"`
}

func EmployeeRefConvert(rec *dbmodels.Employee) *EmployeeRef {
	if rec == nil {
		return nil
	}
	return &EmployeeRef{
		ID:        rec.ID,
		Name:      rec.Name,
		Email:     rec.Email,
		Avatar:    rec.Avatar,
		CompanyID: rec.CompanyID,
	}
}

type EmployeeData struct {
	CompanyID     uint            `json:"company_id"`
	DesignationID *uint           `json:"designation_id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Avatar        string          `json:"avatar"`
	Salary        decimal.Decimal `json:"salary"`
}

func (e EmployeeData) Validate() error {
	if e.CompanyID == 0 {
		return errors.New("не указана компания")
	}
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("не указано имя сотрудника")
	}
	if e.Email != "" && !strings.Contains(e.Email, "@") {
		return errors.New("некорректный email")
	}
	if e.Salary.IsNegative() {
		return errors.New("оклад не может быть отрицательным")
	}
	return nil
}

type EmployeeView struct {
	EmployeeData
	ID          uint             `json:"id"`
	CreatedBy   uint             `json:"created_by"`
	Company     *CompanyView     `json:"company,omitempty"`
	Designation *DesignationView `json:"designation,omitempty"`
}

func (v EmployeeView) GetID() uint { return v.ID }

func EmployeeConvert(rec dbmodels.Employee) EmployeeView {
	view := EmployeeView{
		EmployeeData: EmployeeData{
			CompanyID:     rec.CompanyID,
			DesignationID: rec.DesignationID,
			Name:          rec.Name,
			Email:         rec.Email,
			Avatar:        rec.Avatar,
			Salary:        rec.Salary,
		},
		ID:        rec.ID,
		CreatedBy: rec.CreatedBy,
	}
	if rec.Company != nil {
		company := CompanyConvert(*rec.Company)
		view.Company = &company
	}
	if rec.Designation != nil {
		designation := DesignationConvert(*rec.Designation)
		view.Designation = &designation
	}
	return view
}

type CompanyData struct {
	Name string `json:"name"`
}

func (c CompanyData) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("не указано название компании")
	}
	return nil
}

type CompanyView struct {
	CompanyData
	ID        uint `json:"id"`
	CreatedBy uint `json:"created_by"`
}

func (v CompanyView) GetID() uint { return v.ID }

func CompanyConvert(rec dbmodels.Company) CompanyView {
	return CompanyView{
		CompanyData: CompanyData{Name: rec.Name},
		ID:          rec.ID,
		CreatedBy:   rec.CreatedBy,
	}
}

type CategoryData struct {
	Name string `json:"name"`
}

func (c CategoryData) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("не указано название категории")
	}
	return nil
}

type CategoryView struct {
	CategoryData
	ID        uint `json:"id"`
	CreatedBy uint `json:"created_by"`
}

func (v CategoryView) GetID() uint { return v.ID }

func CategoryConvert(rec dbmodels.Category) CategoryView {
	return CategoryView{
		CategoryData: CategoryData{Name: rec.Name},
		ID:           rec.ID,
		CreatedBy:    rec.CreatedBy,
	}
}
