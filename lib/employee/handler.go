package employeehandler

import (
	"hr-admin-backend/db"
	companystore "hr-admin-backend/lib/dicts/company/store"
	designationstore "hr-admin-backend/lib/dicts/designation/store"
	employeestore "hr-admin-backend/lib/employee/store"
	initchecker "hr-admin-backend/lib/utils/init-checker"
	apimodels "hr-admin-backend/models/api"
	staffapimodels "hr-admin-backend/models/api/staff"
	dbmodels "hr-admin-backend/models/db"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(tenantID uint, request staffapimodels.EmployeeData) (item staffapimodels.EmployeeView, hMsg string, err error)
	Update(tenantID, id uint, request staffapimodels.EmployeeData) (item *staffapimodels.EmployeeView, hMsg string, err error)
	Get(tenantID, id uint) (item *staffapimodels.EmployeeView, err error)
	List(tenantID uint, filter apimodels.ListFilter) (list []staffapimodels.EmployeeView, err error)
	Delete(tenantID, id uint) error
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:            employeestore.NewInstance(db.DB),
		companyStore:     companystore.NewInstance(db.DB),
		designationStore: designationstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
		"companyStore", instance.companyStore,
		"designationStore", instance.designationStore,
	)
	Instance = instance
}

type impl struct {
	store            employeestore.Provider
	companyStore     companystore.Provider
	designationStore designationstore.Provider
}

func (i impl) getLogger(tenantID, id uint) *log.Entry {
	return log.WithField("tenant_id", tenantID).
		WithField("rec_id", id)
}

func (i impl) checkRefs(tenantID, selfID uint, request staffapimodels.EmployeeData) (hMsg string, err error) {
	company, err := i.companyStore.GetByID(tenantID, request.CompanyID)
	if err != nil {
		return "", err
	}
	if company == nil {
		return "Компания не найдена", nil
	}
	if request.DesignationID != nil {
		designation, err := i.designationStore.GetByID(tenantID, *request.DesignationID)
		if err != nil {
			return "", err
		}
		if designation == nil || designation.CompanyID != request.CompanyID {
			return "Должность не найдена в компании", nil
		}
	}
	if request.Email != "" {
		existed, err := i.store.FindByEmail(tenantID, request.Email)
		if err != nil {
			return "", err
		}
		if existed != nil && existed.ID != selfID {
			return "Сотрудник с таким email уже существует", nil
		}
	}
	return "", nil
}

func (i impl) Create(tenantID uint, request staffapimodels.EmployeeData) (item staffapimodels.EmployeeView, hMsg string, err error) {
	hMsg, err = i.checkRefs(tenantID, 0, request)
	if err != nil || hMsg != "" {
		return item, hMsg, err
	}
	rec := dbmodels.Employee{
		BaseTenantModel: dbmodels.BaseTenantModel{CreatedBy: tenantID},
		CompanyID:       request.CompanyID,
		DesignationID:   request.DesignationID,
		Name:            strings.TrimSpace(request.Name),
		Email:           strings.TrimSpace(request.Email),
		Avatar:          request.Avatar,
		Salary:          request.Salary,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return item, "", err
	}
	i.getLogger(tenantID, id).Info("добавлен сотрудник")
	created, err := i.Get(tenantID, id)
	if err != nil || created == nil {
		rec.ID = id
		return staffapimodels.EmployeeConvert(rec), "", err
	}
	return *created, "", nil
}

func (i impl) Update(tenantID, id uint, request staffapimodels.EmployeeData) (item *staffapimodels.EmployeeView, hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, "", err
	}
	hMsg, err = i.checkRefs(tenantID, id, request)
	if err != nil || hMsg != "" {
		return nil, hMsg, err
	}
	updMap := map[string]interface{}{
		"company_id":     request.CompanyID,
		"designation_id": request.DesignationID,
		"name":           strings.TrimSpace(request.Name),
		"email":          strings.TrimSpace(request.Email),
		"avatar":         request.Avatar,
		"salary":         request.Salary,
	}
	err = i.store.Update(tenantID, id, updMap)
	if err != nil {
		return nil, "", err
	}
	i.getLogger(tenantID, id).Info("обновлен сотрудник")
	item, err = i.Get(tenantID, id)
	return item, "", err
}

func (i impl) Get(tenantID, id uint) (item *staffapimodels.EmployeeView, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, err
	}
	view := staffapimodels.EmployeeConvert(*rec)
	return &view, nil
}

func (i impl) List(tenantID uint, filter apimodels.ListFilter) (list []staffapimodels.EmployeeView, err error) {
	recList, err := i.store.List(tenantID, filter)
	if err != nil {
		return nil, err
	}
	result := make([]staffapimodels.EmployeeView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, staffapimodels.EmployeeConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(tenantID, id uint) error {
	err := i.store.Delete(tenantID, id)
	if err != nil {
		return err
	}
	i.getLogger(tenantID, id).Info("удален сотрудник")
	return nil
}
