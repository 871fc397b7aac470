package designationprovider

import (
	"hr-admin-backend/db"
	companystore "hr-admin-backend/lib/dicts/company/store"
	"hr-admin-backend/lib/dicts/designation/store"
	initchecker "hr-admin-backend/lib/utils/init-checker"
	apimodels "hr-admin-backend/models/api"
	staffapimodels "hr-admin-backend/models/api/staff"
	dbmodels "hr-admin-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(tenantID uint, request staffapimodels.DesignationData) (item staffapimodels.DesignationView, hMsg string, err error)
	Update(tenantID, id uint, request staffapimodels.DesignationData) (item *staffapimodels.DesignationView, hMsg string, err error)
	Get(tenantID, id uint) (item *staffapimodels.DesignationView, err error)
	List(tenantID uint, filter apimodels.ListFilter) (list []staffapimodels.DesignationView, err error)
	Delete(tenantID, id uint) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:        store.NewInstance(db.DB),
		companyStore: companystore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
		"companyStore", instance.companyStore,
	)
	Instance = instance
}

type impl struct {
	store        store.Provider
	companyStore companystore.Provider
}

func (i impl) getLogger(tenantID, id uint) *log.Entry {
	return log.WithField("tenant_id", tenantID).
		WithField("rec_id", id)
}

func (i impl) checkCompany(tenantID, companyID uint) (hMsg string, err error) {
	company, err := i.companyStore.GetByID(tenantID, companyID)
	if err != nil {
		return "", err
	}
	if company == nil {
		return "Компания не найдена", nil
	}
	return "", nil
}

func (i impl) Create(tenantID uint, request staffapimodels.DesignationData) (item staffapimodels.DesignationView, hMsg string, err error) {
	hMsg, err = i.checkCompany(tenantID, request.CompanyID)
	if err != nil || hMsg != "" {
		return item, hMsg, err
	}
	rec := dbmodels.Designation{
		BaseTenantModel: dbmodels.BaseTenantModel{CreatedBy: tenantID},
		CompanyID:       request.CompanyID,
		Name:            request.Name,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return item, "", err
	}
	i.getLogger(tenantID, id).Info("создана должность")
	created, err := i.Get(tenantID, id)
	if err != nil || created == nil {
		rec.ID = id
		return staffapimodels.DesignationConvert(rec), "", err
	}
	return *created, "", nil
}

func (i impl) Update(tenantID, id uint, request staffapimodels.DesignationData) (item *staffapimodels.DesignationView, hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, "", err
	}
	hMsg, err = i.checkCompany(tenantID, request.CompanyID)
	if err != nil || hMsg != "" {
		return nil, hMsg, err
	}
	updMap := map[string]interface{}{
		"company_id": request.CompanyID,
		"name":       request.Name,
	}
	err = i.store.Update(tenantID, id, updMap)
	if err != nil {
		return nil, "", err
	}
	i.getLogger(tenantID, id).Info("обновлена должность")
	item, err = i.Get(tenantID, id)
	return item, "", err
}

func (i impl) Get(tenantID, id uint) (item *staffapimodels.DesignationView, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, err
	}
	view := staffapimodels.DesignationConvert(*rec)
	return &view, nil
}

func (i impl) List(tenantID uint, filter apimodels.ListFilter) (list []staffapimodels.DesignationView, err error) {
	recList, err := i.store.List(tenantID, filter)
	if err != nil {
		return nil, err
	}
	result := make([]staffapimodels.DesignationView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, staffapimodels.DesignationConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(tenantID, id uint) (hMsg string, err error) {
	inUse, err := i.store.InUse(tenantID, id)
	if err != nil {
		return "", err
	}
	if inUse {
		return "Должность назначена сотрудникам, удаление невозможно", nil
	}
	err = i.store.Delete(tenantID, id)
	if err != nil {
		return "", err
	}
	i.getLogger(tenantID, id).Info("удалена должность")
	return "", nil
}
