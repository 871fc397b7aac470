package companyprovider

import (
	"hr-admin-backend/db"
	"hr-admin-backend/lib/dicts/company/store"
	initchecker "hr-admin-backend/lib/utils/init-checker"
	staffapimodels "hr-admin-backend/models/api/staff"
	dbmodels "hr-admin-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(tenantID uint, request staffapimodels.CompanyData) (item staffapimodels.CompanyView, hMsg string, err error)
	Update(tenantID, id uint, request staffapimodels.CompanyData) (item *staffapimodels.CompanyView, hMsg string, err error)
	Get(tenantID, id uint) (item *staffapimodels.CompanyView, err error)
	List(tenantID uint, search string) (list []staffapimodels.CompanyView, err error)
	Delete(tenantID, id uint) (hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: store.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store store.Provider
}

func (i impl) getLogger(tenantID, id uint) *log.Entry {
	logger := log.WithField("tenant_id", tenantID)
	if id != 0 {
		logger = logger.WithField("rec_id", id)
	}
	return logger
}

func (i impl) Create(tenantID uint, request staffapimodels.CompanyData) (item staffapimodels.CompanyView, hMsg string, err error) {
	unique, err := i.store.IsUnique(tenantID, 0, request.Name)
	if err != nil {
		return item, "", err
	}
	if !unique {
		return item, "Компания с таким названием уже существует", nil
	}
	rec := dbmodels.Company{
		BaseTenantModel: dbmodels.BaseTenantModel{CreatedBy: tenantID},
		Name:            request.Name,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return item, "", err
	}
	rec.ID = id
	i.getLogger(tenantID, id).
		WithField("company_name", rec.Name).
		Info("создана компания")
	return staffapimodels.CompanyConvert(rec), "", nil
}

func (i impl) Update(tenantID, id uint, request staffapimodels.CompanyData) (item *staffapimodels.CompanyView, hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, "", err
	}
	unique, err := i.store.IsUnique(tenantID, id, request.Name)
	if err != nil {
		return nil, "", err
	}
	if !unique {
		return nil, "Компания с таким названием уже существует", nil
	}
	updMap := map[string]interface{}{
		"name": request.Name,
	}
	err = i.store.Update(tenantID, id, updMap)
	if err != nil {
		return nil, "", err
	}
	rec.Name = request.Name
	i.getLogger(tenantID, id).Info("обновлена компания")
	view := staffapimodels.CompanyConvert(*rec)
	return &view, "", nil
}

func (i impl) Get(tenantID, id uint) (item *staffapimodels.CompanyView, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, err
	}
	view := staffapimodels.CompanyConvert(*rec)
	return &view, nil
}

func (i impl) List(tenantID uint, search string) (list []staffapimodels.CompanyView, err error) {
	recList, err := i.store.FindByName(tenantID, search)
	if err != nil {
		return nil, err
	}
	result := make([]staffapimodels.CompanyView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, staffapimodels.CompanyConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(tenantID, id uint) (hMsg string, err error) {
	hasEmployees, err := i.store.HasEmployees(tenantID, id)
	if err != nil {
		return "", err
	}
	if hasEmployees {
		return "Нельзя удалить компанию, в которой есть сотрудники", nil
	}
	err = i.store.Delete(tenantID, id)
	if err != nil {
		return "", err
	}
	i.getLogger(tenantID, id).Info("удалена компания")
	return "", nil
}
