package categoryprovider

import (
	"hr-admin-backend/db"
	"hr-admin-backend/lib/dicts/category/store"
	initchecker "hr-admin-backend/lib/utils/init-checker"
	staffapimodels "hr-admin-backend/models/api/staff"
	dbmodels "hr-admin-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(tenantID uint, request staffapimodels.CategoryData) (item staffapimodels.CategoryView, hMsg string, err error)
	Update(tenantID, id uint, request staffapimodels.CategoryData) (item *staffapimodels.CategoryView, hMsg string, err error)
	Get(tenantID, id uint) (item *staffapimodels.CategoryView, err error)
	List(tenantID uint, search string) (list []staffapimodels.CategoryView, err error)
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

func (i impl) Create(tenantID uint, request staffapimodels.CategoryData) (item staffapimodels.CategoryView, hMsg string, err error) {
	unique, err := i.store.IsUnique(tenantID, 0, request.Name)
	if err != nil {
		return item, "", err
	}
	if !unique {
		return item, "Категория с таким названием уже существует", nil
	}
	rec := dbmodels.Category{
		BaseTenantModel: dbmodels.BaseTenantModel{CreatedBy: tenantID},
		Name:            request.Name,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return item, "", err
	}
	rec.ID = id
	i.getLogger(tenantID, id).
		WithField("category_name", rec.Name).
		Info("создана категория")
	return staffapimodels.CategoryConvert(rec), "", nil
}

func (i impl) Update(tenantID, id uint, request staffapimodels.CategoryData) (item *staffapimodels.CategoryView, hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, "", err
	}
	unique, err := i.store.IsUnique(tenantID, id, request.Name)
	if err != nil {
		return nil, "", err
	}
	if !unique {
		return nil, "Категория с таким названием уже существует", nil
	}
	updMap := map[string]interface{}{
		"name": request.Name,
	}
	err = i.store.Update(tenantID, id, updMap)
	if err != nil {
		return nil, "", err
	}
	rec.Name = request.Name
	i.getLogger(tenantID, id).Info("обновлена категория")
	view := staffapimodels.CategoryConvert(*rec)
	return &view, "", nil
}

func (i impl) Get(tenantID, id uint) (item *staffapimodels.CategoryView, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, err
	}
	view := staffapimodels.CategoryConvert(*rec)
	return &view, nil
}

func (i impl) List(tenantID uint, search string) (list []staffapimodels.CategoryView, err error) {
	recList, err := i.store.FindByName(tenantID, search)
	if err != nil {
		return nil, err
	}
	result := make([]staffapimodels.CategoryView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, staffapimodels.CategoryConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(tenantID, id uint) (hMsg string, err error) {
	hasReimbursements, err := i.store.HasReimbursements(tenantID, id)
	if err != nil {
		return "", err
	}
	if hasReimbursements {
		return "Нельзя удалить категорию, по которой есть заявки", nil
	}
	err = i.store.Delete(tenantID, id)
	if err != nil {
		return "", err
	}
	i.getLogger(tenantID, id).Info("удалена категория")
	return "", nil
}
