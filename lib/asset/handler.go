package assethandler

import (
	"hr-admin-backend/db"
	assetstore "hr-admin-backend/lib/asset/store"
	employeestore "hr-admin-backend/lib/employee/store"
	initchecker "hr-admin-backend/lib/utils/init-checker"
	apimodels "hr-admin-backend/models/api"
	assetapimodels "hr-admin-backend/models/api/asset"
	dbmodels "hr-admin-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(tenantID uint, request assetapimodels.AssetData) (item assetapimodels.AssetView, hMsg string, err error)
	Update(tenantID, id uint, request assetapimodels.AssetData) (item *assetapimodels.AssetView, hMsg string, err error)
	Get(tenantID, id uint) (item *assetapimodels.AssetView, err error)
	List(tenantID uint, filter apimodels.ListFilter) (list []assetapimodels.AssetView, err error)
	Delete(tenantID, id uint) (found bool, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:         assetstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
		"employeeStore", instance.employeeStore,
	)
	Instance = instance
}

type impl struct {
	store         assetstore.Provider
	employeeStore employeestore.Provider
}

func (i impl) getLogger(tenantID, id uint) *log.Entry {
	return log.WithField("tenant_id", tenantID).
		WithField("rec_id", id)
}

func (i impl) checkEmployee(tenantID, employeeID uint) (hMsg string, err error) {
	employee, err := i.employeeStore.GetByID(tenantID, employeeID)
	if err != nil {
		return "", err
	}
	if employee == nil {
		return "Сотрудник не найден", nil
	}
	return "", nil
}

func (i impl) Create(tenantID uint, request assetapimodels.AssetData) (item assetapimodels.AssetView, hMsg string, err error) {
	hMsg, err = i.checkEmployee(tenantID, request.EmployeeID)
	if err != nil || hMsg != "" {
		return item, hMsg, err
	}
	rec := dbmodels.Asset{
		BaseTenantModel: dbmodels.BaseTenantModel{CreatedBy: tenantID},
		EmployeeID:      request.EmployeeID,
		Name:            request.Name,
		Brand:           request.Brand,
		WarrantyStatus:  request.WarrantyStatus,
		BuyingDate:      request.BuyingDate,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return item, "", errors.Wrap(err, "ошибка создания актива")
	}
	i.getLogger(tenantID, id).Info("создан актив")
	created, err := i.Get(tenantID, id)
	if err != nil || created == nil {
		rec.ID = id
		return assetapimodels.AssetConvert(rec), "", err
	}
	return *created, "", nil
}

func (i impl) Update(tenantID, id uint, request assetapimodels.AssetData) (item *assetapimodels.AssetView, hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, "", err
	}
	hMsg, err = i.checkEmployee(tenantID, request.EmployeeID)
	if err != nil || hMsg != "" {
		return nil, hMsg, err
	}
	updMap := map[string]interface{}{
		"employee_id":     request.EmployeeID,
		"name":            request.Name,
		"brand":           request.Brand,
		"warranty_status": request.WarrantyStatus,
		"buying_date":     request.BuyingDate,
	}
	err = i.store.Update(tenantID, id, updMap)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка обновления актива")
	}
	i.getLogger(tenantID, id).Info("обновлен актив")
	item, err = i.Get(tenantID, id)
	return item, "", err
}

func (i impl) Get(tenantID, id uint) (item *assetapimodels.AssetView, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, err
	}
	view := assetapimodels.AssetConvert(*rec)
	return &view, nil
}

func (i impl) List(tenantID uint, filter apimodels.ListFilter) (list []assetapimodels.AssetView, err error) {
	recList, err := i.store.List(tenantID, filter)
	if err != nil {
		return nil, err
	}
	result := make([]assetapimodels.AssetView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, assetapimodels.AssetConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(tenantID, id uint) (found bool, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return false, err
	}
	err = i.store.Delete(tenantID, id)
	if err != nil {
		return true, errors.Wrap(err, "ошибка удаления актива")
	}
	i.getLogger(tenantID, id).
		WithField("employee_id", rec.EmployeeID).
		Info("удален актив")
	return true, nil
}
