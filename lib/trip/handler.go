package triphandler

import (
	"hr-admin-backend/db"
	employeestore "hr-admin-backend/lib/employee/store"
	tripstore "hr-admin-backend/lib/trip/store"
	initchecker "hr-admin-backend/lib/utils/init-checker"
	apimodels "hr-admin-backend/models/api"
	requestapimodels "hr-admin-backend/models/api/request"
	dbmodels "hr-admin-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(tenantID uint, request requestapimodels.TripData) (item requestapimodels.TripView, hMsg string, err error)
	Update(tenantID, id uint, request requestapimodels.TripData) (item *requestapimodels.TripView, hMsg string, err error)
	Get(tenantID, id uint) (item *requestapimodels.TripView, err error)
	List(tenantID uint, filter apimodels.ListFilter) (list []requestapimodels.TripView, err error)
	Delete(tenantID, id uint) (found bool, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:         tripstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
		"employeeStore", instance.employeeStore,
	)
	Instance = instance
}

type impl struct {
	store         tripstore.Provider
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

func (i impl) Create(tenantID uint, request requestapimodels.TripData) (item requestapimodels.TripView, hMsg string, err error) {
	hMsg, err = i.checkEmployee(tenantID, request.EmployeeID)
	if err != nil || hMsg != "" {
		return item, hMsg, err
	}
	rec := dbmodels.Trip{
		BaseTenantModel: dbmodels.BaseTenantModel{CreatedBy: tenantID},
		EmployeeID:      request.EmployeeID,
		Place:           request.Place,
		Purpose:         request.Purpose,
		StartDate:       request.StartDate,
		EndDate:         request.EndDate,
		Budget:          request.Budget,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return item, "", errors.Wrap(err, "ошибка создания командировки")
	}
	i.getLogger(tenantID, id).Info("создана командировка")
	created, err := i.Get(tenantID, id)
	if err != nil || created == nil {
		rec.ID = id
		return requestapimodels.TripConvert(rec), "", err
	}
	return *created, "", nil
}

func (i impl) Update(tenantID, id uint, request requestapimodels.TripData) (item *requestapimodels.TripView, hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, "", err
	}
	hMsg, err = i.checkEmployee(tenantID, request.EmployeeID)
	if err != nil || hMsg != "" {
		return nil, hMsg, err
	}
	updMap := map[string]interface{}{
		"employee_id": request.EmployeeID,
		"place":       request.Place,
		"purpose":     request.Purpose,
		"start_date":  request.StartDate,
		"end_date":    request.EndDate,
		"budget":      request.Budget,
	}
	err = i.store.Update(tenantID, id, updMap)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка обновления командировки")
	}
	i.getLogger(tenantID, id).Info("обновлена командировка")
	item, err = i.Get(tenantID, id)
	return item, "", err
}

func (i impl) Get(tenantID, id uint) (item *requestapimodels.TripView, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, err
	}
	view := requestapimodels.TripConvert(*rec)
	return &view, nil
}

func (i impl) List(tenantID uint, filter apimodels.ListFilter) (list []requestapimodels.TripView, err error) {
	recList, err := i.store.List(tenantID, filter)
	if err != nil {
		return nil, err
	}
	result := make([]requestapimodels.TripView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, requestapimodels.TripConvert(rec))
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
		return true, errors.Wrap(err, "ошибка удаления командировки")
	}
	i.getLogger(tenantID, id).Info("удалена командировка")
	return true, nil
}
