package promotionhandler

import (
	"hr-admin-backend/db"
	designationstore "hr-admin-backend/lib/dicts/designation/store"
	employeestore "hr-admin-backend/lib/employee/store"
	promotionstore "hr-admin-backend/lib/promotion/store"
	initchecker "hr-admin-backend/lib/utils/init-checker"
	apimodels "hr-admin-backend/models/api"
	staffapimodels "hr-admin-backend/models/api/staff"
	dbmodels "hr-admin-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(tenantID uint, request staffapimodels.PromotionData) (item staffapimodels.PromotionView, hMsg string, err error)
	Update(tenantID, id uint, request staffapimodels.PromotionData) (item *staffapimodels.PromotionView, hMsg string, err error)
	Get(tenantID, id uint) (item *staffapimodels.PromotionView, err error)
	List(tenantID uint, filter apimodels.ListFilter) (list []staffapimodels.PromotionView, err error)
	Delete(tenantID, id uint) (found bool, err error)
}

var Instance Provider

type txFunc func(fn func(store promotionstore.Provider, employees employeestore.Provider) error) error

func NewHandler() {
	instance := impl{
		store:            promotionstore.NewInstance(db.DB),
		employeeStore:    employeestore.NewInstance(db.DB),
		designationStore: designationstore.NewInstance(db.DB),
		withTx: func(fn func(store promotionstore.Provider, employees employeestore.Provider) error) error {
			return db.DB.Transaction(func(tx *gorm.DB) error {
				return fn(promotionstore.NewInstance(tx), employeestore.NewInstance(tx))
			})
		},
	}
	initchecker.CheckInit(
		"store", instance.store,
		"employeeStore", instance.employeeStore,
		"designationStore", instance.designationStore,
	)
	Instance = instance
}

type impl struct {
	store            promotionstore.Provider
	employeeStore    employeestore.Provider
	designationStore designationstore.Provider
	withTx           txFunc
}

func (i impl) getLogger(tenantID, id uint) *log.Entry {
	return log.WithField("tenant_id", tenantID).
		WithField("rec_id", id)
}

// checkRefs новая должность должна относиться к компании сотрудника
func (i impl) checkRefs(tenantID uint, request staffapimodels.PromotionData) (hMsg string, err error) {
	employee, err := i.employeeStore.GetByID(tenantID, request.EmployeeID)
	if err != nil {
		return "", err
	}
	if employee == nil {
		return "Сотрудник не найден", nil
	}
	designation, err := i.designationStore.GetByID(tenantID, request.DesignationID)
	if err != nil {
		return "", err
	}
	if designation == nil {
		return "Должность не найдена", nil
	}
	if designation.CompanyID != employee.CompanyID {
		return "Должность не относится к компании сотрудника", nil
	}
	return "", nil
}

func (i impl) Create(tenantID uint, request staffapimodels.PromotionData) (item staffapimodels.PromotionView, hMsg string, err error) {
	hMsg, err = i.checkRefs(tenantID, request)
	if err != nil || hMsg != "" {
		return item, hMsg, err
	}
	rec := dbmodels.Promotion{
		BaseTenantModel: dbmodels.BaseTenantModel{CreatedBy: tenantID},
		EmployeeID:      request.EmployeeID,
		DesignationID:   request.DesignationID,
		PromotionDate:   request.PromotionDate,
		Description:     request.Description,
	}
	var id uint
	err = i.withTx(func(store promotionstore.Provider, employees employeestore.Provider) error {
		var err error
		id, err = store.Create(rec)
		if err != nil {
			return err
		}
		return employees.Update(tenantID, request.EmployeeID, map[string]interface{}{
			"designation_id": request.DesignationID,
		})
	})
	if err != nil {
		return item, "", errors.Wrap(err, "ошибка создания повышения")
	}
	i.getLogger(tenantID, id).
		WithField("employee_id", request.EmployeeID).
		WithField("designation_id", request.DesignationID).
		Info("создано повышение, должность сотрудника обновлена")
	created, err := i.Get(tenantID, id)
	if err != nil || created == nil {
		rec.ID = id
		return staffapimodels.PromotionConvert(rec), "", err
	}
	return *created, "", nil
}

func (i impl) Update(tenantID, id uint, request staffapimodels.PromotionData) (item *staffapimodels.PromotionView, hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, "", err
	}
	hMsg, err = i.checkRefs(tenantID, request)
	if err != nil || hMsg != "" {
		return nil, hMsg, err
	}
	updMap := map[string]interface{}{
		"employee_id":    request.EmployeeID,
		"designation_id": request.DesignationID,
		"promotion_date": request.PromotionDate,
		"description":    request.Description,
	}
	err = i.withTx(func(store promotionstore.Provider, employees employeestore.Provider) error {
		if err := store.Update(tenantID, id, updMap); err != nil {
			return err
		}
		if rec.DesignationID == request.DesignationID && rec.EmployeeID == request.EmployeeID {
			return nil
		}
		return employees.Update(tenantID, request.EmployeeID, map[string]interface{}{
			"designation_id": request.DesignationID,
		})
	})
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка обновления повышения")
	}
	i.getLogger(tenantID, id).Info("обновлено повышение")
	item, err = i.Get(tenantID, id)
	return item, "", err
}

func (i impl) Get(tenantID, id uint) (item *staffapimodels.PromotionView, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, err
	}
	view := staffapimodels.PromotionConvert(*rec)
	return &view, nil
}

func (i impl) List(tenantID uint, filter apimodels.ListFilter) (list []staffapimodels.PromotionView, err error) {
	recList, err := i.store.List(tenantID, filter)
	if err != nil {
		return nil, err
	}
	result := make([]staffapimodels.PromotionView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, staffapimodels.PromotionConvert(rec))
	}
	return result, nil
}

// Delete удаляет запись истории, текущая должность сотрудника не меняется
func (i impl) Delete(tenantID, id uint) (found bool, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return false, err
	}
	err = i.store.Delete(tenantID, id)
	if err != nil {
		return true, errors.Wrap(err, "ошибка удаления повышения")
	}
	i.getLogger(tenantID, id).Info("удалено повышение")
	return true, nil
}
