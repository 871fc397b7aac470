package overtimehandler

import (
	"fmt"
	"hr-admin-backend/db"
	employeestore "hr-admin-backend/lib/employee/store"
	overtimestore "hr-admin-backend/lib/overtime/store"
	"hr-admin-backend/lib/smtp"
	statushistory "hr-admin-backend/lib/status-history"
	statushistorystore "hr-admin-backend/lib/status-history/store"
	initchecker "hr-admin-backend/lib/utils/init-checker"
	"hr-admin-backend/lib/workflow"
	apimodels "hr-admin-backend/models/api"
	requestapimodels "hr-admin-backend/models/api/request"
	dbmodels "hr-admin-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const noticeTitle = "Переработка"

type Provider interface {
	Create(tenantID uint, request requestapimodels.OvertimeData) (item requestapimodels.OvertimeView, hMsg string, err error)
	Update(tenantID, id uint, request requestapimodels.OvertimeData) (item *requestapimodels.OvertimeView, hMsg string, err error)
	Get(tenantID, id uint) (item *requestapimodels.OvertimeView, err error)
	List(tenantID uint, filter apimodels.ListFilter) (list []requestapimodels.OvertimeView, err error)
	Delete(tenantID, id uint) (found bool, err error)
	ChangeStatus(tenantID, id uint, actor string, request requestapimodels.StatusChange) (item *requestapimodels.OvertimeView, hMsg string, err error)
	History(tenantID, id uint) (list []requestapimodels.HistoryView, err error)
}

var Instance Provider

type txFunc func(fn func(store overtimestore.Provider, history statushistorystore.Provider) error) error

func NewHandler() {
	instance := impl{
		store:         overtimestore.NewInstance(db.DB),
		historyStore:  statushistorystore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		mailer:        smtp.Instance,
		withTx: func(fn func(store overtimestore.Provider, history statushistorystore.Provider) error) error {
			return db.DB.Transaction(func(tx *gorm.DB) error {
				return fn(overtimestore.NewInstance(tx), statushistorystore.NewInstance(tx))
			})
		},
		now: time.Now,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"historyStore", instance.historyStore,
		"employeeStore", instance.employeeStore,
	)
	Instance = instance
}

type impl struct {
	store         overtimestore.Provider
	historyStore  statushistorystore.Provider
	employeeStore employeestore.Provider
	mailer        smtp.Provider
	withTx        txFunc
	now           func() time.Time
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

func (i impl) Create(tenantID uint, request requestapimodels.OvertimeData) (item requestapimodels.OvertimeView, hMsg string, err error) {
	hMsg, err = i.checkEmployee(tenantID, request.EmployeeID)
	if err != nil || hMsg != "" {
		return item, hMsg, err
	}
	rec := dbmodels.Overtime{
		BaseTenantModel: dbmodels.BaseTenantModel{CreatedBy: tenantID},
		EmployeeID:      request.EmployeeID,
		Date:            request.Date,
		Hours:           request.Hours,
		Reason:          request.Reason,
		StatusWorkflow: dbmodels.StatusWorkflow{
			Status: workflow.Overtime.Initial(),
		},
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return item, "", errors.Wrap(err, "ошибка создания заявки на переработку")
	}
	i.getLogger(tenantID, id).Info("создана заявка на переработку")
	created, err := i.Get(tenantID, id)
	if err != nil || created == nil {
		rec.ID = id
		return requestapimodels.OvertimeConvert(rec), "", err
	}
	return *created, "", nil
}

func (i impl) Update(tenantID, id uint, request requestapimodels.OvertimeData) (item *requestapimodels.OvertimeView, hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, "", err
	}
	if err = workflow.Overtime.ValidateEdit(rec.Status); err != nil {
		return nil, err.Error(), nil
	}
	hMsg, err = i.checkEmployee(tenantID, request.EmployeeID)
	if err != nil || hMsg != "" {
		return nil, hMsg, err
	}
	updMap := map[string]interface{}{
		"employee_id": request.EmployeeID,
		"date":        request.Date,
		"hours":       request.Hours,
		"reason":      request.Reason,
	}
	err = i.store.Update(tenantID, id, updMap)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка обновления заявки на переработку")
	}
	i.getLogger(tenantID, id).Info("обновлена заявка на переработку")
	item, err = i.Get(tenantID, id)
	return item, "", err
}

func (i impl) Get(tenantID, id uint) (item *requestapimodels.OvertimeView, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, err
	}
	view := requestapimodels.OvertimeConvert(*rec)
	return &view, nil
}

func (i impl) List(tenantID uint, filter apimodels.ListFilter) (list []requestapimodels.OvertimeView, err error) {
	recList, err := i.store.List(tenantID, filter)
	if err != nil {
		return nil, err
	}
	result := make([]requestapimodels.OvertimeView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, requestapimodels.OvertimeConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(tenantID, id uint) (found bool, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return false, err
	}
	err = i.withTx(func(store overtimestore.Provider, history statushistorystore.Provider) error {
		if err := history.DeleteByEntity(tenantID, dbmodels.OvertimeEntity, id); err != nil {
			return err
		}
		return store.Delete(tenantID, id)
	})
	if err != nil {
		return true, errors.Wrap(err, "ошибка удаления заявки на переработку")
	}
	i.getLogger(tenantID, id).
		WithField("status", rec.Status).
		Info("удалена заявка на переработку")
	return true, nil
}

func (i impl) ChangeStatus(tenantID, id uint, actor string, request requestapimodels.StatusChange) (item *requestapimodels.OvertimeView, hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, "", err
	}
	from, to := rec.Status, request.Status
	if err = workflow.Overtime.Validate(from, to); err != nil {
		return nil, fmt.Sprintf("%s: %s -> %s", errors.Cause(err).Error(), from.ToHuman(), to.ToHuman()), nil
	}
	remark := workflow.Overtime.ResolveRemark(to, request.Remark)
	at := i.now()
	err = i.withTx(func(store overtimestore.Provider, history statushistorystore.Provider) error {
		if err := store.UpdateStatus(tenantID, id, from, rec.UpdMap(to, actor, remark, at)); err != nil {
			return err
		}
		_, err := history.Create(statushistory.NewRecord(tenantID, dbmodels.OvertimeEntity, id, from, to, actor, remark))
		return err
	})
	if err != nil {
		if errors.Is(err, workflow.ErrStatusChanged) {
			return nil, "Статус заявки был изменен другим пользователем, обновите список", nil
		}
		return nil, "", errors.Wrap(err, "ошибка смены статуса заявки на переработку")
	}
	rec.Apply(to, actor, remark, at)
	i.getLogger(tenantID, id).
		WithField("from_status", from).
		WithField("to_status", to).
		Info("изменен статус заявки на переработку")
	statushistory.Notify(i.mailer, rec.Employee, noticeTitle, id, rec.StatusWorkflow)
	view := requestapimodels.OvertimeConvert(*rec)
	return &view, "", nil
}

func (i impl) History(tenantID, id uint) (list []requestapimodels.HistoryView, err error) {
	recList, err := i.historyStore.List(tenantID, dbmodels.OvertimeEntity, id)
	if err != nil {
		return nil, err
	}
	result := make([]requestapimodels.HistoryView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, requestapimodels.HistoryConvert(rec))
	}
	return result, nil
}
