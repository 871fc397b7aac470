package reimbursementhandler

import (
	"context"
	"fmt"
	"hr-admin-backend/db"
	categorystore "hr-admin-backend/lib/dicts/category/store"
	employeestore "hr-admin-backend/lib/employee/store"
	filestorage "hr-admin-backend/lib/file-storage"
	reimbursementstore "hr-admin-backend/lib/reimbursement/store"
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

const noticeTitle = "Возмещение расходов"

type Provider interface {
	Create(ctx context.Context, tenantID uint, request requestapimodels.ReimbursementData, receipt *requestapimodels.ReceiptFile) (item requestapimodels.ReimbursementView, hMsg string, err error)
	Update(ctx context.Context, tenantID, id uint, request requestapimodels.ReimbursementData, receipt *requestapimodels.ReceiptFile) (item *requestapimodels.ReimbursementView, hMsg string, err error)
	Get(tenantID, id uint) (item *requestapimodels.ReimbursementView, err error)
	List(tenantID uint, filter apimodels.ListFilter) (list []requestapimodels.ReimbursementView, err error)
	Delete(ctx context.Context, tenantID, id uint) (found bool, err error)
	ChangeStatus(tenantID, id uint, actor string, request requestapimodels.StatusChange) (item *requestapimodels.ReimbursementView, hMsg string, err error)
	History(tenantID, id uint) (list []requestapimodels.HistoryView, err error)
	Receipt(ctx context.Context, tenantID, id uint) (file *dbmodels.FileStorage, data []byte, err error)
}

var Instance Provider

type txFunc func(fn func(store reimbursementstore.Provider, history statushistorystore.Provider) error) error

func NewHandler() {
	instance := impl{
		store:         reimbursementstore.NewInstance(db.DB),
		historyStore:  statushistorystore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		categoryStore: categorystore.NewInstance(db.DB),
		files:         filestorage.Instance,
		mailer:        smtp.Instance,
		withTx: func(fn func(store reimbursementstore.Provider, history statushistorystore.Provider) error) error {
			return db.DB.Transaction(func(tx *gorm.DB) error {
				return fn(reimbursementstore.NewInstance(tx), statushistorystore.NewInstance(tx))
			})
		},
		now: time.Now,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"historyStore", instance.historyStore,
		"employeeStore", instance.employeeStore,
		"categoryStore", instance.categoryStore,
		"files", instance.files,
	)
	Instance = instance
}

type impl struct {
	store         reimbursementstore.Provider
	historyStore  statushistorystore.Provider
	employeeStore employeestore.Provider
	categoryStore categorystore.Provider
	files         filestorage.Provider
	mailer        smtp.Provider
	withTx        txFunc
	now           func() time.Time
}

func (i impl) getLogger(tenantID, id uint) *log.Entry {
	return log.WithField("tenant_id", tenantID).
		WithField("rec_id", id)
}

func (i impl) checkRefs(tenantID uint, request requestapimodels.ReimbursementData) (hMsg string, err error) {
	employee, err := i.employeeStore.GetByID(tenantID, request.EmployeeID)
	if err != nil {
		return "", err
	}
	if employee == nil {
		return "Сотрудник не найден", nil
	}
	category, err := i.categoryStore.GetByID(tenantID, request.CategoryID)
	if err != nil {
		return "", err
	}
	if category == nil {
		return "Категория расходов не найдена", nil
	}
	return "", nil
}

func (i impl) upload(ctx context.Context, tenantID uint, receipt *requestapimodels.ReceiptFile) (fileID *uint, hMsg string, err error) {
	if receipt == nil {
		return nil, "", nil
	}
	file, hMsg, err := i.files.Upload(ctx, tenantID, receipt.Name, receipt.ContentType, receipt.Body)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка загрузки чека")
	}
	if hMsg != "" {
		return nil, hMsg, nil
	}
	return &file.ID, "", nil
}

func (i impl) dropFile(ctx context.Context, tenantID uint, fileID *uint) {
	if fileID == nil {
		return
	}
	if err := i.files.Delete(ctx, tenantID, *fileID); err != nil {
		i.getLogger(tenantID, 0).WithError(err).WithField("file_id", *fileID).Warn("не удален файл чека")
	}
}

func (i impl) Create(ctx context.Context, tenantID uint, request requestapimodels.ReimbursementData, receipt *requestapimodels.ReceiptFile) (item requestapimodels.ReimbursementView, hMsg string, err error) {
	hMsg, err = i.checkRefs(tenantID, request)
	if err != nil || hMsg != "" {
		return item, hMsg, err
	}
	receiptID, hMsg, err := i.upload(ctx, tenantID, receipt)
	if err != nil || hMsg != "" {
		return item, hMsg, err
	}
	rec := dbmodels.Reimbursement{
		BaseTenantModel: dbmodels.BaseTenantModel{CreatedBy: tenantID},
		EmployeeID:      request.EmployeeID,
		CategoryID:      request.CategoryID,
		Date:            request.Date,
		Amount:          request.Amount,
		Description:     request.Description,
		ReceiptID:       receiptID,
		StatusWorkflow: dbmodels.StatusWorkflow{
			Status: workflow.Reimbursement.Initial(),
		},
	}
	id, err := i.store.Create(rec)
	if err != nil {
		i.dropFile(ctx, tenantID, receiptID)
		return item, "", errors.Wrap(err, "ошибка создания заявки на возмещение")
	}
	i.getLogger(tenantID, id).
		WithField("amount", rec.Amount.String()).
		Info("создана заявка на возмещение")
	created, err := i.Get(tenantID, id)
	if err != nil || created == nil {
		rec.ID = id
		return requestapimodels.ReimbursementConvert(rec), "", err
	}
	return *created, "", nil
}

func (i impl) Update(ctx context.Context, tenantID, id uint, request requestapimodels.ReimbursementData, receipt *requestapimodels.ReceiptFile) (item *requestapimodels.ReimbursementView, hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, "", err
	}
	if err = workflow.Reimbursement.ValidateEdit(rec.Status); err != nil {
		return nil, err.Error(), nil
	}
	hMsg, err = i.checkRefs(tenantID, request)
	if err != nil || hMsg != "" {
		return nil, hMsg, err
	}
	receiptID, hMsg, err := i.upload(ctx, tenantID, receipt)
	if err != nil || hMsg != "" {
		return nil, hMsg, err
	}
	updMap := map[string]interface{}{
		"employee_id": request.EmployeeID,
		"category_id": request.CategoryID,
		"date":        request.Date,
		"amount":      request.Amount,
		"description": request.Description,
	}
	if receiptID != nil {
		updMap["receipt_id"] = *receiptID
	}
	err = i.store.Update(tenantID, id, updMap)
	if err != nil {
		i.dropFile(ctx, tenantID, receiptID)
		return nil, "", errors.Wrap(err, "ошибка обновления заявки на возмещение")
	}
	if receiptID != nil {
		i.dropFile(ctx, tenantID, rec.ReceiptID)
	}
	i.getLogger(tenantID, id).Info("обновлена заявка на возмещение")
	item, err = i.Get(tenantID, id)
	return item, "", err
}

func (i impl) Get(tenantID, id uint) (item *requestapimodels.ReimbursementView, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, err
	}
	view := requestapimodels.ReimbursementConvert(*rec)
	return &view, nil
}

func (i impl) List(tenantID uint, filter apimodels.ListFilter) (list []requestapimodels.ReimbursementView, err error) {
	recList, err := i.store.List(tenantID, filter)
	if err != nil {
		return nil, err
	}
	result := make([]requestapimodels.ReimbursementView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, requestapimodels.ReimbursementConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(ctx context.Context, tenantID, id uint) (found bool, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return false, err
	}
	err = i.withTx(func(store reimbursementstore.Provider, history statushistorystore.Provider) error {
		if err := history.DeleteByEntity(tenantID, dbmodels.ReimbursementEntity, id); err != nil {
			return err
		}
		return store.Delete(tenantID, id)
	})
	if err != nil {
		return true, errors.Wrap(err, "ошибка удаления заявки на возмещение")
	}
	i.dropFile(ctx, tenantID, rec.ReceiptID)
	i.getLogger(tenantID, id).
		WithField("status", rec.Status).
		Info("удалена заявка на возмещение")
	return true, nil
}

func (i impl) ChangeStatus(tenantID, id uint, actor string, request requestapimodels.StatusChange) (item *requestapimodels.ReimbursementView, hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, "", err
	}
	from, to := rec.Status, request.Status
	if err = workflow.Reimbursement.Validate(from, to); err != nil {
		return nil, fmt.Sprintf("%s: %s -> %s", errors.Cause(err).Error(), from.ToHuman(), to.ToHuman()), nil
	}
	remark := workflow.Reimbursement.ResolveRemark(to, request.Remark)
	at := i.now()
	err = i.withTx(func(store reimbursementstore.Provider, history statushistorystore.Provider) error {
		if err := store.UpdateStatus(tenantID, id, from, rec.UpdMap(to, actor, remark, at)); err != nil {
			return err
		}
		_, err := history.Create(statushistory.NewRecord(tenantID, dbmodels.ReimbursementEntity, id, from, to, actor, remark))
		return err
	})
	if err != nil {
		if errors.Is(err, workflow.ErrStatusChanged) {
			return nil, "Статус заявки был изменен другим пользователем, обновите список", nil
		}
		return nil, "", errors.Wrap(err, "ошибка смены статуса заявки на возмещение")
	}
	rec.Apply(to, actor, remark, at)
	i.getLogger(tenantID, id).
		WithField("from_status", from).
		WithField("to_status", to).
		Info("изменен статус заявки на возмещение")
	statushistory.Notify(i.mailer, rec.Employee, noticeTitle, id, rec.StatusWorkflow)
	view := requestapimodels.ReimbursementConvert(*rec)
	return &view, "", nil
}

func (i impl) History(tenantID, id uint) (list []requestapimodels.HistoryView, err error) {
	recList, err := i.historyStore.List(tenantID, dbmodels.ReimbursementEntity, id)
	if err != nil {
		return nil, err
	}
	result := make([]requestapimodels.HistoryView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, requestapimodels.HistoryConvert(rec))
	}
	return result, nil
}

func (i impl) Receipt(ctx context.Context, tenantID, id uint) (*dbmodels.FileStorage, []byte, error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil || rec.ReceiptID == nil {
		return nil, nil, err
	}
	return i.files.GetFile(ctx, tenantID, *rec.ReceiptID)
}
