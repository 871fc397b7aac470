package paysliphandler

import (
	"bytes"
	"context"
	"fmt"
	"hr-admin-backend/config"
	"hr-admin-backend/db"
	employeestore "hr-admin-backend/lib/employee/store"
	pdfexport "hr-admin-backend/lib/export/pdf"
	xlsexport "hr-admin-backend/lib/export/xls"
	payslipstore "hr-admin-backend/lib/payslip/store"
	"hr-admin-backend/lib/smtp"
	initchecker "hr-admin-backend/lib/utils/init-checker"
	"hr-admin-backend/lib/utils/lock"
	"hr-admin-backend/models"
	apimodels "hr-admin-backend/models/api"
	payrollapimodels "hr-admin-backend/models/api/payroll"
	dbmodels "hr-admin-backend/models/db"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const generateWait = 3 * time.Second

type Provider interface {
	Create(tenantID uint, request payrollapimodels.PayslipData) (item payrollapimodels.PayslipView, hMsg string, err error)
	Update(tenantID, id uint, request payrollapimodels.PayslipData) (item *payrollapimodels.PayslipView, hMsg string, err error)
	Get(tenantID, id uint) (item *payrollapimodels.PayslipView, err error)
	List(tenantID uint, filter apimodels.ListFilter) (list []payrollapimodels.PayslipView, err error)
	Delete(tenantID, id uint) (found bool, err error)
	// Generate формирует расчетные листы за период из окладов сотрудников
	Generate(ctx context.Context, tenantID uint, request payrollapimodels.GenerateRequest) (result payrollapimodels.GenerateResult, hMsg string, err error)
	Export(tenantID uint, filter apimodels.ListFilter) (*bytes.Buffer, error)
	PDF(tenantID, id uint) (data []byte, fileName string, err error)
	Send(tenantID, id uint) (hMsg string, err error)
	ImportSalaries(tenantID uint, r io.Reader) (result payrollapimodels.SalaryImportResult, hMsg string, err error)
}

var Instance Provider

type txFunc func(fn func(employees employeestore.Provider) error) error

func NewHandler() {
	instance := impl{
		store:         payslipstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		xls:           xlsexport.Instance,
		mailer:        smtp.Instance,
		companyTitle:  config.Conf.Payslip.CompanyTitle,
		fontDir:       config.Conf.Payslip.FontDir,
		withTx: func(fn func(employees employeestore.Provider) error) error {
			return db.DB.Transaction(func(tx *gorm.DB) error {
				return fn(employeestore.NewInstance(tx))
			})
		},
	}
	initchecker.CheckInit(
		"store", instance.store,
		"employeeStore", instance.employeeStore,
		"xls", instance.xls,
		"mailer", instance.mailer,
	)
	Instance = instance
}

type impl struct {
	store         payslipstore.Provider
	employeeStore employeestore.Provider
	xls           xlsexport.Provider
	mailer        smtp.Provider
	companyTitle  string
	fontDir       string
	withTx        txFunc
}

func (i impl) getLogger(tenantID, id uint) *log.Entry {
	return log.WithField("tenant_id", tenantID).
		WithField("rec_id", id)
}

func (i impl) Create(tenantID uint, request payrollapimodels.PayslipData) (item payrollapimodels.PayslipView, hMsg string, err error) {
	employee, err := i.employeeStore.GetByID(tenantID, request.EmployeeID)
	if err != nil {
		return item, "", err
	}
	if employee == nil {
		return item, "Сотрудник не найден", nil
	}
	exists, err := i.store.Exists(tenantID, request.EmployeeID, request.Month, request.Year)
	if err != nil {
		return item, "", err
	}
	if exists {
		return item, "Расчетный лист сотрудника за этот период уже сформирован", nil
	}
	rec := dbmodels.Payslip{
		BaseTenantModel: dbmodels.BaseTenantModel{CreatedBy: tenantID},
		EmployeeID:      request.EmployeeID,
		Month:           request.Month,
		Year:            request.Year,
		BasicSalary:     request.BasicSalary,
		Allowance:       request.Allowance,
		Deduction:       request.Deduction,
		Status:          models.PayslipStatusGenerated,
	}
	rec.CalcNet()
	if rec.NetSalary.IsNegative() {
		return item, "Удержания превышают начисления", nil
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return item, "", errors.Wrap(err, "ошибка создания расчетного листа")
	}
	i.getLogger(tenantID, id).Info("создан расчетный лист")
	created, err := i.Get(tenantID, id)
	if err != nil || created == nil {
		rec.ID = id
		return payrollapimodels.PayslipConvert(rec), "", err
	}
	return *created, "", nil
}

func (i impl) Update(tenantID, id uint, request payrollapimodels.PayslipData) (item *payrollapimodels.PayslipView, hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, "", err
	}
	if rec.EmployeeID != request.EmployeeID || rec.Month != request.Month || rec.Year != request.Year {
		return nil, "Сотрудника и период расчетного листа изменить нельзя", nil
	}
	rec.BasicSalary, rec.Allowance, rec.Deduction = request.BasicSalary, request.Allowance, request.Deduction
	rec.CalcNet()
	if rec.NetSalary.IsNegative() {
		return nil, "Удержания превышают начисления", nil
	}
	updMap := map[string]interface{}{
		"basic_salary": rec.BasicSalary,
		"allowance":    rec.Allowance,
		"deduction":    rec.Deduction,
		"net_salary":   rec.NetSalary,
		"status":       models.PayslipStatusGenerated,
	}
	err = i.store.Update(tenantID, id, updMap)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка обновления расчетного листа")
	}
	i.getLogger(tenantID, id).Info("обновлен расчетный лист")
	item, err = i.Get(tenantID, id)
	return item, "", err
}

func (i impl) Get(tenantID, id uint) (item *payrollapimodels.PayslipView, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, err
	}
	view := payrollapimodels.PayslipConvert(*rec)
	return &view, nil
}

func (i impl) List(tenantID uint, filter apimodels.ListFilter) (list []payrollapimodels.PayslipView, err error) {
	recList, err := i.store.List(tenantID, filter)
	if err != nil {
		return nil, err
	}
	result := make([]payrollapimodels.PayslipView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, payrollapimodels.PayslipConvert(rec))
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
		return true, errors.Wrap(err, "ошибка удаления расчетного листа")
	}
	i.getLogger(tenantID, id).Info("удален расчетный лист")
	return true, nil
}

func (i impl) Generate(ctx context.Context, tenantID uint, request payrollapimodels.GenerateRequest) (result payrollapimodels.GenerateResult, hMsg string, err error) {
	logger := i.getLogger(tenantID, 0).
		WithField("month", request.Month).
		WithField("year", request.Year)
	key := lock.Key("payslip_generate", tenantID)
	success, err := lock.WithDelay(ctx, key, generateWait, func() error {
		employees, err := i.employeeStore.List(tenantID, apimodels.ListFilter{CompanyID: request.CompanyID})
		if err != nil {
			return errors.Wrap(err, "ошибка получения списка сотрудников")
		}
		batch := make([]dbmodels.Payslip, 0, len(employees))
		for _, employee := range employees {
			exists, err := i.store.Exists(tenantID, employee.ID, request.Month, request.Year)
			if err != nil {
				return err
			}
			if exists {
				result.Skipped++
				continue
			}
			batch = append(batch, dbmodels.Payslip{
				BaseTenantModel: dbmodels.BaseTenantModel{CreatedBy: tenantID},
				EmployeeID:      employee.ID,
				Month:           request.Month,
				Year:            request.Year,
				BasicSalary:     employee.Salary,
				Allowance:       decimal.Zero,
				Deduction:       decimal.Zero,
				Status:          models.PayslipStatusGenerated,
			})
		}
		created, err := i.store.CreateBatch(batch)
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения расчетных листов")
		}
		result.Created = created
		result.Skipped += len(batch) - created
		return nil
	})
	if err != nil {
		return result, "", err
	}
	if !success {
		return result, "Формирование расчетных листов уже выполняется, повторите позже", nil
	}
	logger.
		WithField("created", result.Created).
		WithField("skipped", result.Skipped).
		Info("сформированы расчетные листы")
	return result, "", nil
}

func (i impl) Export(tenantID uint, filter apimodels.ListFilter) (*bytes.Buffer, error) {
	list, err := i.store.List(tenantID, filter)
	if err != nil {
		return nil, err
	}
	return i.xls.ExportPayslipList(list)
}

func (i impl) PDF(tenantID, id uint) (data []byte, fileName string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil || rec == nil {
		return nil, "", err
	}
	data, err = pdfexport.GeneratePayslip(i.companyTitle, i.fontDir, *rec)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка формирования pdf")
	}
	return data, pdfexport.PayslipFileName(*rec), nil
}

func (i impl) Send(tenantID, id uint) (hMsg string, err error) {
	rec, err := i.store.GetByID(tenantID, id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "Расчетный лист не найден", nil
	}
	if rec.Employee == nil || rec.Employee.Email == "" {
		return "У сотрудника не указан email", nil
	}
	data, err := pdfexport.GeneratePayslip(i.companyTitle, i.fontDir, *rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка формирования pdf")
	}
	subject := fmt.Sprintf("Расчетный лист за %02d.%d", rec.Month, rec.Year)
	message := fmt.Sprintf("Здравствуйте, %s!\r\nВо вложении расчетный лист за %02d.%d.\r\n", rec.Employee.Name, rec.Month, rec.Year)
	err = i.mailer.SendWithAttachment(rec.Employee.Email, subject, message, pdfexport.PayslipFileName(*rec), data)
	if err != nil {
		return "", errors.Wrap(err, "ошибка отправки расчетного листа")
	}
	err = i.store.Update(tenantID, id, map[string]interface{}{"status": models.PayslipStatusSent})
	if err != nil {
		return "", errors.Wrap(err, "ошибка обновления статуса расчетного листа")
	}
	i.getLogger(tenantID, id).
		WithField("email", rec.Employee.Email).
		Info("расчетный лист отправлен")
	return "", nil
}

func (i impl) ImportSalaries(tenantID uint, r io.Reader) (result payrollapimodels.SalaryImportResult, hMsg string, err error) {
	rows, skipped, err := i.xls.ReadSalaries(r)
	if err != nil {
		return result, "Не удалось прочитать файл, ожидается xlsx с колонками email и оклад", nil
	}
	result.Skipped = skipped
	err = i.withTx(func(employees employeestore.Provider) error {
		for _, row := range rows {
			employee, err := employees.FindByEmail(tenantID, row.Email)
			if err != nil {
				return err
			}
			if employee == nil {
				result.Skipped = append(result.Skipped, fmt.Sprintf("строка %d: сотрудник %s не найден", row.Row, row.Email))
				continue
			}
			err = employees.Update(tenantID, employee.ID, map[string]interface{}{"salary": row.Salary})
			if err != nil {
				return errors.Wrapf(err, "строка %d", row.Row)
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		return payrollapimodels.SalaryImportResult{}, "", errors.Wrap(err, "ошибка импорта окладов")
	}
	i.getLogger(tenantID, 0).
		WithField("updated", result.Updated).
		WithField("skipped", len(result.Skipped)).
		Info("импортированы оклады")
	return result, "", nil
}
