package paysliphandler

import (
	"bytes"
	"context"
	"fmt"
	employeestore "hr-admin-backend/lib/employee/store"
	xlsexport "hr-admin-backend/lib/export/xls"
	"hr-admin-backend/lib/utils/lock"
	"hr-admin-backend/models"
	apimodels "hr-admin-backend/models/api"
	payrollapimodels "hr-admin-backend/models/api/payroll"
	dbmodels "hr-admin-backend/models/db"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type payslipStoreMock struct {
	recs map[uint]dbmodels.Payslip
}

func (m *payslipStoreMock) Create(rec dbmodels.Payslip) (uint, error) {
	rec.ID = uint(len(m.recs) + 1)
	rec.CalcNet()
	m.recs[rec.ID] = rec
	return rec.ID, nil
}

func (m *payslipStoreMock) CreateBatch(list []dbmodels.Payslip) (int, error) {
	for _, rec := range list {
		if _, err := m.Create(rec); err != nil {
			return 0, err
		}
	}
	return len(list), nil
}

func (m *payslipStoreMock) GetByID(tenantID, id uint) (*dbmodels.Payslip, error) {
	rec, ok := m.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *payslipStoreMock) List(tenantID uint, filter apimodels.ListFilter) ([]dbmodels.Payslip, error) {
	list := []dbmodels.Payslip{}
	for _, rec := range m.recs {
		list = append(list, rec)
	}
	return list, nil
}

func (m *payslipStoreMock) Exists(tenantID, employeeID uint, month, year int) (bool, error) {
	for _, rec := range m.recs {
		if rec.EmployeeID == employeeID && rec.Month == month && rec.Year == year {
			return true, nil
		}
	}
	return false, nil
}

func (m *payslipStoreMock) Update(tenantID, id uint, updMap map[string]interface{}) error {
	rec := m.recs[id]
	if status, ok := updMap["status"].(models.PayslipStatus); ok {
		rec.Status = status
	}
	if net, ok := updMap["net_salary"].(decimal.Decimal); ok {
		rec.NetSalary = net
	}
	m.recs[id] = rec
	return nil
}

func (m *payslipStoreMock) Delete(tenantID, id uint) error {
	delete(m.recs, id)
	return nil
}

type employeeStoreMock struct {
	recs map[uint]dbmodels.Employee
}

func (m *employeeStoreMock) Create(rec dbmodels.Employee) (uint, error) { return 0, nil }

func (m *employeeStoreMock) GetByID(tenantID, id uint) (*dbmodels.Employee, error) {
	rec, ok := m.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *employeeStoreMock) FindByEmail(tenantID uint, email string) (*dbmodels.Employee, error) {
	for _, rec := range m.recs {
		if rec.Email == email {
			return &rec, nil
		}
	}
	return nil, nil
}

func (m *employeeStoreMock) List(tenantID uint, filter apimodels.ListFilter) ([]dbmodels.Employee, error) {
	list := []dbmodels.Employee{}
	for id := uint(1); id <= uint(len(m.recs)); id++ {
		list = append(list, m.recs[id])
	}
	return list, nil
}

func (m *employeeStoreMock) Update(tenantID, id uint, updMap map[string]interface{}) error {
	rec := m.recs[id]
	rec.Salary = updMap["salary"].(decimal.Decimal)
	m.recs[id] = rec
	return nil
}

func (m *employeeStoreMock) Delete(tenantID, id uint) error { return nil }

type xlsMock struct {
	rows []xlsexport.SalaryRow
}

func (m xlsMock) ExportPayslipList(list []dbmodels.Payslip) (*bytes.Buffer, error) {
	return bytes.NewBufferString(fmt.Sprintf("%d", len(list))), nil
}

func (m xlsMock) ReadSalaries(r io.Reader) ([]xlsexport.SalaryRow, []string, error) {
	return m.rows, []string{"строка 9: не указан оклад"}, nil
}

type mailerMock struct {
	to, fileName string
	data         []byte
}

func (m *mailerMock) SendEMail(to, message, subject string) error { return nil }

func (m *mailerMock) SendWithAttachment(to, subject, message, fileName string, data []byte) error {
	m.to, m.fileName, m.data = to, fileName, data
	return nil
}

func employee(id uint, email string, salary int64) dbmodels.Employee {
	rec := dbmodels.Employee{CompanyID: 1, Name: "Сотрудник", Email: email, Salary: decimal.NewFromInt(salary)}
	rec.ID = id
	return rec
}

func newTestHandler() (impl, *payslipStoreMock, *employeeStoreMock, *mailerMock) {
	store := &payslipStoreMock{recs: map[uint]dbmodels.Payslip{}}
	employees := &employeeStoreMock{recs: map[uint]dbmodels.Employee{
		1: employee(1, "ivan@example.com", 100000),
		2: employee(2, "anna@example.com", 80000),
	}}
	mailer := &mailerMock{}
	h := impl{
		store:         store,
		employeeStore: employees,
		xls: xlsMock{rows: []xlsexport.SalaryRow{
			{Row: 2, Email: "anna@example.com", Salary: decimal.NewFromInt(90000)},
			{Row: 3, Email: "nobody@example.com", Salary: decimal.NewFromInt(1)},
		}},
		mailer:       mailer,
		companyTitle: "HR Admin",
	}
	h.withTx = func(fn func(employees employeestore.Provider) error) error {
		return fn(h.employeeStore)
	}
	return h, store, employees, mailer
}

func TestCreate(t *testing.T) {
	t.Run(`к выплате = оклад + надбавки - удержания`, func(t *testing.T) {
		h, _, _, _ := newTestHandler()
		item, hMsg, err := h.Create(7, payrollapimodels.PayslipData{
			EmployeeID:  1,
			Month:       2,
			Year:        2024,
			BasicSalary: decimal.NewFromInt(100000),
			Allowance:   decimal.NewFromInt(7000),
			Deduction:   decimal.NewFromInt(2000),
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.True(t, decimal.NewFromInt(105000).Equal(item.NetSalary))
		require.Equal(t, models.PayslipStatusGenerated, item.Status)
	})
	t.Run(`повтор за период`, func(t *testing.T) {
		h, _, _, _ := newTestHandler()
		request := payrollapimodels.PayslipData{EmployeeID: 1, Month: 2, Year: 2024, BasicSalary: decimal.NewFromInt(1)}
		_, _, err := h.Create(7, request)
		require.NoError(t, err)
		_, hMsg, err := h.Create(7, request)
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
	})
	t.Run(`удержания больше начислений`, func(t *testing.T) {
		h, store, _, _ := newTestHandler()
		_, hMsg, err := h.Create(7, payrollapimodels.PayslipData{
			EmployeeID:  1,
			Month:       2,
			Year:        2024,
			BasicSalary: decimal.NewFromInt(100),
			Deduction:   decimal.NewFromInt(200),
		})
		require.NoError(t, err)
		require.Equal(t, "Удержания превышают начисления", hMsg)
		require.Empty(t, store.recs)
	})
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	request := payrollapimodels.GenerateRequest{Month: 3, Year: 2024}
	t.Run(`существующие листы пропускаются`, func(t *testing.T) {
		h, store, _, _ := newTestHandler()
		_, _, err := h.Create(7, payrollapimodels.PayslipData{EmployeeID: 2, Month: 3, Year: 2024, BasicSalary: decimal.NewFromInt(1)})
		require.NoError(t, err)

		result, hMsg, err := h.Generate(ctx, 7, request)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, payrollapimodels.GenerateResult{Created: 1, Skipped: 1}, result)
		require.Len(t, store.recs, 2)
		require.True(t, decimal.NewFromInt(100000).Equal(store.recs[2].NetSalary))
	})
	t.Run(`параллельное формирование`, func(t *testing.T) {
		h, _, _, _ := newTestHandler()
		_, err := lock.WithDelay(ctx, "payslip_generate_7", time.Second, func() error {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, hMsg, err := h.Generate(cancelled, 7, request)
			require.NoError(t, err)
			require.NotEmpty(t, hMsg)
			return nil
		})
		require.NoError(t, err)
	})
}

func TestSend(t *testing.T) {
	t.Run(`pdf во вложении, статус sent`, func(t *testing.T) {
		h, store, _, mailer := newTestHandler()
		item, _, err := h.Create(7, payrollapimodels.PayslipData{EmployeeID: 1, Month: 2, Year: 2024, BasicSalary: decimal.NewFromInt(1000)})
		require.NoError(t, err)
		rec := store.recs[item.ID]
		owner := employee(1, "ivan@example.com", 1000)
		rec.Employee = &owner
		store.recs[item.ID] = rec

		hMsg, err := h.Send(7, item.ID)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, "ivan@example.com", mailer.to)
		require.Equal(t, "payslip_1_02_2024.pdf", mailer.fileName)
		require.Equal(t, "%PDF", string(mailer.data[:4]))
		require.Equal(t, models.PayslipStatusSent, store.recs[item.ID].Status)
	})
	t.Run(`нет email`, func(t *testing.T) {
		h, store, _, _ := newTestHandler()
		item, _, err := h.Create(7, payrollapimodels.PayslipData{EmployeeID: 1, Month: 2, Year: 2024, BasicSalary: decimal.NewFromInt(1000)})
		require.NoError(t, err)
		hMsg, err := h.Send(7, item.ID)
		require.NoError(t, err)
		require.Equal(t, "У сотрудника не указан email", hMsg)
		require.Equal(t, models.PayslipStatusGenerated, store.recs[item.ID].Status)
	})
}

func TestImportSalaries(t *testing.T) {
	h, _, employees, _ := newTestHandler()
	result, hMsg, err := h.ImportSalaries(7, bytes.NewReader(nil))
	require.NoError(t, err)
	require.Empty(t, hMsg)
	require.Equal(t, 1, result.Updated)
	require.Equal(t, []string{
		"строка 9: не указан оклад",
		"строка 3: сотрудник nobody@example.com не найден",
	}, result.Skipped)
	require.True(t, decimal.NewFromInt(90000).Equal(employees.recs[2].Salary))
}
