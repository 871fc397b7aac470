package promotionhandler

import (
	employeestore "hr-admin-backend/lib/employee/store"
	promotionstore "hr-admin-backend/lib/promotion/store"
	"hr-admin-backend/models"
	apimodels "hr-admin-backend/models/api"
	staffapimodels "hr-admin-backend/models/api/staff"
	dbmodels "hr-admin-backend/models/db"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type promotionStoreMock struct {
	recs map[uint]dbmodels.Promotion
}

func (m *promotionStoreMock) Create(rec dbmodels.Promotion) (uint, error) {
	rec.ID = uint(len(m.recs) + 1)
	m.recs[rec.ID] = rec
	return rec.ID, nil
}

func (m *promotionStoreMock) GetByID(tenantID, id uint) (*dbmodels.Promotion, error) {
	rec, ok := m.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *promotionStoreMock) List(tenantID uint, filter apimodels.ListFilter) ([]dbmodels.Promotion, error) {
	return nil, nil
}

func (m *promotionStoreMock) Update(tenantID, id uint, updMap map[string]interface{}) error {
	rec := m.recs[id]
	rec.DesignationID = updMap["designation_id"].(uint)
	m.recs[id] = rec
	return nil
}

func (m *promotionStoreMock) Delete(tenantID, id uint) error {
	delete(m.recs, id)
	return nil
}

type employeeStoreMock struct {
	recs      map[uint]dbmodels.Employee
	updateErr error
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
	return nil, nil
}

func (m *employeeStoreMock) List(tenantID uint, filter apimodels.ListFilter) ([]dbmodels.Employee, error) {
	return nil, nil
}

func (m *employeeStoreMock) Update(tenantID, id uint, updMap map[string]interface{}) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	rec := m.recs[id]
	designationID := updMap["designation_id"].(uint)
	rec.DesignationID = &designationID
	m.recs[id] = rec
	return nil
}

func (m *employeeStoreMock) Delete(tenantID, id uint) error { return nil }

type designationStoreMock struct{}

func (designationStoreMock) Create(rec dbmodels.Designation) (uint, error) { return 0, nil }

func (designationStoreMock) GetByID(tenantID, id uint) (*dbmodels.Designation, error) {
	switch id {
	case 10:
		return &dbmodels.Designation{CompanyID: 1, Name: "Ведущий инженер"}, nil
	case 20:
		return &dbmodels.Designation{CompanyID: 2, Name: "Бухгалтер"}, nil
	}
	return nil, nil
}

func (designationStoreMock) List(tenantID uint, filter apimodels.ListFilter) ([]dbmodels.Designation, error) {
	return nil, nil
}

func (designationStoreMock) Update(tenantID, id uint, updMap map[string]interface{}) error {
	return nil
}

func (designationStoreMock) Delete(tenantID, id uint) error { return nil }

func (designationStoreMock) InUse(tenantID, id uint) (bool, error) { return false, nil }

func newTestHandler() (impl, *promotionStoreMock, *employeeStoreMock) {
	store := &promotionStoreMock{recs: map[uint]dbmodels.Promotion{}}
	employees := &employeeStoreMock{recs: map[uint]dbmodels.Employee{
		3: {CompanyID: 1, Name: "Иван Петров"},
	}}
	h := impl{
		store:            store,
		employeeStore:    employees,
		designationStore: designationStoreMock{},
	}
	// без отката: тест проверяет только что ошибка второго шага возвращается
	h.withTx = func(fn func(store promotionstore.Provider, employees employeestore.Provider) error) error {
		return fn(h.store, h.employeeStore)
	}
	return h, store, employees
}

func TestCreate(t *testing.T) {
	request := staffapimodels.PromotionData{
		EmployeeID:    3,
		DesignationID: 10,
		PromotionDate: models.NewDate(2024, time.March, 1),
	}
	t.Run(`повышение меняет должность сотрудника`, func(t *testing.T) {
		h, _, employees := newTestHandler()
		item, hMsg, err := h.Create(7, request)
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, uint(10), item.DesignationID)
		require.Equal(t, uint(10), *employees.recs[3].DesignationID)
	})
	t.Run(`должность другой компании`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		other := request
		other.DesignationID = 20
		_, hMsg, err := h.Create(7, other)
		require.NoError(t, err)
		require.Equal(t, "Должность не относится к компании сотрудника", hMsg)
		require.Empty(t, store.recs)
	})
	t.Run(`ошибка обновления сотрудника`, func(t *testing.T) {
		h, _, employees := newTestHandler()
		employees.updateErr = errors.New("db down")
		_, _, err := h.Create(7, request)
		require.Error(t, err)
		require.Nil(t, employees.recs[3].DesignationID)
	})
}
