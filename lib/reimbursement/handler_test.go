package reimbursementhandler

import (
	"context"
	reimbursementstore "hr-admin-backend/lib/reimbursement/store"
	statushistorystore "hr-admin-backend/lib/status-history/store"
	"hr-admin-backend/lib/workflow"
	"hr-admin-backend/models"
	apimodels "hr-admin-backend/models/api"
	requestapimodels "hr-admin-backend/models/api/request"
	dbmodels "hr-admin-backend/models/db"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type reimbursementStoreMock struct {
	recs map[uint]dbmodels.Reimbursement
}

func (m *reimbursementStoreMock) Create(rec dbmodels.Reimbursement) (uint, error) {
	rec.ID = uint(len(m.recs) + 1)
	m.recs[rec.ID] = rec
	return rec.ID, nil
}

func (m *reimbursementStoreMock) GetByID(tenantID, id uint) (*dbmodels.Reimbursement, error) {
	rec, ok := m.recs[id]
	if !ok || rec.CreatedBy != tenantID {
		return nil, nil
	}
	return &rec, nil
}

func (m *reimbursementStoreMock) List(tenantID uint, filter apimodels.ListFilter) ([]dbmodels.Reimbursement, error) {
	return nil, nil
}

func (m *reimbursementStoreMock) Update(tenantID, id uint, updMap map[string]interface{}) error {
	rec := m.recs[id]
	if v, ok := updMap["receipt_id"].(uint); ok {
		rec.ReceiptID = &v
	}
	rec.Description = updMap["description"].(string)
	m.recs[id] = rec
	return nil
}

func (m *reimbursementStoreMock) UpdateStatus(tenantID, id uint, from models.RequestStatus, updMap map[string]interface{}) error {
	rec := m.recs[id]
	if rec.Status != from {
		return workflow.ErrStatusChanged
	}
	rec.Status = updMap["status"].(models.RequestStatus)
	m.recs[id] = rec
	return nil
}

func (m *reimbursementStoreMock) Delete(tenantID, id uint) error {
	delete(m.recs, id)
	return nil
}

type historyStoreMock struct {
	list []dbmodels.StatusHistory
}

func (m *historyStoreMock) Create(rec dbmodels.StatusHistory) (uint, error) {
	m.list = append(m.list, rec)
	return uint(len(m.list)), nil
}

func (m *historyStoreMock) List(tenantID uint, entity string, entityID uint) ([]dbmodels.StatusHistory, error) {
	return m.list, nil
}

func (m *historyStoreMock) DeleteByEntity(tenantID uint, entity string, entityID uint) error {
	m.list = nil
	return nil
}

type employeeStoreMock struct{}

func (employeeStoreMock) Create(rec dbmodels.Employee) (uint, error) { return 0, nil }
func (employeeStoreMock) GetByID(tenantID, id uint) (*dbmodels.Employee, error) {
	if id != 3 {
		return nil, nil
	}
	return &dbmodels.Employee{BaseTenantModel: dbmodels.BaseTenantModel{BaseModel: dbmodels.BaseModel{ID: 3}}}, nil
}
func (employeeStoreMock) FindByEmail(tenantID uint, email string) (*dbmodels.Employee, error) {
	return nil, nil
}
func (employeeStoreMock) List(tenantID uint, filter apimodels.ListFilter) ([]dbmodels.Employee, error) {
	return nil, nil
}
func (employeeStoreMock) Update(tenantID, id uint, updMap map[string]interface{}) error { return nil }
func (employeeStoreMock) Delete(tenantID, id uint) error                                { return nil }

type categoryStoreMock struct{}

func (categoryStoreMock) Create(rec dbmodels.Category) (uint, error) { return 0, nil }
func (categoryStoreMock) GetByID(tenantID, id uint) (*dbmodels.Category, error) {
	if id != 2 {
		return nil, nil
	}
	return &dbmodels.Category{Name: "Такси"}, nil
}
func (categoryStoreMock) FindByName(tenantID uint, name string) ([]dbmodels.Category, error) {
	return nil, nil
}
func (categoryStoreMock) Update(tenantID, id uint, updMap map[string]interface{}) error { return nil }
func (categoryStoreMock) Delete(tenantID, id uint) error                                { return nil }
func (categoryStoreMock) IsUnique(tenantID, selfID uint, name string) (bool, error)     { return true, nil }
func (categoryStoreMock) HasReimbursements(tenantID, id uint) (bool, error)             { return false, nil }

type filesMock struct {
	files   map[uint][]byte
	deleted []uint
}

func (m *filesMock) Upload(ctx context.Context, tenantID uint, fileName, contentType string, data []byte) (*dbmodels.FileStorage, string, error) {
	if contentType != "image/png" {
		return nil, "Допустимы только файлы JPEG, PNG или PDF", nil
	}
	id := uint(len(m.files) + 1)
	m.files[id] = data
	rec := dbmodels.FileStorage{Name: fileName}
	rec.ID = id
	return &rec, "", nil
}

func (m *filesMock) GetFile(ctx context.Context, tenantID, id uint) (*dbmodels.FileStorage, []byte, error) {
	data, ok := m.files[id]
	if !ok {
		return nil, nil, nil
	}
	rec := dbmodels.FileStorage{Name: "receipt.png"}
	rec.ID = id
	return &rec, data, nil
}

func (m *filesMock) Delete(ctx context.Context, tenantID, id uint) error {
	m.deleted = append(m.deleted, id)
	delete(m.files, id)
	return nil
}

const tenant = uint(7)

func newTestHandler() (impl, *reimbursementStoreMock, *filesMock) {
	store := &reimbursementStoreMock{recs: map[uint]dbmodels.Reimbursement{}}
	files := &filesMock{files: map[uint][]byte{}}
	h := impl{
		store:         store,
		historyStore:  &historyStoreMock{},
		employeeStore: employeeStoreMock{},
		categoryStore: categoryStoreMock{},
		files:         files,
		now:           time.Now,
	}
	h.withTx = func(fn func(store reimbursementstore.Provider, history statushistorystore.Provider) error) error {
		return fn(h.store, h.historyStore)
	}
	return h, store, files
}

func validRequest() requestapimodels.ReimbursementData {
	return requestapimodels.ReimbursementData{
		EmployeeID:  3,
		CategoryID:  2,
		Date:        models.NewDate(2024, time.February, 2),
		Amount:      decimal.RequireFromString("1250.50"),
		Description: "такси в аэропорт",
	}
}

func TestReimbursementFlow(t *testing.T) {
	ctx := context.Background()
	t.Run(`pending -> approved -> paid`, func(t *testing.T) {
		h, _, _ := newTestHandler()
		created, hMsg, err := h.Create(ctx, tenant, validRequest(), nil)
		require.NoError(t, err)
		require.Empty(t, hMsg)

		_, hMsg, err = h.ChangeStatus(tenant, created.ID, "HR", requestapimodels.StatusChange{Status: models.RequestStatusPaid})
		require.NoError(t, err)
		require.NotEmpty(t, hMsg, "оплата без одобрения")

		item, hMsg, err := h.ChangeStatus(tenant, created.ID, "HR", requestapimodels.StatusChange{Status: models.RequestStatusApproved})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.RequestStatusApproved, item.Status)

		item, hMsg, err = h.ChangeStatus(tenant, created.ID, "Бухгалтер", requestapimodels.StatusChange{Status: models.RequestStatusPaid})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, models.RequestStatusPaid, item.Status)
		require.Equal(t, workflow.PaidRemark, item.Remark)
		require.Equal(t, "Бухгалтер", *item.Payer)
		require.Nil(t, item.Approver, "в статусе paid заполнен только плательщик")

		history, err := h.History(tenant, created.ID)
		require.NoError(t, err)
		require.Len(t, history, 2)
	})
	t.Run(`неизвестная категория`, func(t *testing.T) {
		h, _, _ := newTestHandler()
		request := validRequest()
		request.CategoryID = 5
		_, hMsg, err := h.Create(ctx, tenant, request, nil)
		require.NoError(t, err)
		require.Equal(t, "Категория расходов не найдена", hMsg)
	})
}

func TestReceipt(t *testing.T) {
	ctx := context.Background()
	t.Run(`чек сохраняется с заявкой`, func(t *testing.T) {
		h, _, _ := newTestHandler()
		created, hMsg, err := h.Create(ctx, tenant, validRequest(), &requestapimodels.ReceiptFile{
			Name: "receipt.png", ContentType: "image/png", Body: []byte{0x89, 'P', 'N', 'G'},
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.NotNil(t, created.ReceiptID)

		file, data, err := h.Receipt(ctx, tenant, created.ID)
		require.NoError(t, err)
		require.Equal(t, "receipt.png", file.Name)
		require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
	})
	t.Run(`замена чека удаляет старый`, func(t *testing.T) {
		h, _, files := newTestHandler()
		created, _, err := h.Create(ctx, tenant, validRequest(), &requestapimodels.ReceiptFile{
			Name: "a.png", ContentType: "image/png", Body: []byte{1},
		})
		require.NoError(t, err)
		_, hMsg, err := h.Update(ctx, tenant, created.ID, validRequest(), &requestapimodels.ReceiptFile{
			Name: "b.png", ContentType: "image/png", Body: []byte{2},
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, []uint{*created.ReceiptID}, files.deleted)
	})
	t.Run(`недопустимый файл`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		_, hMsg, err := h.Create(ctx, tenant, validRequest(), &requestapimodels.ReceiptFile{
			Name: "a.exe", ContentType: "application/octet-stream", Body: []byte{1},
		})
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		require.Empty(t, store.recs)
	})
	t.Run(`удаление заявки удаляет чек`, func(t *testing.T) {
		h, _, files := newTestHandler()
		created, _, _ := h.Create(ctx, tenant, validRequest(), &requestapimodels.ReceiptFile{
			Name: "a.png", ContentType: "image/png", Body: []byte{1},
		})
		found, err := h.Delete(ctx, tenant, created.ID)
		require.NoError(t, err)
		require.True(t, found)
		require.Empty(t, files.files)
	})
}
