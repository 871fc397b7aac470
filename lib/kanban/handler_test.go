package kanbanhandler

import (
	kanbanstore "hr-admin-backend/lib/kanban/store"
	"hr-admin-backend/models"
	apimodels "hr-admin-backend/models/api"
	kanbanapimodels "hr-admin-backend/models/api/kanban"
	dbmodels "hr-admin-backend/models/db"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

type kanbanStoreMock struct {
	columns map[uint]dbmodels.KanbanColumn
	tasks   map[uint]dbmodels.KanbanTask
	lastID  uint
}

func (m *kanbanStoreMock) nextID() uint {
	m.lastID++
	return m.lastID + 100
}

func (m *kanbanStoreMock) CreateColumn(rec dbmodels.KanbanColumn) (uint, error) {
	rec.ID = m.nextID()
	m.columns[rec.ID] = rec
	return rec.ID, nil
}

func (m *kanbanStoreMock) GetColumn(tenantID, id uint) (*dbmodels.KanbanColumn, error) {
	rec, ok := m.columns[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *kanbanStoreMock) ColumnByStatus(tenantID uint, status models.KanbanStatus) (*dbmodels.KanbanColumn, error) {
	list, _ := m.ListColumns(tenantID)
	for _, rec := range list {
		if rec.Status == status {
			return &rec, nil
		}
	}
	return nil, nil
}

func (m *kanbanStoreMock) ListColumns(tenantID uint) ([]dbmodels.KanbanColumn, error) {
	list := []dbmodels.KanbanColumn{}
	for _, rec := range m.columns {
		list = append(list, rec)
	}
	sort.Slice(list, func(a, b int) bool { return list[a].Position < list[b].Position })
	return list, nil
}

func (m *kanbanStoreMock) UpdateColumn(tenantID, id uint, updMap map[string]interface{}) error {
	rec := m.columns[id]
	if v, ok := updMap["position"].(int); ok {
		rec.Position = v
	}
	if v, ok := updMap["title"].(string); ok {
		rec.Title = v
	}
	if v, ok := updMap["status"].(models.KanbanStatus); ok {
		rec.Status = v
	}
	m.columns[id] = rec
	return nil
}

func (m *kanbanStoreMock) SetColumnPositions(tenantID uint, ids []uint) error {
	for idx, id := range ids {
		rec := m.columns[id]
		rec.Position = idx + 1
		m.columns[id] = rec
	}
	return nil
}

func (m *kanbanStoreMock) DeleteColumn(tenantID, id uint) error {
	delete(m.columns, id)
	return nil
}

func (m *kanbanStoreMock) MaxColumnPosition(tenantID uint) (int, error) {
	max := 0
	for _, rec := range m.columns {
		if rec.Position > max {
			max = rec.Position
		}
	}
	return max, nil
}

func (m *kanbanStoreMock) CreateTask(rec dbmodels.KanbanTask) (uint, error) {
	rec.ID = m.nextID()
	m.tasks[rec.ID] = rec
	return rec.ID, nil
}

func (m *kanbanStoreMock) GetTask(tenantID, id uint) (*dbmodels.KanbanTask, error) {
	rec, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *kanbanStoreMock) ListTasks(tenantID uint) ([]dbmodels.KanbanTask, error) {
	list := []dbmodels.KanbanTask{}
	for _, rec := range m.tasks {
		list = append(list, rec)
	}
	sort.Slice(list, func(a, b int) bool {
		if list[a].ColumnID != list[b].ColumnID {
			return list[a].ColumnID < list[b].ColumnID
		}
		return list[a].Position < list[b].Position
	})
	return list, nil
}

func (m *kanbanStoreMock) ColumnTaskIDs(tenantID, columnID uint) ([]uint, error) {
	list, _ := m.ListTasks(tenantID)
	ids := []uint{}
	for _, rec := range list {
		if rec.ColumnID == columnID {
			ids = append(ids, rec.ID)
		}
	}
	return ids, nil
}

func (m *kanbanStoreMock) UpdateTask(tenantID, id uint, updMap map[string]interface{}) error {
	rec := m.tasks[id]
	if v, ok := updMap["column_id"].(uint); ok {
		rec.ColumnID = v
	}
	if v, ok := updMap["position"].(int); ok {
		rec.Position = v
	}
	if v, ok := updMap["status"].(models.KanbanStatus); ok {
		rec.Status = v
	}
	if v, ok := updMap["title"].(string); ok {
		rec.Title = v
	}
	if v, ok := updMap["priority"].(models.TaskPriority); ok {
		rec.Priority = v
	}
	m.tasks[id] = rec
	return nil
}

func (m *kanbanStoreMock) SetAssignees(tenantID, id uint, employeeIDs []uint) error {
	rec := m.tasks[id]
	rec.Assigned = nil
	for _, employeeID := range employeeIDs {
		employee := dbmodels.Employee{Name: "Сотрудник"}
		employee.ID = employeeID
		rec.Assigned = append(rec.Assigned, employee)
	}
	m.tasks[id] = rec
	return nil
}

func (m *kanbanStoreMock) DeleteTask(tenantID, id uint) error {
	delete(m.tasks, id)
	return nil
}

func (m *kanbanStoreMock) MaxTaskPosition(tenantID, columnID uint) (int, error) {
	max := 0
	for _, rec := range m.tasks {
		if rec.ColumnID == columnID && rec.Position > max {
			max = rec.Position
		}
	}
	return max, nil
}

type employeeStoreMock struct{}

func (employeeStoreMock) Create(rec dbmodels.Employee) (uint, error) { return 0, nil }

func (employeeStoreMock) GetByID(tenantID, id uint) (*dbmodels.Employee, error) {
	if id > 10 {
		return nil, nil
	}
	return &dbmodels.Employee{Name: "Сотрудник"}, nil
}

func (employeeStoreMock) FindByEmail(tenantID uint, email string) (*dbmodels.Employee, error) {
	return nil, nil
}

func (employeeStoreMock) List(tenantID uint, filter apimodels.ListFilter) ([]dbmodels.Employee, error) {
	return nil, nil
}

func (employeeStoreMock) Update(tenantID, id uint, updMap map[string]interface{}) error { return nil }

func (employeeStoreMock) Delete(tenantID, id uint) error { return nil }

type publisherMock struct {
	events []kanbanapimodels.Event
}

func (p *publisherMock) Publish(tenantID uint, msg interface{}) {
	p.events = append(p.events, msg.(kanbanapimodels.Event))
}

const tenant = uint(7)

func column(id uint, position int, status models.KanbanStatus) dbmodels.KanbanColumn {
	rec := dbmodels.KanbanColumn{Title: string(status), Status: status, Position: position}
	rec.ID = id
	rec.CreatedBy = tenant
	return rec
}

func task(id, columnID uint, position int, status models.KanbanStatus) dbmodels.KanbanTask {
	rec := dbmodels.KanbanTask{ColumnID: columnID, Title: "задача", Status: status, Priority: models.TaskPriorityMedium, Position: position}
	rec.ID = id
	rec.CreatedBy = tenant
	return rec
}

// доска: колонки 1..4 todo/in_progress/in_review/done, задачи 5,6 в колонке 1, 8 в колонке 3
func newTestHandler() (impl, *kanbanStoreMock, *publisherMock) {
	store := &kanbanStoreMock{
		columns: map[uint]dbmodels.KanbanColumn{
			1: column(1, 1, models.KanbanStatusTodo),
			2: column(2, 2, models.KanbanStatusInProgress),
			3: column(3, 3, models.KanbanStatusInReview),
			4: column(4, 4, models.KanbanStatusDone),
		},
		tasks: map[uint]dbmodels.KanbanTask{
			5: task(5, 1, 1, models.KanbanStatusTodo),
			6: task(6, 1, 2, models.KanbanStatusTodo),
			8: task(8, 3, 1, models.KanbanStatusInReview),
		},
	}
	events := &publisherMock{}
	h := impl{
		store:         store,
		employeeStore: employeeStoreMock{},
		events:        events,
	}
	h.withTx = func(fn func(store kanbanstore.Provider) error) error {
		return fn(h.store)
	}
	return h, store, events
}

func TestBoard(t *testing.T) {
	h, _, _ := newTestHandler()
	board, err := h.Board(tenant)
	require.NoError(t, err)
	require.Len(t, board.Columns, 4)
	require.Equal(t, []uint{5, 6}, board.Columns[0].TaskIDs)
	require.Equal(t, []uint{}, board.Columns[1].TaskIDs)
	require.Equal(t, []uint{8}, board.Columns[2].TaskIDs)
	require.Len(t, board.Tasks, 3)
}

func TestReorderTasks(t *testing.T) {
	t.Run(`перенос задачи 5 в колонку 3 меняет статус`, func(t *testing.T) {
		h, store, events := newTestHandler()
		hMsg, err := h.ReorderTasks(tenant, 3, kanbanapimodels.TaskOrder{TaskIDs: []uint{8, 5}})
		require.NoError(t, err)
		require.Empty(t, hMsg)

		require.Equal(t, models.KanbanStatusInReview, store.tasks[5].Status)
		ids, _ := store.ColumnTaskIDs(tenant, 3)
		require.Equal(t, []uint{8, 5}, ids)
		ids, _ = store.ColumnTaskIDs(tenant, 1)
		require.Equal(t, []uint{6}, ids)
		require.Equal(t, []kanbanapimodels.Event{{Code: EventTasksReordered, Entity: EntityColumn, ID: 3}}, events.events)
	})
	t.Run(`порядок внутри колонки не меняет статус`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		hMsg, err := h.ReorderTasks(tenant, 1, kanbanapimodels.TaskOrder{TaskIDs: []uint{6, 5}})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		ids, _ := store.ColumnTaskIDs(tenant, 1)
		require.Equal(t, []uint{6, 5}, ids)
		require.Equal(t, models.KanbanStatusTodo, store.tasks[6].Status)
	})
	t.Run(`пропущена задача колонки`, func(t *testing.T) {
		h, _, events := newTestHandler()
		hMsg, err := h.ReorderTasks(tenant, 1, kanbanapimodels.TaskOrder{TaskIDs: []uint{6}})
		require.NoError(t, err)
		require.Equal(t, "Порядок должен содержать все задачи колонки", hMsg)
		require.Empty(t, events.events)
	})
	t.Run(`неизвестная задача и повтор`, func(t *testing.T) {
		h, _, _ := newTestHandler()
		hMsg, _ := h.ReorderTasks(tenant, 3, kanbanapimodels.TaskOrder{TaskIDs: []uint{8, 99}})
		require.Equal(t, "Задача 99 не найдена", hMsg)
		hMsg, _ = h.ReorderTasks(tenant, 3, kanbanapimodels.TaskOrder{TaskIDs: []uint{8, 8}})
		require.Equal(t, "Задача 8 указана в порядке дважды", hMsg)
	})
}

func TestChangeTaskStatus(t *testing.T) {
	t.Run(`задача переходит в колонку статуса`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		item, hMsg, err := h.ChangeTaskStatus(tenant, 5, kanbanapimodels.TaskStatus{Status: models.KanbanStatusDone})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, uint(4), item.ColumnID)
		require.Equal(t, models.KanbanStatusDone, store.tasks[5].Status)
		require.Equal(t, 1, store.tasks[5].Position)
	})
	t.Run(`задача уже в колонке статуса`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		_, _, err := h.ChangeTaskStatus(tenant, 8, kanbanapimodels.TaskStatus{Status: models.KanbanStatusInReview})
		require.NoError(t, err)
		require.Equal(t, uint(3), store.tasks[8].ColumnID)
		require.Equal(t, 1, store.tasks[8].Position)
	})
	t.Run(`нет колонки со статусом`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		delete(store.columns, 4)
		_, _, err := h.ChangeTaskStatus(tenant, 5, kanbanapimodels.TaskStatus{Status: models.KanbanStatusDone})
		require.NoError(t, err)
		require.Equal(t, uint(1), store.tasks[5].ColumnID)
		require.Equal(t, models.KanbanStatusDone, store.tasks[5].Status)
	})
}

func TestTasks(t *testing.T) {
	t.Run(`новая задача в конце колонки со статусом колонки`, func(t *testing.T) {
		h, _, events := newTestHandler()
		item, hMsg, err := h.CreateTask(tenant, kanbanapimodels.TaskCreate{
			ColumnID:    1,
			Title:       " Подготовить приказ ",
			AssigneeIDs: []uint{3, 3, 4},
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, "Подготовить приказ", item.Title)
		require.Equal(t, 3, item.Position)
		require.Equal(t, models.KanbanStatusTodo, item.Status)
		require.Equal(t, models.TaskPriorityMedium, item.Priority)
		require.Len(t, item.Assigned, 2)
		require.Equal(t, EventTaskCreated, events.events[0].Code)
	})
	t.Run(`неизвестный исполнитель`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		_, hMsg, err := h.CreateTask(tenant, kanbanapimodels.TaskCreate{ColumnID: 1, Title: "x", AssigneeIDs: []uint{42}})
		require.NoError(t, err)
		require.Equal(t, "Исполнитель 42 не найден", hMsg)
		require.Len(t, store.tasks, 3)
	})
	t.Run(`patch статуса переносит задачу`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		status := models.KanbanStatusInProgress
		title := "новое название"
		item, hMsg, err := h.PatchTask(tenant, 6, kanbanapimodels.TaskPatch{Status: &status, Title: &title})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, uint(2), item.ColumnID)
		require.Equal(t, title, store.tasks[6].Title)
		require.Equal(t, models.TaskPriorityMedium, store.tasks[6].Priority)
	})
	t.Run(`удаление`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		found, err := h.DeleteTask(tenant, 6)
		require.NoError(t, err)
		require.True(t, found)
		require.NotContains(t, store.tasks, uint(6))
		found, err = h.DeleteTask(tenant, 6)
		require.NoError(t, err)
		require.False(t, found)
	})
}

func TestColumns(t *testing.T) {
	t.Run(`порядок колонок`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		hMsg, err := h.ReorderColumns(tenant, kanbanapimodels.ColumnOrder{ColumnIDs: []uint{4, 3, 2, 1}})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, 1, store.columns[4].Position)
		require.Equal(t, 4, store.columns[1].Position)

		hMsg, err = h.ReorderColumns(tenant, kanbanapimodels.ColumnOrder{ColumnIDs: []uint{1, 1, 2, 3}})
		require.NoError(t, err)
		require.NotEmpty(t, hMsg)
		hMsg, _ = h.ReorderColumns(tenant, kanbanapimodels.ColumnOrder{ColumnIDs: []uint{1, 2}})
		require.NotEmpty(t, hMsg)
	})
	t.Run(`колонка с задачами не удаляется`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		found, hMsg, err := h.DeleteColumn(tenant, 1)
		require.NoError(t, err)
		require.True(t, found)
		require.NotEmpty(t, hMsg)
		found, hMsg, err = h.DeleteColumn(tenant, 2)
		require.NoError(t, err)
		require.True(t, found)
		require.Empty(t, hMsg)
		require.NotContains(t, store.columns, uint(2))
	})
	t.Run(`смена статуса колонки обновляет задачи`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		item, err := h.UpdateColumn(tenant, 1, kanbanapimodels.ColumnData{Title: "Бэклог", Status: models.KanbanStatusInProgress})
		require.NoError(t, err)
		require.Equal(t, []uint{5, 6}, item.TaskIDs)
		require.Equal(t, models.KanbanStatusInProgress, store.tasks[5].Status)
	})
	t.Run(`новая колонка в конце`, func(t *testing.T) {
		h, _, _ := newTestHandler()
		item, err := h.CreateColumn(tenant, kanbanapimodels.ColumnData{Title: "Архив"})
		require.NoError(t, err)
		require.Equal(t, 5, item.Position)
		require.Equal(t, []uint{}, item.TaskIDs)
	})
}
