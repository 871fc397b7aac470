package kanbanhandler

import (
	"fmt"
	"hr-admin-backend/db"
	employeestore "hr-admin-backend/lib/employee/store"
	kanbanstore "hr-admin-backend/lib/kanban/store"
	initchecker "hr-admin-backend/lib/utils/init-checker"
	wshub "hr-admin-backend/lib/ws/hub"
	"hr-admin-backend/models"
	kanbanapimodels "hr-admin-backend/models/api/kanban"
	dbmodels "hr-admin-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	EntityColumn = "column"
	EntityTask   = "task"

	EventColumnCreated    = "column_created"
	EventColumnUpdated    = "column_updated"
	EventColumnDeleted    = "column_deleted"
	EventColumnsReordered = "columns_reordered"
	EventTaskCreated      = "task_created"
	EventTaskUpdated      = "task_updated"
	EventTaskDeleted      = "task_deleted"
	EventTasksReordered   = "tasks_reordered"
)

type Provider interface {
	Board(tenantID uint) (board kanbanapimodels.Board, err error)
	CreateColumn(tenantID uint, request kanbanapimodels.ColumnData) (item kanbanapimodels.ColumnView, err error)
	UpdateColumn(tenantID, id uint, request kanbanapimodels.ColumnData) (item *kanbanapimodels.ColumnView, err error)
	DeleteColumn(tenantID, id uint) (found bool, hMsg string, err error)
	ReorderColumns(tenantID uint, request kanbanapimodels.ColumnOrder) (hMsg string, err error)
	// ReorderTasks перечисленные задачи становятся составом колонки в заданном порядке
	ReorderTasks(tenantID, columnID uint, request kanbanapimodels.TaskOrder) (hMsg string, err error)
	CreateTask(tenantID uint, request kanbanapimodels.TaskCreate) (item kanbanapimodels.TaskView, hMsg string, err error)
	PatchTask(tenantID, id uint, request kanbanapimodels.TaskPatch) (item *kanbanapimodels.TaskView, hMsg string, err error)
	// ChangeTaskStatus переносит задачу в колонку с этим статусом, если она еще не там
	ChangeTaskStatus(tenantID, id uint, request kanbanapimodels.TaskStatus) (item *kanbanapimodels.TaskView, hMsg string, err error)
	DeleteTask(tenantID, id uint) (found bool, err error)
}

var Instance Provider

// Publisher получатель событий доски
type Publisher interface {
	Publish(tenantID uint, msg interface{})
}

type txFunc func(fn func(store kanbanstore.Provider) error) error

func NewHandler() {
	instance := impl{
		store:         kanbanstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		events:        wshub.Instance,
		withTx: func(fn func(store kanbanstore.Provider) error) error {
			return db.DB.Transaction(func(tx *gorm.DB) error {
				return fn(kanbanstore.NewInstance(tx))
			})
		},
		seed: func(tenantID uint) error {
			return db.FillKanbanColumns(db.DB, tenantID)
		},
	}
	initchecker.CheckInit(
		"store", instance.store,
		"employeeStore", instance.employeeStore,
		"events", instance.events,
	)
	Instance = instance
}

type impl struct {
	store         kanbanstore.Provider
	employeeStore employeestore.Provider
	events        Publisher
	withTx        txFunc
	seed          func(tenantID uint) error
}

func (i impl) getLogger(tenantID, id uint) *log.Entry {
	return log.WithField("tenant_id", tenantID).
		WithField("rec_id", id)
}

func (i impl) publish(tenantID uint, code, entity string, id uint) {
	if i.events == nil {
		return
	}
	i.events.Publish(tenantID, kanbanapimodels.Event{Code: code, Entity: entity, ID: id})
}

func (i impl) Board(tenantID uint) (board kanbanapimodels.Board, err error) {
	if i.seed != nil {
		if err = i.seed(tenantID); err != nil {
			return board, err
		}
	}
	columns, err := i.store.ListColumns(tenantID)
	if err != nil {
		return board, errors.Wrap(err, "ошибка получения колонок")
	}
	tasks, err := i.store.ListTasks(tenantID)
	if err != nil {
		return board, errors.Wrap(err, "ошибка получения задач")
	}
	membership := map[uint][]uint{}
	board.Tasks = make([]kanbanapimodels.TaskView, 0, len(tasks))
	for _, task := range tasks {
		membership[task.ColumnID] = append(membership[task.ColumnID], task.ID)
		board.Tasks = append(board.Tasks, kanbanapimodels.TaskConvert(task))
	}
	board.Columns = make([]kanbanapimodels.ColumnView, 0, len(columns))
	for _, column := range columns {
		board.Columns = append(board.Columns, kanbanapimodels.ColumnConvert(column, membership[column.ID]))
	}
	return board, nil
}

func (i impl) CreateColumn(tenantID uint, request kanbanapimodels.ColumnData) (item kanbanapimodels.ColumnView, err error) {
	position, err := i.store.MaxColumnPosition(tenantID)
	if err != nil {
		return item, err
	}
	rec := dbmodels.KanbanColumn{
		BaseTenantModel: dbmodels.BaseTenantModel{CreatedBy: tenantID},
		Title:           strings.TrimSpace(request.Title),
		Status:          request.Status,
		Position:        position + 1,
	}
	id, err := i.store.CreateColumn(rec)
	if err != nil {
		return item, errors.Wrap(err, "ошибка создания колонки")
	}
	rec.ID = id
	i.getLogger(tenantID, id).Info("создана колонка доски")
	i.publish(tenantID, EventColumnCreated, EntityColumn, id)
	return kanbanapimodels.ColumnConvert(rec, nil), nil
}

// UpdateColumn при смене статуса колонки задачи в ней получают новый статус
func (i impl) UpdateColumn(tenantID, id uint, request kanbanapimodels.ColumnData) (item *kanbanapimodels.ColumnView, err error) {
	rec, err := i.store.GetColumn(tenantID, id)
	if err != nil || rec == nil {
		return nil, err
	}
	taskIDs, err := i.store.ColumnTaskIDs(tenantID, id)
	if err != nil {
		return nil, err
	}
	err = i.withTx(func(store kanbanstore.Provider) error {
		err := store.UpdateColumn(tenantID, id, map[string]interface{}{
			"title":  strings.TrimSpace(request.Title),
			"status": request.Status,
		})
		if err != nil {
			return err
		}
		if request.Status == "" || request.Status == rec.Status {
			return nil
		}
		for _, taskID := range taskIDs {
			if err := store.UpdateTask(tenantID, taskID, map[string]interface{}{"status": request.Status}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка обновления колонки")
	}
	rec.Title, rec.Status = strings.TrimSpace(request.Title), request.Status
	i.getLogger(tenantID, id).Info("обновлена колонка доски")
	i.publish(tenantID, EventColumnUpdated, EntityColumn, id)
	view := kanbanapimodels.ColumnConvert(*rec, taskIDs)
	return &view, nil
}

func (i impl) DeleteColumn(tenantID, id uint) (found bool, hMsg string, err error) {
	rec, err := i.store.GetColumn(tenantID, id)
	if err != nil || rec == nil {
		return false, "", err
	}
	taskIDs, err := i.store.ColumnTaskIDs(tenantID, id)
	if err != nil {
		return true, "", err
	}
	if len(taskIDs) != 0 {
		return true, "В колонке есть задачи, перенесите или удалите их", nil
	}
	if err = i.store.DeleteColumn(tenantID, id); err != nil {
		return true, "", errors.Wrap(err, "ошибка удаления колонки")
	}
	i.getLogger(tenantID, id).Info("удалена колонка доски")
	i.publish(tenantID, EventColumnDeleted, EntityColumn, id)
	return true, "", nil
}

func (i impl) ReorderColumns(tenantID uint, request kanbanapimodels.ColumnOrder) (hMsg string, err error) {
	columns, err := i.store.ListColumns(tenantID)
	if err != nil {
		return "", err
	}
	known := make(map[uint]bool, len(columns))
	for _, column := range columns {
		known[column.ID] = true
	}
	if len(request.ColumnIDs) != len(columns) {
		return "Порядок должен содержать все колонки доски", nil
	}
	seen := make(map[uint]bool, len(request.ColumnIDs))
	for _, id := range request.ColumnIDs {
		if !known[id] || seen[id] {
			return "Порядок должен содержать все колонки доски ровно один раз", nil
		}
		seen[id] = true
	}
	err = i.withTx(func(store kanbanstore.Provider) error {
		return store.SetColumnPositions(tenantID, request.ColumnIDs)
	})
	if err != nil {
		return "", errors.Wrap(err, "ошибка изменения порядка колонок")
	}
	i.getLogger(tenantID, 0).
		WithField("column_ids", request.ColumnIDs).
		Info("изменен порядок колонок доски")
	i.publish(tenantID, EventColumnsReordered, EntityColumn, 0)
	return "", nil
}

func (i impl) ReorderTasks(tenantID, columnID uint, request kanbanapimodels.TaskOrder) (hMsg string, err error) {
	column, err := i.store.GetColumn(tenantID, columnID)
	if err != nil {
		return "", err
	}
	if column == nil {
		return "Колонка не найдена", nil
	}
	current, err := i.store.ColumnTaskIDs(tenantID, columnID)
	if err != nil {
		return "", err
	}
	listed := make(map[uint]bool, len(request.TaskIDs))
	tasks := make([]dbmodels.KanbanTask, 0, len(request.TaskIDs))
	for _, id := range request.TaskIDs {
		if listed[id] {
			return fmt.Sprintf("Задача %d указана в порядке дважды", id), nil
		}
		listed[id] = true
		task, err := i.store.GetTask(tenantID, id)
		if err != nil {
			return "", err
		}
		if task == nil {
			return fmt.Sprintf("Задача %d не найдена", id), nil
		}
		tasks = append(tasks, *task)
	}
	for _, id := range current {
		if !listed[id] {
			return "Порядок должен содержать все задачи колонки", nil
		}
	}
	if len(tasks) == 0 {
		return "", nil
	}
	err = i.withTx(func(store kanbanstore.Provider) error {
		for idx, task := range tasks {
			updMap := map[string]interface{}{
				"column_id": columnID,
				"position":  idx + 1,
			}
			if task.ColumnID != columnID && column.Status != "" {
				updMap["status"] = column.Status
			}
			if err := store.UpdateTask(tenantID, task.ID, updMap); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, "ошибка изменения порядка задач")
	}
	i.getLogger(tenantID, columnID).
		WithField("task_ids", request.TaskIDs).
		Info("изменен порядок задач колонки")
	i.publish(tenantID, EventTasksReordered, EntityColumn, columnID)
	return "", nil
}

func (i impl) checkAssignees(tenantID uint, ids []uint) (unique []uint, hMsg string, err error) {
	unique = make([]uint, 0, len(ids))
	seen := map[uint]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		employee, err := i.employeeStore.GetByID(tenantID, id)
		if err != nil {
			return nil, "", err
		}
		if employee == nil {
			return nil, fmt.Sprintf("Исполнитель %d не найден", id), nil
		}
		unique = append(unique, id)
	}
	return unique, "", nil
}

func (i impl) CreateTask(tenantID uint, request kanbanapimodels.TaskCreate) (item kanbanapimodels.TaskView, hMsg string, err error) {
	column, err := i.store.GetColumn(tenantID, request.ColumnID)
	if err != nil {
		return item, "", err
	}
	if column == nil {
		return item, "Колонка не найдена", nil
	}
	assignees, hMsg, err := i.checkAssignees(tenantID, request.AssigneeIDs)
	if err != nil || hMsg != "" {
		return item, hMsg, err
	}
	rec := dbmodels.KanbanTask{
		BaseTenantModel: dbmodels.BaseTenantModel{CreatedBy: tenantID},
		ColumnID:        column.ID,
		Title:           strings.TrimSpace(request.Title),
		Description:     request.Description,
		Status:          column.Status,
		Priority:        request.Priority,
		DueDate:         request.DueDate,
	}
	if rec.Status == "" {
		rec.Status = models.KanbanStatusTodo
	}
	if rec.Priority == "" {
		rec.Priority = models.TaskPriorityMedium
	}
	var id uint
	err = i.withTx(func(store kanbanstore.Provider) error {
		position, err := store.MaxTaskPosition(tenantID, column.ID)
		if err != nil {
			return err
		}
		rec.Position = position + 1
		id, err = store.CreateTask(rec)
		if err != nil {
			return err
		}
		if len(assignees) == 0 {
			return nil
		}
		return store.SetAssignees(tenantID, id, assignees)
	})
	if err != nil {
		return item, "", errors.Wrap(err, "ошибка создания задачи")
	}
	i.getLogger(tenantID, id).
		WithField("column_id", column.ID).
		Info("создана задача")
	i.publish(tenantID, EventTaskCreated, EntityTask, id)
	created, err := i.store.GetTask(tenantID, id)
	if err != nil || created == nil {
		rec.ID = id
		return kanbanapimodels.TaskConvert(rec), "", err
	}
	return kanbanapimodels.TaskConvert(*created), "", nil
}

// relocate поля задачи для смены статуса: колонка текущая, если у нее этот статус, иначе первая колонка со статусом
func (i impl) relocate(store kanbanstore.Provider, task dbmodels.KanbanTask, status models.KanbanStatus) (map[string]interface{}, error) {
	updMap := map[string]interface{}{"status": status}
	current, err := store.GetColumn(task.CreatedBy, task.ColumnID)
	if err != nil {
		return nil, err
	}
	if current != nil && current.Status == status {
		return updMap, nil
	}
	target, err := store.ColumnByStatus(task.CreatedBy, status)
	if err != nil {
		return nil, err
	}
	if target == nil || target.ID == task.ColumnID {
		return updMap, nil
	}
	position, err := store.MaxTaskPosition(task.CreatedBy, target.ID)
	if err != nil {
		return nil, err
	}
	updMap["column_id"] = target.ID
	updMap["position"] = position + 1
	return updMap, nil
}

func (i impl) PatchTask(tenantID, id uint, request kanbanapimodels.TaskPatch) (item *kanbanapimodels.TaskView, hMsg string, err error) {
	task, err := i.store.GetTask(tenantID, id)
	if err != nil || task == nil {
		return nil, "", err
	}
	var assignees []uint
	if request.AssigneeIDs != nil {
		assignees, hMsg, err = i.checkAssignees(tenantID, *request.AssigneeIDs)
		if err != nil || hMsg != "" {
			return nil, hMsg, err
		}
	}
	err = i.withTx(func(store kanbanstore.Provider) error {
		updMap := map[string]interface{}{}
		if request.Status != nil && *request.Status != task.Status {
			moved, err := i.relocate(store, *task, *request.Status)
			if err != nil {
				return err
			}
			updMap = moved
		}
		if request.Title != nil {
			updMap["title"] = strings.TrimSpace(*request.Title)
		}
		if request.Description != nil {
			updMap["description"] = *request.Description
		}
		if request.Priority != nil {
			updMap["priority"] = *request.Priority
		}
		if request.DueDate != nil {
			updMap["due_date"] = *request.DueDate
		}
		if err := store.UpdateTask(tenantID, id, updMap); err != nil {
			return err
		}
		if request.AssigneeIDs == nil {
			return nil
		}
		return store.SetAssignees(tenantID, id, assignees)
	})
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка обновления задачи")
	}
	i.getLogger(tenantID, id).Info("обновлена задача")
	i.publish(tenantID, EventTaskUpdated, EntityTask, id)
	return i.getTask(tenantID, id)
}

func (i impl) ChangeTaskStatus(tenantID, id uint, request kanbanapimodels.TaskStatus) (item *kanbanapimodels.TaskView, hMsg string, err error) {
	task, err := i.store.GetTask(tenantID, id)
	if err != nil || task == nil {
		return nil, "", err
	}
	err = i.withTx(func(store kanbanstore.Provider) error {
		updMap, err := i.relocate(store, *task, request.Status)
		if err != nil {
			return err
		}
		return store.UpdateTask(tenantID, id, updMap)
	})
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка смены статуса задачи")
	}
	i.getLogger(tenantID, id).
		WithField("from_status", task.Status).
		WithField("to_status", request.Status).
		Info("изменен статус задачи")
	i.publish(tenantID, EventTaskUpdated, EntityTask, id)
	return i.getTask(tenantID, id)
}

func (i impl) getTask(tenantID, id uint) (*kanbanapimodels.TaskView, string, error) {
	rec, err := i.store.GetTask(tenantID, id)
	if err != nil || rec == nil {
		return nil, "", err
	}
	view := kanbanapimodels.TaskConvert(*rec)
	return &view, "", nil
}

func (i impl) DeleteTask(tenantID, id uint) (found bool, err error) {
	task, err := i.store.GetTask(tenantID, id)
	if err != nil || task == nil {
		return false, err
	}
	err = i.withTx(func(store kanbanstore.Provider) error {
		return store.DeleteTask(tenantID, id)
	})
	if err != nil {
		return true, errors.Wrap(err, "ошибка удаления задачи")
	}
	i.getLogger(tenantID, id).Info("удалена задача")
	i.publish(tenantID, EventTaskDeleted, EntityTask, id)
	return true, nil
}
