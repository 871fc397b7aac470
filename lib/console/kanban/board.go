package kanban

import (
	"context"
	"slices"
	"sync"

	"hr-admin-backend/lib/console/notify"
	"hr-admin-backend/lib/console/webclient"
	"hr-admin-backend/models"
	kanbanapimodels "hr-admin-backend/models/api/kanban"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrUnknownColumn = errors.New("колонка не найдена")
	ErrUnknownTask   = errors.New("задача не найдена")
	ErrDuplicateTask = errors.New("задача указана в порядке дважды")
	ErrMissingTask   = errors.New("порядок должен содержать все задачи колонки")
	ErrColumnSet     = errors.New("порядок должен содержать все колонки доски")
)

const (
	reconcileErrorMessage = "Не удалось сохранить изменения доски"
	columnsErrorMessage   = "Не удалось сохранить порядок колонок"
)

// DefaultColumnStatus статус задачи по ИД колонки, если у колонки свой статус не задан
var DefaultColumnStatus = map[uint]models.KanbanStatus{
	1: models.KanbanStatusTodo,
	2: models.KanbanStatusInProgress,
	3: models.KanbanStatusInReview,
	4: models.KanbanStatusDone,
}

type Column struct {
	ID      uint
	Title   string
	Status  models.KanbanStatus
	TaskIDs []uint
}

type Options struct {
	// RevertOnFailure вернуть локальный порядок, если сервер не принял изменения
	RevertOnFailure bool
}

// Board нормализованная доска: колонки и задачи по ИД, задача принадлежит ровно одной колонке
type Board struct {
	mu       sync.Mutex
	api      API
	notifier notify.Notifier
	opts     Options

	order   []uint
	columns map[uint]*Column
	tasks   map[uint]kanbanapimodels.TaskView
	owner   map[uint]uint
}

func NewBoard(api API, notifier notify.Notifier, opts Options) *Board {
	return &Board{
		api:      api,
		notifier: notifier,
		opts:     opts,
		order:    []uint{},
		columns:  map[uint]*Column{},
		tasks:    map[uint]kanbanapimodels.TaskView{},
		owner:    map[uint]uint{},
	}
}

func (b *Board) Refresh(ctx context.Context) error {
	board, err := b.api.Board(ctx)
	if err != nil {
		return errors.Wrap(err, "ошибка загрузки доски")
	}
	b.Load(board)
	return nil
}

// Load заменяет состояние доски ответом сервера
func (b *Board) Load(board kanbanapimodels.Board) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.order = make([]uint, 0, len(board.Columns))
	b.columns = make(map[uint]*Column, len(board.Columns))
	b.tasks = make(map[uint]kanbanapimodels.TaskView, len(board.Tasks))
	b.owner = make(map[uint]uint, len(board.Tasks))

	for _, task := range board.Tasks {
		b.tasks[task.ID] = task
	}
	for _, view := range board.Columns {
		column := &Column{ID: view.ID, Title: view.Title, Status: view.Status, TaskIDs: []uint{}}
		for _, id := range view.TaskIDs {
			if _, ok := b.tasks[id]; !ok {
				continue
			}
			if _, owned := b.owner[id]; owned {
				continue
			}
			b.owner[id] = column.ID
			column.TaskIDs = append(column.TaskIDs, id)
		}
		b.columns[column.ID] = column
		b.order = append(b.order, column.ID)
	}
	// задачи, не перечисленные в колонках, по полю column_id
	for _, task := range board.Tasks {
		if _, owned := b.owner[task.ID]; owned {
			continue
		}
		if column, ok := b.columns[task.ColumnID]; ok {
			b.owner[task.ID] = column.ID
			column.TaskIDs = append(column.TaskIDs, task.ID)
		}
	}
}

func (b *Board) Columns() []Column {
	b.mu.Lock()
	defer b.mu.Unlock()
	result := make([]Column, 0, len(b.order))
	for _, id := range b.order {
		result = append(result, b.columns[id].clone())
	}
	return result
}

func (b *Board) Column(id uint) (Column, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	column, ok := b.columns[id]
	if !ok {
		return Column{}, false
	}
	return column.clone(), true
}

func (b *Board) Task(id uint) (kanbanapimodels.TaskView, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	task, ok := b.tasks[id]
	return task, ok
}

func (b *Board) OwnerOf(taskID uint) (uint, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.owner[taskID]
	return id, ok
}

// StatusOf статус колонки с сервера или по таблице по умолчанию
func (b *Board) StatusOf(columnID uint) models.KanbanStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.statusOf(columnID)
}

func (b *Board) statusOf(columnID uint) models.KanbanStatus {
	if column, ok := b.columns[columnID]; ok && column.Status != "" {
		return column.Status
	}
	return DefaultColumnStatus[columnID]
}

type plan struct {
	columnID uint
	order    []uint
	moved    []uint
	status   models.KanbanStatus
	backup   snapshot
}

// Reconcile применяет новый порядок колонки: задачи из других колонок переходят в нее
// и получают статус колонки, затем сервер получает порядок целиком
func (b *Board) Reconcile(ctx context.Context, columnID uint, newOrder []uint) error {
	b.mu.Lock()
	p, err := b.prepare(columnID, newOrder)
	b.mu.Unlock()
	if err != nil {
		return err
	}
	return b.execute(ctx, p)
}

// Move переносит задачу в колонку на позицию index, index за пределами колонки - в конец
func (b *Board) Move(ctx context.Context, taskID, toColumn uint, index int) error {
	b.mu.Lock()
	column, ok := b.columns[toColumn]
	if !ok {
		b.mu.Unlock()
		return errors.Wrapf(ErrUnknownColumn, "%d", toColumn)
	}
	if _, ok = b.tasks[taskID]; !ok {
		b.mu.Unlock()
		return errors.Wrapf(ErrUnknownTask, "%d", taskID)
	}
	order := slices.DeleteFunc(slices.Clone(column.TaskIDs), func(id uint) bool { return id == taskID })
	if index < 0 || index > len(order) {
		index = len(order)
	}
	order = slices.Insert(order, index, taskID)
	p, err := b.prepare(toColumn, order)
	b.mu.Unlock()
	if err != nil {
		return err
	}
	return b.execute(ctx, p)
}

func (b *Board) prepare(columnID uint, newOrder []uint) (plan, error) {
	column, ok := b.columns[columnID]
	if !ok {
		return plan{}, errors.Wrapf(ErrUnknownColumn, "%d", columnID)
	}
	listed := make(map[uint]bool, len(newOrder))
	for _, id := range newOrder {
		if _, ok := b.tasks[id]; !ok {
			return plan{}, errors.Wrapf(ErrUnknownTask, "%d", id)
		}
		if listed[id] {
			return plan{}, errors.Wrapf(ErrDuplicateTask, "%d", id)
		}
		listed[id] = true
	}
	for _, id := range column.TaskIDs {
		if !listed[id] {
			return plan{}, errors.Wrapf(ErrMissingTask, "%d", id)
		}
	}

	p := plan{
		columnID: columnID,
		order:    slices.Clone(newOrder),
		moved:    []uint{},
		status:   b.statusOf(columnID),
		backup:   b.snapshot(columnID, newOrder),
	}
	for _, id := range newOrder {
		from := b.owner[id]
		if from == columnID {
			continue
		}
		if source, ok := b.columns[from]; ok {
			source.TaskIDs = slices.DeleteFunc(source.TaskIDs, func(item uint) bool { return item == id })
		}
		b.owner[id] = columnID
		task := b.tasks[id]
		task.ColumnID = columnID
		if p.status != "" {
			task.Status = p.status
		}
		b.tasks[id] = task
		p.moved = append(p.moved, id)
	}
	column.TaskIDs = slices.Clone(newOrder)
	return p, nil
}

func (b *Board) execute(ctx context.Context, p plan) error {
	logger := log.WithField("column_id", p.columnID)
	var err error
	if p.status != "" {
		for _, id := range p.moved {
			if err = b.api.ChangeTaskStatus(ctx, id, p.status); err != nil {
				err = errors.Wrapf(err, "ошибка смены статуса задачи %d", id)
				break
			}
		}
	}
	if err == nil && len(p.order) > 0 {
		if err = b.api.ReorderTasks(ctx, p.columnID, p.order); err != nil {
			err = errors.Wrap(err, "ошибка изменения порядка задач")
		}
	}
	if err != nil {
		logger.WithError(err).
			WithField("task_ids", p.order).
			WithField("moved", p.moved).
			Error("сервер не принял изменения доски")
		b.notifier.Error(webclient.MessageOf(err, reconcileErrorMessage))
		if b.opts.RevertOnFailure {
			b.mu.Lock()
			b.revert(p)
			b.mu.Unlock()
		}
		return err
	}
	logger.WithField("task_ids", p.order).WithField("moved", p.moved).Debug("порядок колонки сохранен")
	return nil
}

// ReorderColumns ids - перестановка всех колонок доски
func (b *Board) ReorderColumns(ctx context.Context, ids []uint) error {
	b.mu.Lock()
	if len(ids) != len(b.order) {
		b.mu.Unlock()
		return ErrColumnSet
	}
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if _, ok := b.columns[id]; !ok || seen[id] {
			b.mu.Unlock()
			return ErrColumnSet
		}
		seen[id] = true
	}
	previous := b.order
	b.order = slices.Clone(ids)
	b.mu.Unlock()

	if err := b.api.ReorderColumns(ctx, ids); err != nil {
		log.WithError(err).WithField("column_ids", ids).Error("сервер не принял порядок колонок")
		b.notifier.Error(webclient.MessageOf(err, columnsErrorMessage))
		if b.opts.RevertOnFailure {
			b.mu.Lock()
			b.order = previous
			b.mu.Unlock()
		}
		return errors.Wrap(err, "ошибка изменения порядка колонок")
	}
	return nil
}

// snapshot состояние колонки и задач, которые меняет один Reconcile
type snapshot struct {
	taskIDs map[uint][]uint
	owner   map[uint]uint
	tasks   map[uint]kanbanapimodels.TaskView
}

func (b *Board) snapshot(columnID uint, taskIDs []uint) snapshot {
	s := snapshot{
		taskIDs: map[uint][]uint{},
		owner:   make(map[uint]uint, len(taskIDs)),
		tasks:   make(map[uint]kanbanapimodels.TaskView, len(taskIDs)),
	}
	s.taskIDs[columnID] = slices.Clone(b.columns[columnID].TaskIDs)
	for _, id := range taskIDs {
		from := b.owner[id]
		s.owner[id] = from
		s.tasks[id] = b.tasks[id]
		if column, ok := b.columns[from]; ok {
			s.taskIDs[from] = slices.Clone(column.TaskIDs)
		}
	}
	return s
}

// revert откатывает только изменения плана p. Если колонку уже переставил
// более поздний Reconcile, откат не выполняется
func (b *Board) revert(p plan) {
	target, ok := b.columns[p.columnID]
	if !ok || !slices.Equal(target.TaskIDs, p.order) {
		log.WithField("column_id", p.columnID).Warn("колонка изменена после запроса, откат пропущен")
		return
	}
	for _, id := range p.moved {
		if b.owner[id] != p.columnID {
			continue
		}
		b.owner[id] = p.backup.owner[id]
		b.tasks[id] = p.backup.tasks[id]
	}
	for columnID, previous := range p.backup.taskIDs {
		column, ok := b.columns[columnID]
		if !ok {
			continue
		}
		column.TaskIDs = b.membersOf(columnID, previous, column.TaskIDs)
	}
}

// membersOf задачи колонки: сначала в порядке previous, затем пришедшие позже
func (b *Board) membersOf(columnID uint, previous, current []uint) []uint {
	result := make([]uint, 0, len(previous)+len(current))
	for _, ids := range [][]uint{previous, current} {
		for _, id := range ids {
			if b.owner[id] == columnID && !slices.Contains(result, id) {
				result = append(result, id)
			}
		}
	}
	return result
}

func (c *Column) clone() Column {
	result := *c
	result.TaskIDs = slices.Clone(c.TaskIDs)
	return result
}
