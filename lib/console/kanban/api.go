package kanban

import (
	"context"
	"fmt"
	"net/http"

	"hr-admin-backend/lib/console/webclient"
	"hr-admin-backend/models"
	kanbanapimodels "hr-admin-backend/models/api/kanban"
)

// API вызовы сервера, которые выполняет доска
type API interface {
	Board(ctx context.Context) (kanbanapimodels.Board, error)
	ChangeTaskStatus(ctx context.Context, taskID uint, status models.KanbanStatus) error
	ReorderTasks(ctx context.Context, columnID uint, taskIDs []uint) error
	ReorderColumns(ctx context.Context, columnIDs []uint) error
}

// Remote API поверх /web/kanban
type Remote struct {
	Client *webclient.Client
}

func (r Remote) Board(ctx context.Context) (board kanbanapimodels.Board, err error) {
	_, err = r.Client.Do(ctx, http.MethodGet, "/web/kanban/board", nil, nil, &board)
	return board, err
}

func (r Remote) ChangeTaskStatus(ctx context.Context, taskID uint, status models.KanbanStatus) error {
	path := fmt.Sprintf("/web/kanban/tasks/%d/status", taskID)
	_, err := r.Client.Do(ctx, http.MethodPatch, path, nil, kanbanapimodels.TaskStatus{Status: status}, nil)
	return err
}

func (r Remote) ReorderTasks(ctx context.Context, columnID uint, taskIDs []uint) error {
	path := fmt.Sprintf("/web/kanban/columns/%d/tasks/order", columnID)
	_, err := r.Client.Do(ctx, http.MethodPatch, path, nil, kanbanapimodels.TaskOrder{TaskIDs: taskIDs}, nil)
	return err
}

func (r Remote) ReorderColumns(ctx context.Context, columnIDs []uint) error {
	_, err := r.Client.Do(ctx, http.MethodPatch, "/web/kanban/columns/order", nil, kanbanapimodels.ColumnOrder{ColumnIDs: columnIDs}, nil)
	return err
}
