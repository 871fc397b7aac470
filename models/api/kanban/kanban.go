package kanbanapimodels

import (
	"hr-admin-backend/models"
	staffapimodels "hr-admin-backend/models/api/staff"
	dbmodels "hr-admin-backend/models/db"
	"strings"

	"github.com/pkg/errors"
)

type Board struct {
	Columns []ColumnView `json:"columns"`
	Tasks   []TaskView   `json:"tasks"`
}

type ColumnData struct {
	Title  string              `json:"title"`
	Status models.KanbanStatus `json:"status"`
}

func (c ColumnData) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("не указано название колонки")
	}
	if c.Status != "" && !c.Status.IsValid() {
		return errors.New("некорректный статус колонки")
	}
	return nil
}

type ColumnView struct {
	ColumnData
	ID       uint   `json:"id"`
	Position int    `json:"position"`
	TaskIDs  []uint `json:"task_ids"`
}

func (v ColumnView) GetID() uint { return v.ID }

func ColumnConvert(rec dbmodels.KanbanColumn, taskIDs []uint) ColumnView {
	if taskIDs == nil {
		taskIDs = []uint{}
	}
	return ColumnView{
		ColumnData: ColumnData{
			Title:  rec.Title,
			Status: rec.Status,
		},
		ID:       rec.ID,
		Position: rec.Position,
		TaskIDs:  taskIDs,
	}
}

type TaskCreate struct {
	ColumnID    uint                `json:"column_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *models.Date        `json:"due_date"`
	AssigneeIDs []uint              `json:"assignee_ids"`
}

func (t TaskCreate) Validate() error {
	if t.ColumnID == 0 {
		return errors.New("не указана колонка")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("не указано название задачи")
	}
	if t.Priority != "" && !t.Priority.IsValid() {
		return errors.New("некорректный приоритет задачи")
	}
	return nil
}

// TaskPatch частичное обновление, nil - поле не меняется
type TaskPatch struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Status      *models.KanbanStatus `json:"status"`
	Priority    *models.TaskPriority `json:"priority"`
	DueDate     *models.Date         `json:"due_date"`
	AssigneeIDs *[]uint              `json:"assignee_ids"`
}

func (t TaskPatch) Validate() error {
	if t.Title != nil && strings.TrimSpace(*t.Title) == "" {
		return errors.New("не указано название задачи")
	}
	if t.Status != nil && !t.Status.IsValid() {
		return errors.New("некорректный статус задачи")
	}
	if t.Priority != nil && !t.Priority.IsValid() {
		return errors.New("некорректный приоритет задачи")
	}
	return nil
}

type TaskStatus struct {
	Status models.KanbanStatus `json:"status"`
}

func (t TaskStatus) Validate() error {
	if !t.Status.IsValid() {
		return errors.New("некорректный статус задачи")
	}
	return nil
}

type TaskView struct {
	ID          uint                         `json:"id"`
	ColumnID    uint                         `json:"column_id"`
	Title       string                       `json:"title"`
	Description string                       `json:"description"`
	Status      models.KanbanStatus          `json:"status"`
	Priority    models.TaskPriority          `json:"priority"`
	DueDate     *models.Date                 `json:"due_date,omitempty"`
	Position    int                          `json:"position"`
	Assigned    []staffapimodels.EmployeeRef `json:"assigned"`
	Attachments int                          `json:"attachments"`
	Comments    int                          `json:"comments"`
}

func (v TaskView) GetID() uint { return v.ID }

func TaskConvert(rec dbmodels.KanbanTask) TaskView {
	view := TaskView{
		ID:          rec.ID,
		ColumnID:    rec.ColumnID,
		Title:       rec.Title,
		Description: rec.Description,
		Status:      rec.Status,
		Priority:    rec.Priority,
		DueDate:     rec.DueDate,
		Position:    rec.Position,
		Assigned:    make([]staffapimodels.EmployeeRef, 0, len(rec.Assigned)),
		Attachments: rec.Attachments,
		Comments:    rec.Comments,
	}
	for i := range rec.Assigned {
		view.Assigned = append(view.Assigned, *staffapimodels.EmployeeRefConvert(&rec.Assigned[i]))
	}
	return view
}

type ColumnOrder struct {
	ColumnIDs []uint `json:"column_ids"`
}

type TaskOrder struct {
	TaskIDs []uint `json:"task_ids"`
}

// Event событие доски для websocket клиентов
type Event struct {
	Code   string `json:"code"`
	Entity string `json:"entity"`
	ID     uint   `json:"id"`
}
