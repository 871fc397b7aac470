package dbmodels

import (
	"hr-admin-backend/models"

	"github.com/pkg/errors"
)

type KanbanColumn struct {
	BaseTenantModel
	Title    string              `gorm:"type:varchar(255)"`
	Status   models.KanbanStatus `gorm:"type:varchar(20)"`
	Position int
}

func (c KanbanColumn) Validate() error {
	if err := c.BaseTenantModel.Validate(); err != nil {
		return err
	}
	if c.Title == "" {
		return errors.New("не указано название колонки")
	}
	if c.Status != "" && !c.Status.IsValid() {
		return errors.New("некорректный статус колонки")
	}
	return nil
}

type KanbanTask struct {
	BaseTenantModel
	ColumnID    uint                `gorm:"index"`
	Title       string              `gorm:"type:varchar(255)"`
	Description string              `gorm:"type:text"`
	Status      models.KanbanStatus `gorm:"type:varchar(20)"`
	Priority    models.TaskPriority `gorm:"type:varchar(10);default:'medium'"`
	DueDate     *models.Date
	Position    int
	Assigned    []Employee `gorm:"many2many:kanban_task_assignees"`
	Attachments int
	Comments    int
}

func (t KanbanTask) Validate() error {
	if err := t.BaseTenantModel.Validate(); err != nil {
		return err
	}
	if t.Title == "" {
		return errors.New("не указано название задачи")
	}
	if !t.Status.IsValid() {
		return errors.New("некорректный статус задачи")
	}
	if !t.Priority.IsValid() {
		return errors.New("некорректный приоритет задачи")
	}
	return nil
}
