package db

import (
	"hr-admin-backend/models"
	dbmodels "hr-admin-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DefaultKanbanColumns колонки новой доски, позиция соответствует порядку
var DefaultKanbanColumns = []dbmodels.KanbanColumn{
	{Title: "К выполнению", Status: models.KanbanStatusTodo},
	{Title: "В работе", Status: models.KanbanStatusInProgress},
	{Title: "На проверке", Status: models.KanbanStatusInReview},
	{Title: "Готово", Status: models.KanbanStatusDone},
}

// FillKanbanColumns создает колонки по умолчанию, если у организации их еще нет
func FillKanbanColumns(tx *gorm.DB, tenantID uint) error {
	var count int64
	err := tx.Model(&dbmodels.KanbanColumn{}).
		Where("created_by = ?", tenantID).
		Count(&count).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка проверки колонок доски")
	}
	if count > 0 {
		return nil
	}
	list := make([]dbmodels.KanbanColumn, 0, len(DefaultKanbanColumns))
	for idx, column := range DefaultKanbanColumns {
		column.CreatedBy = tenantID
		column.Position = idx + 1
		list = append(list, column)
	}
	if err = tx.Create(&list).Error; err != nil {
		return errors.Wrap(err, "ошибка создания колонок доски")
	}
	log.WithField("tenant_id", tenantID).Info("Созданы колонки доски по умолчанию")
	return nil
}
