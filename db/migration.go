package db

import (
	dbmodels "hr-admin-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	migrations := []struct {
		name  string
		model interface{}
	}{
		{"Company", &dbmodels.Company{}},
		{"Category", &dbmodels.Category{}},
		{"Designation", &dbmodels.Designation{}},
		{"Employee", &dbmodels.Employee{}},
		{"FileStorage", &dbmodels.FileStorage{}},
		{"Overtime", &dbmodels.Overtime{}},
		{"Reimbursement", &dbmodels.Reimbursement{}},
		{"StatusHistory", &dbmodels.StatusHistory{}},
		{"Trip", &dbmodels.Trip{}},
		{"Payslip", &dbmodels.Payslip{}},
		{"Promotion", &dbmodels.Promotion{}},
		{"Asset", &dbmodels.Asset{}},
		{"KanbanColumn", &dbmodels.KanbanColumn{}},
		{"KanbanTask", &dbmodels.KanbanTask{}},
	}
	for _, m := range migrations {
		if err := DB.AutoMigrate(m.model); err != nil {
			return errors.Wrapf(err, "ошибка создания структуры %s", m.name)
		}
	}
	log.Info("Миграция прошла успешно")
	return nil
}
