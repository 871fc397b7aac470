package kanbanstore

import (
	"hr-admin-backend/lib/utils/scopes"
	"hr-admin-backend/models"
	dbmodels "hr-admin-backend/models/db"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	CreateColumn(rec dbmodels.KanbanColumn) (id uint, err error)
	GetColumn(tenantID, id uint) (rec *dbmodels.KanbanColumn, err error)
	// ColumnByStatus первая по позиции колонка со статусом status
	ColumnByStatus(tenantID uint, status models.KanbanStatus) (rec *dbmodels.KanbanColumn, err error)
	ListColumns(tenantID uint) (list []dbmodels.KanbanColumn, err error)
	UpdateColumn(tenantID, id uint, updMap map[string]interface{}) error
	DeleteColumn(tenantID, id uint) error
	MaxColumnPosition(tenantID uint) (int, error)
	// SetColumnPositions позиция колонки - ее номер в ids, начиная с 1
	SetColumnPositions(tenantID uint, ids []uint) error

	CreateTask(rec dbmodels.KanbanTask) (id uint, err error)
	GetTask(tenantID, id uint) (rec *dbmodels.KanbanTask, err error)
	ListTasks(tenantID uint) (list []dbmodels.KanbanTask, err error)
	// ColumnTaskIDs задачи колонки в порядке позиций
	ColumnTaskIDs(tenantID, columnID uint) (ids []uint, err error)
	UpdateTask(tenantID, id uint, updMap map[string]interface{}) error
	SetAssignees(tenantID, id uint, employeeIDs []uint) error
	DeleteTask(tenantID, id uint) error
	MaxTaskPosition(tenantID, columnID uint) (int, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateColumn(rec dbmodels.KanbanColumn) (id uint, err error) {
	err = rec.Validate()
	if err != nil {
		return 0, err
	}
	err = i.db.Create(&rec).Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetColumn(tenantID, id uint) (*dbmodels.KanbanColumn, error) {
	rec := dbmodels.KanbanColumn{}
	err := i.db.
		Scopes(scopes.Tenant(tenantID)).
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ColumnByStatus(tenantID uint, status models.KanbanStatus) (*dbmodels.KanbanColumn, error) {
	rec := dbmodels.KanbanColumn{}
	err := i.db.
		Scopes(scopes.Tenant(tenantID)).
		Where("status = ?", status).
		Order("position").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListColumns(tenantID uint) (list []dbmodels.KanbanColumn, err error) {
	list = []dbmodels.KanbanColumn{}
	err = i.db.
		Scopes(scopes.Tenant(tenantID)).
		Order("position").
		Order("id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) UpdateColumn(tenantID, id uint, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.KanbanColumn{}).
		Scopes(scopes.Tenant(tenantID)).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("колонка не найдена")
	}
	return nil
}

func (i impl) DeleteColumn(tenantID, id uint) error {
	return i.db.
		Scopes(scopes.Tenant(tenantID)).
		Where("id = ?", id).
		Delete(&dbmodels.KanbanColumn{}).
		Error
}

func (i impl) MaxColumnPosition(tenantID uint) (int, error) {
	var position *int
	err := i.db.
		Model(&dbmodels.KanbanColumn{}).
		Scopes(scopes.Tenant(tenantID)).
		Select("MAX(position)").
		Scan(&position).
		Error
	if err != nil || position == nil {
		return 0, err
	}
	return *position, nil
}

func (i impl) SetColumnPositions(tenantID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	order := make([]int64, 0, len(ids))
	for _, id := range ids {
		order = append(order, int64(id))
	}
	tx := i.db.
		Model(&dbmodels.KanbanColumn{}).
		Scopes(scopes.Tenant(tenantID)).
		Where("id = ANY(?)", pq.Int64Array(order)).
		Update("position", gorm.Expr("array_position(?::bigint[], id)", pq.Int64Array(order)))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected != int64(len(ids)) {
		return errors.New("колонка не найдена")
	}
	return nil
}

func (i impl) CreateTask(rec dbmodels.KanbanTask) (id uint, err error) {
	err = rec.Validate()
	if err != nil {
		return 0, err
	}
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetTask(tenantID, id uint) (*dbmodels.KanbanTask, error) {
	rec := dbmodels.KanbanTask{}
	err := i.db.
		Scopes(scopes.Tenant(tenantID)).
		Where("id = ?", id).
		Preload("Assigned").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListTasks(tenantID uint) (list []dbmodels.KanbanTask, err error) {
	list = []dbmodels.KanbanTask{}
	err = i.db.
		Scopes(scopes.Tenant(tenantID)).
		Preload("Assigned").
		Order("column_id").
		Order("position").
		Order("id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ColumnTaskIDs(tenantID, columnID uint) (ids []uint, err error) {
	ids = []uint{}
	err = i.db.
		Model(&dbmodels.KanbanTask{}).
		Scopes(scopes.Tenant(tenantID)).
		Where("column_id = ?", columnID).
		Order("position").
		Order("id").
		Pluck("id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (i impl) UpdateTask(tenantID, id uint, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.KanbanTask{}).
		Scopes(scopes.Tenant(tenantID)).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("задача не найдена")
	}
	return nil
}

func (i impl) SetAssignees(tenantID, id uint, employeeIDs []uint) error {
	task := dbmodels.KanbanTask{}
	task.ID = id
	employees := []dbmodels.Employee{}
	if len(employeeIDs) > 0 {
		err := i.db.
			Scopes(scopes.Tenant(tenantID)).
			Where("id IN ?", employeeIDs).
			Find(&employees).
			Error
		if err != nil {
			return err
		}
		if len(employees) != len(employeeIDs) {
			return errors.New("исполнитель не найден")
		}
	}
	return i.db.
		Model(&task).
		Association("Assigned").
		Replace(employees)
}

func (i impl) DeleteTask(tenantID, id uint) error {
	task := dbmodels.KanbanTask{}
	task.ID = id
	err := i.db.
		Model(&task).
		Association("Assigned").
		Clear()
	if err != nil {
		return err
	}
	return i.db.
		Scopes(scopes.Tenant(tenantID)).
		Where("id = ?", id).
		Delete(&dbmodels.KanbanTask{}).
		Error
}

func (i impl) MaxTaskPosition(tenantID, columnID uint) (int, error) {
	var position *int
	err := i.db.
		Model(&dbmodels.KanbanTask{}).
		Scopes(scopes.Tenant(tenantID)).
		Where("column_id = ?", columnID).
		Select("MAX(position)").
		Scan(&position).
		Error
	if err != nil || position == nil {
		return 0, err
	}
	return *position, nil
}
