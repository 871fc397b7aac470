package dbmodels

import (
	"hr-admin-backend/models"
	"time"
)

// StatusWorkflow поля согласования заявки.
// В каждом статусе заполнена только пара (исполнитель, время) этого статуса, в pending - ни одной.
type StatusWorkflow struct {
	Status     models.RequestStatus `gorm:"type:varchar(20);index;default:'pending'"`
	Approver   *string              `gorm:"type:varchar(255)"`
	ApprovedAt *time.Time
	Rejecter   *string `gorm:"type:varchar(255)"`
	RejectedAt *time.Time
	Payer      *string `gorm:"type:varchar(255)"`
	PaidAt     *time.Time
	Remark     string `gorm:"type:text"`
}

// UpdMap поля для обновления при переходе в статус to
func (w StatusWorkflow) UpdMap(to models.RequestStatus, actor, remark string, at time.Time) map[string]interface{} {
	updMap := map[string]interface{}{
		"status":      to,
		"remark":      remark,
		"approver":    nil,
		"approved_at": nil,
		"rejecter":    nil,
		"rejected_at": nil,
		"payer":       nil,
		"paid_at":     nil,
	}
	switch to {
	case models.RequestStatusApproved:
		updMap["approver"] = actor
		updMap["approved_at"] = at
	case models.RequestStatusRejected:
		updMap["rejecter"] = actor
		updMap["rejected_at"] = at
	case models.RequestStatusPaid:
		updMap["payer"] = actor
		updMap["paid_at"] = at
	}
	return updMap
}

// Apply переводит запись в статус to в памяти, аналогично UpdMap
func (w *StatusWorkflow) Apply(to models.RequestStatus, actor, remark string, at time.Time) {
	w.Status = to
	w.Remark = remark
	w.Approver, w.ApprovedAt = nil, nil
	w.Rejecter, w.RejectedAt = nil, nil
	w.Payer, w.PaidAt = nil, nil
	switch to {
	case models.RequestStatusApproved:
		w.Approver, w.ApprovedAt = &actor, &at
	case models.RequestStatusRejected:
		w.Rejecter, w.RejectedAt = &actor, &at
	case models.RequestStatusPaid:
		w.Payer, w.PaidAt = &actor, &at
	}
}

type StatusHistory struct {
	BaseTenantModel
	Entity     string               `gorm:"type:varchar(50);index:idx_history_entity"`
	EntityID   uint                 `gorm:"index:idx_history_entity"`
	FromStatus models.RequestStatus `gorm:"type:varchar(20)"`
	ToStatus   models.RequestStatus `gorm:"type:varchar(20)"`
	Actor      string               `gorm:"type:varchar(255)"`
	Remark     string               `gorm:"type:text"`
}
