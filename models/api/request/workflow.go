package requestapimodels

import (
	"hr-admin-backend/models"
	dbmodels "hr-admin-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

type StatusChange struct {
	Status models.RequestStatus `json:"status"`
	Remark string               `json:"remark"`
}

func (s StatusChange) Validate() error {
	if s.Status == "" {
		return errors.New("не указан статус")
	}
	return nil
}

// WorkflowView поля согласования в ответе
type WorkflowView struct {
	Status     models.RequestStatus `json:"status"`
	Approver   *string              `json:"approver,omitempty"`
	ApprovedAt *time.Time           `json:"approved_at,omitempty"`
	Rejecter   *string              `json:"rejecter,omitempty"`
	RejectedAt *time.Time           `json:"rejected_at,omitempty"`
	Payer      *string              `json:"payer,omitempty"`
	PaidAt     *time.Time           `json:"paid_at,omitempty"`
	Remark     string               `json:"remark,omitempty"`
}

func (w WorkflowView) GetStatus() models.RequestStatus { return w.Status }

func WorkflowConvert(rec dbmodels.StatusWorkflow) WorkflowView {
	return WorkflowView{
		Status:     rec.Status,
		Approver:   rec.Approver,
		ApprovedAt: rec.ApprovedAt,
		Rejecter:   rec.Rejecter,
		RejectedAt: rec.RejectedAt,
		Payer:      rec.Payer,
		PaidAt:     rec.PaidAt,
		Remark:     rec.Remark,
	}
}

type HistoryView struct {
	ID         uint                 `json:"id"`
	CreatedAt  time.Time            `json:"created_at"`
	FromStatus models.RequestStatus `json:"from_status"`
	ToStatus   models.RequestStatus `json:"to_status"`
	Actor      string               `json:"actor"`
	Remark     string               `json:"remark"`
}

func HistoryConvert(rec dbmodels.StatusHistory) HistoryView {
	return HistoryView{
		ID:         rec.ID,
		CreatedAt:  rec.CreatedAt,
		FromStatus: rec.FromStatus,
		ToStatus:   rec.ToStatus,
		Actor:      rec.Actor,
		Remark:     rec.Remark,
	}
}
