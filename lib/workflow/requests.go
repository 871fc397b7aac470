package workflow

import "hr-admin-backend/models"

const (
	ApprovedRemark = "Заявка одобрена"
	RejectedRemark = "Заявка отклонена"
	PaidRemark     = "Заявка оплачена"
)

// Overtime pending -> approved | rejected
var Overtime = New(
	[]models.RequestStatus{
		models.RequestStatusPending,
		models.RequestStatusApproved,
		models.RequestStatusRejected,
	},
	map[models.RequestStatus][]models.RequestStatus{
		models.RequestStatusPending: {models.RequestStatusApproved, models.RequestStatusRejected},
	},
	WithRemark(models.RequestStatusApproved, ApprovedRemark),
	WithRemark(models.RequestStatusRejected, RejectedRemark),
)

// Reimbursement pending -> approved | rejected, approved -> paid
var Reimbursement = New(
	[]models.RequestStatus{
		models.RequestStatusPending,
		models.RequestStatusApproved,
		models.RequestStatusRejected,
		models.RequestStatusPaid,
	},
	map[models.RequestStatus][]models.RequestStatus{
		models.RequestStatusPending:  {models.RequestStatusApproved, models.RequestStatusRejected},
		models.RequestStatusApproved: {models.RequestStatusPaid},
	},
	WithRemark(models.RequestStatusApproved, ApprovedRemark),
	WithRemark(models.RequestStatusRejected, RejectedRemark),
	WithRemark(models.RequestStatusPaid, PaidRemark),
)
