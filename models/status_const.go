package models

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
	RequestStatusPaid     RequestStatus = "paid"
)

var requestStatusHumanName = map[RequestStatus]string{
	RequestStatusPending:  "На рассмотрении",
	RequestStatusApproved: "Одобрена",
	RequestStatusRejected: "Отклонена",
	RequestStatusPaid:     "Оплачена",
}

func (s RequestStatus) ToHuman() string {
	if human, exist := requestStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

type KanbanStatus string

const (
	KanbanStatusTodo       KanbanStatus = "todo"
	KanbanStatusInProgress KanbanStatus = "in_progress"
	KanbanStatusInReview   KanbanStatus = "in_review"
	KanbanStatusDone       KanbanStatus = "done"
)

func (s KanbanStatus) IsValid() bool {
	switch s {
	case KanbanStatusTodo, KanbanStatusInProgress, KanbanStatusInReview, KanbanStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type WarrantyStatus string

const (
	WarrantyOn  WarrantyStatus = "On"
	WarrantyOff WarrantyStatus = "Off"
)

type PayslipStatus string

const (
	PayslipStatusGenerated PayslipStatus = "generated"
	PayslipStatusSent      PayslipStatus = "sent"
)
