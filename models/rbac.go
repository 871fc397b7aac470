package models

type RbacFunc func(tenantID, userID uint, role UserRole, path string) bool

type Module string

const (
	StaffModule         Module = "STAFF"
	OvertimeModule      Module = "OVERTIME"
	ReimbursementModule Module = "REIMBURSEMENT"
	PayrollModule       Module = "PAYROLL"
	AssetModule         Module = "ASSET"
	TripModule          Module = "TRIP"
	KanbanModule        Module = "KANBAN"
)

type Permission string

const (
	ViewPermission   Permission = "VIEW"
	EditPermission   Permission = "EDIT"
	FlowPermission   Permission = "FLOW"
	ManagePermission Permission = "MANAGE"
)
