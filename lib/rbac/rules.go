package rbac

import (
	"hr-admin-backend/models"
)

var (
	AdminHrRoleSet = []models.UserRole{models.AdminRole, models.HRRole}
	AllRoles       = []models.UserRole{models.AdminRole, models.HRRole, models.EmployeeRole}
)

func (i *impl) initRules() {
	i.staff()
	i.overtime()
	i.reimbursement()
	i.payroll()
	i.asset()
	i.trip()
	i.kanban()
}

// crud правила просмотра и редактирования ресурса
func (i *impl) crud(module models.Module, resource string, viewRoles, editRoles []models.UserRole) {
	base := "/web/" + resource
	i.mustRegister(module, models.ViewPermission, viewRoles, base+" [get]")
	i.mustRegister(module, models.ViewPermission, viewRoles, base+"/{id} [get]")
	i.mustRegister(module, models.EditPermission, editRoles, base+" [post]")
	i.mustRegister(module, models.EditPermission, editRoles, base+"/{id} [put,patch,delete]")
}

func (i *impl) mustRegister(module models.Module, permission models.Permission, roles []models.UserRole, pattern string) {
	if err := i.RegisterRule(module, permission, roles, pattern, nil); err != nil {
		panic(err.Error())
	}
}

func (i *impl) staff() {
	i.crud(models.StaffModule, "companies", AllRoles, AdminHrRoleSet)
	i.crud(models.StaffModule, "employees", AllRoles, AdminHrRoleSet)
	i.crud(models.StaffModule, "designations", AllRoles, AdminHrRoleSet)
	i.crud(models.StaffModule, "categories", AllRoles, AdminHrRoleSet)
	i.crud(models.StaffModule, "promotions", AdminHrRoleSet, AdminHrRoleSet)
}

func (i *impl) overtime() {
	i.crud(models.OvertimeModule, "overtimes", AllRoles, AllRoles)
	i.mustRegister(models.OvertimeModule, models.ViewPermission, AllRoles, "/web/overtimes/{id}/history [get]")
	//FLOW
	i.mustRegister(models.OvertimeModule, models.FlowPermission, AdminHrRoleSet, "/web/overtimes/{id}/status [patch]")
}

func (i *impl) reimbursement() {
	i.crud(models.ReimbursementModule, "reimbursements", AllRoles, AllRoles)
	i.mustRegister(models.ReimbursementModule, models.ViewPermission, AllRoles, "/web/reimbursements/{id}/history [get]")
	i.mustRegister(models.ReimbursementModule, models.ViewPermission, AllRoles, "/web/reimbursements/{id}/receipt [get]")
	//FLOW
	i.mustRegister(models.ReimbursementModule, models.FlowPermission, AdminHrRoleSet, "/web/reimbursements/{id}/status [patch]")
}

func (i *impl) payroll() {
	i.crud(models.PayrollModule, "payslips", AdminHrRoleSet, AdminHrRoleSet)
	//MANAGE
	i.mustRegister(models.PayrollModule, models.ManagePermission, AdminHrRoleSet, "/web/payslips/generate [post]")
	i.mustRegister(models.PayrollModule, models.ManagePermission, AdminHrRoleSet, "/web/payslips/export [get]")
	i.mustRegister(models.PayrollModule, models.ManagePermission, AdminHrRoleSet, "/web/payslips/{id}/pdf [get]")
	i.mustRegister(models.PayrollModule, models.ManagePermission, AdminHrRoleSet, "/web/payslips/{id}/send [post]")
	i.mustRegister(models.PayrollModule, models.ManagePermission, AdminHrRoleSet, "/web/salaries/import [post]")
}

func (i *impl) asset() {
	i.crud(models.AssetModule, "assets", AllRoles, AdminHrRoleSet)
}

func (i *impl) trip() {
	i.crud(models.TripModule, "trips", AllRoles, AdminHrRoleSet)
}

func (i *impl) kanban() {
	i.mustRegister(models.KanbanModule, models.ViewPermission, AllRoles, "/web/kanban/board [get]")
	//MANAGE
	i.mustRegister(models.KanbanModule, models.ManagePermission, AdminHrRoleSet, "/web/kanban/columns [post]")
	i.mustRegister(models.KanbanModule, models.ManagePermission, AdminHrRoleSet, "/web/kanban/columns/{id} [put,delete]")
	i.mustRegister(models.KanbanModule, models.ManagePermission, AdminHrRoleSet, "/web/kanban/columns/order [patch]")
	//EDIT
	i.mustRegister(models.KanbanModule, models.EditPermission, AllRoles, "/web/kanban/columns/{id}/tasks/order [patch]")
	i.mustRegister(models.KanbanModule, models.EditPermission, AllRoles, "/web/kanban/tasks [post]")
	i.mustRegister(models.KanbanModule, models.EditPermission, AllRoles, "/web/kanban/tasks/{id} [patch,delete]")
	i.mustRegister(models.KanbanModule, models.EditPermission, AllRoles, "/web/kanban/tasks/{id}/status [patch]")
}
