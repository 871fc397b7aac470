package dialog

import "hr-admin-backend/lib/workflow"

// RowActions видимые действия строки. Смена статуса скрыта в конечном статусе
type RowActions struct {
	Edit   bool
	Delete bool
	Status bool
}

func Actions[S ~string](machine *workflow.Machine[S], status S) RowActions {
	return RowActions{
		Edit:   machine.CanEdit(status),
		Delete: machine.CanDelete(status),
		Status: machine.CanChangeStatus(status),
	}
}
