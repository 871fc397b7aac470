package main

import (
	"time"

	"hr-admin-backend/lib/console/dialog"
	"hr-admin-backend/lib/workflow"
	"hr-admin-backend/models"
	requestapimodels "hr-admin-backend/models/api/request"

	"github.com/spf13/cobra"
)

const reimbursementResource = "reimbursements"

var reimbursementAccessors = accessors[requestapimodels.ReimbursementView]{
	company: func(v requestapimodels.ReimbursementView) uint {
		if v.Employee == nil {
			return 0
		}
		return v.Employee.CompanyID
	},
	date: func(v requestapimodels.ReimbursementView) time.Time { return v.Date.Time },
	name: func(v requestapimodels.ReimbursementView) string {
		if v.Employee == nil {
			return ""
		}
		return v.Employee.Name
	},
}

func reimbursementCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reimbursement",
		Short: "Заявки на компенсацию расходов",
	}

	facets := facetFlags{}
	list := &cobra.Command{
		Use:   "list",
		Short: "Список заявок",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := loadList(cmd.Context(), a, reimbursementResource, workflowFacets(facets, reimbursementAccessors)...)
			if err != nil {
				return err
			}
			table := make([][]string, 0, len(rows))
			for _, rec := range rows {
				category := "-"
				if rec.Category != nil {
					category = rec.Category.Name
				}
				table = append(table, []string{
					formatID(rec.ID),
					employeeName(reimbursementAccessors.name(rec)),
					category,
					rec.Date.String(),
					rec.Amount.StringFixed(2),
					rec.Status.ToHuman(),
					actionsLabel(dialog.Actions(workflow.Reimbursement, rec.Status)),
				})
			}
			return printTable(a.out, []string{"ИД", "СОТРУДНИК", "КАТЕГОРИЯ", "ДАТА", "СУММА", "СТАТУС", "ДЕЙСТВИЯ"}, table)
		},
	}
	facets.bind(list)

	var to, remark string
	status := &cobra.Command{
		Use:   "status ID",
		Short: "Сменить статус заявки",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return changeStatus[requestapimodels.ReimbursementView](cmd.Context(), a, reimbursementResource, workflow.Reimbursement, id, models.RequestStatus(to), remark)
		},
	}
	status.Flags().StringVar(&to, "to", string(models.RequestStatusApproved), "новый статус: approved, rejected, paid")
	status.Flags().StringVar(&remark, "remark", "", "примечание")

	cmd.AddCommand(
		list,
		status,
		&cobra.Command{
			Use:   "delete ID",
			Short: "Удалить заявку",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return deleteRecord[requestapimodels.ReimbursementView](cmd.Context(), a, reimbursementResource, id)
			},
		},
	)
	return cmd
}
