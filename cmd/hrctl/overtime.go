package main

import (
	"time"

	"hr-admin-backend/lib/console/dialog"
	"hr-admin-backend/lib/workflow"
	"hr-admin-backend/models"
	requestapimodels "hr-admin-backend/models/api/request"

	"github.com/spf13/cobra"
)

const overtimeResource = "overtimes"

var overtimeAccessors = accessors[requestapimodels.OvertimeView]{
	company: func(v requestapimodels.OvertimeView) uint {
		if v.Employee == nil {
			return 0
		}
		return v.Employee.CompanyID
	},
	date: func(v requestapimodels.OvertimeView) time.Time { return v.Date.Time },
	name: func(v requestapimodels.OvertimeView) string {
		if v.Employee == nil {
			return ""
		}
		return v.Employee.Name
	},
}

func overtimeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overtime",
		Short: "Заявки на переработку",
	}

	facets := facetFlags{}
	list := &cobra.Command{
		Use:   "list",
		Short: "Список заявок",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := loadList(cmd.Context(), a, overtimeResource, workflowFacets(facets, overtimeAccessors)...)
			if err != nil {
				return err
			}
			table := make([][]string, 0, len(rows))
			for _, rec := range rows {
				table = append(table, []string{
					formatID(rec.ID),
					employeeName(overtimeAccessors.name(rec)),
					rec.Date.String(),
					rec.Hours.String(),
					rec.Status.ToHuman(),
					actionsLabel(dialog.Actions(workflow.Overtime, rec.Status)),
				})
			}
			return printTable(a.out, []string{"ИД", "СОТРУДНИК", "ДАТА", "ЧАСЫ", "СТАТУС", "ДЕЙСТВИЯ"}, table)
		},
	}
	facets.bind(list)

	cmd.AddCommand(
		list,
		overtimeStatusCmd(a, "approve", "Одобрить заявку", models.RequestStatusApproved),
		overtimeStatusCmd(a, "reject", "Отклонить заявку", models.RequestStatusRejected),
		&cobra.Command{
			Use:   "delete ID",
			Short: "Удалить заявку",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return deleteRecord[requestapimodels.OvertimeView](cmd.Context(), a, overtimeResource, id)
			},
		},
	)
	return cmd
}

func overtimeStatusCmd(a *app, use, short string, to models.RequestStatus) *cobra.Command {
	var remark string
	cmd := &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return changeStatus[requestapimodels.OvertimeView](cmd.Context(), a, overtimeResource, workflow.Overtime, id, to, remark)
		},
	}
	cmd.Flags().StringVar(&remark, "remark", "", "примечание")
	return cmd
}
