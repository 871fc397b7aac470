package main

import (
	"context"

	"hr-admin-backend/lib/console/dialog"
	"hr-admin-backend/lib/console/listview"
	"hr-admin-backend/lib/console/webclient"
	"hr-admin-backend/models"
	assetapimodels "hr-admin-backend/models/api/asset"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const assetResource = "assets"

func assetName(v assetapimodels.AssetView) string {
	if v.Employee == nil {
		return ""
	}
	return v.Employee.Name
}

func assetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Имущество сотрудников",
	}

	var employeeID uint
	var warranty, search string
	list := &cobra.Command{
		Use:   "list",
		Short: "Список имущества",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := loadList(cmd.Context(), a, assetResource,
				listview.Equals(func(v assetapimodels.AssetView) uint { return v.EmployeeID }, employeeID),
				listview.Equals(func(v assetapimodels.AssetView) models.WarrantyStatus { return v.WarrantyStatus }, models.WarrantyStatus(warranty)),
				listview.Search(search, func(v assetapimodels.AssetView) string { return v.Name }, func(v assetapimodels.AssetView) string { return v.Brand }, assetName),
			)
			if err != nil {
				return err
			}
			table := make([][]string, 0, len(rows))
			for _, rec := range rows {
				table = append(table, []string{
					formatID(rec.ID),
					employeeName(assetName(rec)),
					rec.Name,
					rec.Brand,
					string(rec.WarrantyStatus),
					rec.BuyingDate.String(),
				})
			}
			return printTable(a.out, []string{"ИД", "СОТРУДНИК", "НАЗВАНИЕ", "БРЕНД", "ГАРАНТИЯ", "ДАТА ПОКУПКИ"}, table)
		},
	}
	list.Flags().UintVar(&employeeID, "employee", 0, "ИД сотрудника")
	list.Flags().StringVar(&warranty, "warranty", "", "гарантия: On, Off")
	list.Flags().StringVar(&search, "search", "", "поиск по названию, бренду и сотруднику")

	cmd.AddCommand(
		list,
		assetCreateCmd(a),
		&cobra.Command{
			Use:   "delete ID",
			Short: "Удалить запись",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return deleteRecord[assetapimodels.AssetView](cmd.Context(), a, assetResource, id)
			},
		},
	)
	return cmd
}

func assetCreateCmd(a *app) *cobra.Command {
	input := assetapimodels.AssetData{}
	var warranty, buyingDate string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Добавить имущество",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := models.ParseDate(buyingDate)
			if err != nil {
				return a.reportLocal(err)
			}
			form := dialog.NewForm(dialog.FormConfig[assetapimodels.AssetView, assetapimodels.AssetData]{
				Blank: func() assetapimodels.AssetData {
					return assetapimodels.AssetData{WarrantyStatus: models.WarrantyOn}
				},
				FromEntity: func(v assetapimodels.AssetView) assetapimodels.AssetData { return v.AssetData },
				Validate:   assetapimodels.AssetData.Validate,
				Create: func(ctx context.Context, values assetapimodels.AssetData) (assetapimodels.AssetView, string, error) {
					return webclient.Create[assetapimodels.AssetView](ctx, a.client, assetResource, values)
				},
				Notifier:        a.notifier,
				SuccessFallback: "Имущество добавлено",
			})
			dispatcher := dialog.NewDispatcher[assetapimodels.AssetView](map[string]dialog.OptionLoader{
				employeesOptions: employeeOptions(a),
			})
			selection := dispatcher.Open(cmd.Context(), dialog.ModeAdd, nil)
			defer dispatcher.Close()
			// справочник не загрузился - проверку оставляем серверу
			employees := dispatcher.Options(employeesOptions)
			if input.EmployeeID != 0 && len(employees) > 0 && !hasOption(employees, input.EmployeeID) {
				return a.reportLocal(errors.Errorf("сотрудник %d не найден", input.EmployeeID))
			}
			if err = form.Open(selection.Mode, selection.Entity); err != nil {
				return err
			}
			form.Edit(func(v *assetapimodels.AssetData) {
				*v = input
				v.WarrantyStatus = models.WarrantyStatus(warranty)
				v.BuyingDate = date
			})
			if err = form.Submit(cmd.Context()); err != nil {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().UintVar(&input.EmployeeID, "employee", 0, "ИД сотрудника")
	cmd.Flags().StringVar(&input.Name, "name", "", "название")
	cmd.Flags().StringVar(&input.Brand, "brand", "", "бренд")
	cmd.Flags().StringVar(&warranty, "warranty", string(models.WarrantyOn), "гарантия: On, Off")
	cmd.Flags().StringVar(&buyingDate, "buying-date", "", "дата покупки ГГГГ-ММ-ДД")
	return cmd
}
