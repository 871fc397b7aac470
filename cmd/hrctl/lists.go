package main

import (
	"context"
	"strings"
	"time"

	"hr-admin-backend/lib/console/dialog"
	"hr-admin-backend/lib/console/listcache"
	"hr-admin-backend/lib/console/listview"
	"hr-admin-backend/lib/console/webclient"
	"hr-admin-backend/lib/workflow"
	"hr-admin-backend/models"
	staffapimodels "hr-admin-backend/models/api/staff"

	"github.com/spf13/cobra"
)

const loadErrorMessage = "Не удалось загрузить список"

// loadList список ресурса через общий ключ кэша с примененными фасетами
func loadList[T listview.Entity](ctx context.Context, a *app, resource string, facets ...listview.Facet[T]) ([]T, error) {
	store := listview.NewStore[T]()
	listcache.Register(a.cache, resource, func(ctx context.Context) ([]T, error) {
		return webclient.List[T](ctx, a.client, resource, nil)
	}, store)
	defer listcache.Unsubscribe(a.cache, resource, store)
	if err := a.cache.Invalidate(ctx, resource); err != nil {
		return nil, a.report(err, loadErrorMessage)
	}
	store.SetFacets(facets...)
	return store.Filtered(), nil
}

type facetFlags struct {
	company  uint
	month    int
	year     int
	statuses []string
	search   string
}

func (f *facetFlags) bind(cmd *cobra.Command) {
	cmd.Flags().UintVar(&f.company, "company", 0, "ИД компании")
	cmd.Flags().IntVar(&f.month, "month", 0, "месяц 1-12")
	cmd.Flags().IntVar(&f.year, "year", 0, "год")
	cmd.Flags().StringSliceVar(&f.statuses, "status", nil, "статусы через запятую")
	cmd.Flags().StringVar(&f.search, "search", "", "поиск по сотруднику")
}

type workflowEntity interface {
	dialog.StatusEntity[models.RequestStatus]
}

type accessors[T any] struct {
	company func(T) uint
	date    func(T) time.Time
	name    func(T) string
}

func workflowFacets[T workflowEntity](f facetFlags, get accessors[T]) []listview.Facet[T] {
	statuses := make([]models.RequestStatus, 0, len(f.statuses))
	for _, s := range f.statuses {
		if s = strings.TrimSpace(s); s != "" {
			statuses = append(statuses, models.RequestStatus(s))
		}
	}
	return []listview.Facet[T]{
		listview.Equals(get.company, f.company),
		listview.Month(get.date, f.month),
		listview.Year(get.date, f.year),
		listview.In(func(rec T) models.RequestStatus { return rec.GetStatus() }, statuses...),
		listview.Search(f.search, get.name),
	}
}

func changeStatus[T workflowEntity](ctx context.Context, a *app, resource string, machine *workflow.Machine[models.RequestStatus], id uint, to models.RequestStatus, remark string) error {
	rec, err := webclient.Get[T](ctx, a.client, resource, id)
	if err != nil {
		return a.report(err, "Запись не найдена")
	}
	dispatcher := dialog.NewDispatcher[T](nil)
	selection := dispatcher.Open(ctx, dialog.ModeStatus, &rec)
	defer dispatcher.Close()
	dlg := dialog.NewStatus(dialog.StatusConfig[T, models.RequestStatus]{
		Machine: machine,
		Change: func(ctx context.Context, id uint, status models.RequestStatus, remark string) (T, string, error) {
			return webclient.ChangeStatus[T](ctx, a.client, resource, id, status, remark)
		},
		Notifier: a.notifier,
	})
	if err = dlg.Open(*selection.Entity); err != nil {
		return a.reportLocal(err)
	}
	if err = dlg.Select(to); err != nil {
		return a.reportLocal(err)
	}
	dlg.SetRemark(remark)
	if err = dlg.Submit(ctx); err != nil {
		return errReported
	}
	return nil
}

func deleteRecord[T listview.Entity](ctx context.Context, a *app, resource string, id uint) error {
	rec, err := webclient.Get[T](ctx, a.client, resource, id)
	if err != nil {
		return a.report(err, "Запись не найдена")
	}
	dispatcher := dialog.NewDispatcher[T](nil)
	selection := dispatcher.Open(ctx, dialog.ModeDelete, &rec)
	defer dispatcher.Close()
	dlg := dialog.NewDelete(dialog.DeleteConfig[T]{
		Remove: func(ctx context.Context, id uint) (string, error) {
			return webclient.Delete(ctx, a.client, resource, id)
		},
		Notifier: a.notifier,
	})
	dlg.Open(*selection.Entity)
	if err = dlg.Confirm(ctx); err != nil {
		return errReported
	}
	return nil
}

const employeesOptions = "employees"

// employeeOptions справочник сотрудников для выбора в форме
func employeeOptions(a *app) dialog.OptionLoader {
	return func(ctx context.Context) ([]dialog.Option, error) {
		list, err := webclient.List[staffapimodels.EmployeeView](ctx, a.client, "employees", nil)
		if err != nil {
			return nil, err
		}
		options := make([]dialog.Option, 0, len(list))
		for _, rec := range list {
			options = append(options, dialog.Option{ID: rec.ID, Label: rec.Name})
		}
		return options, nil
	}
}

func hasOption(options []dialog.Option, id uint) bool {
	for _, option := range options {
		if option.ID == id {
			return true
		}
	}
	return false
}
