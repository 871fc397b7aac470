package dialog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hr-admin-backend/lib/console/listcache"
	"hr-admin-backend/lib/console/listview"
	"hr-admin-backend/lib/console/notify"
	"hr-admin-backend/lib/console/webclient"
	"hr-admin-backend/lib/workflow"
	"hr-admin-backend/models"
	assetapimodels "hr-admin-backend/models/api/asset"
	requestapimodels "hr-admin-backend/models/api/request"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func blankAsset() assetapimodels.AssetData {
	return assetapimodels.AssetData{WarrantyStatus: models.WarrantyOn}
}

func assetForm(client *webclient.Client, store *listview.Store[assetapimodels.AssetView], rec notify.Notifier) *Form[assetapimodels.AssetView, assetapimodels.AssetData] {
	return NewForm(FormConfig[assetapimodels.AssetView, assetapimodels.AssetData]{
		Blank:      blankAsset,
		FromEntity: func(v assetapimodels.AssetView) assetapimodels.AssetData { return v.AssetData },
		Validate:   assetapimodels.AssetData.Validate,
		Create: func(ctx context.Context, values assetapimodels.AssetData) (assetapimodels.AssetView, string, error) {
			return webclient.Create[assetapimodels.AssetView](ctx, client, "assets", values)
		},
		Update: func(ctx context.Context, id uint, values assetapimodels.AssetData) (assetapimodels.AssetView, string, error) {
			return webclient.Update[assetapimodels.AssetView](ctx, client, "assets", id, values)
		},
		Store:    store,
		Notifier: rec,
	})
}

func TestAssetCreate(t *testing.T) {
	var posts int32
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/web/assets" {
			atomic.AddInt32(&posts, 1)
			body, _ = io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":true,"message":"Created","data":{"id":10,"employee_id":3,"name":"Laptop","brand":"Dell","warranty_status":"On","buying_date":"2024-01-15"}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()
	client := webclient.New(server.URL, "tok", time.Second)

	t.Run(`один POST, тост сервера, форма сброшена и закрыта`, func(t *testing.T) {
		store := listview.NewStore[assetapimodels.AssetView]()
		rec := &notify.Recorder{}
		form := assetForm(client, store, rec)
		require.NoError(t, form.Open(ModeAdd, nil))
		form.Edit(func(v *assetapimodels.AssetData) {
			v.EmployeeID = 3
			v.Name = "Laptop"
			v.Brand = "Dell"
			v.WarrantyStatus = models.WarrantyOn
			v.BuyingDate = models.NewDate(2024, time.January, 15)
		})

		require.NoError(t, form.Submit(context.Background()))
		require.Equal(t, int32(1), atomic.LoadInt32(&posts))
		payload := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(body, &payload))
		require.Equal(t, "2024-01-15", payload["buying_date"])
		require.Equal(t, float64(3), payload["employee_id"])
		require.Equal(t, "Laptop", payload["name"])
		require.Equal(t, "Dell", payload["brand"])
		require.Equal(t, "On", payload["warranty_status"])

		require.Equal(t, []string{"Created"}, rec.Successes)
		require.Empty(t, rec.Errors)
		require.False(t, form.IsOpen())
		require.Equal(t, blankAsset(), form.Values())
		created, found := store.Get(10)
		require.True(t, found)
		require.Equal(t, "2024-01-15", created.BuyingDate.String())
	})
	t.Run(`локальная проверка не отправляет запрос`, func(t *testing.T) {
		atomic.StoreInt32(&posts, 0)
		rec := &notify.Recorder{}
		form := assetForm(client, nil, rec)
		require.NoError(t, form.Open(ModeAdd, nil))
		form.Edit(func(v *assetapimodels.AssetData) { v.Name = "Laptop" })

		require.Error(t, form.Submit(context.Background()))
		require.Equal(t, int32(0), atomic.LoadInt32(&posts))
		require.Equal(t, []string{"не указан сотрудник"}, rec.Errors)
		require.True(t, form.IsOpen())
		require.Equal(t, "Laptop", form.Values().Name)
	})
	t.Run(`закрытая форма`, func(t *testing.T) {
		form := assetForm(client, nil, &notify.Recorder{})
		require.True(t, errors.Is(form.Submit(context.Background()), ErrClosed))
		require.True(t, errors.Is(form.Open(ModeEdit, nil), ErrNoEntity))
	})
}

func assetIDs(list []assetapimodels.AssetView) []uint {
	ids := []uint{}
	for _, rec := range list {
		ids = append(ids, rec.ID)
	}
	return ids
}

func TestCreateWithoutData(t *testing.T) {
	var gets int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPost:
			_, _ = w.Write([]byte(`{"status":true,"message":"Created"}`))
		case http.MethodGet:
			atomic.AddInt32(&gets, 1)
			_, _ = w.Write([]byte(`{"status":true,"data":[{"id":11,"employee_id":3,"name":"Laptop"},{"id":1,"employee_id":2,"name":"Monitor"}]}`))
		}
	}))
	defer server.Close()
	client := webclient.New(server.URL, "tok", time.Second)
	fill := func(v *assetapimodels.AssetData) {
		v.EmployeeID = 3
		v.Name = "Laptop"
		v.BuyingDate = models.NewDate(2024, time.January, 15)
	}

	t.Run(`пустой ответ не добавляет запись с нулевым ИД`, func(t *testing.T) {
		store := listview.NewStore[assetapimodels.AssetView]()
		store.Load([]assetapimodels.AssetView{{ID: 1}})
		rec := &notify.Recorder{}
		form := assetForm(client, store, rec)
		require.NoError(t, form.Open(ModeAdd, nil))
		form.Edit(fill)

		require.NoError(t, form.Submit(context.Background()))
		require.Equal(t, []uint{1}, assetIDs(store.All()))
		require.Equal(t, []string{"Created"}, rec.Successes)
		require.False(t, form.IsOpen())
	})
	t.Run(`список перечитывается через кэш`, func(t *testing.T) {
		atomic.StoreInt32(&gets, 0)
		store := listview.NewStore[assetapimodels.AssetView]()
		store.Load([]assetapimodels.AssetView{{ID: 1}})
		cache := listcache.New()
		listcache.Register(cache, "assets", func(ctx context.Context) ([]assetapimodels.AssetView, error) {
			return webclient.List[assetapimodels.AssetView](ctx, client, "assets", nil)
		}, store)
		form := NewForm(FormConfig[assetapimodels.AssetView, assetapimodels.AssetData]{
			Blank: blankAsset,
			Create: func(ctx context.Context, values assetapimodels.AssetData) (assetapimodels.AssetView, string, error) {
				return webclient.Create[assetapimodels.AssetView](ctx, client, "assets", values)
			},
			Store:    store,
			Cache:    cache,
			CacheKey: "assets",
			Notifier: &notify.Recorder{},
		})
		require.NoError(t, form.Open(ModeAdd, nil))
		form.Edit(fill)

		require.NoError(t, form.Submit(context.Background()))
		require.Equal(t, int32(1), atomic.LoadInt32(&gets))
		require.Equal(t, []uint{11, 1}, assetIDs(store.All()))
	})
}

func testOvertime() requestapimodels.OvertimeView {
	view := requestapimodels.OvertimeView{ID: 4}
	view.EmployeeID = 2
	view.Date = models.NewDate(2024, time.March, 4)
	view.Hours = decimal.NewFromInt(2)
	view.Reason = "релиз"
	view.Status = models.RequestStatusPending
	return view
}

func overtimeForm(update func(ctx context.Context, id uint, values requestapimodels.OvertimeData) (requestapimodels.OvertimeView, string, error), rec notify.Notifier) *Form[requestapimodels.OvertimeView, requestapimodels.OvertimeData] {
	return NewForm(FormConfig[requestapimodels.OvertimeView, requestapimodels.OvertimeData]{
		Blank:      func() requestapimodels.OvertimeData { return requestapimodels.OvertimeData{} },
		FromEntity: func(v requestapimodels.OvertimeView) requestapimodels.OvertimeData { return v.OvertimeData },
		Update:     update,
		Notifier:   rec,
	})
}

func TestOvertimeEditFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":false,"message":"Дата переработки в будущем"}`))
	}))
	defer server.Close()
	client := webclient.New(server.URL, "tok", time.Second)

	edit := func(form *Form[requestapimodels.OvertimeView, requestapimodels.OvertimeData]) {
		rec := testOvertime()
		require.NoError(t, form.Open(ModeEdit, &rec))
		form.Edit(func(v *requestapimodels.OvertimeData) {
			v.Hours = decimal.NewFromInt(5)
			v.Reason = "исправлено"
		})
	}

	t.Run(`status false оставляет форму открытой`, func(t *testing.T) {
		rec := &notify.Recorder{}
		form := overtimeForm(func(ctx context.Context, id uint, values requestapimodels.OvertimeData) (requestapimodels.OvertimeView, string, error) {
			return webclient.Update[requestapimodels.OvertimeView](ctx, client, "overtimes", id, values)
		}, rec)
		edit(form)

		require.Error(t, form.Submit(context.Background()))
		require.True(t, form.IsOpen())
		require.Equal(t, "исправлено", form.Values().Reason)
		require.Equal(t, "5", form.Values().Hours.String())
		require.Equal(t, []string{"Дата переработки в будущем"}, rec.Errors)
		require.Empty(t, rec.Successes)
	})
	t.Run(`ошибка соединения оставляет форму открытой`, func(t *testing.T) {
		rec := &notify.Recorder{}
		form := overtimeForm(func(ctx context.Context, id uint, values requestapimodels.OvertimeData) (requestapimodels.OvertimeView, string, error) {
			return requestapimodels.OvertimeView{}, "", &webclient.TransportError{Err: errors.New("connection reset")}
		}, rec)
		edit(form)

		require.Error(t, form.Submit(context.Background()))
		require.True(t, form.IsOpen())
		require.Equal(t, "исправлено", form.Values().Reason)
		require.Equal(t, []string{DefaultErrorMessage}, rec.Errors)
	})
	t.Run(`повторная отправка во время запроса`, func(t *testing.T) {
		release := make(chan struct{})
		var calls int32
		form := overtimeForm(func(ctx context.Context, id uint, values requestapimodels.OvertimeData) (requestapimodels.OvertimeView, string, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			view := testOvertime()
			view.OvertimeData = values
			return view, "", nil
		}, &notify.Recorder{})
		edit(form)

		wg := sync.WaitGroup{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = form.Submit(context.Background())
		}()
		require.Eventually(t, form.Submitting, time.Second, time.Millisecond)
		require.True(t, errors.Is(form.Submit(context.Background()), ErrSubmitting))
		close(release)
		wg.Wait()
		require.Equal(t, int32(1), atomic.LoadInt32(&calls))
		require.False(t, form.IsOpen())
	})
}

func overtimeList() []requestapimodels.OvertimeView {
	list := []requestapimodels.OvertimeView{}
	for _, id := range []uint{3, 5, 7, 9} {
		view := testOvertime()
		view.ID = id
		if id > 5 {
			view.Status = models.RequestStatusApproved
		}
		list = append(list, view)
	}
	return list
}

func TestDelete(t *testing.T) {
	byStatus := listview.Equals(func(v requestapimodels.OvertimeView) models.RequestStatus { return v.Status }, models.RequestStatusApproved)

	t.Run(`удаленная запись пропадает из обоих списков`, func(t *testing.T) {
		store := listview.NewStore[requestapimodels.OvertimeView]()
		store.Load(overtimeList())
		store.SetFacets(byStatus)
		rec := &notify.Recorder{}
		var removed uint
		dlg := NewDelete(DeleteConfig[requestapimodels.OvertimeView]{
			Remove: func(ctx context.Context, id uint) (string, error) {
				removed = id
				return "Заявка удалена", nil
			},
			Store:    store,
			Notifier: rec,
		})
		target, _ := store.Get(7)
		dlg.Open(target)

		require.NoError(t, dlg.Confirm(context.Background()))
		require.Equal(t, uint(7), removed)
		require.False(t, dlg.IsOpen())
		require.Equal(t, StateIdle, dlg.State())
		for _, list := range [][]requestapimodels.OvertimeView{store.All(), store.Filtered()} {
			for _, v := range list {
				require.NotEqual(t, uint(7), v.ID)
			}
		}
		store.SetFacets()
		_, found := store.Get(7)
		require.False(t, found)
		require.Len(t, store.Filtered(), 3)
		require.Equal(t, []string{"Заявка удалена"}, rec.Successes)
	})
	t.Run(`ошибка закрывает диалог без изменений`, func(t *testing.T) {
		store := listview.NewStore[requestapimodels.OvertimeView]()
		store.Load(overtimeList())
		rec := &notify.Recorder{}
		dlg := NewDelete(DeleteConfig[requestapimodels.OvertimeView]{
			Remove: func(ctx context.Context, id uint) (string, error) {
				return "", &webclient.ServerError{Message: "Заявка уже оплачена", HTTPStatus: http.StatusBadRequest}
			},
			Store:    store,
			Notifier: rec,
		})
		target, _ := store.Get(7)
		dlg.Open(target)

		require.Error(t, dlg.Confirm(context.Background()))
		require.False(t, dlg.IsOpen())
		require.Len(t, store.All(), 4)
		require.Equal(t, []string{"Заявка уже оплачена"}, rec.Errors)
	})
	t.Run(`отмена`, func(t *testing.T) {
		dlg := NewDelete(DeleteConfig[requestapimodels.OvertimeView]{Notifier: &notify.Recorder{}})
		dlg.Open(testOvertime())
		dlg.Cancel()
		require.False(t, dlg.IsOpen())
		require.True(t, errors.Is(dlg.Confirm(context.Background()), ErrClosed))
	})
}

func reimbursement(id uint, status models.RequestStatus) requestapimodels.ReimbursementView {
	view := requestapimodels.ReimbursementView{ID: id}
	view.Status = status
	return view
}

type statusCall struct {
	id     uint
	status models.RequestStatus
	remark string
}

func reimbursementStatus(store *listview.Store[requestapimodels.ReimbursementView], calls *[]statusCall, rec notify.Notifier) *Status[requestapimodels.ReimbursementView, models.RequestStatus] {
	return NewStatus(StatusConfig[requestapimodels.ReimbursementView, models.RequestStatus]{
		Machine: workflow.Reimbursement,
		Change: func(ctx context.Context, id uint, status models.RequestStatus, remark string) (requestapimodels.ReimbursementView, string, error) {
			*calls = append(*calls, statusCall{id: id, status: status, remark: remark})
			view := reimbursement(id, status)
			view.Remark = remark
			return view, "", nil
		},
		Store:    store,
		Notifier: rec,
	})
}

func TestStatus(t *testing.T) {
	t.Run(`варианты и предвыбор для компенсации`, func(t *testing.T) {
		calls := []statusCall{}
		dlg := reimbursementStatus(nil, &calls, &notify.Recorder{})
		require.Equal(t, []models.RequestStatus{models.RequestStatusApproved, models.RequestStatusRejected, models.RequestStatusPaid}, dlg.Options())

		require.NoError(t, dlg.Open(reimbursement(1, models.RequestStatusPending)))
		require.Equal(t, models.RequestStatusApproved, dlg.Selected())

		require.NoError(t, dlg.Open(reimbursement(2, models.RequestStatusApproved)))
		require.Equal(t, models.RequestStatusPaid, dlg.Selected())
	})
	t.Run(`варианты для переработки`, func(t *testing.T) {
		dlg := NewStatus(StatusConfig[requestapimodels.OvertimeView, models.RequestStatus]{Machine: workflow.Overtime})
		require.Equal(t, []models.RequestStatus{models.RequestStatusApproved, models.RequestStatusRejected}, dlg.Options())
	})
	t.Run(`пустое примечание заменяется текстом по умолчанию`, func(t *testing.T) {
		store := listview.NewStore[requestapimodels.ReimbursementView]()
		store.Load([]requestapimodels.ReimbursementView{reimbursement(2, models.RequestStatusApproved)})
		calls := []statusCall{}
		rec := &notify.Recorder{}
		dlg := reimbursementStatus(store, &calls, rec)
		require.NoError(t, dlg.Open(reimbursement(2, models.RequestStatusApproved)))
		dlg.SetRemark("   ")

		require.NoError(t, dlg.Submit(context.Background()))
		require.Equal(t, []statusCall{{id: 2, status: models.RequestStatusPaid, remark: workflow.PaidRemark}}, calls)
		require.False(t, dlg.IsOpen())
		updated, _ := store.Get(2)
		require.Equal(t, models.RequestStatusPaid, updated.Status)
		require.Equal(t, []string{"Статус изменен"}, rec.Successes)
	})
	t.Run(`недопустимый переход не отправляется`, func(t *testing.T) {
		calls := []statusCall{}
		rec := &notify.Recorder{}
		dlg := reimbursementStatus(nil, &calls, rec)
		require.NoError(t, dlg.Open(reimbursement(1, models.RequestStatusPending)))
		require.NoError(t, dlg.Select(models.RequestStatusPaid))

		require.True(t, errors.Is(dlg.Submit(context.Background()), workflow.ErrIllegalTransition))
		require.Empty(t, calls)
		require.True(t, dlg.IsOpen())
		require.Len(t, rec.Errors, 1)
	})
	t.Run(`ответ без записи не меняет стор`, func(t *testing.T) {
		store := listview.NewStore[requestapimodels.ReimbursementView]()
		store.Load([]requestapimodels.ReimbursementView{reimbursement(2, models.RequestStatusPending)})
		dlg := NewStatus(StatusConfig[requestapimodels.ReimbursementView, models.RequestStatus]{
			Machine: workflow.Reimbursement,
			Change: func(ctx context.Context, id uint, status models.RequestStatus, remark string) (requestapimodels.ReimbursementView, string, error) {
				return requestapimodels.ReimbursementView{}, "ok", nil
			},
			Store:    store,
			Notifier: &notify.Recorder{},
		})
		require.NoError(t, dlg.Open(reimbursement(2, models.RequestStatusPending)))

		require.NoError(t, dlg.Submit(context.Background()))
		all := store.All()
		require.Len(t, all, 1)
		require.Equal(t, uint(2), all[0].ID)
	})
	t.Run(`конечный статус`, func(t *testing.T) {
		calls := []statusCall{}
		dlg := reimbursementStatus(nil, &calls, &notify.Recorder{})
		require.True(t, errors.Is(dlg.Open(reimbursement(3, models.RequestStatusRejected)), workflow.ErrTerminalTransition))
		require.False(t, dlg.IsOpen())
	})
}

func TestActions(t *testing.T) {
	t.Run(`одобренная переработка`, func(t *testing.T) {
		require.Equal(t, RowActions{Edit: false, Delete: true, Status: false}, Actions(workflow.Overtime, models.RequestStatusApproved))
	})
	t.Run(`переработка на рассмотрении`, func(t *testing.T) {
		require.Equal(t, RowActions{Edit: true, Delete: true, Status: true}, Actions(workflow.Overtime, models.RequestStatusPending))
	})
	t.Run(`одобренная компенсация ожидает оплаты`, func(t *testing.T) {
		require.Equal(t, RowActions{Edit: false, Delete: true, Status: true}, Actions(workflow.Reimbursement, models.RequestStatusApproved))
	})
}

func TestDispatcher(t *testing.T) {
	t.Run(`ошибка справочника не мешает открытию`, func(t *testing.T) {
		d := NewDispatcher[requestapimodels.OvertimeView](map[string]OptionLoader{
			"employees": func(ctx context.Context) ([]Option, error) {
				return []Option{{ID: 2, Label: "Иван Петров"}}, nil
			},
			"categories": func(ctx context.Context) ([]Option, error) {
				return nil, errors.New("timeout")
			},
		})
		rec := testOvertime()
		selection := d.Open(context.Background(), ModeEdit, &rec)
		require.Equal(t, ModeEdit, selection.Mode)
		require.Equal(t, []Option{{ID: 2, Label: "Иван Петров"}}, d.Options("employees"))
		require.NotNil(t, d.Options("categories"))
		require.Empty(t, d.Options("categories"))

		rec.Reason = "изменено после открытия"
		require.Equal(t, "релиз", d.Selection().Entity.Reason)

		d.Close()
		require.Nil(t, d.Selection())
		require.Empty(t, d.Options("employees"))
	})
}
