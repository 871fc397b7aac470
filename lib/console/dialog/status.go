package dialog

import (
	"context"
	"slices"
	"sync"

	"hr-admin-backend/lib/console/listcache"
	"hr-admin-backend/lib/console/listview"
	"hr-admin-backend/lib/console/notify"
	"hr-admin-backend/lib/console/webclient"
	"hr-admin-backend/lib/workflow"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// StatusEntity запись со статусом согласования
type StatusEntity[S ~string] interface {
	listview.Entity
	GetStatus() S
}

type StatusConfig[T StatusEntity[S], S ~string] struct {
	Machine *workflow.Machine[S]
	// Offered статусы в выпадающем списке, по умолчанию все кроме начального
	Offered []S
	Change  func(ctx context.Context, id uint, status S, remark string) (T, string, error)

	Store *listview.Store[T]
	// Cache и CacheKey перезагружают общий список после успеха
	Cache    *listcache.Cache
	CacheKey string

	Notifier        notify.Notifier
	SuccessFallback string
	ErrorFallback   string
}

// Status диалог смены статуса по таблице переходов
type Status[T StatusEntity[S], S ~string] struct {
	cfg        StatusConfig[T, S]
	mu         sync.Mutex
	target     *T
	selected   S
	remark     string
	submitting bool
}

func NewStatus[T StatusEntity[S], S ~string](cfg StatusConfig[T, S]) *Status[T, S] {
	if len(cfg.Offered) == 0 {
		for _, s := range cfg.Machine.Statuses() {
			if s != cfg.Machine.Initial() {
				cfg.Offered = append(cfg.Offered, s)
			}
		}
	}
	if cfg.SuccessFallback == "" {
		cfg.SuccessFallback = "Статус изменен"
	}
	if cfg.ErrorFallback == "" {
		cfg.ErrorFallback = DefaultErrorMessage
	}
	return &Status[T, S]{cfg: cfg}
}

// Open выбирает первый допустимый из текущего статуса вариант, иначе первый из списка
func (d *Status[T, S]) Open(rec T) error {
	current := rec.GetStatus()
	if !d.cfg.Machine.CanChangeStatus(current) {
		return errors.Wrapf(workflow.ErrTerminalTransition, "%s", current)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.target = &rec
	d.remark = ""
	d.selected = d.cfg.Offered[0]
	for _, s := range d.cfg.Offered {
		if d.cfg.Machine.CanTransition(current, s) {
			d.selected = s
			break
		}
	}
	return nil
}

func (d *Status[T, S]) Options() []S {
	return slices.Clone(d.cfg.Offered)
}

func (d *Status[T, S]) Selected() S {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selected
}

func (d *Status[T, S]) Select(s S) error {
	if !slices.Contains(d.cfg.Offered, s) {
		return errors.Wrapf(workflow.ErrUnknownStatus, "%s", s)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = s
	return nil
}

func (d *Status[T, S]) SetRemark(remark string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.remark = remark
}

func (d *Status[T, S]) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.target != nil
}

func (d *Status[T, S]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.target = nil
	d.remark = ""
}

// Submit отправляет {status, remark}, пустое примечание заменяется текстом по умолчанию
func (d *Status[T, S]) Submit(ctx context.Context) error {
	d.mu.Lock()
	if d.target == nil {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.submitting {
		d.mu.Unlock()
		return ErrSubmitting
	}
	rec, to := *d.target, d.selected
	if err := d.cfg.Machine.Validate(rec.GetStatus(), to); err != nil {
		d.mu.Unlock()
		d.cfg.Notifier.Error(errors.Cause(err).Error())
		return err
	}
	remark := d.cfg.Machine.ResolveRemark(to, d.remark)
	d.submitting = true
	d.mu.Unlock()

	changed, msg, err := d.cfg.Change(ctx, rec.GetID(), to, remark)

	d.mu.Lock()
	d.submitting = false
	if err != nil {
		d.mu.Unlock()
		log.WithError(err).WithField("id", rec.GetID()).WithField("status", to).Warn("ошибка смены статуса")
		d.cfg.Notifier.Error(webclient.MessageOf(err, d.cfg.ErrorFallback))
		return err
	}
	d.target = nil
	d.remark = ""
	d.mu.Unlock()

	d.cfg.Notifier.Success(messageOr(msg, d.cfg.SuccessFallback))
	apply(ctx, d.cfg.Store, d.cfg.Cache, d.cfg.CacheKey, changed)
	return nil
}
