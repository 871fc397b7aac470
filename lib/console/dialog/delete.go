package dialog

import (
	"context"
	"sync"

	"hr-admin-backend/lib/console/listcache"
	"hr-admin-backend/lib/console/listview"
	"hr-admin-backend/lib/console/notify"
	"hr-admin-backend/lib/console/webclient"

	log "github.com/sirupsen/logrus"
)

type DeleteState int

const (
	StateIdle DeleteState = iota
	StateConfirming
)

type DeleteConfig[T listview.Entity] struct {
	Remove func(ctx context.Context, id uint) (string, error)

	Store    *listview.Store[T]
	Cache    *listcache.Cache
	CacheKey string

	Notifier        notify.Notifier
	SuccessFallback string
	ErrorFallback   string
}

// Delete подтверждение удаления, закрывается после ответа в любом случае
type Delete[T listview.Entity] struct {
	cfg    DeleteConfig[T]
	mu     sync.Mutex
	target *T
	state  DeleteState
}

func NewDelete[T listview.Entity](cfg DeleteConfig[T]) *Delete[T] {
	if cfg.SuccessFallback == "" {
		cfg.SuccessFallback = "Запись удалена"
	}
	if cfg.ErrorFallback == "" {
		cfg.ErrorFallback = DefaultErrorMessage
	}
	return &Delete[T]{cfg: cfg}
}

func (d *Delete[T]) Open(rec T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.target = &rec
	d.state = StateIdle
}

func (d *Delete[T]) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.target != nil
}

func (d *Delete[T]) State() DeleteState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Delete[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateConfirming {
		return
	}
	d.target = nil
}

func (d *Delete[T]) Confirm(ctx context.Context) error {
	d.mu.Lock()
	if d.target == nil {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.state == StateConfirming {
		d.mu.Unlock()
		return ErrSubmitting
	}
	id := (*d.target).GetID()
	d.state = StateConfirming
	d.mu.Unlock()

	msg, err := d.cfg.Remove(ctx, id)

	d.mu.Lock()
	d.state = StateIdle
	d.target = nil
	d.mu.Unlock()

	if err != nil {
		log.WithError(err).WithField("id", id).Warn("ошибка удаления записи")
		d.cfg.Notifier.Error(webclient.MessageOf(err, d.cfg.ErrorFallback))
		return err
	}
	if d.cfg.Store != nil {
		d.cfg.Store.Remove(id)
	}
	d.cfg.Notifier.Success(messageOr(msg, d.cfg.SuccessFallback))
	if d.cfg.Cache != nil && d.cfg.CacheKey != "" {
		_ = d.cfg.Cache.Invalidate(ctx, d.cfg.CacheKey)
	}
	return nil
}
