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

type FormConfig[T listview.Entity, F any] struct {
	Blank      func() F
	FromEntity func(rec T) F
	// Validate локальная проверка до отправки, необязательна
	Validate func(values F) error
	Create   func(ctx context.Context, values F) (T, string, error)
	Update   func(ctx context.Context, id uint, values F) (T, string, error)

	// Store обновляется ответом сервера, если задан
	Store *listview.Store[T]
	// Cache и CacheKey перезагружают общий список после успеха
	Cache    *listcache.Cache
	CacheKey string

	Notifier        notify.Notifier
	SuccessFallback string
	ErrorFallback   string
}

// Form диалог создания и редактирования.
// Форма сбрасывается и закрывается только после успешного ответа
type Form[T listview.Entity, F any] struct {
	cfg        FormConfig[T, F]
	mu         sync.Mutex
	open       bool
	mode       Mode
	id         uint
	values     F
	submitting bool
}

func NewForm[T listview.Entity, F any](cfg FormConfig[T, F]) *Form[T, F] {
	if cfg.SuccessFallback == "" {
		cfg.SuccessFallback = DefaultSuccessMessage
	}
	if cfg.ErrorFallback == "" {
		cfg.ErrorFallback = DefaultErrorMessage
	}
	return &Form[T, F]{cfg: cfg, values: cfg.Blank()}
}

// Open add - пустой шаблон, edit - значения выбранной записи
func (f *Form[T, F]) Open(mode Mode, entity *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch mode {
	case ModeAdd:
		f.values = f.cfg.Blank()
		f.id = 0
	case ModeEdit:
		if entity == nil {
			return ErrNoEntity
		}
		f.values = f.cfg.FromEntity(*entity)
		f.id = (*entity).GetID()
	default:
		return ErrClosed
	}
	f.mode = mode
	f.open = true
	return nil
}

func (f *Form[T, F]) Values() F {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *Form[T, F]) Edit(change func(values *F)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	change(&f.values)
}

func (f *Form[T, F]) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *Form[T, F]) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Close закрывает форму без отправки
func (f *Form[T, F]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
	f.values = f.cfg.Blank()
	f.id = 0
}

// Submit один запрос на отправку. При ошибке форма остается открытой с введенными значениями
func (f *Form[T, F]) Submit(ctx context.Context) error {
	f.mu.Lock()
	if !f.open {
		f.mu.Unlock()
		return ErrClosed
	}
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitting
	}
	values, mode, id := f.values, f.mode, f.id
	if f.cfg.Validate != nil {
		if err := f.cfg.Validate(values); err != nil {
			f.mu.Unlock()
			f.cfg.Notifier.Error(err.Error())
			return err
		}
	}
	f.submitting = true
	f.mu.Unlock()

	var rec T
	var msg string
	var err error
	if mode == ModeAdd {
		rec, msg, err = f.cfg.Create(ctx, values)
	} else {
		rec, msg, err = f.cfg.Update(ctx, id, values)
	}

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		f.mu.Unlock()
		log.WithError(err).WithField("mode", mode).Warn("ошибка сохранения записи")
		f.cfg.Notifier.Error(webclient.MessageOf(err, f.cfg.ErrorFallback))
		return err
	}
	f.values = f.cfg.Blank()
	f.id = 0
	f.open = false
	f.mu.Unlock()

	f.cfg.Notifier.Success(messageOr(msg, f.cfg.SuccessFallback))
	apply(ctx, f.cfg.Store, f.cfg.Cache, f.cfg.CacheKey, rec)
	return nil
}

// apply переносит ответ в стор. Ответ без data (нулевой ИД) в стор не попадает,
// список обновится через кэш
func apply[T listview.Entity](ctx context.Context, store *listview.Store[T], cache *listcache.Cache, key string, rec T) {
	if store != nil && rec.GetID() != 0 {
		store.Upsert(rec)
	}
	if cache != nil && key != "" {
		// ошибка уже залогирована кэшем, запись на сервере сохранена
		_ = cache.Invalidate(ctx, key)
	}
}
