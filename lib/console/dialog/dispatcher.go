package dialog

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Mode string

const (
	ModeAdd    Mode = "add"
	ModeEdit   Mode = "edit"
	ModeDelete Mode = "delete"
	ModeStatus Mode = "status"
)

var (
	ErrSubmitting = errors.New("запрос уже выполняется")
	ErrClosed     = errors.New("диалог закрыт")
	ErrNoEntity   = errors.New("не выбрана запись")
)

const (
	DefaultSuccessMessage = "Изменения сохранены"
	DefaultErrorMessage   = "Не удалось выполнить операцию, попробуйте позже"
)

// Selection открытый диалог и снимок выбранной записи
type Selection[T any] struct {
	Mode   Mode
	Entity *T
}

// Option элемент справочника для выпадающего списка
type Option struct {
	ID    uint
	Label string
}

type OptionLoader func(ctx context.Context) ([]Option, error)

// Dispatcher открывает диалог по действию строки и подгружает справочники
type Dispatcher[T any] struct {
	mu        sync.RWMutex
	loaders   map[string]OptionLoader
	selection *Selection[T]
	options   map[string][]Option
}

func NewDispatcher[T any](loaders map[string]OptionLoader) *Dispatcher[T] {
	return &Dispatcher[T]{
		loaders: loaders,
		options: map[string][]Option{},
	}
}

// Open справочники загружаются параллельно, ошибка загрузки дает пустой список и не мешает открытию
func (d *Dispatcher[T]) Open(ctx context.Context, mode Mode, entity *T) Selection[T] {
	selection := Selection[T]{Mode: mode}
	if entity != nil {
		snapshot := *entity
		selection.Entity = &snapshot
	}

	loaded := make(map[string][]Option, len(d.loaders))
	loadedMu := sync.Mutex{}
	var g errgroup.Group
	for name, loader := range d.loaders {
		name, loader := name, loader
		g.Go(func() error {
			list, err := loader(ctx)
			if err != nil {
				log.WithError(err).
					WithField("options", name).
					WithField("mode", mode).
					Error("ошибка загрузки справочника")
				list = []Option{}
			}
			loadedMu.Lock()
			loaded[name] = list
			loadedMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection = &selection
	d.options = loaded
	return selection
}

// Selection nil, если диалог закрыт
func (d *Dispatcher[T]) Selection() *Selection[T] {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.selection == nil {
		return nil
	}
	selection := *d.selection
	return &selection
}

func (d *Dispatcher[T]) Options(name string) []Option {
	d.mu.RLock()
	defer d.mu.RUnlock()
	list := d.options[name]
	if list == nil {
		return []Option{}
	}
	return append([]Option{}, list...)
}

func (d *Dispatcher[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection = nil
	d.options = map[string][]Option{}
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
