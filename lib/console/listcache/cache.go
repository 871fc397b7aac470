package listcache

import (
	"context"
	"slices"
	"sync"

	"hr-admin-backend/lib/console/listview"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

var ErrUnknownKey = errors.New("ключ списка не зарегистрирован")

type entry interface {
	refresh(ctx context.Context) error
}

// typedEntry один загрузчик ключа и набор подписанных сторов
type typedEntry[T listview.Entity] struct {
	mu     sync.Mutex
	fetch  func(ctx context.Context) ([]T, error)
	stores []*listview.Store[T]
}

func (e *typedEntry[T]) subscribe(stores []*listview.Store[T]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, store := range stores {
		if store != nil && !slices.Contains(e.stores, store) {
			e.stores = append(e.stores, store)
		}
	}
}

func (e *typedEntry[T]) unsubscribe(store *listview.Store[T]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stores = slices.DeleteFunc(e.stores, func(item *listview.Store[T]) bool { return item == store })
}

func (e *typedEntry[T]) refresh(ctx context.Context) error {
	e.mu.Lock()
	fetch := e.fetch
	e.mu.Unlock()
	list, err := fetch(ctx)
	if err != nil {
		return err
	}
	e.mu.Lock()
	stores := slices.Clone(e.stores)
	e.mu.Unlock()
	for _, store := range stores {
		store.Load(list)
	}
	return nil
}

// Cache общие ключи списков: повторная загрузка по ключу обновляет все подписанные сторы.
// Одновременные Invalidate по одному ключу выполняют один запрос
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
}

func New() *Cache {
	return &Cache{entries: map[string]entry{}}
}

// Register у ключа один загрузчик: повторная регистрация заменяет его и добавляет новые сторы.
// Регистрация ключа с другим типом записей заменяет подписку целиком
func Register[T listview.Entity](c *Cache, key string, fetch func(ctx context.Context) ([]T, error), stores ...*listview.Store[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.entries[key].(*typedEntry[T]); ok {
		prev.mu.Lock()
		prev.fetch = fetch
		prev.mu.Unlock()
		prev.subscribe(stores)
		return
	}
	e := &typedEntry[T]{fetch: fetch}
	e.subscribe(stores)
	c.entries[key] = e
}

// Unsubscribe отписывает стор от ключа
func Unsubscribe[T listview.Entity](c *Cache, key string, store *listview.Store[T]) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[key].(*typedEntry[T]); ok {
		e.unsubscribe(store)
	}
}

// Invalidate загружает список ключа заново и передает его подписанным сторам
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return errors.Wrap(ErrUnknownKey, key)
	}
	_, err, _ := c.group.Do(key, func() (interface{}, error) {
		return nil, e.refresh(ctx)
	})
	if err != nil {
		log.WithError(err).WithField("key", key).Error("ошибка обновления списка")
		return errors.Wrapf(err, "ошибка обновления списка %s", key)
	}
	return nil
}

func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys
}
