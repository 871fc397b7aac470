package listcache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hr-admin-backend/lib/console/listview"
	assetapimodels "hr-admin-backend/models/api/asset"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestInvalidate(t *testing.T) {
	t.Run(`обновляет все подписанные сторы`, func(t *testing.T) {
		cache := New()
		first := listview.NewStore[assetapimodels.AssetView]()
		second := listview.NewStore[assetapimodels.AssetView]()
		Register(cache, "assets", func(ctx context.Context) ([]assetapimodels.AssetView, error) {
			return []assetapimodels.AssetView{{ID: 1}, {ID: 2}}, nil
		}, first, second)

		require.NoError(t, cache.Invalidate(context.Background(), "assets"))
		require.Len(t, first.All(), 2)
		require.Len(t, second.All(), 2)
	})
	t.Run(`одновременные вызовы выполняют один запрос`, func(t *testing.T) {
		cache := New()
		store := listview.NewStore[assetapimodels.AssetView]()
		var calls int32
		release := make(chan struct{})
		Register(cache, "assets", func(ctx context.Context) ([]assetapimodels.AssetView, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return []assetapimodels.AssetView{{ID: 1}}, nil
		}, store)

		wg := sync.WaitGroup{}
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				require.NoError(t, cache.Invalidate(context.Background(), "assets"))
			}()
		}
		require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, time.Millisecond)
		time.Sleep(10 * time.Millisecond)
		close(release)
		wg.Wait()
		require.LessOrEqual(t, atomic.LoadInt32(&calls), int32(5))
		require.Len(t, store.All(), 1)
	})
	t.Run(`ошибка загрузки не меняет стор`, func(t *testing.T) {
		cache := New()
		store := listview.NewStore[assetapimodels.AssetView]()
		store.Load([]assetapimodels.AssetView{{ID: 5}})
		Register(cache, "assets", func(ctx context.Context) ([]assetapimodels.AssetView, error) {
			return nil, errors.New("timeout")
		}, store)
		require.Error(t, cache.Invalidate(context.Background(), "assets"))
		require.Len(t, store.All(), 1)
	})
	t.Run(`неизвестный ключ`, func(t *testing.T) {
		err := New().Invalidate(context.Background(), "trips")
		require.True(t, errors.Is(err, ErrUnknownKey))
	})
}

func TestRegister(t *testing.T) {
	t.Run(`повторная регистрация не повторяет запрос`, func(t *testing.T) {
		cache := New()
		var calls int32
		fetch := func(ctx context.Context) ([]assetapimodels.AssetView, error) {
			atomic.AddInt32(&calls, 1)
			return []assetapimodels.AssetView{{ID: 1}}, nil
		}
		first := listview.NewStore[assetapimodels.AssetView]()
		second := listview.NewStore[assetapimodels.AssetView]()
		Register(cache, "assets", fetch, first)
		Register(cache, "assets", fetch, second)
		Register(cache, "assets", fetch, first)

		require.NoError(t, cache.Invalidate(context.Background(), "assets"))
		require.Equal(t, int32(1), atomic.LoadInt32(&calls))
		require.Len(t, first.All(), 1)
		require.Len(t, second.All(), 1)
		require.Equal(t, []string{"assets"}, cache.Keys())
	})
	t.Run(`отписанный стор не обновляется`, func(t *testing.T) {
		cache := New()
		store := listview.NewStore[assetapimodels.AssetView]()
		Register(cache, "assets", func(ctx context.Context) ([]assetapimodels.AssetView, error) {
			return []assetapimodels.AssetView{{ID: 1}}, nil
		}, store)
		Unsubscribe(cache, "assets", store)

		require.NoError(t, cache.Invalidate(context.Background(), "assets"))
		require.False(t, store.Loaded())
	})
}
