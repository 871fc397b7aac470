package baseworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run(`паника не останавливает задачу`, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		var runs atomic.Int32
		worker := NewInstance("test", time.Millisecond, time.Millisecond)
		done := make(chan struct{})
		go func() {
			worker.Run(ctx, func(ctx context.Context) {
				if runs.Add(1) == 1 {
					panic("первый запуск")
				}
			})
			close(done)
		}()
		require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, time.Millisecond)
		cancel()
		require.Eventually(t, func() bool {
			select {
			case <-done:
				return true
			default:
				return false
			}
		}, time.Second, time.Millisecond)
	})
	t.Run(`отмена до первого запуска`, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		called := false
		NewInstance("test", time.Hour, time.Hour).Run(ctx, func(ctx context.Context) { called = true })
		require.False(t, called)
	})
}
