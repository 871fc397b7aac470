package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithDelay(t *testing.T) {
	t.Run(`ключ занят дольше ожидания`, func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		go func() {
			_, _ = WithDelay(context.Background(), "payslip:1", time.Second, func() error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started
		ok, err := WithDelay(context.Background(), "payslip:1", 100*time.Millisecond, func() error {
			return nil
		})
		require.NoError(t, err)
		require.False(t, ok)
		close(release)
	})
	t.Run(`свободный ключ`, func(t *testing.T) {
		called := false
		ok, err := WithDelay(context.Background(), "payslip:2", time.Second, func() error {
			called = true
			return nil
		})
		require.NoError(t, err)
		require.True(t, ok)
		require.True(t, called)
	})
}

func TestKey(t *testing.T) {
	require.Equal(t, "payslip_generate:2", Key("payslip_generate", uint(2)))
	require.Equal(t, "a:1:b", Key("a", 1, "b"))
}

func TestWithDelayCancel(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_, _ = WithDelay(context.Background(), "payslip:3", time.Second, func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok, err := WithDelay(ctx, "payslip:3", time.Second, func() error { return nil })
	require.NoError(t, err)
	require.False(t, ok)
	close(release)
}
