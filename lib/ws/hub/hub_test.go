package wshub

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type connMock struct {
	mu     sync.Mutex
	sent   []interface{}
	closed bool
}

func (c *connMock) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, v)
	return nil
}

func (c *connMock) WriteControl(messageType int, data []byte, deadline time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *connMock) snapshot() ([]interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]interface{}{}, c.sent...), c.closed
}

func TestHub(t *testing.T) {
	t.Run(`сообщение получает только своя организация`, func(t *testing.T) {
		hub := NewHub()
		own, foreign := &connMock{}, &connMock{}
		hub.AddClient(1, 10, own)
		hub.AddClient(2, 20, foreign)

		hub.Publish(1, "task_updated")
		require.Eventually(t, func() bool {
			sent, _ := own.snapshot()
			return len(sent) == 1
		}, time.Second, 10*time.Millisecond)
		sent, _ := foreign.snapshot()
		require.Empty(t, sent)
	})
	t.Run(`отключение закрывает сессию`, func(t *testing.T) {
		hub := NewHub()
		conn := &connMock{}
		sessionID := hub.AddClient(1, 10, conn)
		second := hub.AddClient(1, 10, &connMock{})
		require.Equal(t, 2, hub.ClientCount(1))

		hub.DeleteClient(1, sessionID)
		require.Equal(t, 1, hub.ClientCount(1))
		require.Eventually(t, func() bool {
			_, closed := conn.snapshot()
			return closed
		}, time.Second, 10*time.Millisecond)

		hub.DeleteClient(1, second)
		require.Zero(t, hub.ClientCount(1))
		hub.DeleteClient(1, second)
	})
}
