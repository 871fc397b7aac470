package wsclient

import (
	"io"
	"testing"

	fastws "github.com/fasthttp/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/require"
)

type readerMock struct {
	messages [][]byte
	err      error
}

func (r *readerMock) ReadMessage() (int, []byte, error) {
	if len(r.messages) == 0 {
		return 0, nil, r.err
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return websocket.TextMessage, msg, nil
}

func TestDispatch(t *testing.T) {
	t.Run(`читает до закрытия`, func(t *testing.T) {
		conn := &readerMock{
			messages: [][]byte{[]byte("ping"), []byte("ping")},
			err:      &fastws.CloseError{Code: websocket.CloseGoingAway},
		}
		require.Equal(t, 2, NewClient(1, 2, conn).Dispatch())
	})
	t.Run(`обрыв соединения`, func(t *testing.T) {
		require.Zero(t, NewClient(1, 2, &readerMock{err: io.ErrUnexpectedEOF}).Dispatch())
	})
	t.Run(`нет соединения`, func(t *testing.T) {
		require.Zero(t, NewClient(1, 2, nil).Dispatch())
	})
}
