package wshub

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

const sendBufferSize = 16

// Conn часть *websocket.Conn, используемая сессией
type Conn interface {
	WriteJSON(v interface{}) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
}

type clientSession struct {
	conn   Conn
	userID uint

	// исходящие сообщения, буферизованы
	sendCh chan interface{}
	stop   func()
}

func newSession(conn Conn, userID uint) clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := clientSession{
		stop:   cancelFn,
		conn:   conn,
		userID: userID,
		sendCh: make(chan interface{}, sendBufferSize),
	}
	go sess.startSend(ctx)
	return sess
}

// push не блокирует издателя, при полном буфере сообщение отбрасывается
func (s clientSession) push(msg interface{}) bool {
	select {
	case s.sendCh <- msg:
		return true
	default:
		return false
	}
}

func (s clientSession) startSend(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			err := s.conn.WriteJSON(msg)
			if err != nil {
				log.WithError(err).
					WithField("user_id", s.userID).
					Error("ошибка отправки сообщения")
				continue
			}
			log.WithField("user_id", s.userID).Debugf("отправлено сообщение: %+v", msg)
		}
	}
}

func (s clientSession) close() {
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	if err != nil {
		log.WithError(err).Debug("cant close")
	}
}
