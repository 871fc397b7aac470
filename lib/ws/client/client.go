package wsclient

import (
	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Reader входящая сторона соединения
type Reader interface {
	ReadMessage() (messageType int, p []byte, err error)
}

// WsClient читатель соединения доски. Клиенты только получают события,
// входящие сообщения нужны для обнаружения закрытия соединения
type WsClient struct {
	conn     Reader
	tenantID uint
	userID   uint
}

func NewClient(tenantID, userID uint, conn Reader) *WsClient {
	return &WsClient{
		conn:     conn,
		tenantID: tenantID,
		userID:   userID,
	}
}

var closeCodes []int

func init() {
	for code := websocket.CloseNormalClosure; code <= websocket.CloseTLSHandshake; code++ {
		closeCodes = append(closeCodes, code)
	}
}

// Dispatch блокирует до закрытия соединения, возвращает число прочитанных сообщений
func (c *WsClient) Dispatch() (received int) {
	if c.conn == nil {
		return 0
	}
	logger := log.WithField("tenant_id", c.tenantID).WithField("user_id", c.userID)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				logger.WithError(err).Warn("ws соединение прервано")
			}
			return received
		}
		received++
		logger.WithField("ws_message", string(data)).Debug("входящее ws сообщение пропущено")
	}
}
