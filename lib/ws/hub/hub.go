package wshub

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	AddClient(tenantID, userID uint, conn Conn) (sessionID uint64)
	DeleteClient(tenantID uint, sessionID uint64)
	// Publish отправляет сообщение всем подключениям организации
	Publish(tenantID uint, msg interface{})
	ClientCount(tenantID uint) int
}

var Instance Provider

func Init() {
	Instance = NewHub()
}

func NewHub() Provider {
	return &impl{
		clients: map[uint]map[uint64]clientSession{},
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[uint]map[uint64]clientSession // map[tenantID]map[sessionID]
	lastID  uint64
}

func (i *impl) AddClient(tenantID, userID uint, conn Conn) uint64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.lastID++
	sessions, ok := i.clients[tenantID]
	if !ok {
		sessions = map[uint64]clientSession{}
		i.clients[tenantID] = sessions
	}
	sessions[i.lastID] = newSession(conn, userID)
	log.WithField("tenant_id", tenantID).
		WithField("user_id", userID).
		WithField("session_id", i.lastID).
		Debug("ws клиент подключен")
	return i.lastID
}

func (i *impl) DeleteClient(tenantID uint, sessionID uint64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sessions, ok := i.clients[tenantID]
	if !ok {
		return
	}
	sess, ok := sessions[sessionID]
	if !ok {
		return
	}
	delete(sessions, sessionID)
	if len(sessions) == 0 {
		delete(i.clients, tenantID)
	}
	sess.stop()
}

func (i *impl) Publish(tenantID uint, msg interface{}) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for sessionID, sess := range i.clients[tenantID] {
		if !sess.push(msg) {
			log.WithField("tenant_id", tenantID).
				WithField("session_id", sessionID).
				Warn("переполнен буфер ws клиента, сообщение пропущено")
		}
	}
}

func (i *impl) ClientCount(tenantID uint) int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.clients[tenantID])
}
