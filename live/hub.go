// Package live pushes table and booking changes to connected dashboards
// over websockets.
package live

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Event types
const (
	EventTableCreate      = "table_create"
	EventTableUpdate      = "table_update"
	EventTableDelete      = "table_delete"
	EventBookingCreate    = "booking_create"
	EventBookingUpdate    = "booking_update"
	EventBookingStatus    = "booking_status"
	EventBookingDelete    = "booking_delete"
	EventStatisticsUpdate = "statistics_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Publisher is what controllers need from the hub.
type Publisher interface {
	Broadcast(msg Message)
}

// DefaultWriteTimeout bounds how long Broadcast waits on a single client.
const DefaultWriteTimeout = 5 * time.Second

// Hub tracks connected websocket clients. The zero value is not usable; use NewHub.
type Hub struct {
	// WriteTimeout is the per-client write deadline used by Broadcast.
	WriteTimeout time.Duration

	clients map[*websocket.Conn]struct{}
	mutex   sync.Mutex
	log     *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		WriteTimeout: DefaultWriteTimeout,
		clients:      make(map[*websocket.Conn]struct{}),
		log:          log,
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Broadcast sends msg to every client. Clients that fail to receive it
// before the write deadline are disconnected.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.WithFields(logrus.Fields{"event": msg.Event, "err": err}).Error("Error marshaling live message")
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.log.WithFields(logrus.Fields{"event": msg.Event, "clients": len(h.clients)}).Debug("Broadcasting live message")
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(h.WriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.WithFields(logrus.Fields{"err": err}).Warn("Dropping live client after failed write")
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
