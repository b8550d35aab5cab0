// Package notify pushes cart and order events to a session's open websocket connections.
package notify

import (
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/wildeats-cart/cart"
	"github.com/yeremiapane/wildeats-cart/models"
)

// Event types
const (
	EventCartUpdate  = "cart_update"
	EventOrderPlaced = "order_placed"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

const sendBuffer = 16

// writeWait bounds a single websocket write.
var writeWait = 10 * time.Second

// client is one connection with its own outgoing queue, drained by writePump.
type client struct {
	conn      *websocket.Conn
	sessionID string
	send      chan []byte
}

// Hub keeps the open connections of every session. One session may have
// several connections, e.g. a phone and a laptop. Broadcasts only enqueue;
// a client whose queue is full is dropped.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
	log     logrus.FieldLogger
}

func NewHub(log logrus.FieldLogger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		clients: make(map[*websocket.Conn]*client),
		log:     log,
	}
}

func (h *Hub) Register(conn *websocket.Conn, sessionID string) {
	c := &client{conn: conn, sessionID: sessionID, send: make(chan []byte, sendBuffer)}
	h.mutex.Lock()
	h.clients[conn] = c
	h.mutex.Unlock()
	go h.writePump(c)
}

// Unregister drops and closes the connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.drop(conn)
}

// Len returns the number of connections for a session.
func (h *Hub) Len(sessionID string) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	n := 0
	for _, c := range h.clients {
		if c.sessionID == sessionID {
			n++
		}
	}
	return n
}

// BroadcastCart sends the session's new cart state.
func (h *Hub) BroadcastCart(sessionID string, snap cart.Snapshot) {
	h.send(sessionID, Message{Event: EventCartUpdate, Data: snap})
}

// BroadcastOrders announces orders placed from the session's cart.
func (h *Hub) BroadcastOrders(sessionID string, orders []models.Order) {
	h.send(sessionID, Message{Event: EventOrderPlaced, Data: orders})
}

// Attach subscribes the hub to a provider's changes. It fits Registry.OnCreate.
func (h *Hub) Attach(sessionID string, p *cart.Provider) {
	p.Subscribe(func(snap cart.Snapshot) {
		h.BroadcastCart(sessionID, snap)
	})
}

func (h *Hub) send(sessionID string, msg Message) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	var data []byte
	for conn, c := range h.clients {
		if c.sessionID != sessionID {
			continue
		}
		if data == nil {
			var err error
			if data, err = json.Marshal(msg); err != nil {
				h.log.WithError(err).WithField("event", msg.Event).Error("failed to encode websocket message")
				return
			}
		}
		select {
		case c.send <- data:
		default:
			h.log.WithField("session_id", sessionID).Warn("websocket client too slow, dropping")
			h.drop(conn)
		}
	}
}

func (h *Hub) writePump(c *client) {
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.WithError(err).WithField("session_id", c.sessionID).Warn("dropping websocket client")
			h.Unregister(c.conn)
			return
		}
	}
}

// drop must be called with the mutex held.
func (h *Hub) drop(conn *websocket.Conn) {
	c, ok := h.clients[conn]
	if !ok {
		return
	}
	delete(h.clients, conn)
	close(c.send)
	conn.Close()
}
