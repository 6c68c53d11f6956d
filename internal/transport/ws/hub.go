package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgInspectionCreated MessageType = "inspection_created"
	MsgError             MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	StoreID string          `json:"storeId"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans out store events to the managers watching each store
type Hub struct {
	conns map[string]map[*Connection]struct{} // storeID -> connections

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *Message
	done       chan struct{}
}

// Connection is one manager dashboard subscribed to a store
type Connection struct {
	StoreID string
	UserID  string
	Send    chan []byte
}

// NewHub creates a new WebSocket hub and starts its loop
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *Message, 256),
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.StoreID] == nil {
				h.conns[conn.StoreID] = make(map[*Connection]struct{})
			}
			h.conns[conn.StoreID][conn] = struct{}{}
			h.mu.Unlock()
			log.Printf("[Hub] %s subscribed to store %s", conn.UserID, conn.StoreID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.conns[conn.StoreID]; ok {
				if _, ok := set[conn]; ok {
					delete(set, conn)
					close(conn.Send)
					if len(set) == 0 {
						delete(h.conns, conn.StoreID)
					}
					log.Printf("[Hub] %s unsubscribed from store %s", conn.UserID, conn.StoreID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("[Hub] failed to encode %s message: %v", msg.Type, err)
				continue
			}
			h.mu.RLock()
			for conn := range h.conns[msg.StoreID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for storeID, set := range h.conns {
				for conn := range set {
					close(conn.Send)
				}
				delete(h.conns, storeID)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Close stops the hub and closes every subscriber
func (h *Hub) Close() {
	close(h.done)
}

// Subscribers returns the number of live connections for a store
func (h *Hub) Subscribers(storeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[storeID])
}

// NotifyStore sends a message to every manager watching the store
// (implements service.Notifier)
func (h *Hub) NotifyStore(storeID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[Hub] failed to encode %s payload: %v", msgType, err)
		return
	}
	msg := &Message{
		Type:    MessageType(msgType),
		StoreID: storeID,
		Payload: data,
	}
	select {
	case h.broadcast <- msg:
	default:
		log.Printf("[Hub] broadcast queue full, dropping %s for store %s", msgType, storeID)
	}
}
