package realtime

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

// Event types pushed to websocket clients. Snapshot events always carry the
// full result set: consumers replace their local view, they never merge.
const (
	EventCategoriesSnapshot = "categories_snapshot"
	EventFoodSnapshot       = "food_snapshot"
	EventPendingOrders      = "pending_orders_snapshot"
	EventOrderStatus        = "order_status"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub fans events out to connected websocket clients, each tagged with a
// role. Pending-order snapshots go to admins only.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]string
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

// Register adds a connection with its role.
func (h *Hub) Register(conn *websocket.Conn, role string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = role
}

// Unregister removes and closes a connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends an event to every client. Clients that fail to accept the
// write are dropped.
func (h *Hub) Broadcast(event string, data interface{}) {
	h.send(event, data, "")
}

// BroadcastToRole sends an event only to clients with the given role.
func (h *Hub) BroadcastToRole(role, event string, data interface{}) {
	h.send(event, data, role)
}

func (h *Hub) send(event string, data interface{}, role string) {
	msg := Message{Event: event, Data: data}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, clientRole := range h.clients {
		if role != "" && clientRole != role {
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			utils.ErrorLogger.Printf("dropping websocket client (%s): %v", clientRole, err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
