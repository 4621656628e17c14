package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS is enforced at the HTTP layer
	},
}

// Client represents a WebSocket client, identified by the verified email of
// the account that opened it.
type Client struct {
	Email string
	Conn  *websocket.Conn
	Send  chan []byte
	Hub   *Hub
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mutex      sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Client %s connected", client.Email)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			log.Printf("Client %s disconnected", client.Email)

		case message := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// BroadcastToUser sends a message to every connection held by an email
func (h *Hub) BroadcastToUser(email string, message []byte) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if client.Email == email {
			select {
			case client.Send <- message:
			default:
				log.Printf("Warning: Could not send to client %s (channel full)", client.Email)
			}
		}
	}
}

// WebSocket message types
type WebSocketMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ParcelPaid notifies a sender their parcel's payment went through.
type ParcelPaid struct {
	ParcelID      uint   `json:"parcelId"`
	TrackingID    string `json:"trackingId"`
	TransactionID string `json:"transactionId"`
}

// RiderStatusChanged notifies an applicant about an application decision.
type RiderStatusChanged struct {
	RiderID uint   `json:"riderId"`
	Status  string `json:"status"`
}

// HandleWebSocket handles WebSocket connections
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, email string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		Email: email,
		Conn:  conn,
		Send:  make(chan []byte, 256),
		Hub:   hub,
	}

	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump discards inbound frames and unregisters on close. The socket is
// server-push only.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// SendParcelPaid sends a payment confirmation to the parcel's sender
func (h *Hub) SendParcelPaid(email string, paid ParcelPaid) {
	message := WebSocketMessage{
		Type: "parcel_paid",
		Data: paid,
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling parcel paid: %v", err)
		return
	}

	h.BroadcastToUser(email, data)
}

// SendRiderStatusChanged sends an application status update to the applicant
func (h *Hub) SendRiderStatusChanged(email string, changed RiderStatusChanged) {
	message := WebSocketMessage{
		Type: "rider_status_changed",
		Data: changed,
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling rider status: %v", err)
		return
	}

	h.BroadcastToUser(email, data)
}
