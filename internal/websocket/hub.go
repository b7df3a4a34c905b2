package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/soundroom/studio-booking/internal/database"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeBookingCreated MessageType = "booking_created"
	MessageTypeBookingDecided MessageType = "booking_decided"
)

// AllDates is the watch key for clients that want every date, such as the
// admin page's pending list.
const AllDates = "*"

// Message represents a booking change pushed to watching clients
type Message struct {
	Type      MessageType       `json:"type"`
	Date      string            `json:"date"`
	Booking   *database.Booking `json:"booking,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client represents a WebSocket client watching one date (or AllDates)
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	date string
}

// Hub fans booking change events out to clients grouped by watched date
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	logger     *zap.Logger
	mu         sync.RWMutex
}

// NewHub creates a hub; the caller runs it with go hub.Run()
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		logger:     logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.date] == nil {
				h.clients[client.date] = make(map[*Client]bool)
			}
			h.clients[client.date][client] = true
			h.logger.Debug("websocket client registered",
				zap.String("date", client.date),
				zap.Int("watching", len(h.clients[client.date])))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.date]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.date)
					}
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				h.logger.Error("failed to marshal websocket message", zap.Error(err))
				continue
			}
			h.deliver(message.Date, data)
			if message.Date != AllDates {
				h.deliver(AllDates, data)
			}
		}
	}
}

func (h *Hub) deliver(key string, data []byte) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients[key]))
	for client := range h.clients[key] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.send <- data:
		default:
			// Slow consumer; drop it rather than block the hub.
			h.mu.Lock()
			if _, ok := h.clients[key][client]; ok {
				delete(h.clients[key], client)
				close(client.send)
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastBookingCreated notifies watchers of a new pending booking
func (h *Hub) BroadcastBookingCreated(booking *database.Booking) {
	h.broadcast <- &Message{
		Type:      MessageTypeBookingCreated,
		Date:      booking.Date,
		Booking:   booking,
		Timestamp: time.Now().UnixMilli(),
	}
}

// BroadcastBookingDecided notifies watchers that a booking was approved or rejected
func (h *Hub) BroadcastBookingDecided(booking *database.Booking) {
	h.broadcast <- &Message{
		Type:      MessageTypeBookingDecided,
		Date:      booking.Date,
		Booking:   booking,
		Timestamp: time.Now().UnixMilli(),
	}
}

// ServeWS upgrades an HTTP request to a WebSocket subscription for one date
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, date string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 64),
		date: date,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Clients only listen; reads exist to notice closes and answer pings.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
