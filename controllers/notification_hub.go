package controllers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/princinho/pepinterview/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// wsClient serialises writes; gorilla allows a single concurrent writer.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (cl *wsClient) write(fn func(*websocket.Conn) error) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if err := cl.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return fn(cl.conn)
}

// NotificationHub keeps the open websocket connections per user and pushes
// new notifications to them.
type NotificationHub struct {
	mu       sync.RWMutex
	clients  map[bson.ObjectID]map[*wsClient]bool
	upgrader websocket.Upgrader
}

// NewNotificationHub accepts every origin when allowedOrigins is empty.
func NewNotificationHub(allowedOrigins []string) *NotificationHub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &NotificationHub{
		clients: make(map[bson.ObjectID]map[*wsClient]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
	}
}

func (h *NotificationHub) add(userID bson.ObjectID, cl *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*wsClient]bool)
	}
	h.clients[userID][cl] = true
}

func (h *NotificationHub) remove(userID bson.ObjectID, cl *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.clients[userID]; ok {
		delete(clients, cl)
		if len(clients) == 0 {
			delete(h.clients, userID)
		}
	}
}

// Connections reports how many sockets a user has open.
func (h *NotificationHub) Connections(userID bson.ObjectID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Push sends n to every socket of its user. Failed sockets are dropped.
func (h *NotificationHub) Push(n *models.Notification) {
	if h == nil || n == nil {
		return
	}

	h.mu.RLock()
	targets := make([]*wsClient, 0, len(h.clients[n.User]))
	for cl := range h.clients[n.User] {
		targets = append(targets, cl)
	}
	h.mu.RUnlock()

	msg := map[string]any{"type": "notification", "notification": n}
	for _, cl := range targets {
		err := cl.write(func(conn *websocket.Conn) error { return conn.WriteJSON(msg) })
		if err != nil {
			log.Printf("Failed to push notification to user %s: %v", n.User.Hex(), err)
			h.remove(n.User, cl)
			cl.conn.Close()
		}
	}
}

// Serve upgrades the request and blocks until the socket closes.
func (h *NotificationHub) Serve(w http.ResponseWriter, r *http.Request, userID bson.ObjectID) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	cl := &wsClient{conn: conn}
	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.add(userID, cl)
	defer func() {
		h.remove(userID, cl)
		conn.Close()
	}()

	err = cl.write(func(conn *websocket.Conn) error {
		return conn.WriteJSON(map[string]string{
			"type":    "connected",
			"message": "WebSocket connection established",
		})
	})
	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := cl.write(func(conn *websocket.Conn) error {
					return conn.WriteMessage(websocket.PingMessage, nil)
				}); err != nil {
					return
				}
			}
		}
	}()

	// Clients only send pongs and close frames; anything else is discarded.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for user %s: %v", userID.Hex(), err)
			}
			return
		}
	}
}
