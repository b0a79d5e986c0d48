package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Hub tracks connected clients and routes messages to them.
type Hub struct {
	clients     map[*Client]bool
	userClients map[uint64][]*Client
	Register    chan *Client
	unregister  chan *Client
	broadcast   chan []byte
	mu          sync.RWMutex
	logger      *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		userClients: make(map[uint64][]*Client),
		Register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan []byte),
		logger:      logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.userClients[client.UserID] = append(h.userClients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Debug("ws client registered", zap.Uint64("userID", client.UserID))
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				clients := h.userClients[client.UserID]
				for i, c := range clients {
					if c == client {
						h.userClients[client.UserID] = append(clients[:i], clients[i+1:]...)
						break
					}
				}
				if len(h.userClients[client.UserID]) == 0 {
					delete(h.userClients, client.UserID)
				}
			}
			h.mu.Unlock()
			h.logger.Debug("ws client disconnected", zap.Uint64("userID", client.UserID))
		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
				}
			}
			h.mu.RUnlock()
		}
	}
}

// SendToUser pushes an envelope to every open connection of one user.
func (h *Hub) SendToUser(userID uint64, payload interface{}, messageType string) error {
	messageBytes, err := json.Marshal(Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.userClients[userID] {
		select {
		case client.Send <- messageBytes:
		default:
		}
	}
	return nil
}

// Broadcast pushes an envelope to every connected client. Used for the
// refetch signals that drive dashboard realtime updates.
func (h *Hub) Broadcast(payload interface{}, messageType string) error {
	messageBytes, err := json.Marshal(Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	h.broadcast <- messageBytes
	return nil
}
