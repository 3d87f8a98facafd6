package ws

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Client is one connected terminal, tagged with the user it
// authenticated as so shift events can be delivered to their owner.
type Client struct {
	Conn   *websocket.Conn
	UserID string
}

type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan []byte),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mutex.Lock()
			h.Clients[client] = true
			h.mutex.Unlock()
			log.Println("New WS client connected:", client.UserID)

		case client := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.Conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for client := range h.Clients {
				if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
					client.Conn.Close()
					delete(h.Clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// SendToUser delivers a message to every connection of one user.
func (h *Hub) SendToUser(userID string, message []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.Clients {
		if client.UserID != userID {
			continue
		}
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			client.Conn.Close()
			delete(h.Clients, client)
		}
	}
}
