package web

import (
	"sync"

	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// OptionsMessage is pushed to websocket clients on connect and after every change
type OptionsMessage struct {
	Type     string                `json:"type"`
	Document models.SharedDocument `json:"document"`
}

func newOptionsMessage(doc models.SharedDocument) OptionsMessage {
	if doc == nil {
		doc = models.SharedDocument{}
	}
	return OptionsMessage{
		Type:     "options",
		Document: doc,
	}
}

type client struct {
	conn *websocket.Conn
	send chan OptionsMessage
}

// hub fans option changes out to every connected client
type hub struct {
	mu      sync.Mutex
	clients map[*client]bool
}

func newHub() *hub {
	return &hub{
		clients: make(map[*client]bool),
	}
}

// register adds the client and queues the current document as its first message.
// The snapshot is taken under the hub lock so no broadcast falls between the two.
func (h *hub) register(c *client, snapshot func() models.SharedDocument) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = true
	c.send <- newOptionsMessage(snapshot())
}

func (h *hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// broadcast is registered as the option store subscriber
func (h *hub) broadcast(doc models.SharedDocument) {
	msg := newOptionsMessage(doc)

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// slow client
			log.Debug().Msg("dropping websocket client that fell behind")
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *hub) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (c *client) readPump(h *hub) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	// clients only listen; reading surfaces the close
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
