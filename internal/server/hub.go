package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/alexisbeaulieu97/progressbar/internal/logger"
	"github.com/alexisbeaulieu97/progressbar/internal/render"
)

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// client serialises writes to one connection.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) write(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

type hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	log     *logger.Logger
}

func newHub(log *logger.Logger) *hub {
	return &hub{clients: make(map[*client]struct{}), log: log}
}

func (h *hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		_ = c.conn.Close()
	}
}

func (h *hub) size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *hub) snapshot() []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		out = append(out, c)
	}
	return out
}

func (h *hub) broadcast(v render.View) {
	payload, err := json.Marshal(v)
	if err != nil {
		h.log.Error(err, "encode view")
		return
	}
	for _, c := range h.snapshot() {
		if err := c.write(payload); err != nil {
			h.log.Debug("dropping websocket client: " + err.Error())
			h.remove(c)
		}
	}
}

func (h *hub) closeAll() {
	for _, c := range h.snapshot() {
		h.remove(c)
	}
}

func (s *Server) handleWebSocket(c *gin.Context) {
	w, ok := s.requireWidget(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Error(err, "websocket upgrade failed")
		return
	}

	cl := &client{conn: conn}
	s.hub.add(cl)
	defer s.hub.remove(cl)

	payload, err := json.Marshal(render.Build(w.State(), w.Config()))
	if err == nil {
		err = cl.write(payload)
	}
	if err != nil {
		s.log.Error(err, "send initial view")
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
