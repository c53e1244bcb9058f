// Package livereload es una comodidad de desarrollo: cada proceso del
// servidor se identifica con un uuid y lo manda por websocket a las páginas
// abiertas. Cuando el cliente reconecta y recibe un uuid distinto, sabe que
// el servidor se reinició y recarga la página.
package livereload

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"dog-registry/internal/platform/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // solo corre en dev
	},
}

type Hub struct {
	instanceID string
	log        logger.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		instanceID: uuid.NewString(),
		log:        log,
		clients:    make(map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", map[string]any{"error": err.Error()})
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	h.log.Debug("livereload client connected", nil)

	_ = conn.WriteMessage(websocket.TextMessage, []byte(h.instanceID))

	// bloquea hasta que el cliente se vaya
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()

	h.log.Debug("livereload client disconnected", nil)
}

// Close corta todas las conexiones abiertas; los clientes reconectan solos
// contra el proceso nuevo.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
	}
	h.clients = make(map[*websocket.Conn]struct{})
}
