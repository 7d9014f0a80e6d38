package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rafabene/accounts-backend/internal/domain/ports"
)

// Hub mantém as conexões websocket interessadas nos eventos de
// auditoria de troca de nome. Implementa ports.HistoryNotifier:
// a entrega é fire-and-forget e nunca afeta a transação já confirmada.
type Hub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]bool
	upgrader websocket.Upgrader
	logger   ports.Logger
}

// NewHub cria um novo Hub
func NewHub(logger ports.Logger) *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// O feed de auditoria é somente leitura e não carrega
			// credenciais; origem não é restringida
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Handle faz o upgrade da conexão e a registra no hub
func (h *Hub) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	h.register(conn)
	h.logger.Debug("websocket client connected", "remote", conn.RemoteAddr().String())

	// Loop de leitura apenas para detectar o fechamento da conexão
	go func() {
		defer h.unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// NotifyNameChange envia o evento para todos os clientes conectados
func (h *Hub) NotifyNameChange(event ports.NameChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Warn("websocket write failed", "error", err)
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

// Close encerra todas as conexões registradas
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conns[conn] {
		delete(h.conns, conn)
		conn.Close()
	}
}
