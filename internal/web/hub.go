package web

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ytget/ytdlp-gui/internal/ansi"
)

// EventConnected is sent to a websocket client once it is registered
const EventConnected = "connected"

const clientBuffer = 64

// Message is one websocket frame
type Message struct {
	Event string `json:"event"`
	HTML  string `json:"html"`
	Text  string `json:"text,omitempty"`
}

func newMessage(event, payload string) Message {
	return Message{Event: event, HTML: ansi.RenderLine(payload), Text: payload}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     checkOrigin,
}

type client struct {
	conn *websocket.Conn
	send chan Message
	once sync.Once
}

func (cl *client) close() {
	cl.once.Do(func() { close(cl.send) })
}

// hub fans messages out to websocket clients
type hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

func newHub() *hub {
	return &hub{clients: make(map[*client]struct{})}
}

// add registers cl and queues hello as its first message
func (h *hub) add(cl *client, hello Message) {
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	cl.send <- hello
	h.mu.Unlock()
}

func (h *hub) remove(cl *client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		cl.close()
	}
	h.mu.Unlock()
}

func (h *hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// broadcast queues msg for every client; slow clients miss messages
func (h *hub) broadcast(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.clients {
		select {
		case cl.send <- msg:
		default:
		}
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		delete(h.clients, cl)
		cl.close()
	}
}

func (s *Server) handleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Failed to upgrade websocket")
			return
		}

		cl := &client{conn: conn, send: make(chan Message, clientBuffer)}
		s.hub.add(cl, Message{Event: EventConnected})
		s.metrics.clients.Set(float64(s.hub.count()))
		s.logger.Debug().Str("remote", c.Request.RemoteAddr).Msg("Websocket client connected")

		done := make(chan struct{})
		go func() {
			defer close(done)
			// closing the connection unblocks the read loop below
			defer conn.Close()
			for msg := range cl.send {
				if err := conn.WriteJSON(msg); err != nil {
					return
				}
			}
		}()

		// the client never sends; reading detects the close
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		s.hub.remove(cl)
		s.metrics.clients.Set(float64(s.hub.count()))
		<-done
		s.logger.Debug().Str("remote", c.Request.RemoteAddr).Msg("Websocket client disconnected")
	}
}

// checkOrigin accepts same-host browsers and non-browser clients
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}
