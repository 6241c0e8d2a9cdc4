package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Status is the scope state snapshot served to clients.
type Status struct {
	CursorIndex   int      `json:"cursorIndex"`
	TimePosition  float64  `json:"timePosition"`
	ScrollValue   int      `json:"scrollValue"`
	ScrollMaximum int      `json:"scrollMaximum"`
	BufferLen     int      `json:"bufferLen"`
	FPS           float64  `json:"fps"`
	Tooltip       string   `json:"tooltip"`
	Labels        []string `json:"labels"`
}

// Controller is the host-side surface the server drives. Mutations are
// queued by the host and applied between render passes, keeping the scope's
// single-writer assumption intact.
type Controller interface {
	Status() Status
	SetScrollSeconds(seconds float64)
	SetCursorIndex(index int)
}

// UpdateRequest is a partial update; nil fields are left unchanged.
type UpdateRequest struct {
	ScrollSeconds *float64 `json:"scrollSeconds,omitempty"`
	CursorIndex   *int     `json:"cursorIndex,omitempty"`
}

const broadcastInterval = 250 * time.Millisecond

// Server exposes scope status and scroll/cursor control over HTTP and
// websocket.
type Server struct {
	ctrl     Controller
	log      *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]bool
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewServer creates a server over ctrl.
func NewServer(ctrl Controller, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		ctrl:    ctrl,
		log:     logger,
		clients: make(map[*client]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Start serves until the listener fails. It blocks; run it on its own
// goroutine.
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/update", s.handleUpdate)
	mux.HandleFunc("/ws", s.handleWebSocket)

	go s.broadcastLoop()

	addr := fmt.Sprintf(":%d", port)
	s.log.Printf("web control on http://0.0.0.0%s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.ctrl.Status())
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ScrollSeconds != nil {
		s.ctrl.SetScrollSeconds(*req.ScrollSeconds)
	}
	if req.CursorIndex != nil {
		s.ctrl.SetCursorIndex(*req.CursorIndex)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("websocket upgrade: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, 16)}

	s.mu.Lock()
	s.clients[c] = true
	s.mu.Unlock()

	go s.writePump(c)
	go s.readPump(c)
}

func (s *Server) writePump(c *client) {
	defer func() {
		_ = c.conn.Close()
	}()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump consumes client messages, applying scroll/cursor updates and
// detecting disconnects.
func (s *Server) readPump(c *client) {
	defer s.drop(c)
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var req UpdateRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			continue
		}
		if req.ScrollSeconds != nil {
			s.ctrl.SetScrollSeconds(*req.ScrollSeconds)
		}
		if req.CursorIndex != nil {
			s.ctrl.SetCursorIndex(*req.CursorIndex)
		}
	}
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	if s.clients[c] {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()
}

func (s *Server) broadcastLoop() {
	ticker := time.NewTicker(broadcastInterval)
	defer ticker.Stop()
	for range ticker.C {
		msg, err := json.Marshal(s.ctrl.Status())
		if err != nil {
			continue
		}
		s.mu.Lock()
		for c := range s.clients {
			select {
			case c.send <- msg:
			default: // slow client, skip this update
			}
		}
		s.mu.Unlock()
	}
}
