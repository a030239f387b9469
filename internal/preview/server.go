// Package preview exposes stored levels to playtest clients: a small
// read-only HTTP API plus a WebSocket feed of newly generated levels.
package preview

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/harrykeightley/wordcrossing-generator/internal/level"
	"github.com/harrykeightley/wordcrossing-generator/internal/logger"
	"github.com/harrykeightley/wordcrossing-generator/internal/store"
)

// Server serves levels from a store. Create with NewServer and mount as an
// http.Handler; call Notify whenever a new level is saved to push it to
// connected clients.
type Server struct {
	levels         store.Store
	allowedOrigins []string
	mux            *http.ServeMux

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// NewServer creates a preview server over the given store.
func NewServer(levels store.Store, allowedOrigins []string) *Server {
	s := &Server{
		levels:         levels,
		allowedOrigins: allowedOrigins,
		conns:          make(map[*websocket.Conn]bool),
	}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("GET /levels", s.handleList)
	s.mux.HandleFunc("GET /levels/{name}", s.handleLevel)
	s.mux.HandleFunc("GET /ws", s.handleWS)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.levels.List()
	if err != nil {
		logger.Error("preview list failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, names)
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	lvl, err := s.levels.Load(r.PathValue("name"))
	if err == store.ErrNotFound {
		http.Error(w, "level not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("preview load failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, lvl)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.originAllowed(origin, r.Host)
			if !allowed {
				logger.Warn("preview connection rejected", "origin", origin, "host", r.Host)
			}
			return allowed
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("preview upgrade failed", "error", err)
		return
	}

	s.mu.Lock()
	s.conns[conn] = true
	s.mu.Unlock()
	logger.Info("preview client connected", "remote_addr", conn.RemoteAddr().String())

	// Drain control frames; drop the connection on any read error.
	go func() {
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Notify pushes a freshly stored level to every connected client.
func (s *Server) Notify(lvl *level.Level) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.conns))
	for conn := range s.conns {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(lvl); err != nil {
			logger.Warn("preview push failed", "error", err)
			s.drop(conn)
		}
	}
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	conn.Close()
}

// originAllowed applies the configured origin policy: exact matches and
// "*" pass; an empty list enforces same-origin.
func (s *Server) originAllowed(origin, requestHost string) bool {
	if len(s.allowedOrigins) == 0 {
		return sameOrigin(origin, requestHost)
	}
	for _, allowed := range s.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func sameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true
	}
	host := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		host = origin[idx+3:]
	}
	return host == requestHost
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("preview encode failed", "error", err)
	}
}
