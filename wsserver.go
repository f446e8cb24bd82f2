// wsserver.go - WebSocket transport for the control protocol

package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const statsPushInterval = 100 * time.Millisecond

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ControlServer accepts WebSocket connections and dispatches incoming
// control messages, pushing a stats snapshot to every connected client
// roughly every 100ms while the engine is running.
type ControlServer struct {
	addr       string
	dispatcher *Dispatcher
	httpServer *http.Server

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewControlServer(addr string, dispatcher *Dispatcher) *ControlServer {
	return &ControlServer{
		addr:       addr,
		dispatcher: dispatcher,
		clients:    make(map[*websocket.Conn]struct{}),
	}
}

// ListenAndServe blocks serving WebSocket connections until Shutdown is
// called or an unrecoverable error occurs.
func (s *ControlServer) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleConn)
	s.httpServer = &http.Server{Addr: s.addr, Handler: mux}
	log.WithField("addr", s.addr).Info("control server listening")
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown closes the listener and all open connections.
func (s *ControlServer) Shutdown() error {
	s.mu.Lock()
	for c := range s.clients {
		_ = c.Close()
	}
	s.clients = make(map[*websocket.Conn]struct{})
	s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Close()
}

func (s *ControlServer) handleConn(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		resp := s.dispatcher.Handle(raw)
		data, err := json.Marshal(resp)
		if err != nil {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// PushStatsLoop sends a getStats-shaped push to every connected client
// every statsPushInterval until stop is closed.
func (s *ControlServer) PushStatsLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(statsPushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !s.dispatcher.engine.IsRunning() {
				continue
			}
			resp := ControlResponse{Type: "getStats", OK: true, Stats: s.dispatcher.statsPayload()}
			data, err := json.Marshal(resp)
			if err != nil {
				continue
			}
			s.broadcast(data)
		}
	}
}

func (s *ControlServer) broadcast(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			log.WithError(err).Debug("dropping unresponsive client")
			_ = c.Close()
			delete(s.clients, c)
		}
	}
}
