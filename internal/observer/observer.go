// Package observer implements a minimal live-progress WebSocket
// endpoint: a remote client connects, receives no handshake beyond the
// upgrade itself, and is pushed a JSON progress frame after every
// batch cmd/worldgen executes. It is a narrow debug/monitoring
// surface, not a replacement for the (out of scope) GUI.
package observer

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ProgressFrame is the one message shape this endpoint ever sends.
type ProgressFrame struct {
	FlatIndex int    `json:"flat_index"`
	Total     int    `json:"total"`
	Phase     string `json:"phase"`
	Step      int    `json:"step"`
}

type subscriber struct {
	out chan []byte
}

// Server fans out ProgressFrame broadcasts to every connected
// WebSocket subscriber.
type Server struct {
	log      *log.Logger
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

// NewServer builds an observer Server. logger may be nil, in which
// case a logger writing to the standard logger's output (log.Writer)
// is used.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.Writer(), "[observer] ", log.LstdFlags|log.Lmicroseconds)
	}
	return &Server{
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		subs: make(map[*subscriber]struct{}),
	}
}

// Handler upgrades the connection and streams progress frames to it
// until the client disconnects.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sub := &subscriber{out: make(chan []byte, 16)}
		s.mu.Lock()
		s.subs[sub] = struct{}{}
		s.mu.Unlock()
		defer func() {
			s.mu.Lock()
			delete(s.subs, sub)
			s.mu.Unlock()
		}()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-sub.out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}
}

// Broadcast pushes frame to every connected subscriber. Slow
// subscribers are dropped from this frame, not disconnected — a
// progress stream that falls behind should catch up on the next
// frame, not stall the generation run.
func (s *Server) Broadcast(frame ProgressFrame) {
	b, err := json.Marshal(frame)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.subs {
		select {
		case sub.out <- b:
		default:
		}
	}
}

// SubscriberCount reports how many clients are currently connected.
func (s *Server) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
