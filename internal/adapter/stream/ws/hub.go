package ws

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"gridwright/internal/app/ports"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	writeWait  = 5 * time.Second
	readWait   = 60 * time.Second
	sendBuffer = 256
)

type subscriber struct {
	out chan []byte
	// agentID < 0 means every agent.
	agentID int
}

// Hub broadcasts committed decisions to websocket observers. Publish never
// blocks: a subscriber whose buffer is full misses the message.
type Hub struct {
	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	mu   sync.RWMutex
	subs map[string]subscriber
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		subs: map[string]subscriber{},
	}
}

func (h *Hub) Publish(rec ports.DecisionRecord) {
	b, err := json.Marshal(rec)
	if err != nil {
		hlog.Errorf("stream: encode decision: %v", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, sub := range h.subs {
		if sub.agentID >= 0 && sub.agentID != rec.AgentID {
			continue
		}
		select {
		case sub.out <- b:
		default:
			hlog.Debugf("stream: observer %s is behind, dropping decision", id)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Handler upgrades to a websocket and streams decisions as JSON text frames.
// ?agent_id=N narrows the stream to one agent.
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		agentID := -1
		if raw := r.URL.Query().Get("agent_id"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil || id < 0 {
				http.Error(rw, "invalid agent_id", http.StatusBadRequest)
				return
			}
			agentID = id
		}

		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		id := fmt.Sprintf("O%d", h.nextID.Add(1))
		out := make(chan []byte, sendBuffer)
		h.add(id, subscriber{out: out, agentID: agentID})
		defer h.remove(id)
		hlog.Infof("stream: observer %s joined from %s", id, r.RemoteAddr)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for b := range out {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}()

		// Observers only listen; reading drives pings and detects the close.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(readWait))
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		h.remove(id)
		<-done
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
		hlog.Infof("stream: observer %s left", id)
	}
}

func (h *Hub) add(id string, sub subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[id] = sub
}

// remove is idempotent; it closes the subscriber's channel once.
func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sub, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(sub.out)
	}
}
