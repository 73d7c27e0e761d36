package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/domain/game"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 30 * time.Second
	subscriberSize = 16
)

// StateUpdate is pushed to stream subscribers after every applied action
type StateUpdate struct {
	FarmID int             `json:"farmId"`
	Event  string          `json:"event"`
	State  *game.FarmState `json:"state"`
}

type subscriber struct {
	out chan StateUpdate
}

// Hub fans farm changes out to websocket subscribers
type Hub struct {
	mu       sync.Mutex
	subs     map[int]map[*subscriber]struct{}
	upgrader websocket.Upgrader
	logger   logging.GameLogger

	done      chan struct{}
	closeOnce sync.Once
}

// NewHub creates an empty hub
func NewHub(logger logging.GameLogger) *Hub {
	if logger == nil {
		logger = logging.LoggerFromContext(context.Background())
	}
	return &Hub{
		subs:   make(map[int]map[*subscriber]struct{}),
		logger: logger,
		done:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
		},
	}
}

// Publish is a farm.ChangeListener. Slow subscribers miss updates rather
// than block the session.
func (h *Hub) Publish(farmID shared.FarmID, event string, state *game.FarmState) {
	update := StateUpdate{FarmID: farmID.Value(), Event: event, State: state}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[farmID.Value()] {
		select {
		case sub.out <- update:
		default:
			h.logger.Log(logging.LevelWarn, "stream subscriber lagging, update dropped", map[string]interface{}{
				"farm_id": farmID.Value(),
				"event":   event,
			})
		}
	}
}

// Close ends every open stream. Streams opened afterwards end immediately.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

func (h *Hub) subscribe(farmID int) *subscriber {
	sub := &subscriber{out: make(chan StateUpdate, subscriberSize)}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[farmID] == nil {
		h.subs[farmID] = make(map[*subscriber]struct{})
	}
	h.subs[farmID][sub] = struct{}{}
	return sub
}

func (h *Hub) unsubscribe(farmID int, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[farmID], sub)
	if len(h.subs[farmID]) == 0 {
		delete(h.subs, farmID)
	}
}

// Subscribers reports how many streams are open for a farm
func (h *Hub) Subscribers(farmID int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[farmID])
}

// serve upgrades the request and streams updates for farmID, starting with
// the initial snapshot
func (h *Hub) serve(w http.ResponseWriter, r *http.Request, farmID int, initial *game.FarmState) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sub := h.subscribe(farmID)
	defer h.unsubscribe(farmID, sub)

	// reader: only used to notice the client going away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := writeJSON(conn, StateUpdate{FarmID: farmID, Event: "snapshot", State: initial}); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-h.done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), time.Now().Add(writeWait))
			return
		case update := <-sub.out:
			if err := writeJSON(conn, update); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func writeJSON(conn *websocket.Conn, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}
