package revalidate

import (
	"context"
	"net/http"
	"sync"
	"time"

	Logger "github.com/Luismorlan/logosarena/utils/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	subscriberBufferSize = 16
	writeTimeout         = 10 * time.Second
	pingInterval         = 30 * time.Second
)

// Hub keeps the websocket subscribers of this instance. All internal state
// should not be handled directly by hand but managed by its public receivers.
type Hub struct {
	// connectionMap maps from subscriber id (uuid) to its event channel, so
	// deletion of a subscriber is O(1).
	connectionMap map[string]chan *Event

	// Adding/Removing a subscriber must grab WriteLock, pushing an event grabs
	// a ReadLock.
	mu sync.RWMutex

	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		connectionMap: make(map[string]chan *Event),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The presentation layer lives on another origin, cors is handled
			// by the router.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// cleanUp removes a single subscriber when its context terminates.
func (h *Hub) cleanUp(ctx context.Context, chId string) {
	<-ctx.Done()

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.connectionMap, chId)
}

// Thread-safe
func (h *Hub) AddNewConnection(ctx context.Context) (chan *Event, string) {
	chId := "revalidate_channel_" + uuid.New().String()
	ch := make(chan *Event, subscriberBufferSize)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.connectionMap[chId] = ch

	// Spin up a background garbage collector.
	go h.cleanUp(ctx, chId)

	return ch, chId
}

// Thread-safe
func (h *Hub) GetActiveConnectionsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connectionMap)
}

// Revalidate pushes the paths to every subscriber. A subscriber whose buffer
// is full misses the event rather than blocking the mutation.
func (h *Hub) Revalidate(ctx context.Context, paths ...string) {
	if len(paths) == 0 {
		return
	}
	event := &Event{Paths: paths}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for chId, ch := range h.connectionMap {
		select {
		case ch <- event:
		default:
			Logger.Log.Warn("revalidate subscriber is slow, dropping event for ", chId)
		}
	}
}

// ServeHTTP upgrades the request and streams events to the client until either
// side closes the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		Logger.Log.Info("cannot upgrade revalidate connection: ", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	ch, _ := h.AddNewConnection(ctx)

	// The read loop only detects closing, clients never send anything.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-ch:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(event); err != nil {
				Logger.Log.Info("revalidate subscriber gone: ", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
