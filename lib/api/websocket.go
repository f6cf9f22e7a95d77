package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tallyframe/tallyframe/lib/layer"
	"github.com/tallyframe/tallyframe/lib/theatre"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = 2 * time.Second
	subscribers = 64
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(req *http.Request) bool {
		return true
	},
}

// Message is one websocket packet.
type Message struct {
	Event string `json:"event"`
	Scene string `json:"scene,omitempty"`
	Data  any    `json:"data,omitempty"`
}

type layerChange struct {
	ID       string `json:"id"`
	ParentID string `json:"p_id,omitempty"`
	Type     string `json:"type,omitempty"`
	Order    *int   `json:"order,omitempty"`
	Removed  int    `json:"removed,omitempty"`
}

// Hub fans encoded messages out to websocket clients. A client that falls
// behind loses messages rather than stalling the frame loop.
type Hub struct {
	mu      sync.RWMutex
	clients map[chan []byte]struct{}
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[chan []byte]struct{})}
}

func (h *Hub) Subscribe() chan []byte {
	ch := make(chan []byte, subscribers)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch
	}
	h.clients[ch] = struct{}{}
	return ch
}

func (h *Hub) Unsubscribe(ch chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast encodes msg on the calling goroutine, so payloads that point
// into the engine are read where it is safe to read them.
func (h *Hub) Broadcast(msg Message) {
	packet, err := json.Marshal(msg)
	if err != nil {
		slog.Warn("could not encode event", slog.String("module", "api"), slog.String("event", msg.Event))
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.clients {
		select {
		case ch <- packet:
		default:
		}
	}
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for ch := range h.clients {
		delete(h.clients, ch)
		close(ch)
	}
}

// watchTheatre forwards theatre and chart layer events to the hub. A
// restore may replace the chart, in which case its listeners are installed
// again.
func (a *Api) watchTheatre(t *theatre.Theatre) {
	a.watchLayers(t.Chart)

	lastTime := -1.0
	t.AddEventListener(theatre.EventNameFrame, func(t *theatre.Theatre, data interface{}) {
		event := data.(*theatre.EventFrame)
		if event.CurrentTime == lastTime {
			return
		}
		lastTime = event.CurrentTime
		a.hub.Broadcast(Message{Event: theatre.EventNameFrame, Scene: event.Scene, Data: playbackState(t)})
	})
	t.AddEventListener(theatre.EventNameRestore, func(t *theatre.Theatre, data interface{}) {
		event := data.(*theatre.EventRestore)
		slog.Info("document restored", slog.String("module", "api"), slog.Int("tables", event.Tables))
		a.watchLayers(t.Chart)
		lastTime = -1
		a.hub.Broadcast(Message{Event: theatre.EventNameRestore, Data: event})
	})
}

func (a *Api) watchLayers(sc *theatre.Scene) {
	m := sc.Layers
	if m == a.watched {
		return
	}
	a.watched = m
	send := func(event string, c layerChange) {
		a.hub.Broadcast(Message{Event: "layer-" + event, Scene: sc.Name, Data: c})
	}
	m.On(layer.EventNameAdd, func(_ *layer.Manager, data interface{}) {
		e := data.(layer.EventAdd)
		order := e.Layer.Order
		send(layer.EventNameAdd, layerChange{ID: e.Layer.ID, ParentID: e.ParentID, Type: e.Layer.Type, Order: &order})
	})
	m.On(layer.EventNameRemove, func(_ *layer.Manager, data interface{}) {
		e := data.(layer.EventRemove)
		send(layer.EventNameRemove, layerChange{ID: e.ID, ParentID: e.ParentID})
	})
	m.On(layer.EventNameUpdate, func(_ *layer.Manager, data interface{}) {
		e := data.(layer.EventUpdate)
		send(layer.EventNameUpdate, layerChange{ID: e.ID, Order: e.Patch.Order})
	})
	m.On(layer.EventNameReorder, func(_ *layer.Manager, data interface{}) {
		e := data.(layer.EventReorder)
		order := e.Order
		send(layer.EventNameReorder, layerChange{ID: e.ID, ParentID: e.ParentID, Order: &order})
	})
	m.On(layer.EventNameClear, func(_ *layer.Manager, data interface{}) {
		e := data.(layer.EventClear)
		send(layer.EventNameClear, layerChange{ID: layer.RootID, Removed: e.Removed})
	})
}

// @Summary	Open websocket for realtime layer and playback events
// @Router		/api/ws [get]
// @Param		Upgrade	header	string	true	"websocket"
// @Tags		base
// @Success	101
func (a *Api) handleWebsocket(w http.ResponseWriter, req *http.Request) {
	// the initial state is read before the upgrade so a stopped frame
	// loop still gets a plain http error
	var initial PlaybackState
	if err := a.do(req, func() { initial = playbackState(a.mixer.Theatre) }); err != nil {
		a.unavailable(w, err)
		return
	}

	ws, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		slog.Warn("could not make websocket", slog.String("module", "api"), slog.String("error", err.Error()))
		return
	}
	sub := a.hub.Subscribe()
	slog.Debug("websocket client connected", slog.String("module", "api"), slog.Int("clients", a.hub.Count()))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	a.websocketWriter(req.Context(), ws, sub, done, initial)
	a.hub.Unsubscribe(sub)
	if err := ws.Close(); err != nil {
		slog.Debug("could not close websocket", slog.String("module", "api"), slog.String("error", err.Error()))
	}
}

func (a *Api) websocketWriter(ctx context.Context, ws *websocket.Conn, sub chan []byte, done chan struct{}, initial PlaybackState) {
	write := func(messageType int, packet []byte) bool {
		if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return false
		}
		return ws.WriteMessage(messageType, packet) == nil
	}

	hello, err := json.Marshal(Message{Event: "state", Data: initial})
	if err != nil || !write(websocket.TextMessage, hello) {
		return
	}

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case packet, ok := <-sub:
			if !ok || !write(websocket.TextMessage, packet) {
				return
			}
		case <-pingTicker.C:
			if !write(websocket.PingMessage, nil) {
				return
			}
		}
	}
}
