package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/gorilla/websocket"

	"github.com/zenflow/zenflow/pkg/domain"
	"github.com/zenflow/zenflow/pkg/leadfeed"
)

// live feed operations sent to viewers
const (
	opPrepend    = "prepend"
	opRemoveLast = "remove_last"
	opReveal     = "reveal"
)

const (
	viewerBuffer = 16
	writeTimeout = 5 * time.Second
	pingInterval = 30 * time.Second
)

// Hub is the live lead list surface, it renders lead fragments and fans them out to websocket viewers
type Hub struct {
	templates *template.Template
	gauge     ViewerGauge
	upgrader  websocket.Upgrader

	mounted atomic.Bool
	mu      sync.Mutex
	viewers map[*viewer]struct{}
}

// ViewerGauge receives the number of connected viewers
type ViewerGauge interface {
	SetViewers(n int)
}

// feedMessage is a single operation on the browser's lead list
type feedMessage struct {
	Op         string `json:"op"`
	ID         string `json:"id,omitempty"`
	HTML       string `json:"html,omitempty"`
	Transition string `json:"transition,omitempty"`
}

type viewer struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub makes a hub, gauge is optional
func NewHub(gauge ViewerGauge) (*Hub, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Hub{
		templates: tmpl,
		gauge:     gauge,
		viewers:   map[*viewer]struct{}{},
		upgrader:  websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
	}, nil
}

// Run mounts the hub until ctx is canceled, then disconnects all viewers
func (h *Hub) Run(ctx context.Context) error {
	h.mounted.Store(true)
	lgr.Printf("[INFO] live feed hub mounted")
	<-ctx.Done()
	h.mounted.Store(false)

	h.mu.Lock()
	for v := range h.viewers {
		h.dropLocked(v)
	}
	h.mu.Unlock()
	lgr.Printf("[INFO] live feed hub unmounted")
	return nil
}

// Mounted reports whether the hub is running
func (h *Hub) Mounted() bool {
	return h.mounted.Load()
}

// Prepend sends a hidden lead row to put on top of the list
func (h *Hub) Prepend(_ context.Context, lead domain.Lead) error {
	html, err := h.renderLead(lead, true)
	if err != nil {
		return err
	}
	return h.broadcast(feedMessage{Op: opPrepend, ID: lead.ID, HTML: html})
}

// RemoveLast drops the oldest row of the list
func (h *Hub) RemoveLast(context.Context) error {
	return h.broadcast(feedMessage{Op: opRemoveLast})
}

// Reveal starts the entrance transition of a prepended lead
func (h *Hub) Reveal(_ context.Context, lead domain.Lead) error {
	return h.broadcast(feedMessage{Op: opReveal, ID: lead.ID, Transition: leadfeed.Transition})
}

// Viewers returns the number of connected viewers
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// ServeWS upgrades the request and registers a new viewer
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	if !h.Mounted() {
		http.Error(w, "live feed is not running", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		lgr.Printf("[WARN] websocket upgrade failed: %v", err)
		return
	}

	v := &viewer{conn: conn, send: make(chan []byte, viewerBuffer)}
	if !h.register(v) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		_ = conn.Close()
		return
	}
	lgr.Printf("[DEBUG] viewer connected from %s", r.RemoteAddr)

	go h.writer(v)
	h.reader(v)
}

// register adds the viewer unless the hub was unmounted meanwhile.
// Run clears mounted before dropping viewers under the same lock, so a late viewer is never left behind.
func (h *Hub) register(v *viewer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.mounted.Load() {
		return false
	}
	h.viewers[v] = struct{}{}
	h.updateGaugeLocked()
	return true
}

// reader discards incoming messages and unregisters the viewer on any read error
func (h *Hub) reader(v *viewer) {
	defer h.drop(v)
	v.conn.SetReadLimit(512)
	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writer(v *viewer) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = v.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-v.send:
			_ = v.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = v.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := v.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				lgr.Printf("[DEBUG] write to viewer failed: %v", err)
				return
			}
		case <-ticker.C:
			_ = v.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// broadcast sends msg to every viewer without blocking, viewers with a full buffer are dropped
func (h *Hub) broadcast(msg feedMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s message: %w", msg.Op, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for v := range h.viewers {
		select {
		case v.send <- data:
		default:
			lgr.Printf("[WARN] viewer is too slow, dropping")
			h.dropLocked(v)
		}
	}
	return nil
}

func (h *Hub) drop(v *viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(v)
}

func (h *Hub) dropLocked(v *viewer) {
	if _, ok := h.viewers[v]; !ok {
		return
	}
	delete(h.viewers, v)
	close(v.send)
	h.updateGaugeLocked()
}

func (h *Hub) updateGaugeLocked() {
	if h.gauge != nil {
		h.gauge.SetViewers(len(h.viewers))
	}
}

// renderLead renders the lead row fragment, hidden rows start transparent and shifted left
func (h *Hub) renderLead(lead domain.Lead, hidden bool) (string, error) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, templateLeadItem, leadView{Lead: lead, Hidden: hidden}); err != nil {
		return "", fmt.Errorf("render lead %s: %w", lead.ID, err)
	}
	return buf.String(), nil
}
