package ws

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"eduverse/pkg/interfaces"
	"eduverse/pkg/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Same-process HTML frontend; tighten if the app ever goes cross-origin.
		return true
	},
	HandshakeTimeout: 10 * time.Second,
}

// Router validates one inbound frame and republishes the resulting event(s)
// to the connection's group. Implemented per endpoint kind in internal/router;
// declared here to keep the dependency pointing outward.
type Router interface {
	Route(ctx context.Context, group string, frame []byte) error
}

// Handler owns the three WebSocket endpoints. Each connection joins exactly
// one group derived from its URL path parameters, stays a fan-out target for
// that group until it disconnects, and feeds its inbound frames to the
// endpoint's router.
type Handler struct {
	layer        interfaces.ChannelLayer
	chat         Router
	removal      Router
	notification Router

	pingInterval time.Duration
	readTimeout  time.Duration
}

// NewHandler creates a WebSocket handler publishing through layer.
func NewHandler(layer interfaces.ChannelLayer, chat, removal, notification Router, pingInterval, readTimeout time.Duration) *Handler {
	return &Handler{
		layer:        layer,
		chat:         chat,
		removal:      removal,
		notification: notification,
		pingInterval: pingInterval,
		readTimeout:  readTimeout,
	}
}

// Register mounts the three endpoints on m.
func (h *Handler) Register(m *mux.Router) {
	m.HandleFunc("/ws/chat/{room_id}/", h.HandleChat)
	m.HandleFunc("/ws/remove-student/{context_type}/{context_id}/", h.HandleRemoveStudent)
	m.HandleFunc("/ws/notifications-change/{context_type}/{context_id}/", h.HandleNotifications)
}

// HandleChat accepts a chat room connection. The group name is a pure
// function of room_id, so every client of the same room lands in the same
// group with no directory lookup.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["room_id"]
	if !types.IsValidRoomID(roomID) {
		http.Error(w, types.ErrInvalidRoomID.Error(), http.StatusBadRequest)
		return
	}

	h.accept(w, r, types.ChatGroup(roomID), ChatDispatcher{}, h.chat)
}

// HandleRemoveStudent accepts a removal-event connection scoped to a student,
// teacher or course group.
func (h *Handler) HandleRemoveStudent(w http.ResponseWriter, r *http.Request) {
	group, ok := h.contextGroup(w, r)
	if !ok {
		return
	}

	h.accept(w, r, group, RemovalDispatcher{}, h.removal)
}

// HandleNotifications accepts a notification connection scoped to a student,
// teacher or course group.
func (h *Handler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	group, ok := h.contextGroup(w, r)
	if !ok {
		return
	}

	h.accept(w, r, group, NotificationDispatcher{}, h.notification)
}

// contextGroup validates the {context_type}/{context_id} path parameters and
// derives the group name. Validation happens before the upgrade so malformed
// URLs get a proper HTTP status instead of a dead socket.
func (h *Handler) contextGroup(w http.ResponseWriter, r *http.Request) (string, bool) {
	vars := mux.Vars(r)
	contextType := vars["context_type"]
	contextID := vars["context_id"]

	if !types.IsValidContextType(contextType) {
		http.Error(w, types.ErrInvalidContextType.Error(), http.StatusBadRequest)
		return "", false
	}
	if !types.IsValidContextID(contextID) {
		http.Error(w, types.ErrInvalidContextID.Error(), http.StatusBadRequest)
		return "", false
	}

	return types.ContextGroup(contextType, contextID), true
}

// accept upgrades the request, joins the group and starts the read pump.
// Joining happens before any frame is read: the connection is a fan-out
// target for its group from the moment accept returns. No authentication is
// performed at this layer; it is assumed upstream.
func (h *Handler) accept(w http.ResponseWriter, r *http.Request, group string, dispatcher Dispatcher, router Router) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade failed for group %s: %v", group, err)
		return
	}

	wsConn := NewConnection(conn, group, dispatcher)
	h.layer.GroupAdd(group, wsConn)
	log.Printf("ws: connected: id=%s group=%s", wsConn.ID(), group)

	go h.readPump(wsConn, router)
}

// readPump reads frames until the socket dies and hands each text frame to
// the endpoint's router. Protocol errors, including malformed JSON, drop the
// frame with a warning and keep the connection open. Disconnect, clean or
// not, leaves the group exactly once.
func (h *Handler) readPump(conn *Connection, router Router) {
	defer func() {
		h.layer.GroupDiscard(conn.Group(), conn)
		_ = conn.Close()
		log.Printf("ws: disconnected: id=%s group=%s", conn.ID(), conn.Group())
	}()

	if err := conn.conn.SetReadDeadline(time.Now().Add(h.readTimeout)); err != nil {
		log.Printf("ws: failed to set read deadline: %v", err)
		return
	}
	conn.conn.SetPongHandler(func(string) error {
		return conn.conn.SetReadDeadline(time.Now().Add(h.readTimeout))
	})

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := conn.conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			case <-conn.ctx.Done():
				return
			}
		}
	}()

	for {
		messageType, data, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("ws: read error: id=%s: %v", conn.ID(), err)
			}
			return
		}

		if messageType != websocket.TextMessage {
			continue
		}

		if err := router.Route(conn.ctx, conn.Group(), data); err != nil {
			log.Printf("ws: dropping frame: id=%s group=%s: %v", conn.ID(), conn.Group(), err)
		}
	}
}
