package webchat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/websocket"

	"github.com/GautamArjun/packrat-demo/internal/catalog"
	"github.com/GautamArjun/packrat-demo/internal/conversation"
	"github.com/GautamArjun/packrat-demo/pkg/logging"
)

const (
	maxEventBytes       = 64 << 10
	defaultHistoryLimit = 100
)

// Handler serves the booking chat over HTTP and WebSocket.
type Handler struct {
	registry *conversation.Registry
	catalog  *catalog.Catalog
	logger   *logging.Logger
}

// NewHandler creates a web chat handler.
func NewHandler(registry *conversation.Registry, cat *catalog.Catalog, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cat == nil {
		cat = catalog.Default()
	}
	return &Handler{registry: registry, catalog: cat, logger: logger}
}

// Routes registers the chat endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/sessions", h.CreateSession)
	r.Get("/sessions/{id}", h.GetSession)
	r.Post("/sessions/{id}/events", h.PostEvent)
	r.Get("/sessions/{id}/history", h.History)
	r.Get("/catalog/addons", h.AddOns)
	r.Get("/catalog/inventory", h.Inventory)
	r.Get("/ws", h.HandleWebSocket)
}

// EventResponse is returned for an accepted event.
type EventResponse struct {
	SessionID string                 `json:"session_id"`
	From      conversation.State     `json:"from"`
	State     conversation.State     `json:"state"`
	Messages  []conversation.Message `json:"messages"`
}

// CreateSession opens a conversation and returns it after the greeting.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := h.registry.Create()
	if _, err := sess.Start(context.WithoutCancel(r.Context())); err != nil {
		h.logger.Error("webchat: failed to start session", "session_id", sess.ID(), "error", err)
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

// GetSession returns the session snapshot.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// PostEvent applies one widget event and returns the messages it produced.
func (h *Handler) PostEvent(w http.ResponseWriter, r *http.Request) {
	sess, err := h.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrInvalidEvent)
		return
	}
	ev, err := h.decodeEvent(raw)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if ev == nil {
		writeJSON(w, http.StatusOK, OutboundFrame{Type: FramePong, SessionID: sess.ID()})
		return
	}

	// A client that gives up mid-sequence must not strand the session.
	res, err := sess.Submit(context.WithoutCancel(r.Context()), ev)
	if err != nil {
		h.logger.Warn("webchat: event not applied", "session_id", sess.ID(), "event", ev.Kind(), "error", err)
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, EventResponse{
		SessionID: sess.ID(),
		From:      res.From,
		State:     res.State,
		Messages:  nonNil(res.Messages),
	})
}

// History returns the mirrored transcript, falling back to the live log.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	limit := int64(defaultHistoryLimit)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			http.Error(w, `{"error":"limit must be a positive integer"}`, http.StatusBadRequest)
			return
		}
		limit = n
	}

	sess, sessErr := h.registry.Get(id)
	if store := h.registry.Transcripts(); store != nil {
		msgs, err := store.List(r.Context(), id, limit)
		if err != nil {
			h.logger.Error("webchat: failed to load history", "session_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if len(msgs) > 0 || sessErr == nil {
			writeJSON(w, http.StatusOK, map[string]any{"messages": nonNil(msgs)})
			return
		}
	}
	if sessErr != nil {
		writeError(w, statusFor(sessErr), sessErr)
		return
	}

	msgs := sess.Snapshot().Messages
	if int64(len(msgs)) > limit {
		msgs = msgs[int64(len(msgs))-limit:]
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": nonNil(msgs)})
}

// AddOns serves the add-on picker.
func (h *Handler) AddOns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"add_ons": catalog.AddOns()})
}

// Inventory serves the estimator item table and tier capacities.
func (h *Handler) Inventory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories":    catalog.InventoryCategories(),
		"tiers":         h.catalog.Tiers(),
		"volume_buffer": h.catalog.Buffer(),
	})
}

// HandleWebSocket upgrades to WebSocket and streams the session live.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	ws := &wsConn{conn: conn}

	fresh := false
	var sess *conversation.Session
	if id := r.URL.Query().Get("session"); id != "" {
		var err error
		if sess, err = h.registry.Get(id); err != nil {
			ws.send(errorFrame(err))
			return
		}
	} else {
		sess = h.registry.Create()
		fresh = true
	}

	ws.send(OutboundFrame{Type: FrameSession, SessionID: sess.ID()})
	snap := sess.Snapshot()
	ws.send(OutboundFrame{Type: FrameSnapshot, SessionID: sess.ID(), Snapshot: &snap})

	unsubscribe := sess.Subscribe(ws.listener())
	defer unsubscribe()

	// Replies keep flowing into the session if the socket drops mid-sequence.
	ctx := context.WithoutCancel(r.Context())
	h.logger.Info("webchat: connection opened", "session_id", sess.ID(), "fresh", fresh)

	if fresh {
		go h.submit(ctx, ws, sess, conversation.Started{})
	}

	for {
		var raw []byte
		if err := websocket.Message.Receive(conn, &raw); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", sess.ID(), "error", err)
			return
		}

		ev, err := h.decodeEvent(raw)
		if err != nil {
			ws.send(errorFrame(err))
			continue
		}
		if ev == nil {
			ws.send(OutboundFrame{Type: FramePong})
			continue
		}
		go h.submit(ctx, ws, sess, ev)
	}
}

func (h *Handler) submit(ctx context.Context, ws *wsConn, sess *conversation.Session, ev conversation.Event) {
	if _, err := sess.Submit(ctx, ev); err != nil {
		h.logger.Warn("webchat: event not applied", "session_id", sess.ID(), "event", ev.Kind(), "error", err)
		ws.send(errorFrame(err))
	}
}

// decodeEvent validates and converts a payload. A nil event means ping.
func (h *Handler) decodeEvent(raw []byte) (conversation.Event, error) {
	if err := ValidateEvent(raw); err != nil {
		return nil, err
	}
	var in InboundEvent
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, errors.Join(ErrInvalidEvent, err)
	}
	if in.Type == EventPing {
		return nil, nil
	}
	return in.ToConversationEvent(h.catalog)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidEvent):
		return http.StatusBadRequest
	case errors.Is(err, conversation.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, conversation.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, conversation.ErrBusy):
		return http.StatusTooManyRequests
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
