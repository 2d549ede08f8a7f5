package webchat

import (
	"context"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/GautamArjun/packrat-demo/internal/conversation"
)

// Frame types pushed to the widget.
const (
	FrameSession  = "session"
	FrameSnapshot = "snapshot"
	FrameTyping   = "typing"
	FrameMessage  = "message"
	FrameState    = "state"
	FrameError    = "error"
	FramePong     = "pong"
)

// OutboundFrame is a server-to-widget WebSocket frame.
type OutboundFrame struct {
	Type      string                 `json:"type"`
	SessionID string                 `json:"session_id,omitempty"`
	Typing    *bool                  `json:"typing,omitempty"`
	Message   *conversation.Message  `json:"message,omitempty"`
	From      conversation.State     `json:"from,omitempty"`
	State     conversation.State     `json:"state,omitempty"`
	Snapshot  *conversation.Snapshot `json:"snapshot,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Status    int                    `json:"status,omitempty"`
}

// FrameFor converts a session update into the frame the widget renders.
func FrameFor(u conversation.Update) OutboundFrame {
	frame := OutboundFrame{SessionID: u.SessionID}
	switch u.Kind {
	case conversation.UpdateTyping:
		typing := u.Typing
		frame.Type = FrameTyping
		frame.Typing = &typing
	case conversation.UpdateMessage:
		frame.Type = FrameMessage
		frame.Message = u.Message
	case conversation.UpdateState:
		frame.Type = FrameState
		frame.From = u.From
		frame.State = u.State
	}
	return frame
}

func errorFrame(err error) OutboundFrame {
	return OutboundFrame{Type: FrameError, Error: err.Error(), Status: statusFor(err)}
}

// wsConn serialises writes; session listeners and the read loop share it.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) send(frame OutboundFrame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return websocket.JSON.Send(c.conn, frame)
}

func (c *wsConn) listener() conversation.Listener {
	return func(_ context.Context, u conversation.Update) {
		_ = c.send(FrameFor(u))
	}
}
