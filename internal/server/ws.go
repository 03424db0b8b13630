package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/coder/websocket"

	"aimtrainer/internal/broadcast"
	"aimtrainer/internal/events"
	"aimtrainer/internal/records"
	"aimtrainer/internal/session"
)

// ClientMessage is the JSON structure received on the play socket.
type ClientMessage struct {
	Type     string          `json:"t"`
	Config   *session.Config `json:"cfg,omitempty"`
	TargetID int             `json:"id,omitempty"`
	X        float64         `json:"x,omitempty"`
	Y        float64         `json:"y,omitempty"`
	W        float64         `json:"w,omitempty"`
	H        float64         `json:"h,omitempty"`
}

// ServerMessage is the JSON structure sent to the play socket.
type ServerMessage struct {
	Type      string              `json:"t"`
	Snapshot  *session.Snapshot   `json:"s,omitempty"`
	Remaining int                 `json:"rem,omitempty"`
	Intense   bool                `json:"hot,omitempty"`
	Phase     string              `json:"ph,omitempty"`
	Sound     string              `json:"n,omitempty"`
	Record    *records.GameRecord `json:"rec,omitempty"`
	Error     string              `json:"err,omitempty"`
}

// Client represents one play-socket connection.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// WritePump reads from the Send channel and writes to the WebSocket connection.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	entry := s.Sessions.Get(r.PathValue("id"))
	if entry == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		fmt.Printf("[Handle:Play] Accept failed: %v\n", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closing")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	client := &Client{Conn: conn, Send: make(chan []byte, 32)}
	go client.WritePump(ctx)

	sub := entry.Broadcaster.Subscribe()
	defer entry.Broadcaster.Unsubscribe(sub)
	go forwardEvents(ctx, entry.Session, sub, client)

	// Push the initial state so the client can render before any event
	// fires.
	client.send(ServerMessage{Type: "state", Snapshot: snapshotPtr(entry.Session)})

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			client.send(ServerMessage{Type: "error", Error: "bad message"})
			continue
		}
		dispatch(entry.Session, msg, client)
	}
}

// dispatch routes one client message into the session engine.
func dispatch(sess *session.Session, msg ClientMessage, c *Client) {
	switch msg.Type {
	case "start":
		cfg := session.DefaultConfig()
		if msg.Config != nil {
			cfg = *msg.Config
		}
		if err := sess.Start(cfg); err != nil {
			c.send(ServerMessage{Type: "error", Error: err.Error()})
		}
	case "click":
		sess.Click(msg.X, msg.Y)
	case "move":
		sess.Move(msg.X, msg.Y)
	case "dragstart":
		sess.DragStart(msg.TargetID, msg.X, msg.Y)
	case "dragmove":
		sess.DragMove(msg.TargetID, msg.X)
	case "dragend":
		sess.DragEnd(msg.TargetID)
	case "resize":
		sess.Resize(msg.W, msg.H)
	case "stop":
		sess.Stop()
	case "reset":
		sess.Reset()
	default:
		c.send(ServerMessage{Type: "error", Error: "unknown message type"})
	}
}

// forwardEvents translates broadcaster events into wire messages. A
// dirty mark carries no payload; the fresh snapshot is taken here so
// coalesced marks still deliver current state.
func forwardEvents(ctx context.Context, sess *session.Session, sub chan broadcast.EventMessage, c *Client) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			switch ev.Event {
			case "state":
				c.send(ServerMessage{Type: "state", Snapshot: snapshotPtr(sess)})
			case "tick":
				if t, ok := ev.Data.(events.TickEvent); ok {
					c.send(ServerMessage{Type: "tick", Remaining: t.Remaining, Intense: t.Intense})
				}
			case "phase":
				if p, ok := ev.Data.(events.PhaseChangeEvent); ok {
					c.send(ServerMessage{Type: "phase", Phase: p.Phase})
				}
			case "sound":
				if snd, ok := ev.Data.(events.SoundEvent); ok {
					c.send(ServerMessage{Type: "sound", Sound: snd.Name})
				}
			case "summary":
				if sum, ok := ev.Data.(events.SummaryEvent); ok {
					rec := sum.Record
					c.send(ServerMessage{Type: "summary", Record: &rec})
				}
			}
		}
	}
}

// send marshals and queues one message without blocking; a full queue
// drops the message, the next state push catches the client up.
func (c *Client) send(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		fmt.Printf("[Play] Marshal error: %v\n", err)
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

func snapshotPtr(sess *session.Session) *session.Snapshot {
	snap := sess.Snapshot()
	return &snap
}
