package ws

import (
	"encoding/json"
	"sync"
	"time"

	"arcade_hub/internal/game"
	"arcade_hub/internal/logger"
	"arcade_hub/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 30 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Client streams one round to one connection. Inbound frames are applied to
// the round; every state change is pushed back, followed by the outcome once
// the completion handoff has run.
type Client struct {
	UserID uuid.UUID
	Round  *service.Round
	Plays  *service.PlayService
	Conn   *websocket.Conn
	Send   chan []byte

	done        chan struct{}
	outcomeOnce sync.Once
}

func NewClient(userID uuid.UUID, round *service.Round, plays *service.PlayService, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Round:  round,
		Plays:  plays,
		Conn:   conn,
		Send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
}

// Run blocks until the connection drops. The round itself keeps running: the
// player may reconnect or continue over HTTP.
func (c *Client) Run() {
	go c.writePump()

	states, unsubscribe := c.Round.Subscribe()
	defer func() {
		unsubscribe()
		close(c.done)
	}()

	c.queue(Message{Type: MsgReady, Payload: ReadyPayload{
		PlayID: c.Round.ID.String(),
		Kind:   c.Round.Kind,
		Title:  c.Round.Game.Title,
	}})
	st := c.Round.Engine.State()
	c.queue(Message{Type: MsgState, Payload: st})
	if st.Status == game.StatusFinished {
		go c.sendOutcome()
	}

	go c.forward(states)
	c.readPump()
}

func (c *Client) forward(states <-chan game.State) {
	for st := range states {
		c.queue(Message{Type: MsgState, Payload: st})
		if st.Status == game.StatusFinished {
			go c.sendOutcome()
		}
	}
}

func (c *Client) sendOutcome() {
	c.outcomeOnce.Do(func() {
		select {
		case <-c.Round.Recorded():
		case <-c.done:
			return
		}
		c.queue(Message{Type: MsgOutcome, Payload: c.Round.Outcome()})
	})
}

//read
func (c *Client) readPump() {
	defer c.Conn.Close()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("ws read error", "user_id", c.UserID, "round_id", c.Round.ID, "error", err)
			}
			return
		}
		c.handle(raw)
	}
}

func (c *Client) handle(raw []byte) {
	var msg ActionPayload
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.queue(Message{Type: MsgError, Payload: ErrorPayload{Message: "malformed message"}})
		return
	}

	switch msg.Type {
	case MsgPing:
		c.queue(Message{Type: MsgPong})
	case MsgAction:
		// the new state reaches the client through the subscription
		if _, err := c.Plays.Apply(c.Round.ID, c.UserID, msg.toAction()); err != nil {
			c.queue(Message{Type: MsgError, Payload: ErrorPayload{Message: err.Error()}})
		}
	default:
		c.queue(Message{Type: MsgError, Payload: ErrorPayload{Message: "unknown message type " + msg.Type}})
	}
}

func (c *Client) queue(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("ws marshal failed", "type", msg.Type, "error", err)
		return
	}
	select {
	case c.Send <- data:
	case <-c.done:
	case <-time.After(writeWait):
		logger.Warn("ws send timeout", "user_id", c.UserID, "type", msg.Type)
	}
}

//write
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("ws write failed", "user_id", c.UserID, "error", err)
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
