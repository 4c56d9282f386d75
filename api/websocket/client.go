package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/OldStager01/attrition-advisor/internal/advisor"
	"github.com/OldStager01/attrition-advisor/internal/logger"
	"github.com/OldStager01/attrition-advisor/pkg/config"
	"github.com/OldStager01/attrition-advisor/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Settings struct {
	WriteWait       time.Duration
	PongWait        time.Duration
	PingPeriod      time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	ClientBuffer    int
}

func NewSettings(cfg *config.WebSocketConfig) Settings {
	s := Settings{
		WriteWait:       10 * time.Second,
		PongWait:        60 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		ClientBuffer:    16,
	}
	if cfg != nil {
		if cfg.WriteTimeout > 0 {
			s.WriteWait = cfg.WriteTimeout
		}
		if cfg.PongTimeout > 0 {
			s.PongWait = cfg.PongTimeout
		}
		if cfg.PingInterval > 0 {
			s.PingPeriod = cfg.PingInterval
		}
		if cfg.MaxMessageSize > 0 {
			s.MaxMessageSize = cfg.MaxMessageSize
		}
		if cfg.ReadBufferSize > 0 {
			s.ReadBufferSize = cfg.ReadBufferSize
		}
		if cfg.WriteBufferSize > 0 {
			s.WriteBufferSize = cfg.WriteBufferSize
		}
		if cfg.ClientBuffer > 0 {
			s.ClientBuffer = cfg.ClientBuffer
		}
	}
	// Pings must go out before the peer's read deadline expires.
	if s.PingPeriod <= 0 || s.PingPeriod >= s.PongWait {
		s.PingPeriod = (s.PongWait * 9) / 10
	}
	return s
}

// SessionAccess is the part of the form session the live channel drives.
type SessionAccess interface {
	Snapshot() advisor.Snapshot
	UpdateProfile(ctx context.Context, profile models.EmployeeProfile) advisor.Snapshot
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	session  SessionAccess
	settings Settings
	// closed is set by the hub, under hub.mu, when it closes send.
	closed bool
}

func NewClient(hub *Hub, conn *websocket.Conn, session SessionAccess) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, hub.settings.ClientBuffer),
		session:  session,
		settings: hub.settings,
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.settings.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.settings.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.settings.PongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Errorf("WebSocket error: %v", err)
			}
			break
		}

		var msg IncomingMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.reply(NewErrorMessage("malformed message"))
			continue
		}
		c.handleMessage(&msg)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(c.settings.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.settings.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One JSON document per frame so the page can parse each directly.
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.settings.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg *IncomingMessage) {
	switch msg.Type {
	case IncomingProfileUpdate:
		if msg.Profile == nil {
			c.reply(NewErrorMessage("profile_update requires a profile"))
			return
		}
		snap := c.session.UpdateProfile(context.Background(), *msg.Profile)
		c.reply(NewSessionStateMessage(snap))
	case IncomingSync:
		c.reply(NewSessionStateMessage(c.session.Snapshot()))
	default:
		c.reply(NewErrorMessage(fmt.Sprintf("unknown message type %q", msg.Type)))
	}
}

func (c *Client) reply(msg *OutgoingMessage) {
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()

	if c.closed {
		logger.Debug("Reply to disconnected WebSocket client dropped")
		return
	}

	select {
	case c.send <- msg.JSON():
	default:
		logger.Warn("Client send channel full, dropping reply")
	}
}

// ServeWebSocket upgrades the request and attaches the page to the session.
func ServeWebSocket(hub *Hub, session SessionAccess) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  hub.settings.ReadBufferSize,
		WriteBufferSize: hub.settings.WriteBufferSize,
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.ErrorCtxf(c.Request.Context(), "WebSocket upgrade failed: %v", err)
			return
		}

		client := NewClient(hub, conn, session)
		hub.Register(client)

		go client.WritePump()
		go client.ReadPump()

		client.reply(NewSessionStateMessage(session.Snapshot()))
	}
}
