package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/kode4food/caravan/topic"

	"github.com/kode4food/flowcomm/internal/events"
	"github.com/kode4food/flowcomm/pkg/api"
	"github.com/kode4food/flowcomm/pkg/flow"
	"github.com/kode4food/flowcomm/pkg/log"
)

// Client represents a WebSocket client connection for event streaming
type Client struct {
	server   *Server
	conn     *websocket.Conn
	consumer topic.Consumer[*api.FlowEvent]
	filter   events.Filter
	minSeq   int64
}

const (
	writeWait          = 10 * time.Second
	pongWait           = 60 * time.Second
	pingPeriod         = (pongWait * 9) / 10
	maxMessageSize     = 512
	wsBufferSize       = 1024
	incomingBufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  wsBufferSize,
	WriteBufferSize: wsBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *Server) handleWebSocket(c *gin.Context) {
	// the consumer must exist before the client sees the handshake
	consumer := s.hub.NewConsumer()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		consumer.Close()
		slog.Error("WebSocket upgrade failed",
			log.Error(err))
		return
	}

	client := &Client{
		server:   s,
		conn:     conn,
		consumer: consumer,
		filter:   events.None,
	}
	s.registerWebSocket(client)

	go client.run()
}

// Close terminates the client connection
func (c *Client) Close() {
	_ = c.conn.Close()
}

func (c *Client) run() {
	defer func() {
		c.server.unregisterWebSocket(c)
		c.consumer.Close()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	incoming := make(chan []byte, incomingBufferSize)
	go c.readMessages(incoming)

	for {
		select {
		case message, ok := <-incoming:
			if !ok {
				return
			}
			c.handleSubscribe(message)

		case event, ok := <-c.consumer.Receive():
			if !ok {
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if !c.sendEventIfMatched(event) {
				return
			}

		case <-ticker.C:
			if !c.sendPing() {
				return
			}
		}
	}
}

func (c *Client) readMessages(incoming chan []byte) {
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			close(incoming)
			return
		}
		incoming <- message
	}
}

func (c *Client) handleSubscribe(message []byte) {
	var sub api.SubscribeRequest
	if err := json.Unmarshal(message, &sub); err != nil {
		slog.Error("Failed to parse WebSocket message",
			log.Error(err))
		return
	}

	if sub.Type != api.MessageSubscribe {
		return
	}

	c.filter = events.BuildFilter(&sub.Data)

	var flows *api.FlowsResponse
	c.server.withRegistry(func(r *flow.Registry) {
		// transitions publish while the registry lock is held, so the
		// snapshot and the sequence agree
		c.minSeq = c.server.hub.Sequence()
		flows = digestFlows(r)
	})

	msg := api.SubscribedResult{
		Type: api.MessageSubscribed,
		Data: flows,
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		slog.Error("WebSocket write failed",
			slog.String("context", "subscribed"),
			log.Error(err))
	}
}

func (c *Client) sendEventIfMatched(event *api.FlowEvent) bool {
	if event.Sequence <= c.minSeq || !c.filter(event) {
		return true
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(event); err != nil {
		slog.Error("WebSocket write failed",
			log.Error(err))
		return false
	}
	return true
}

func (c *Client) sendPing() bool {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	err := c.conn.WriteMessage(websocket.PingMessage, nil)
	return err == nil
}
