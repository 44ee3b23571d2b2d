package ws_room

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/humanbelnik/swipematch/core/internal/model"
)

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan Event
	userID string
	roomID model.RoomID
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin checks happen at the gateway
	},
}

type Controller struct {
	hub *Hub

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithControllerLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func NewController(hub *Hub, opts ...ControllerOption) *Controller {
	c := &Controller{
		hub:    hub,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("rooms/:room_id/events/ws", c.serveWS)
}

// serveWS upgrades the connection and subscribes it to the room's
// event stream. Identity comes from the header or, for browser
// websocket clients that cannot set headers, the query string.
func (c *Controller) serveWS(ctx *gin.Context) {
	roomID := model.RoomID(ctx.Param("room_id"))

	userID := ctx.GetHeader("X-user-token")
	if userID == "" {
		userID = ctx.Query("user_token")
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed",
			slog.String("room_id", string(roomID)),
			slog.String("error", err.Error()))
		return
	}

	client := &Client{
		hub:    c.hub,
		conn:   conn,
		send:   make(chan Event, 8),
		userID: userID,
		roomID: roomID,
	}

	c.hub.register <- client

	go client.writeLoop()
	go client.readLoop()
}

// readLoop discards inbound frames; the stream is one-way. A read
// error means the peer is gone and triggers cleanup.
func (cl *Client) readLoop() {
	defer func() {
		cl.hub.unregister <- cl
		cl.conn.Close()
	}()

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (cl *Client) writeLoop() {
	defer cl.conn.Close()

	for event := range cl.send {
		if err := cl.conn.WriteJSON(event); err != nil {
			break
		}
	}
}
