package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/newsdesk/newsroom-api/internal/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebsocketHandler upgrades GET /ws into a registered realtime connection.
type WebsocketHandler struct {
	registry *realtime.Registry
	log      zerolog.Logger
}

func NewWebsocketHandler(registry *realtime.Registry, log zerolog.Logger) *WebsocketHandler {
	return &WebsocketHandler{registry: registry, log: log}
}

// Serve upgrades the request and hands the connection to the registry. The
// connection's lifetime is owned by its pumps from here on.
func (h *WebsocketHandler) Serve(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Debug().Err(err).Msg("websocket upgrade failed")
		return nil // Upgrade already wrote the HTTP error
	}

	client := realtime.NewClient(h.registry, conn, h.log)
	h.registry.Register(client)

	go client.WritePump()
	go client.ReadPump()

	return nil
}
