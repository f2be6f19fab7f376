package http

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusconnect/venue-booking-backend/internal/notify"
)

// keepAliveInterval spaces out comment frames so proxies do not close an
// otherwise idle stream.
const keepAliveInterval = 30 * time.Second

type Handler struct {
	hub *notify.Hub
}

func NewHandler(hub *notify.Hub) *Handler {
	return &Handler{hub: hub}
}

// Stream serves the Server-Sent Events feed of booking changes. The
// subscription lives exactly as long as the HTTP connection.
func (h *Handler) Stream(c *gin.Context) {
	ch := h.hub.Subscribe()
	defer h.hub.Unsubscribe(ch)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("message", ev)
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", time.Now().UTC())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
