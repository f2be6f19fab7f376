package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/events")
	group.Use(authMiddleware, adminMiddleware)
	{
		group.GET("/bookings", h.Stream)
	}
}
