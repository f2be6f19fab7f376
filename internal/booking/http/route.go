package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(authMiddleware)
	{
		group.POST("", h.Create)
		group.GET("/mine", h.ListMine)
		group.GET("/availability", h.CheckAvailability)
		group.GET("/venues", h.ListVenues)
		group.GET("/:id", h.Get)
		group.PUT("/:id/cancel", h.Cancel)
	}

	admin := group.Group("")
	admin.Use(adminMiddleware)
	{
		admin.GET("", h.List)
		admin.PUT("/:id/status", h.Decide)
		admin.PUT("/:id/rollback", h.Rollback)
	}

	dashboard := g.Group("/dashboard")
	dashboard.Use(authMiddleware)
	{
		dashboard.GET("", h.Dashboard)
	}

	adminGroup := g.Group("/admin")
	adminGroup.Use(authMiddleware, adminMiddleware)
	{
		adminGroup.GET("/statistics", h.Statistics)
	}
}
