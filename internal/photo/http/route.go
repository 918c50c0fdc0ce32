package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers photo routes. Upload and listing hang off the
// booking the photo belongs to; raw content is served by photo ID.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	bookingGroup := g.Group("/bookings")
	bookingGroup.Use(authMiddleware)
	{
		bookingGroup.POST("/:id/photos", h.Upload)
		bookingGroup.GET("/:id/photos", h.ListByBooking)
	}

	photoGroup := g.Group("/photos")
	photoGroup.Use(authMiddleware)
	{
		photoGroup.GET("/:id", h.ServePhoto)
		photoGroup.GET("/:id/thumbnail", h.ServeThumbnail)
		photoGroup.DELETE("/:id", h.Delete)
	}
}
