package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers account routes: public auth endpoints, the
// current-user profile, and admin-only account management.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)

	g.GET("/me", authMiddleware, h.Me)

	users := g.Group("/users", authMiddleware, adminMiddleware)
	users.GET("", h.List)
	users.GET("/:id", h.Get)
	users.PATCH("/:id", h.Update)
}
