package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers organization-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *OrganizationHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	orgGroup := g.Group("/organizations")

	// === Authenticated Routes ===
	orgGroup.Use(authMiddleware)
	{
		orgGroup.GET("", h.List)
		orgGroup.GET("/:id", h.Get)
	}

	// === Administration Routes (System Admin Only) ===
	adminGroup := orgGroup.Group("")
	adminGroup.Use(adminMiddleware)
	{
		adminGroup.POST("", h.Create)
		adminGroup.PATCH("/:id", h.Update)
		adminGroup.DELETE("/:id", h.Delete)

		adminGroup.GET("/:id/members", h.ListMembers)
		adminGroup.POST("/:id/members", h.AddMember)
		adminGroup.PATCH("/:id/members/:user_id", h.UpdateMemberRole)
		adminGroup.DELETE("/:id/members/:user_id", h.RemoveMember)
	}
}
