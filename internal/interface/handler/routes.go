package handler

import (
	"rental-service/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API routes on r
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.Use(RequestID())

	bookings := r.Group("/bookings")
	bookings.GET("/all", h.ListBookings)
	bookings.GET("/export", h.AuthRequired(), RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin), h.ExportBookings)

	properties := r.Group("/properties")
	properties.GET("/:id", h.GetProperty)
	properties.PUT("/:id", h.OptionalAuth(), h.UpdateProperty)
	properties.PATCH("/:id/local", h.AuthRequired(), RequireRole(entity.RoleAdmin, entity.RoleSuperAdmin), h.SaveLocalProperty)

	user := r.Group("/user", h.AuthRequired())
	user.GET("/profile", h.GetProfile)
	user.PUT("/profile", h.UpdateProfile)
	user.PUT("/password", h.ChangePassword)

	admin := r.Group("/admin", h.AuthRequired(), RequireRole(entity.RoleSuperAdmin))
	admin.GET("/sync-failures", h.SyncFailures)
}
