package http

import (
	"github.com/daterly/members-api/internal/delivery/http/handler"
	"github.com/daterly/members-api/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
)

// RoleMember is the minimum role required to browse the directory.
const RoleMember = "member"

type Router struct {
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

func NewRouter(
	userHandler *handler.UserHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		userHandler:    userHandler,
		authMiddleware: authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	api := router.Group("/api")
	{
		users := api.Group("/users")
		users.Use(r.authMiddleware.RequireAuth())
		{
			// Directory reads are gated on the member role.
			users.GET("", r.authMiddleware.RequireRole(RoleMember), r.userHandler.GetUsers)
			users.GET("/:username", r.authMiddleware.RequireRole(RoleMember), r.userHandler.GetUser)

			users.PUT("", r.userHandler.UpdateUser)
			users.POST("/add-photo", r.userHandler.AddPhoto)
			users.PUT("/set-main-photo/:photoId", r.userHandler.SetMainPhoto)
			users.DELETE("/delete-photo/:photoId", r.userHandler.DeletePhoto)
		}
	}

	return router
}
