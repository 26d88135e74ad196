package routes

import (
	"carelink_backend_go/services"
	"carelink_backend_go/storage"

	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(r *gin.Engine, store storage.Store) {
	r.POST("/api/auth/register", func(c *gin.Context) {
		services.RegisterUser(c, store)
	})

	r.POST("/api/auth/login", func(c *gin.Context) {
		services.LoginUser(c, store)
	})

	r.POST("/api/auth/refresh", func(c *gin.Context) {
		services.RefreshToken(c, store)
	})
}
