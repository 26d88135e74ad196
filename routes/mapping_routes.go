package routes

import (
	"carelink_backend_go/middleware"
	"carelink_backend_go/services"
	"carelink_backend_go/storage"

	"github.com/gin-gonic/gin"
)

func SetupMappingRoutes(r *gin.Engine, store storage.Store) {
	mappings := r.Group("/api/mappings")
	mappings.Use(middleware.RequireAuth())

	mappings.POST("", func(c *gin.Context) {
		services.CreateMapping(c, store)
	})

	mappings.GET("", func(c *gin.Context) {
		services.GetMappings(c, store)
	})

	mappings.GET("/active", func(c *gin.Context) {
		services.GetActiveMappings(c, store)
	})

	mappings.GET("/patient/:patientId", func(c *gin.Context) {
		services.GetMappingsByPatient(c, store)
	})

	mappings.DELETE("/:mappingId", func(c *gin.Context) {
		services.DeleteMapping(c, store)
	})
}
