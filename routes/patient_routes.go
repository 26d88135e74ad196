package routes

import (
	"carelink_backend_go/middleware"
	"carelink_backend_go/services"
	"carelink_backend_go/storage"

	"github.com/gin-gonic/gin"
)

func SetupPatientRoutes(r *gin.Engine, store storage.Store) {
	patients := r.Group("/api/patients")
	patients.Use(middleware.RequireAuth())

	patients.POST("", func(c *gin.Context) {
		services.CreatePatient(c, store)
	})

	patients.GET("", func(c *gin.Context) {
		services.GetPatients(c, store)
	})

	patients.GET("/:patientId", func(c *gin.Context) {
		services.GetPatientById(c, store)
	})

	patients.PUT("/:patientId", func(c *gin.Context) {
		services.UpdatePatient(c, store)
	})

	patients.PATCH("/:patientId", func(c *gin.Context) {
		services.UpdatePatient(c, store)
	})

	patients.DELETE("/:patientId", func(c *gin.Context) {
		services.DeletePatient(c, store)
	})
}
