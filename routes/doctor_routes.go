package routes

import (
	"carelink_backend_go/middleware"
	"carelink_backend_go/services"
	"carelink_backend_go/storage"

	"github.com/gin-gonic/gin"
)

func SetupDoctorRoutes(r *gin.Engine, store storage.Store) {
	doctors := r.Group("/api/doctors")
	doctors.Use(middleware.RequireAuth())

	doctors.POST("", func(c *gin.Context) {
		services.CreateDoctor(c, store)
	})

	doctors.GET("", func(c *gin.Context) {
		services.GetAllDoctors(c, store)
	})

	// Registered before :doctorId so the literal paths win.
	doctors.GET("/available", func(c *gin.Context) {
		services.GetAvailableDoctors(c, store)
	})

	doctors.GET("/by_specialization", func(c *gin.Context) {
		services.GetDoctorsBySpecialization(c, store)
	})

	doctors.GET("/:doctorId", func(c *gin.Context) {
		services.GetDoctorById(c, store)
	})

	doctors.PUT("/:doctorId", func(c *gin.Context) {
		services.UpdateDoctor(c, store)
	})

	doctors.PATCH("/:doctorId", func(c *gin.Context) {
		services.UpdateDoctor(c, store)
	})

	doctors.DELETE("/:doctorId", func(c *gin.Context) {
		services.DeleteDoctor(c, store)
	})
}
