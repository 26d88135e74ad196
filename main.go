package main

import (
	"context"
	"log"
	"os"
	"time"

	"carelink_backend_go/routes"
	"carelink_backend_go/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	store, err := storage.NewPostgresStore(context.Background())
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer store.Close()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupUserRoutes(r, store)
	routes.SetupDoctorRoutes(r, store)
	routes.SetupPatientRoutes(r, store)
	routes.SetupMappingRoutes(r, store)

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8000"
	}
	r.Run(":" + port)
}
