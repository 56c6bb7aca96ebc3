package main

import (
	"log"
	"time"

	"artisan-market/internal/cache"
	"artisan-market/internal/config"
	"artisan-market/internal/database"
	"artisan-market/internal/repository"
	"artisan-market/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	client := database.Connect(cfg.MongoURI)
	db := client.Database(cfg.MongoDB)

	cache.Init(2 * time.Minute)
	repo := repository.NewMongoProductRepository(db.Collection("products"))

	router := gin.Default()
	router.Use(cors.Default())
	routes.RegisterRoutes(router, repo, cfg.UploadDir)

	log.Println("🚀 Server running on port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server error:", err)
	}
}
