package routes

import (
	"artisan-market/internal/handlers"
	"artisan-market/internal/repository"
	"artisan-market/internal/uploads"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine, repo repository.ProductRepository, uploadDir string) {
	h := handlers.NewProductHandler(repo, uploadDir)

	router.Static(uploads.URLPrefix, uploadDir)

	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.POST("/buy", h.BuyProducts)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
		products.PATCH("/:id/approve", h.ApproveProduct)
		products.PATCH("/:id/reject", h.RejectProduct)
		products.POST("/:id/rate", h.RateProduct)
	}
}
