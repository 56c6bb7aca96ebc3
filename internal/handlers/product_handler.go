package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"artisan-market/internal/cache"
	"artisan-market/internal/models"
	"artisan-market/internal/repository"
	"artisan-market/internal/uploads"
)

type ProductHandler struct {
	repo      repository.ProductRepository
	cache     *cache.Cache
	uploadDir string
}

func NewProductHandler(repo repository.ProductRepository, uploadDir string) *ProductHandler {
	return &ProductHandler{
		repo:      repo,
		cache:     cache.Get(),
		uploadDir: uploadDir,
	}
}

// ValidationError representa un error de validación
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ListProducts lista productos; solo los aprobados salvo admin=true (con caché)
func (h *ProductHandler) ListProducts(c *gin.Context) {
	admin := c.Query("admin") == "true"

	cacheKey := "products:list:public"
	if admin {
		cacheKey = "products:list:admin"
	}
	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := h.repo.FindAll(c.Request.Context(), admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	h.cache.Set(cacheKey, products)
	c.JSON(http.StatusOK, products)
}

// GetProduct obtiene un producto por ID (con caché)
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID := c.Param("id")
	cacheKey := fmt.Sprintf("product:%s", productID)

	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	product, err := h.repo.FindByID(c.Request.Context(), productID)
	if err != nil {
		h.respondError(c, err, "failed to get product")
		return
	}

	h.cache.Set(cacheKey, product)
	c.JSON(http.StatusOK, product)
}

// CreateProduct crea un nuevo producto pendiente de aprobación
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	product, err := h.parseProductForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if file, _ := c.FormFile("image"); file != nil {
		path, err := uploads.Save(c, file, h.uploadDir)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
			return
		}
		product.Image = path
	}

	if err := h.repo.Create(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}

	h.cache.DeleteByPrefix("products:list:")
	c.JSON(http.StatusCreated, product)
}

// ApproveProduct abre la puerta de aprobación
func (h *ProductHandler) ApproveProduct(c *gin.Context) {
	h.setApproval(c, true)
}

// RejectProduct cierra la puerta de aprobación
func (h *ProductHandler) RejectProduct(c *gin.Context) {
	h.setApproval(c, false)
}

func (h *ProductHandler) setApproval(c *gin.Context, approved bool) {
	productID := c.Param("id")

	product, err := h.repo.SetApproval(c.Request.Context(), productID, approved)
	if err != nil {
		h.respondError(c, err, "failed to update product")
		return
	}

	h.invalidate(productID)
	c.JSON(http.StatusOK, product)
}

// UpdateProduct actualiza parcialmente un producto
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID := c.Param("id")

	update, err := h.parseUpdateForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if file, _ := c.FormFile("image"); file != nil {
		path, err := uploads.Save(c, file, h.uploadDir)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
			return
		}
		update.Image = &path
	}

	if update.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid fields to update"})
		return
	}

	product, err := h.repo.Update(c.Request.Context(), productID, update)
	if err != nil {
		h.respondError(c, err, "failed to update product")
		return
	}

	h.invalidate(productID)
	c.JSON(http.StatusOK, product)
}

// DeleteProduct elimina un producto de forma permanente
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	if err := h.repo.Delete(c.Request.Context(), productID); err != nil {
		h.respondError(c, err, "failed to delete product")
		return
	}

	h.invalidate(productID)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// BuyProducts liquida una compra: descuenta stock y purga lo agotado
func (h *ProductHandler) BuyProducts(c *gin.Context) {
	var req struct {
		Cart []models.CartItem `json:"cart" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// line items run sequentially in input order; decrements already
	// persisted stay persisted if a later one fails
	touched := make([]string, 0, len(req.Cart))
	for _, item := range req.Cart {
		found, err := h.repo.DecrementQuantity(c.Request.Context(), item.ProductID, item.Quantity)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "purchase failed"})
			return
		}
		if found {
			touched = append(touched, item.ProductID)
		}
	}

	if _, err := h.repo.PurgeDepleted(c.Request.Context(), touched); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "purchase failed"})
		return
	}

	for _, id := range touched {
		h.cache.Delete(fmt.Sprintf("product:%s", id))
	}
	h.cache.DeleteByPrefix("products:list:")

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RateProduct reemplaza la calificación del usuario y agrega la nueva
func (h *ProductHandler) RateProduct(c *gin.Context) {
	productID := c.Param("id")

	var req struct {
		User  string  `json:"user"`
		Value float64 `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// a zero value counts as missing, same as the storefront expects
	if req.User == "" || req.Value == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user or value"})
		return
	}

	product, err := h.repo.Rate(c.Request.Context(), productID, req.User, req.Value)
	if err != nil {
		h.respondError(c, err, "failed to rate product")
		return
	}

	h.invalidate(productID)
	c.JSON(http.StatusOK, product)
}

// --- Métodos auxiliares ---

// parseProductForm valida los campos requeridos del formulario multipart
func (h *ProductHandler) parseProductForm(c *gin.Context) (*models.Product, error) {
	required := []string{"name", "price", "artisan", "quantity", "category"}
	values := make(map[string]string, len(required))
	for _, field := range required {
		value, ok := c.GetPostForm(field)
		if !ok {
			return nil, &ValidationError{Field: field, Message: field + " is required"}
		}
		values[field] = value
	}

	price, err := strconv.ParseFloat(values["price"], 64)
	if err != nil || price < 0 {
		return nil, &ValidationError{Field: "price", Message: "price must be a non-negative number"}
	}
	quantity, err := strconv.Atoi(values["quantity"])
	if err != nil || quantity < 0 {
		return nil, &ValidationError{Field: "quantity", Message: "quantity must be a non-negative integer"}
	}

	return &models.Product{
		Name:     values["name"],
		Price:    price,
		Artisan:  values["artisan"],
		Quantity: quantity,
		Category: values["category"],
	}, nil
}

// parseUpdateForm recoge solo los campos presentes en el formulario
func (h *ProductHandler) parseUpdateForm(c *gin.Context) (*models.ProductUpdate, error) {
	update := &models.ProductUpdate{}

	if value, ok := c.GetPostForm("name"); ok {
		update.Name = &value
	}
	if value, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(value, 64)
		if err != nil || price < 0 {
			return nil, &ValidationError{Field: "price", Message: "price must be a non-negative number"}
		}
		update.Price = &price
	}
	if value, ok := c.GetPostForm("quantity"); ok {
		quantity, err := strconv.Atoi(value)
		if err != nil || quantity < 0 {
			return nil, &ValidationError{Field: "quantity", Message: "quantity must be a non-negative integer"}
		}
		update.Quantity = &quantity
	}
	if value, ok := c.GetPostForm("category"); ok {
		update.Category = &value
	}

	return update, nil
}

// respondError traduce errores del repositorio a estados HTTP
func (h *ProductHandler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, repository.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// invalidate limpia el caché relacionado con un producto
func (h *ProductHandler) invalidate(productID string) {
	h.cache.Delete(fmt.Sprintf("product:%s", productID))
	h.cache.DeleteByPrefix("products:list:")
}
