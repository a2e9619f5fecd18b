package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Kariqs/nebula-api/initializers"
	"github.com/Kariqs/nebula-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	msgProductNotFound = "Product not found"
	msgInvalidPrice    = "price must be greater than zero"
)

func bindProductInput(ctx *gin.Context) (models.ProductInput, bool) {
	var input models.ProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return input, false
	}
	if !input.Price.IsPositive() {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidPrice)
		return input, false
	}
	return input, true
}

func CreateProduct(ctx *gin.Context) {
	input, ok := bindProductInput(ctx)
	if !ok {
		return
	}

	var product models.Product
	input.Apply(&product)

	if err := initializers.DB.Create(&product).Error; err != nil {
		log.Println("Product creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create product")
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

func UpdateProduct(ctx *gin.Context) {
	productId, ok := parseID(ctx, "id")
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidID)
		return
	}

	input, ok := bindProductInput(ctx)
	if !ok {
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to retrieve product")
		}
		return
	}

	input.Apply(&product)
	if err := initializers.DB.Save(&product).Error; err != nil {
		log.Println("Product update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update product")
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func DeleteProduct(ctx *gin.Context) {
	productId, ok := parseID(ctx, "id")
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidID)
		return
	}

	result := initializers.DB.Delete(&models.Product{}, productId)
	if result.Error != nil {
		log.Println("Product delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func GetProducts(ctx *gin.Context) {
	page, limit, offset := pagination(ctx, 20)

	query := initializers.DB.Model(&models.Product{})
	if search := ctx.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	query = query.Session(&gorm.Session{})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch products")
		return
	}

	var products []models.Product
	if err := query.Order("created_at desc").Order("id desc").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch products")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"products": products,
		"metadata": paginationMetadata(count, page, limit),
	})
}

func GetProduct(ctx *gin.Context) {
	productId, ok := parseID(ctx, "id")
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to retrieve product")
		}
		return
	}

	ctx.JSON(http.StatusOK, product)
}
