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

const msgCategoryNotFound = "Category not found"

func GetCategories(ctx *gin.Context) {
	var categories []models.Category
	if err := initializers.DB.Order("name asc").Find(&categories).Error; err != nil {
		log.Println("Error fetching categories:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

func CreateCategory(ctx *gin.Context) {
	var input models.CategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Category name is required")
		return
	}

	category := models.Category{Name: input.Name, Description: input.Description, Icon: input.Icon}
	if err := initializers.DB.Create(&category).Error; err != nil {
		log.Println("Error creating category:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create category")
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

func findCategory(ctx *gin.Context) (models.Category, bool) {
	var category models.Category

	categoryId, ok := parseID(ctx, "id")
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidID)
		return category, false
	}

	if err := initializers.DB.First(&category, categoryId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgCategoryNotFound)
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch category")
		}
		return category, false
	}
	return category, true
}

func UpdateCategory(ctx *gin.Context) {
	category, ok := findCategory(ctx)
	if !ok {
		return
	}

	var input models.CategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Category name is required")
		return
	}

	category.Name = input.Name
	category.Description = input.Description
	category.Icon = input.Icon
	if err := initializers.DB.Save(&category).Error; err != nil {
		log.Println("Error updating category:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update category")
		return
	}

	ctx.JSON(http.StatusOK, category)
}

// DeleteCategory leaves products that still carry the category name as they are.
func DeleteCategory(ctx *gin.Context) {
	category, ok := findCategory(ctx)
	if !ok {
		return
	}

	if err := initializers.DB.Delete(&category).Error; err != nil {
		log.Println("Error deleting category:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
