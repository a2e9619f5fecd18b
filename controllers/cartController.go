package controllers

import (
	"errors"
	"log"
	"net/http"
	"slices"

	"github.com/Kariqs/nebula-api/cart"
	"github.com/Kariqs/nebula-api/initializers"
	"github.com/Kariqs/nebula-api/middlewares"
	"github.com/Kariqs/nebula-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	msgFailedToLoadCart = "Failed to load cart"
	msgFailedToSaveCart = "Failed to save cart"
	msgOutOfStock       = "Product is out of stock"
	msgInvalidSize      = "Size is not available for this product"
)

type cartItemBody struct {
	ProductID uint   `json:"productId" binding:"required"`
	Size      string `json:"size"`
}

func cartBody(c *cart.Cart) gin.H {
	return gin.H{
		"items":  c.Items,
		"isOpen": c.IsOpen,
		"total":  c.Total(),
		"count":  c.Count(),
	}
}

// loadCart writes the error response itself when it returns false.
func loadCart(ctx *gin.Context) (*cart.Cart, bool) {
	c, err := initializers.Carts.Load(ctx.Request.Context(), middlewares.CartSessionID(ctx))
	if err != nil {
		log.Println("Cart load error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToLoadCart)
		return nil, false
	}
	return c, true
}

func saveCart(ctx *gin.Context, c *cart.Cart) bool {
	if err := initializers.Carts.Save(ctx.Request.Context(), middlewares.CartSessionID(ctx), c); err != nil {
		log.Println("Cart save error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToSaveCart)
		return false
	}
	return true
}

func GetCart(ctx *gin.Context) {
	c, ok := loadCart(ctx)
	if !ok {
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cartBody(c)})
}

func AddCartItem(ctx *gin.Context) {
	var body cartItemBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, body.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgProductNotFound)
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to retrieve product")
		}
		return
	}

	if !product.InStock {
		sendErrorResponse(ctx, http.StatusBadRequest, msgOutOfStock)
		return
	}
	if len(product.Sizes) > 0 && !slices.Contains(product.Sizes, body.Size) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidSize)
		return
	}

	c, ok := loadCart(ctx)
	if !ok {
		return
	}

	c.AddItem(cart.Product{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Image: product.Image,
	}, body.Size)

	if !saveCart(ctx, c) {
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": product.Name + " added to cart",
		"cart":    cartBody(c),
	})
}

// RemoveCartItem is a no-op for a line that is not in the cart.
func RemoveCartItem(ctx *gin.Context) {
	var body cartItemBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	c, ok := loadCart(ctx)
	if !ok {
		return
	}

	if c.RemoveItem(body.ProductID, body.Size) && !saveCart(ctx, c) {
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cartBody(c)})
}

func ClearCart(ctx *gin.Context) {
	if err := initializers.Carts.Delete(ctx.Request.Context(), middlewares.CartSessionID(ctx)); err != nil {
		log.Println("Cart delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToSaveCart)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cartBody(cart.New())})
}

func ToggleCart(ctx *gin.Context) {
	c, ok := loadCart(ctx)
	if !ok {
		return
	}

	c.Toggle()
	if !saveCart(ctx, c) {
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cartBody(c)})
}
