package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Nebula Kicks API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/api/auth/signup" - Create user account
- POST "/api/auth/login" - Access user account
- POST "/api/auth/logout" - End session and clear cart

PRODUCT
- GET "/api/products" - Get products (page, limit, search, category)
- GET "/api/products/:id" - Get product by ID
- POST "/api/products" - Create product (admin)
- PUT "/api/products/:id" - Update product (admin)
- DELETE "/api/products/:id" - Delete product (admin)

CATEGORY
- GET "/api/categories" - Get categories
- POST "/api/categories" - Create category (admin)
- PUT "/api/categories/:id" - Update category (admin)
- DELETE "/api/categories/:id" - Delete category (admin)

CART
- GET "/api/cart" - View cart
- POST "/api/cart/items" - Add item
- DELETE "/api/cart/items" - Remove item
- DELETE "/api/cart" - Clear cart
- POST "/api/cart/toggle" - Toggle cart panel
- POST "/api/checkout" - Create order and payment order from the cart

ORDER
- POST "/api/orders" - Create a new order
- GET "/api/orders" - Retrieve all orders (admin)
- GET "/api/orders/mine" - Get orders for the signed in user
- GET "/api/orders/analytics" - Order analytics (admin)
- GET "/api/orders/:id" - Get order by ID
- PATCH "/api/orders/:id" - Update order status (admin)
- DELETE "/api/orders/:id" - Delete order by ID (admin)

PAYMENT
- POST "/api/payment/create" - Create payment order
- POST "/api/payment/verify" - Verify payment signature

UPLOAD
- POST "/api/upload" - Upload an image (admin)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
