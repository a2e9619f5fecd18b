package routes

import (
	"github.com/Kariqs/nebula-api/controllers"
	"github.com/Kariqs/nebula-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(api *gin.RouterGroup) {
	api.GET("/cart", controllers.GetCart)
	api.DELETE("/cart", controllers.ClearCart)
	api.POST("/cart/items", controllers.AddCartItem)
	api.DELETE("/cart/items", controllers.RemoveCartItem)
	api.POST("/cart/toggle", controllers.ToggleCart)
	api.POST("/checkout", middlewares.OptionalAuth(), controllers.Checkout)
}
