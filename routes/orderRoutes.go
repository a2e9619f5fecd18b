package routes

import (
	"github.com/Kariqs/nebula-api/controllers"
	"github.com/Kariqs/nebula-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(api *gin.RouterGroup) {
	api.POST("/orders", middlewares.OptionalAuth(), controllers.CreateOrder)

	orders := api.Group("/orders", middlewares.RequireAuth())
	{
		orders.GET("/mine", controllers.GetMyOrders)
		orders.GET("/:id", controllers.GetOrder)

		orders.GET("", middlewares.RequireAdmin(), controllers.GetOrders)
		orders.GET("/analytics", middlewares.RequireAdmin(), controllers.GetOrderAnalytics)
		orders.PATCH("/:id", middlewares.RequireAdmin(), controllers.UpdateOrderStatus)
		orders.DELETE("/:id", middlewares.RequireAdmin(), controllers.DeleteOrder)
	}
}
