package routes

import (
	"github.com/Kariqs/nebula-api/controllers"
	"github.com/Kariqs/nebula-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(api *gin.RouterGroup) {
	api.GET("/products", controllers.GetProducts)
	api.GET("/products/:id", controllers.GetProduct)

	admin := api.Group("/products", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("", controllers.CreateProduct)
		admin.PUT("/:id", controllers.UpdateProduct)
		admin.DELETE("/:id", controllers.DeleteProduct)
	}
}
