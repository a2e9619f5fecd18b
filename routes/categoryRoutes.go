package routes

import (
	"github.com/Kariqs/nebula-api/controllers"
	"github.com/Kariqs/nebula-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CategoryRoutes(api *gin.RouterGroup) {
	api.GET("/categories", controllers.GetCategories)

	admin := api.Group("/categories", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("", controllers.CreateCategory)
		admin.PUT("/:id", controllers.UpdateCategory)
		admin.DELETE("/:id", controllers.DeleteCategory)
	}
}
