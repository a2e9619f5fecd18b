package routes

import (
	"github.com/Kariqs/nebula-api/controllers"
	"github.com/Kariqs/nebula-api/middlewares"
	"github.com/gin-gonic/gin"
)

func UploadRoutes(api *gin.RouterGroup) {
	api.POST("/upload", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.UploadFile)
}
