package routes

import (
	"github.com/Kariqs/nebula-api/controllers"
	"github.com/gin-gonic/gin"
)

func PaymentRoutes(api *gin.RouterGroup) {
	payment := api.Group("/payment")
	{
		payment.POST("/create", controllers.CreatePayment)
		payment.POST("/verify", controllers.VerifyPayment)
	}
}
