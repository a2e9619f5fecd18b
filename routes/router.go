package routes

import (
	"os"
	"strings"
	"time"

	"github.com/Kariqs/nebula-api/middlewares"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func allowedOrigins() []string {
	raw := os.Getenv("ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:3000"}
	}

	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// SetupRouter builds the engine with every route registered.
func SetupRouter(server *gin.Engine) *gin.Engine {
	// Request bodies must match their schema exactly.
	binding.EnableDecoderDisallowUnknownFields = true

	server.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	server.Use(middlewares.CartSession())

	DefaultRoutes(server)
	api := server.Group("/api")
	AuthRoutes(api)
	ProductRoutes(api)
	CategoryRoutes(api)
	CartRoutes(api)
	OrderRoutes(api)
	PaymentRoutes(api)
	UploadRoutes(api)

	return server
}
