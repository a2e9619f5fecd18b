package main

import (
	"log"

	"github.com/Kariqs/nebula-api/initializers"
	"github.com/Kariqs/nebula-api/routes"
	"github.com/gin-gonic/gin"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
	initializers.EnsureAdmin()
	initializers.ConnectCartStore()
	initializers.SetupPayments()
	initializers.SetupUploader()
}

func main() {
	server := routes.SetupRouter(gin.Default())
	if initializers.LocalUploads() {
		server.Static(initializers.UploadPublicPath(), initializers.UploadDir())
	}

	if err := server.Run(); err != nil {
		log.Fatal(err)
	}
}
