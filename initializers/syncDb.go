package initializers

import (
	"log"

	"github.com/Kariqs/nebula-api/models"
)

func SyncDatabase() {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatal("Failed to sync database: ", err)
	}
	log.Println("Database synced successfully.")
}
