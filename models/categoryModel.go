package models

import "gorm.io/gorm"

// Category has no link to products beyond the name string a product carries.
type Category struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
