package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string                      `json:"name"`
	Brand       string                      `json:"brand"`
	Price       decimal.Decimal             `json:"price" gorm:"type:decimal(10,2)"`
	Image       string                      `json:"image"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Description string                      `json:"description"`
	Category    string                      `json:"category" gorm:"index;size:191"`
	Sizes       datatypes.JSONSlice[string] `json:"sizes"`
	InStock     bool                        `json:"inStock"`
}

// ProductInput is the body accepted by product create and update.
type ProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Brand       string          `json:"brand"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Sizes       []string        `json:"sizes"`
	InStock     *bool           `json:"inStock"`
}

// Apply copies the input onto p. A missing primary image falls back to the
// first gallery image, and a missing gallery to the primary image.
func (in ProductInput) Apply(p *Product) {
	p.Name = in.Name
	p.Brand = in.Brand
	p.Price = in.Price
	p.Description = in.Description
	p.Category = in.Category
	p.Sizes = datatypes.JSONSlice[string](in.Sizes)

	p.Image = in.Image
	p.Images = datatypes.JSONSlice[string](in.Images)
	if p.Image == "" && len(in.Images) > 0 {
		p.Image = in.Images[0]
	}
	if len(in.Images) == 0 {
		p.Images = datatypes.JSONSlice[string]{}
		if in.Image != "" {
			p.Images = datatypes.JSONSlice[string]{in.Image}
		}
	}
	if p.Sizes == nil {
		p.Sizes = datatypes.JSONSlice[string]{}
	}

	p.InStock = true
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
}
