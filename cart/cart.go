// Package cart holds a shopper's in-progress selection for one cart session.
package cart

import (
	"github.com/shopspring/decimal"
)

// Product is the catalog snapshot taken when a product is added to the cart.
type Product struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

// LineItem is one product+size+quantity entry. A line is identified by
// (ProductID, Size).
type LineItem struct {
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is price × quantity for the line.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	Items  []LineItem `json:"items"`
	IsOpen bool       `json:"isOpen"`
}

// New returns an empty, closed cart.
func New() *Cart {
	return &Cart{Items: []LineItem{}}
}

func (c *Cart) find(productID uint, size string) int {
	for i, item := range c.Items {
		if item.ProductID == productID && item.Size == size {
			return i
		}
	}
	return -1
}

// AddItem increments the quantity of the matching line, or appends a new line
// with quantity 1.
func (c *Cart) AddItem(product Product, size string) LineItem {
	if i := c.find(product.ID, size); i >= 0 {
		c.Items[i].Quantity++
		return c.Items[i]
	}

	item := LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Size:      size,
		Quantity:  1,
	}
	c.Items = append(c.Items, item)
	return item
}

// RemoveItem deletes the matching line. It reports whether a line was removed.
func (c *Cart) RemoveItem(productID uint, size string) bool {
	i := c.find(productID, size)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

func (c *Cart) Clear() {
	c.Items = []LineItem{}
}

// Total is recomputed on every call.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (c *Cart) Toggle() bool {
	c.IsOpen = !c.IsOpen
	return c.IsOpen
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}
