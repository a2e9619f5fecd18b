package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"

	"github.com/Kariqs/nebula-api/cart"
	"github.com/Kariqs/nebula-api/models"
	"github.com/Kariqs/nebula-api/payment"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const msgTotalMismatch = "order total does not match catalog prices"

// pricingError carries the response status for a line that cannot be priced.
type pricingError struct {
	status  int
	message string
}

func (e *pricingError) Error() string {
	return e.message
}

// priceItems snapshots every line from the catalog and returns the items with
// their server-computed total. Client-supplied prices are never used.
func priceItems(db *gorm.DB, inputs []models.OrderItemInput) ([]models.OrderItem, decimal.Decimal, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	total := decimal.Zero

	for _, in := range inputs {
		if in.Quantity < 1 {
			return nil, decimal.Zero, &pricingError{http.StatusBadRequest, "quantity must be at least 1"}
		}

		var product models.Product
		if err := db.First(&product, in.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, decimal.Zero, &pricingError{http.StatusNotFound, fmt.Sprintf("product %d not found", in.ProductID)}
			}
			return nil, decimal.Zero, err
		}

		if !product.InStock {
			return nil, decimal.Zero, &pricingError{http.StatusBadRequest, product.Name + " is out of stock"}
		}
		if len(product.Sizes) > 0 && !slices.Contains(product.Sizes, in.Size) {
			return nil, decimal.Zero, &pricingError{http.StatusBadRequest, msgInvalidSize}
		}

		item := models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  in.Quantity,
			Size:      in.Size,
			Image:     product.Image,
		}
		items = append(items, item)
		total = total.Add(item.Subtotal())
	}

	return items, total, nil
}

func cartItemInputs(c *cart.Cart) []models.OrderItemInput {
	inputs := make([]models.OrderItemInput, 0, len(c.Items))
	for _, item := range c.Items {
		inputs = append(inputs, models.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Size:      item.Size,
		})
	}
	return inputs
}

// totalMatches accepts a missing expectation.
func totalMatches(expected *decimal.Decimal, total decimal.Decimal) bool {
	return expected == nil || expected.Equal(total)
}

func defaultCurrency() string {
	if currency := os.Getenv("PAYMENT_CURRENCY"); currency != "" {
		return currency
	}
	return payment.DefaultCurrency
}

func newPendingOrder(customer models.CustomerInput, userID *uint, items []models.OrderItem, total decimal.Decimal, currency string) models.Order {
	return models.Order{
		UserID:        userID,
		CustomerName:  customer.CustomerName,
		CustomerEmail: customer.CustomerEmail,
		CustomerPhone: customer.CustomerPhone,
		Address:       customer.Address,
		Total:         total,
		Currency:      currency,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		OrderItems:    items,
	}
}
