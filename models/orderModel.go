package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Fulfillment statuses. Any status may be set from any other.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
	OrderStatusReturned   = "RETURNED"
)

// Payment statuses, tracked apart from fulfillment.
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
)

var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturned,
}

type Order struct {
	gorm.Model
	UserID         *uint           `json:"userId" gorm:"index"`
	CustomerName   string          `json:"customerName"`
	CustomerEmail  string          `json:"customerEmail"`
	CustomerPhone  string          `json:"customerPhone"`
	Address        string          `json:"address"`
	Total          decimal.Decimal `json:"total" gorm:"type:decimal(12,2)"`
	Currency       string          `json:"currency"`
	Status         string          `json:"status" gorm:"index;size:32"`
	PaymentStatus  string          `json:"paymentStatus" gorm:"size:32"`
	GatewayOrderID string          `json:"gatewayOrderId" gorm:"index;size:64"`
	PaymentID      string          `json:"paymentId"`
	PaidAt         *time.Time      `json:"paidAt"`
	OrderItems     []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// MarkPaid records a verified payment. Fulfillment status is left alone.
func (o *Order) MarkPaid(paymentID string, at time.Time) {
	o.PaymentStatus = PaymentStatusPaid
	o.PaymentID = paymentID
	o.PaidAt = &at
}

// OrderItem is a snapshot of a line item at order time.
type OrderItem struct {
	gorm.Model
	OrderID   uint            `json:"orderId"`
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size"`
	Image     string          `json:"image"`
}

// Subtotal is price × quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CustomerInput is the customer and shipping part of an order request.
type CustomerInput struct {
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerEmail string `json:"customerEmail" binding:"required,email"`
	CustomerPhone string `json:"customerPhone" binding:"required"`
	Address       string `json:"address" binding:"required"`
}

type OrderItemInput struct {
	ProductID uint   `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
}

// OrderInput creates an order from explicit items. Total, when given, must
// match the total computed from catalog prices.
type OrderInput struct {
	CustomerInput
	Items []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	Total *decimal.Decimal `json:"total"`
}

// CheckoutInput creates an order from the session cart.
type CheckoutInput struct {
	CustomerInput
	Currency string           `json:"currency"`
	Total    *decimal.Decimal `json:"total"`
}

type OrderStatusInput struct {
	Status string `json:"status" binding:"required,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELLED RETURNED"`
}
