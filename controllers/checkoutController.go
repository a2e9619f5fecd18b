package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Kariqs/nebula-api/initializers"
	"github.com/Kariqs/nebula-api/models"
	"github.com/Kariqs/nebula-api/payment"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	msgCartEmpty             = "Cart is empty"
	msgFailedToCreatePayment = "Failed to create payment order"
	msgInvalidAmount         = "Invalid amount"
)

// respondPaymentError maps payment bridge failures to responses.
func respondPaymentError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, payment.ErrInvalidAmount):
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidAmount)
	case errors.Is(err, payment.ErrGateway):
		log.Println("Payment gateway error:", err)
		sendErrorResponse(ctx, http.StatusBadGateway, msgFailedToCreatePayment)
	default:
		log.Println("Payment creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToCreatePayment)
	}
}

// Checkout turns the session cart into a pending order and a processor order
// in one step. The order row is only committed when the processor accepted the
// payment order, so a failed payment step leaves nothing behind.
func Checkout(ctx *gin.Context) {
	var input models.CheckoutInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, ok := loadCart(ctx)
	if !ok {
		return
	}
	if c.IsEmpty() {
		sendErrorResponse(ctx, http.StatusBadRequest, msgCartEmpty)
		return
	}

	items, total, err := priceItems(initializers.DB, cartItemInputs(c))
	if err != nil {
		respondPricingError(ctx, err)
		return
	}

	if !totalMatches(input.Total, total) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgTotalMismatch)
		return
	}

	currency := input.Currency
	if currency == "" {
		currency = defaultCurrency()
	}

	order := newPendingOrder(input.CustomerInput, sessionUserID(ctx), items, total, currency)

	var gatewayOrder *payment.Order
	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var err error
		gatewayOrder, err = initializers.Payments.CreateOrder(ctx.Request.Context(), total, currency)
		if err != nil {
			return err
		}

		order.GatewayOrderID = gatewayOrder.ID
		return tx.Model(&order).Update("gateway_order_id", gatewayOrder.ID).Error
	})

	if err != nil {
		if errors.Is(err, payment.ErrInvalidAmount) || errors.Is(err, payment.ErrGateway) {
			respondPaymentError(ctx, err)
			return
		}
		log.Println("Checkout error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToCreateOrder)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":         "Order created successfully. Complete the payment to confirm it.",
		"orderId":         order.ID,
		"total":           order.Total,
		"razorpayOrderId": gatewayOrder.ID,
		"amount":          gatewayOrder.Amount,
		"currency":        gatewayOrder.Currency,
		"keyId":           initializers.Payments.KeyID(),
	})
}
