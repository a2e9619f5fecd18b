package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Kariqs/nebula-api/initializers"
	"github.com/Kariqs/nebula-api/middlewares"
	"github.com/Kariqs/nebula-api/models"
	"github.com/Kariqs/nebula-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	msgInvalidSignature     = "Invalid payment signature"
	msgPaymentVerified      = "Payment verified successfully"
	msgVerificationFailed   = "Payment verification failed"
	msgPaymentOrderMismatch = "Payment does not belong to this order"
	msgOrderAlreadyPaid     = "Order is already paid"
)

// createPaymentBody takes either a bare amount or an order to charge. With
// order_id the amount and currency come from the stored order.
type createPaymentBody struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	OrderID  uint            `json:"order_id"`
}

type verifyPaymentBody struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	OrderID           uint   `json:"order_id" binding:"required"`
}

// CreatePayment creates a processor order for an amount, or for a stored
// order which is then linked to the processor order.
func CreatePayment(ctx *gin.Context) {
	var body createPaymentBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidAmount)
		return
	}

	if body.OrderID != 0 {
		createOrderPayment(ctx, body)
		return
	}

	currency := body.Currency
	if currency == "" {
		currency = defaultCurrency()
	}

	gatewayOrder, err := initializers.Payments.CreateOrder(ctx.Request.Context(), body.Amount, currency)
	if err != nil {
		respondPaymentError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orderId":  gatewayOrder.ID,
		"amount":   gatewayOrder.Amount,
		"currency": gatewayOrder.Currency,
		"keyId":    initializers.Payments.KeyID(),
	})
}

func createOrderPayment(ctx *gin.Context, body createPaymentBody) {
	var order models.Order
	if err := initializers.DB.First(&order, body.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToCreatePayment)
		}
		return
	}

	if order.PaymentStatus == models.PaymentStatusPaid {
		sendErrorResponse(ctx, http.StatusBadRequest, msgOrderAlreadyPaid)
		return
	}
	if !body.Amount.IsZero() && !body.Amount.Equal(order.Total) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgTotalMismatch)
		return
	}

	currency := order.Currency
	if currency == "" {
		currency = defaultCurrency()
	}

	gatewayOrder, err := initializers.Payments.CreateOrder(ctx.Request.Context(), order.Total, currency)
	if err != nil {
		respondPaymentError(ctx, err)
		return
	}

	if err := initializers.DB.Model(&order).Update("gateway_order_id", gatewayOrder.ID).Error; err != nil {
		log.Println("Failed to link payment order:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToCreatePayment)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"orderId":      gatewayOrder.ID,
		"amount":       gatewayOrder.Amount,
		"currency":     gatewayOrder.Currency,
		"keyId":        initializers.Payments.KeyID(),
		"storeOrderId": order.ID,
	})
}

// VerifyPayment checks the processor signature and marks the order paid. A bad
// signature leaves the order untouched.
func VerifyPayment(ctx *gin.Context) {
	var body verifyPaymentBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if !initializers.Payments.VerifySignature(body.RazorpayOrderID, body.RazorpayPaymentID, body.RazorpaySignature) {
		log.Printf("Invalid payment signature for order %d", body.OrderID)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidSignature)
		return
	}

	var order models.Order
	if err := initializers.DB.Preload("OrderItems").First(&order, body.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgVerificationFailed)
		}
		return
	}

	// Only a payment for the processor order created for this order counts.
	if order.GatewayOrderID == "" || order.GatewayOrderID != body.RazorpayOrderID {
		sendErrorResponse(ctx, http.StatusBadRequest, msgPaymentOrderMismatch)
		return
	}

	if order.PaymentStatus != models.PaymentStatusPaid {
		order.MarkPaid(body.RazorpayPaymentID, time.Now())
		if err := initializers.DB.Model(&order).
			Select("payment_status", "payment_id", "paid_at").
			Updates(&order).Error; err != nil {
			log.Println("Failed to mark order paid:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgVerificationFailed)
			return
		}

		if utils.MailConfigured() {
			if err := utils.SendOrderConfirmation(order); err != nil {
				log.Println("Error sending order confirmation email:", err)
			}
		}
	}

	if err := initializers.Carts.Delete(ctx.Request.Context(), middlewares.CartSessionID(ctx)); err != nil {
		log.Println("Failed to clear cart after payment:", err)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"success": true,
		"message": msgPaymentVerified,
		"orderId": order.ID,
		"order":   order,
	})
}
