package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Kariqs/nebula-api/initializers"
	"github.com/Kariqs/nebula-api/middlewares"
	"github.com/Kariqs/nebula-api/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	msgOrderNotFound       = "Order not found"
	msgFailedToCreateOrder = "Failed to create order"
	msgFailedToFetchOrders = "Failed to fetch orders"
)

func respondPricingError(ctx *gin.Context, err error) {
	var pe *pricingError
	if errors.As(err, &pe) {
		sendErrorResponse(ctx, pe.status, pe.message)
		return
	}
	log.Println("Pricing error:", err)
	sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
}

func sessionUserID(ctx *gin.Context) *uint {
	if id, ok := middlewares.CurrentUserID(ctx); ok {
		return &id
	}
	return nil
}

// CreateOrder stores a pending order for explicit items. The total is always
// recomputed from catalog prices.
func CreateOrder(ctx *gin.Context) {
	var input models.OrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	items, total, err := priceItems(initializers.DB, input.Items)
	if err != nil {
		respondPricingError(ctx, err)
		return
	}

	if !totalMatches(input.Total, total) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgTotalMismatch)
		return
	}

	order := newPendingOrder(input.CustomerInput, sessionUserID(ctx), items, total, defaultCurrency())
	if err := initializers.DB.Create(&order).Error; err != nil {
		log.Println("Order creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToCreateOrder)
		return
	}

	ctx.JSON(http.StatusCreated, order)
}

// GetOrders lists all orders, newest first.
func GetOrders(ctx *gin.Context) {
	page, limit, offset := pagination(ctx, 15)

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Model(&models.Order{})
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query = query.Session(&gorm.Session{})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchOrders)
		return
	}

	var orders []models.Order
	result := query.Preload("OrderItems").
		Order("created_at " + sortOrder).
		Order("id " + sortOrder).
		Limit(limit).Offset(offset).
		Find(&orders)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchOrders)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"orders":   orders,
		"metadata": paginationMetadata(count, page, limit),
	})
}

func GetMyOrders(ctx *gin.Context) {
	userId, ok := middlewares.CurrentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var orders []models.Order
	if result := initializers.DB.Preload("OrderItems").
		Where("user_id = ?", userId).
		Order("created_at desc").Order("id desc").
		Find(&orders); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchOrders)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// GetOrder is visible to the order's owner and to admins.
func GetOrder(ctx *gin.Context) {
	orderId, ok := parseID(ctx, "id")
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	if err := initializers.DB.Preload("OrderItems").First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		} else {
			log.Println(err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order.")
		}
		return
	}

	if !middlewares.IsAdmin(ctx) {
		userId, _ := middlewares.CurrentUserID(ctx)
		if order.UserID == nil || *order.UserID != userId {
			sendErrorResponse(ctx, http.StatusForbidden, "Access denied")
			return
		}
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus sets any fulfillment status regardless of the current one.
func UpdateOrderStatus(ctx *gin.Context) {
	orderId, ok := parseID(ctx, "id")
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var orderStatusData models.OrderStatusInput
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order status")
		return
	}

	result := initializers.DB.Model(&models.Order{}).Where("id = ?", orderId).Update("status", orderStatusData.Status)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Order status updated successfully.",
		"status":  orderStatusData.Status,
	})
}

func DeleteOrder(ctx *gin.Context) {
	orderId, ok := parseID(ctx, "id")
	if !ok {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id.")
		return
	}

	var order models.Order
	if err := initializers.DB.First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		} else {
			log.Println(err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete order.")
		}
		return
	}

	if err := initializers.DB.Select("OrderItems").Delete(&order).Error; err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete order.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted successfully."})
}

func isLostStatus(status string) bool {
	return status == models.OrderStatusCancelled || status == models.OrderStatusReturned
}

// GetOrderAnalytics reports revenue over orders that were not cancelled or
// returned, and loss over those that were.
func GetOrderAnalytics(ctx *gin.Context) {
	var orders []models.Order
	if err := initializers.DB.Select("id", "total", "status").Find(&orders).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToFetchOrders)
		return
	}

	revenue, loss := decimal.Zero, decimal.Zero
	validOrders, undelivered := 0, 0
	byStatus := make(map[string]int)

	for _, order := range orders {
		byStatus[order.Status]++

		if isLostStatus(order.Status) {
			loss = loss.Add(order.Total)
			continue
		}

		validOrders++
		revenue = revenue.Add(order.Total)
		if order.Status != models.OrderStatusDelivered {
			undelivered++
		}
	}

	average := decimal.Zero
	if validOrders > 0 {
		average = revenue.Div(decimal.NewFromInt(int64(validOrders))).Round(2)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"totalRevenue":          revenue,
		"totalOrders":           len(orders),
		"averageOrderValue":     average,
		"totalLoss":             loss,
		"ordersByStatus":        byStatus,
		"undeliveredOrderCount": undelivered,
	})
}
