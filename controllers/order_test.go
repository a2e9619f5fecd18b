package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Kariqs/nebula-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ordersResponse struct {
	Orders   []models.Order `json:"orders"`
	Metadata struct {
		Total       int64 `json:"total"`
		HasNextPage bool  `json:"hasNextPage"`
	} `json:"metadata"`
}

func createOrder(t *testing.T, c *testClient, items []map[string]any, total string) models.Order {
	t.Helper()
	body := withFields(customer(), map[string]any{"items": items})
	if total != "" {
		body["total"] = total
	}

	w := c.do(http.MethodPost, "/api/orders", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[models.Order](t, w)
}

func TestCreateOrderTotalEqualsSubmittedTotal(t *testing.T) {
	env := setupTest(t)
	shoe := env.seedProduct("ShoeA", "199.99")
	c := env.client()

	order := createOrder(t, c, []map[string]any{
		{"productId": shoe.ID, "quantity": 1, "size": "9"},
		{"productId": shoe.ID, "quantity": 2, "size": "10"},
	}, "599.97")

	assert.Equal(t, "599.97", order.Total.StringFixed(2))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Len(t, order.OrderItems, 2)

	stored := env.order(order.ID)
	assert.True(t, decimal.RequireFromString("599.97").Equal(stored.Total))
}

func TestCreateOrderIgnoresClientPrices(t *testing.T) {
	env := setupTest(t)
	shoe := env.seedProduct("ShoeA", "199.99")
	c := env.client()

	w := c.do(http.MethodPost, "/api/orders", withFields(customer(), map[string]any{
		"items": []map[string]any{{"productId": shoe.ID, "quantity": 1, "price": "0.01"}},
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown item fields are rejected")

	w = c.do(http.MethodPost, "/api/orders", withFields(customer(), map[string]any{
		"items": []map[string]any{{"productId": shoe.ID, "quantity": 1}},
		"total": "0.01",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, env.orderCount())
}

func TestCreateOrderRejectsUnknownFields(t *testing.T) {
	env := setupTest(t)
	shoe := env.seedProduct("ShoeA", "199.99")
	c := env.client()

	w := c.do(http.MethodPost, "/api/orders", withFields(customer(), map[string]any{
		"items":         []map[string]any{{"productId": shoe.ID, "quantity": 1}},
		"paymentStatus": "PAID",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, env.orderCount())
}

func TestCreateOrderValidation(t *testing.T) {
	env := setupTest(t)
	shoe := env.seedProduct("ShoeA", "199.99")
	c := env.client()

	tests := []struct {
		name string
		body map[string]any
		code int
	}{
		{"no items", withFields(customer(), map[string]any{"items": []map[string]any{}}), http.StatusBadRequest},
		{"zero quantity", withFields(customer(), map[string]any{"items": []map[string]any{{"productId": shoe.ID, "quantity": 0}}}), http.StatusBadRequest},
		{"bad email", withFields(customer(), map[string]any{"customerEmail": "nope", "items": []map[string]any{{"productId": shoe.ID, "quantity": 1}}}), http.StatusBadRequest},
		{"unknown product", withFields(customer(), map[string]any{"items": []map[string]any{{"productId": 999, "quantity": 1}}}), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := c.do(http.MethodPost, "/api/orders", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
	assert.Zero(t, env.orderCount())
}

func TestCreateOrderRejectsUnofferedSize(t *testing.T) {
	env := setupTest(t)
	shoe := env.seedProduct("Sized", "120.00", "8", "9")
	c := env.client()

	w := c.do(http.MethodPost, "/api/orders", withFields(customer(), map[string]any{
		"items": []map[string]any{{"productId": shoe.ID, "quantity": 1, "size": "12"}},
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Size is not available")
	assert.Zero(t, env.orderCount())

	order := createOrder(t, c, []map[string]any{{"productId": shoe.ID, "quantity": 1, "size": "9"}}, "")
	assert.Equal(t, "9", order.OrderItems[0].Size)
}

func TestOrderListingRequiresAdmin(t *testing.T) {
	env := setupTest(t)
	shoe := env.seedProduct("ShoeA", "199.99")
	first := createOrder(t, env.client(), []map[string]any{{"productId": shoe.ID, "quantity": 1}}, "")
	second := createOrder(t, env.client(), []map[string]any{{"productId": shoe.ID, "quantity": 2}}, "")

	assert.Equal(t, http.StatusUnauthorized, env.client().do(http.MethodGet, "/api/orders", nil).Code)

	user := env.loginAs("user@example.com", models.RoleUser)
	assert.Equal(t, http.StatusForbidden, user.do(http.MethodGet, "/api/orders", nil).Code)

	admin := env.loginAs("admin@example.com", models.RoleAdmin)
	w := admin.do(http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody[ordersResponse](t, w)
	require.Len(t, resp.Orders, 2)
	assert.Equal(t, int64(2), resp.Metadata.Total)
	assert.Equal(t, second.ID, resp.Orders[0].ID, "newest first")
	assert.Equal(t, first.ID, resp.Orders[1].ID)
	assert.Len(t, resp.Orders[0].OrderItems, 1)
}

func TestOrderListingPagination(t *testing.T) {
	env := setupTest(t)
	shoe := env.seedProduct("ShoeA", "199.99")
	for i := 0; i < 3; i++ {
		createOrder(t, env.client(), []map[string]any{{"productId": shoe.ID, "quantity": 1}}, "")
	}

	admin := env.loginAs("admin@example.com", models.RoleAdmin)
	resp := decodeBody[ordersResponse](t, admin.do(http.MethodGet, "/api/orders?page=1&limit=2", nil))
	assert.Len(t, resp.Orders, 2)
	assert.True(t, resp.Metadata.HasNextPage)

	resp = decodeBody[ordersResponse](t, admin.do(http.MethodGet, "/api/orders?page=2&limit=2", nil))
	assert.Len(t, resp.Orders, 1)
	assert.False(t, resp.Metadata.HasNextPage)
}

func TestAdminSetsAnyStatusFromAnyStatus(t *testing.T) {
	env := setupTest(t)
	shoe := env.seedProduct("ShoeA", "199.99")
	order := createOrder(t, env.client(), []map[string]any{{"productId": shoe.ID, "quantity": 1}}, "")
	admin := env.loginAs("admin@example.com", models.RoleAdmin)

	path := fmt.Sprintf("/api/orders/%d", order.ID)

	// PENDING straight to DELIVERED is accepted.
	w := admin.do(http.MethodPatch, path, map[string]any{"status": models.OrderStatusDelivered})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.OrderStatusDelivered, env.order(order.ID).Status)

	// And back out of a terminal state.
	for _, status := range []string{models.OrderStatusCancelled, models.OrderStatusPending, models.OrderStatusReturned, models.OrderStatusShipped} {
		w = admin.do(http.MethodPatch, path, map[string]any{"status": status})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, status, env.order(order.ID).Status)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	env := setupTest(t)
	shoe := env.seedProduct("ShoeA", "199.99")
	order := createOrder(t, env.client(), []map[string]any{{"productId": shoe.ID, "quantity": 1}}, "")
	admin := env.loginAs("admin@example.com", models.RoleAdmin)

	w := admin.do(http.MethodPatch, fmt.Sprintf("/api/orders/%d", order.ID), map[string]any{"status": "LOST_IN_SPACE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.OrderStatusPending, env.order(order.ID).Status)

	w = admin.do(http.MethodPatch, "/api/orders/999", map[string]any{"status": models.OrderStatusShipped})
	assert.Equal(t, http.StatusNotFound, w.Code)

	user := env.loginAs("user@example.com", models.RoleUser)
	w = user.do(http.MethodPatch, fmt.Sprintf("/api/orders/%d", order.ID), map[string]any{"status": models.OrderStatusShipped})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetOrderOwnership(t *testing.T) {
	env := setupTest(t)
	shoe := env.seedProduct("ShoeA", "199.99")

	owner := env.loginAs("owner@example.com", models.RoleUser)
	order := createOrder(t, owner, []map[string]any{{"productId": shoe.ID, "quantity": 1}}, "")
	path := fmt.Sprintf("/api/orders/%d", order.ID)

	assert.Equal(t, http.StatusOK, owner.do(http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusForbidden, env.loginAs("other@example.com", models.RoleUser).do(http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusOK, env.loginAs("admin@example.com", models.RoleAdmin).do(http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.client().do(http.MethodGet, path, nil).Code)
}

func TestDeleteOrder(t *testing.T) {
	env := setupTest(t)
	shoe := env.seedProduct("ShoeA", "199.99")
	order := createOrder(t, env.client(), []map[string]any{{"productId": shoe.ID, "quantity": 1}}, "")
	admin := env.loginAs("admin@example.com", models.RoleAdmin)
	path := fmt.Sprintf("/api/orders/%d", order.ID)

	require.Equal(t, http.StatusOK, admin.do(http.MethodDelete, path, nil).Code)
	assert.Zero(t, env.orderCount())
	assert.Equal(t, http.StatusNotFound, admin.do(http.MethodDelete, path, nil).Code)
}

func TestOrderAnalytics(t *testing.T) {
	env := setupTest(t)
	cheap := env.seedProduct("Cheap", "100.00")
	pricey := env.seedProduct("Pricey", "250.00")
	admin := env.loginAs("admin@example.com", models.RoleAdmin)

	a := createOrder(t, env.client(), []map[string]any{{"productId": cheap.ID, "quantity": 1}}, "")
	createOrder(t, env.client(), []map[string]any{{"productId": pricey.ID, "quantity": 1}}, "")
	c := createOrder(t, env.client(), []map[string]any{{"productId": pricey.ID, "quantity": 2}}, "")

	require.Equal(t, http.StatusOK, admin.do(http.MethodPatch, fmt.Sprintf("/api/orders/%d", a.ID), map[string]any{"status": models.OrderStatusDelivered}).Code)
	require.Equal(t, http.StatusOK, admin.do(http.MethodPatch, fmt.Sprintf("/api/orders/%d", c.ID), map[string]any{"status": models.OrderStatusReturned}).Code)

	w := admin.do(http.MethodGet, "/api/orders/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody[struct {
		TotalRevenue          decimal.Decimal `json:"totalRevenue"`
		TotalOrders           int             `json:"totalOrders"`
		AverageOrderValue     decimal.Decimal `json:"averageOrderValue"`
		TotalLoss             decimal.Decimal `json:"totalLoss"`
		OrdersByStatus        map[string]int  `json:"ordersByStatus"`
		UndeliveredOrderCount int             `json:"undeliveredOrderCount"`
	}](t, w)

	assert.Equal(t, "350.00", resp.TotalRevenue.StringFixed(2))
	assert.Equal(t, 3, resp.TotalOrders)
	assert.Equal(t, "175.00", resp.AverageOrderValue.StringFixed(2))
	assert.Equal(t, "500.00", resp.TotalLoss.StringFixed(2))
	assert.Equal(t, map[string]int{"DELIVERED": 1, "PENDING": 1, "RETURNED": 1}, resp.OrdersByStatus)
	assert.Equal(t, 1, resp.UndeliveredOrderCount)
}
