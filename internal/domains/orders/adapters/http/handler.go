// Package httpapi wires the gin transport to the orders service.
package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/go-order-service/internal/domains/orders/adapters/http/mapper"
	ordersapp "github.com/Apurer/go-order-service/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-order-service/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-order-service/internal/shared/errors"
)

// OrderAPI exposes the order pipeline over HTTP.
type OrderAPI struct {
	service ordersports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// NewRouter builds the gin engine with the order routes mounted.
func NewRouter(api OrderAPI) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.POST("/orders", api.CreateOrder)
	router.GET("/orders", api.PollOrders)
	router.GET("/orders/history", api.ListOrders)
	return router
}

// Post /orders
// Create an order and announce it to the broadcast channels
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	var payload orderhttpmapper.Order
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	if err := api.service.CreateOrder(c.Request.Context(), orderhttpmapper.ToDomainOrder(payload)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order created, message published to topic and event emitted to bus",
	})
}

// Get /orders
// Run one queue poll cycle and report how many notifications were seen
func (api *OrderAPI) PollOrders(c *gin.Context) {
	result, err := api.service.PollOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   fmt.Sprintf("%d Orders have been processed", result.Received),
		"received":  result.Received,
		"processed": result.Processed,
	})
}

// Get /orders/history
// List persisted orders
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrderList(orders))
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ordersapp.ErrSerialization), errors.Is(err, ordersapp.ErrPublish):
		apierrors.Respond(c, apierrors.ErrInternal.WithDetail("failed to create order"))
	case errors.Is(err, ordersapp.ErrTransport):
		apierrors.Respond(c, apierrors.ErrBadGateway.WithDetail("order queue unreachable"))
	default:
		apierrors.RespondError(c, err)
	}
}
