package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/wildeats-cart/cart"
	"github.com/yeremiapane/wildeats-cart/middlewares"
	"github.com/yeremiapane/wildeats-cart/notify"
	"github.com/yeremiapane/wildeats-cart/services"
	"github.com/yeremiapane/wildeats-cart/utils"
)

type OrderController struct {
	Registry *cart.Registry
	Checkout *services.CheckoutService
	Hub      *notify.Hub
}

func NewOrderController(registry *cart.Registry, checkout *services.CheckoutService, hub *notify.Hub) *OrderController {
	return &OrderController{Registry: registry, Checkout: checkout, Hub: hub}
}

type CheckoutRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

// PlaceOrder checks out the session's cart. The cart is only emptied when
// every order was written.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	var req CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	sessionID := middlewares.SessionID(c)
	p := oc.Registry.Get(c.Request.Context(), sessionID)
	orders, err := oc.Checkout.PlaceOrder(c.Request.Context(), sessionID, p, req.Notes)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	if oc.Hub != nil {
		oc.Hub.BroadcastOrders(sessionID, orders)
	}

	refs := make([]string, 0, len(orders))
	for i := range orders {
		refs = append(refs, orders[i].Reference())
	}
	utils.RespondJSON(c, http.StatusCreated, "Order placed", gin.H{
		"orders":     orders,
		"references": refs,
		"total":      services.OrderTotal(orders).StringFixed(2),
	})
}

// GetOrder returns one of the session's orders. Orders of other sessions are
// reported as missing.
func (oc *OrderController) GetOrder(c *gin.Context) {
	orderID, ok := uintParam(c, "order_id")
	if !ok {
		return
	}
	order, err := oc.Checkout.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	if order.SessionID != middlewares.SessionID(c) {
		utils.RespondDomainError(c, services.ErrOrderNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order", order)
}
