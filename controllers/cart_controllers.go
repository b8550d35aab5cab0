package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/wildeats-cart/cart"
	"github.com/yeremiapane/wildeats-cart/middlewares"
	"github.com/yeremiapane/wildeats-cart/money"
	"github.com/yeremiapane/wildeats-cart/services"
	"github.com/yeremiapane/wildeats-cart/utils"
)

type CartController struct {
	Registry *cart.Registry
	Catalog  *services.CatalogService
}

func NewCartController(registry *cart.Registry, catalog *services.CatalogService) *CartController {
	return &CartController{Registry: registry, Catalog: catalog}
}

type AddItemRequest struct {
	ItemID    int64   `json:"item_id" binding:"required"`
	VariantID *int64  `json:"variant_id"`
	FlavorID  *int64  `json:"flavor_id"`
	AddonIDs  []int64 `json:"addon_ids"`
	Quantity  *int    `json:"quantity"`
	Notes     string  `json:"notes" binding:"max=500"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// LineView is a cart line with its computed prices.
type LineView struct {
	cart.CartItem
	UnitPrice money.Amount `json:"unit_price"`
	LineTotal money.Amount `json:"line_total"`
}

// CartView is what the cart endpoints return.
type CartView struct {
	Items        []LineView   `json:"items"`
	TotalItems   int          `json:"total_items"`
	TotalPrice   money.Amount `json:"total_price"`
	TotalDisplay string       `json:"total_display"`
	Degraded     bool         `json:"degraded"`
}

func newCartView(snap cart.Snapshot, degraded bool) CartView {
	view := CartView{
		Items:        make([]LineView, 0, len(snap.Items)),
		TotalItems:   snap.TotalItems,
		TotalPrice:   snap.TotalPrice,
		TotalDisplay: snap.TotalPrice.Format(),
		Degraded:     degraded,
	}
	for _, item := range snap.Items {
		view.Items = append(view.Items, LineView{
			CartItem:  item,
			UnitPrice: cart.LineUnitPrice(item),
			LineTotal: cart.LineTotal(item),
		})
	}
	return view
}

func (cc *CartController) provider(c *gin.Context) *cart.Provider {
	return cc.Registry.Get(c.Request.Context(), middlewares.SessionID(c))
}

func (cc *CartController) GetCart(c *gin.Context) {
	p := cc.provider(c)
	utils.RespondJSON(c, http.StatusOK, "Cart", newCartView(p.Snapshot(), p.Degraded()))
}

// AddItem resolves the selection against the catalog, then adds it in one step.
func (cc *CartController) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	candidate, err := cc.Catalog.Resolve(c.Request.Context(), services.Selection{
		ItemID:    req.ItemID,
		VariantID: req.VariantID,
		FlavorID:  req.FlavorID,
		AddonIDs:  req.AddonIDs,
		Notes:     req.Notes,
	})
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	// The shopper gave up while options were loading; nothing is added.
	if err := c.Request.Context().Err(); err != nil {
		c.Abort()
		return
	}

	p := cc.provider(c)
	key, err := p.AddItem(c.Request.Context(), candidate, quantity)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item added to cart", gin.H{
		"key":  key,
		"cart": newCartView(p.Snapshot(), p.Degraded()),
	})
}

// UpdateItem replaces a line's quantity. Zero or less removes the line.
func (cc *CartController) UpdateItem(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("quantity is required"))
		return
	}

	p := cc.provider(c)
	p.UpdateQuantity(c.Request.Context(), c.Param("key"), *req.Quantity)
	utils.RespondJSON(c, http.StatusOK, "Cart updated", newCartView(p.Snapshot(), p.Degraded()))
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	p := cc.provider(c)
	p.RemoveItem(c.Request.Context(), c.Param("key"))
	utils.RespondJSON(c, http.StatusOK, "Item removed", newCartView(p.Snapshot(), p.Degraded()))
}

func (cc *CartController) ClearCart(c *gin.Context) {
	p := cc.provider(c)
	p.ClearCart(c.Request.Context())
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", newCartView(p.Snapshot(), p.Degraded()))
}
