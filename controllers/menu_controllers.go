package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/wildeats-cart/services"
	"github.com/yeremiapane/wildeats-cart/utils"
)

type MenuController struct {
	Catalog *services.CatalogService
}

func NewMenuController(catalog *services.CatalogService) *MenuController {
	return &MenuController{Catalog: catalog}
}

func (mc *MenuController) ListShops(c *gin.Context) {
	shops, err := mc.Catalog.ListShops(c.Request.Context())
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of shops", shops)
}

func (mc *MenuController) ListMenuItems(c *gin.Context) {
	shopID, ok := uintParam(c, "shop_id")
	if !ok {
		return
	}
	items, err := mc.Catalog.ListMenuItems(c.Request.Context(), shopID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

func (mc *MenuController) GetMenuItem(c *gin.Context) {
	itemID, ok := uintParam(c, "item_id")
	if !ok {
		return
	}
	item, err := mc.Catalog.GetItem(c.Request.Context(), itemID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item", item)
}

// GetMenuItemOptions returns the variants, add-ons and flavors of an item.
func (mc *MenuController) GetMenuItemOptions(c *gin.Context) {
	itemID, ok := uintParam(c, "item_id")
	if !ok {
		return
	}
	opts, err := mc.Catalog.GetOptions(c.Request.Context(), itemID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item options", opts)
}

// uintParam parses a positive id path parameter, answering 400 when it is not one.
func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid "+name))
		return 0, false
	}
	return uint(id), true
}
