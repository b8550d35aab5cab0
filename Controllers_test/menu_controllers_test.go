package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListShopsAndMenu(t *testing.T) {
	app := setupApp(t)

	w, resp := app.do(t, http.MethodGet, "/shops", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var shops []struct {
		ID     uint   `json:"id"`
		Name   string `json:"name"`
		IsOpen bool   `json:"is_open"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &shops))
	require.Len(t, shops, 3)
	assert.Equal(t, "JHS Canteen", shops[0].Name)

	w, resp = app.do(t, http.MethodGet, fmt.Sprintf("/shops/%d/menu-items", shops[0].ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []struct {
		Name  string `json:"name"`
		Price string `json:"price"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Chicken Adobo", items[0].Name)

	w, _ = app.do(t, http.MethodGet, "/shops/abc/menu-items", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMenuItemOptions(t *testing.T) {
	app := setupApp(t)
	coffee := app.itemID(t, "Iced Coffee")

	w, resp := app.do(t, http.MethodGet, fmt.Sprintf("/menu-items/%d/options", coffee), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var opts struct {
		Variants []struct {
			Name            string `json:"name"`
			AdditionalPrice string `json:"additional_price"`
		} `json:"variants"`
		Addons  []map[string]interface{} `json:"addons"`
		Flavors []map[string]interface{} `json:"flavors"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &opts))
	require.Len(t, opts.Variants, 2)
	assert.Equal(t, "Large", opts.Variants[1].Name)
	assert.Equal(t, "20.00", opts.Variants[1].AdditionalPrice)
	assert.Len(t, opts.Addons, 2)
	assert.Empty(t, opts.Flavors)

	w, _ = app.do(t, http.MethodGet, fmt.Sprintf("/menu-items/%d", coffee), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = app.do(t, http.MethodGet, "/menu-items/9999/options", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, resp.Status)
}
