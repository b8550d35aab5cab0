package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yeremiapane/wildeats-cart/cart"
	"github.com/yeremiapane/wildeats-cart/models"
	"github.com/yeremiapane/wildeats-cart/money"
	"gorm.io/gorm"
)

// ErrUnknownModifier is returned when a selection names a variant, flavor or
// add-on the item does not offer.
var ErrUnknownModifier = errors.New("modifier not offered for this item")

// Options lists the modifiers an item offers, each ordered by id.
type Options struct {
	Variants []cart.Variant `json:"variants"`
	Addons   []cart.Addon   `json:"addons"`
	Flavors  []cart.Flavor  `json:"flavors"`
}

// Selection is what the shopper picked in the item dialog.
type Selection struct {
	ItemID    int64
	VariantID *int64
	FlavorID  *int64
	AddonIDs  []int64
	Notes     string
}

// CatalogService reads shops and menu items.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListShops returns approved shops, open or not.
func (s *CatalogService) ListShops(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	err := s.db.WithContext(ctx).
		Where("status = ?", models.ShopStatusActive).
		Order("name").
		Find(&shops).Error
	return shops, err
}

// ListMenuItems returns a shop's menu with its modifiers.
func (s *CatalogService) ListMenuItems(ctx context.Context, shopID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.db.WithContext(ctx).
		Preload("Variants", orderByID).
		Preload("Addons", orderByID).
		Preload("Flavors", orderByID).
		Where("shop_id = ?", shopID).
		Order("id").
		Find(&items).Error
	return items, err
}

// GetItem loads one menu item with its shop and modifiers.
func (s *CatalogService) GetItem(ctx context.Context, itemID uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.WithContext(ctx).
		Preload("Shop").
		Preload("Variants", orderByID).
		Preload("Addons", orderByID).
		Preload("Flavors", orderByID).
		First(&item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: menu item %d", cart.ErrItemNotFound, itemID)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetOptions returns the modifier lists for an item.
func (s *CatalogService) GetOptions(ctx context.Context, itemID uint) (*Options, error) {
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return optionsOf(item), nil
}

// Resolve turns a selection into a cart candidate, checking every chosen id
// against the item's own modifier lists.
func (s *CatalogService) Resolve(ctx context.Context, sel Selection) (cart.Candidate, error) {
	if sel.ItemID <= 0 {
		return cart.Candidate{}, fmt.Errorf("%w: menu item %d", cart.ErrItemNotFound, sel.ItemID)
	}
	item, err := s.GetItem(ctx, uint(sel.ItemID))
	if err != nil {
		return cart.Candidate{}, err
	}
	opts := optionsOf(item)

	var mods cart.ModifierSet
	if sel.VariantID != nil {
		v, ok := findVariant(opts.Variants, *sel.VariantID)
		if !ok {
			return cart.Candidate{}, fmt.Errorf("%w: variant %d", ErrUnknownModifier, *sel.VariantID)
		}
		mods.Variant = &v
	}
	if sel.FlavorID != nil {
		f, ok := findFlavor(opts.Flavors, *sel.FlavorID)
		if !ok {
			return cart.Candidate{}, fmt.Errorf("%w: flavor %d", ErrUnknownModifier, *sel.FlavorID)
		}
		mods.Flavor = &f
	}
	for _, id := range sel.AddonIDs {
		a, ok := findAddon(opts.Addons, id)
		if !ok {
			return cart.Candidate{}, fmt.Errorf("%w: add-on %d", ErrUnknownModifier, id)
		}
		mods.Addons = append(mods.Addons, a)
	}

	return cart.Candidate{
		ShopID:    int64(item.ShopID),
		ItemID:    int64(item.ID),
		ShopName:  item.Shop.Name,
		Name:      item.Name,
		BasePrice: money.FromDecimal(item.Price),
		Modifiers: mods.Normalize(),
		Notes:     strings.TrimSpace(sel.Notes),
	}, nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

func optionsOf(item *models.MenuItem) *Options {
	opts := &Options{
		Variants: make([]cart.Variant, 0, len(item.Variants)),
		Addons:   make([]cart.Addon, 0, len(item.Addons)),
		Flavors:  make([]cart.Flavor, 0, len(item.Flavors)),
	}
	for _, v := range item.Variants {
		opts.Variants = append(opts.Variants, cart.Variant{
			ID:              int64(v.ID),
			Name:            v.Name,
			AdditionalPrice: money.FromDecimal(v.AdditionalPrice),
		})
	}
	for _, a := range item.Addons {
		opts.Addons = append(opts.Addons, cart.Addon{
			ID:    int64(a.ID),
			Name:  a.Name,
			Price: money.FromDecimal(a.Price),
		})
	}
	for _, f := range item.Flavors {
		opts.Flavors = append(opts.Flavors, cart.Flavor{ID: int64(f.ID), Name: f.Name})
	}
	return opts
}

func findVariant(variants []cart.Variant, id int64) (cart.Variant, bool) {
	for _, v := range variants {
		if v.ID == id {
			return v, true
		}
	}
	return cart.Variant{}, false
}

func findFlavor(flavors []cart.Flavor, id int64) (cart.Flavor, bool) {
	for _, f := range flavors {
		if f.ID == id {
			return f, true
		}
	}
	return cart.Flavor{}, false
}

func findAddon(addons []cart.Addon, id int64) (cart.Addon, bool) {
	for _, a := range addons {
		if a.ID == id {
			return a, true
		}
	}
	return cart.Addon{}, false
}
