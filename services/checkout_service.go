package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/wildeats-cart/cart"
	"github.com/yeremiapane/wildeats-cart/models"
	"github.com/yeremiapane/wildeats-cart/money"
	"gorm.io/gorm"
)

// Order status
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

var (
	ErrShopNotOperational = errors.New("shop is not accepting orders")
	ErrItemUnavailable    = errors.New("menu item is unavailable")
	ErrOrderNotFound      = errors.New("order not found")
)

// CheckoutService turns a session's cart into orders, one per shop.
type CheckoutService struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

func NewCheckoutService(db *gorm.DB, log logrus.FieldLogger) *CheckoutService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CheckoutService{db: db, log: log}
}

// PlaceOrder submits the provider's cart. All orders are written in a single
// transaction and the cart is cleared only after it commits; on any error the
// cart is left as it was.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string, provider *cart.Provider, notes string) ([]models.Order, error) {
	var placed []models.Order
	err := provider.Checkout(ctx, func(ctx context.Context, snap cart.Snapshot) error {
		if snap.IsEmpty() {
			return cart.ErrEmptyCartCheckout
		}
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			orders := make([]models.Order, 0, 1)
			for _, group := range groupByShop(snap.Items) {
				order, err := s.createShopOrder(tx, sessionID, group, notes)
				if err != nil {
					return err
				}
				orders = append(orders, *order)
			}
			placed = orders
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	for _, o := range placed {
		s.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"order_id":   o.ID,
			"shop_id":    o.ShopID,
			"queue":      o.QueueNumber,
			"total":      o.TotalAmount.StringFixed(2),
		}).Info("order placed")
	}
	return placed, nil
}

// GetOrder loads an order with its items and their add-ons.
func (s *CheckoutService) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("OrderItems", orderByID).
		Preload("OrderItems.Addons", orderByID).
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrOrderNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

type shopGroup struct {
	shopID uint
	lines  []cart.CartItem
}

// groupByShop keeps the shops in the order they first appear in the cart.
func groupByShop(items []cart.CartItem) []shopGroup {
	var groups []shopGroup
	pos := make(map[int64]int)
	for _, item := range items {
		i, ok := pos[item.ShopID]
		if !ok {
			i = len(groups)
			pos[item.ShopID] = i
			groups = append(groups, shopGroup{shopID: uint(item.ShopID)})
		}
		groups[i].lines = append(groups[i].lines, item)
	}
	return groups
}

func (s *CheckoutService) createShopOrder(tx *gorm.DB, sessionID string, group shopGroup, notes string) (*models.Order, error) {
	var shop models.Shop
	if err := tx.First(&shop, group.shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: shop %d no longer exists", ErrShopNotOperational, group.shopID)
		}
		return nil, err
	}
	if !shop.Operational() {
		return nil, fmt.Errorf("%w: %s", ErrShopNotOperational, shop.Name)
	}

	lines, err := priceLines(tx, shop, group.lines)
	if err != nil {
		return nil, err
	}

	queue, err := nextQueueNumber(tx, shop.ID, time.Now())
	if err != nil {
		return nil, err
	}

	order := models.Order{
		SessionID:   sessionID,
		ShopID:      shop.ID,
		Status:      OrderStatusPending,
		TotalAmount: cart.TotalPrice(lines).Decimal(),
		QueueNumber: queue,
		Notes:       strings.TrimSpace(notes),
		OrderItems:  make([]models.OrderItem, 0, len(lines)),
	}
	for _, line := range lines {
		order.OrderItems = append(order.OrderItems, orderItemFromLine(line))
	}

	if err := tx.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("create order for shop %d: %w", shop.ID, err)
	}
	return &order, nil
}

// priceLines rejects lines whose item is gone, moved to another shop, or
// currently unavailable, and lines whose variant, flavor or add-ons are no
// longer offered. The returned copies carry the current catalog names and prices.
func priceLines(tx *gorm.DB, shop models.Shop, lines []cart.CartItem) ([]cart.CartItem, error) {
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, uint(line.ItemID))
	}
	var items []models.MenuItem
	err := tx.Preload("Variants").
		Preload("Addons").
		Preload("Flavors").
		Where("id IN ?", ids).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.MenuItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	priced := make([]cart.CartItem, 0, len(lines))
	for _, line := range lines {
		item, ok := byID[uint(line.ItemID)]
		switch {
		case !ok:
			return nil, fmt.Errorf("%w: %s", cart.ErrItemNotFound, line.Name)
		case item.ShopID != shop.ID:
			return nil, fmt.Errorf("%w: %s does not belong to %s", cart.ErrInvalidItem, line.Name, shop.Name)
		case !item.IsAvailable:
			return nil, fmt.Errorf("%w: %s", ErrItemUnavailable, item.Name)
		}
		current, err := repriceLine(line, item)
		if err != nil {
			return nil, err
		}
		priced = append(priced, current)
	}
	return priced, nil
}

func repriceLine(line cart.CartItem, item *models.MenuItem) (cart.CartItem, error) {
	opts := optionsOf(item)
	out := line.Clone()
	out.Name = item.Name
	out.BasePrice = money.FromDecimal(item.Price)

	if line.Variant != nil {
		v, ok := findVariant(opts.Variants, line.Variant.ID)
		if !ok {
			return cart.CartItem{}, fmt.Errorf("%w: %s is no longer offered for %s", ErrUnknownModifier, line.Variant.Name, item.Name)
		}
		out.Variant = &v
	}
	if line.Flavor != nil {
		f, ok := findFlavor(opts.Flavors, line.Flavor.ID)
		if !ok {
			return cart.CartItem{}, fmt.Errorf("%w: %s is no longer offered for %s", ErrUnknownModifier, line.Flavor.Name, item.Name)
		}
		out.Flavor = &f
	}
	for i, a := range line.Addons {
		current, ok := findAddon(opts.Addons, a.ID)
		if !ok {
			return cart.CartItem{}, fmt.Errorf("%w: %s is no longer offered for %s", ErrUnknownModifier, a.Name, item.Name)
		}
		out.Addons[i] = current
	}
	return out, nil
}

// nextQueueNumber returns the next pickup number for the shop. Numbers restart
// every day.
func nextQueueNumber(tx *gorm.DB, shopID uint, now time.Time) (int, error) {
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	var last int
	err := tx.Model(&models.Order{}).
		Where("shop_id = ? AND created_at >= ?", shopID, startOfDay).
		Select("COALESCE(MAX(queue_number), 0)").
		Scan(&last).Error
	if err != nil {
		return 0, fmt.Errorf("queue number for shop %d: %w", shopID, err)
	}
	return last + 1, nil
}

func orderItemFromLine(line cart.CartItem) models.OrderItem {
	item := models.OrderItem{
		MenuItemID:      uint(line.ItemID),
		Name:            line.Name,
		Quantity:        line.Quantity,
		PriceAtPurchase: cart.LineUnitPrice(line).Decimal(),
		LineTotal:       cart.LineTotal(line).Decimal(),
		Notes:           line.Notes,
		Addons:          make([]models.OrderItemAddon, 0, len(line.Addons)),
	}
	if line.Variant != nil {
		id := uint(line.Variant.ID)
		item.VariantID = &id
		item.VariantName = line.Variant.Name
	}
	if line.Flavor != nil {
		id := uint(line.Flavor.ID)
		item.FlavorID = &id
		item.FlavorName = line.Flavor.Name
	}
	for _, a := range line.Addons {
		item.Addons = append(item.Addons, models.OrderItemAddon{
			AddonID: uint(a.ID),
			Name:    a.Name,
			Price:   a.Price.Decimal(),
		})
	}
	return item
}

// OrderTotal sums the totals of several orders.
func OrderTotal(orders []models.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalAmount)
	}
	return total
}
