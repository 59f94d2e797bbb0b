package widget

import (
	"github.com/antinvestor/shop-widget/catalog"
	"github.com/antinvestor/shop-widget/commerce"
	"github.com/antinvestor/shop-widget/money"
)

// CartItem is the display-ready join of a cart line with cached
// catalog data. Derived, never persisted.
type CartItem struct {
	LineID      string
	VariantID   string
	Quantity    int64
	VariantName string
	ProductName string
	Price       *money.Money
}

// placeholderVariantName is shown for lines whose variant is not in
// the catalog cache yet.
const placeholderVariantName = "Item"

// EnrichCartItems joins every cart line against the catalog cache, in
// cart order. Total over any input: a line whose variant is unresolved
// degrades to a placeholder item with a nil price instead of failing.
func EnrichCartItems(cart *commerce.Cart, cache catalog.Cache) []CartItem {
	if cart == nil || len(cart.Lines) == 0 {
		return nil
	}
	items := make([]CartItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		item := CartItem{
			LineID:      line.ID,
			VariantID:   line.ProductVariantID,
			Quantity:    int64(line.Quantity),
			VariantName: placeholderVariantName,
		}
		if v := cache.FindVariant(line.ProductVariantID); v != nil {
			item.VariantName = v.Name
			item.Price = v.Price
			if p := cache.Product(v.ProductID); p != nil {
				item.ProductName = p.Name
			}
		}
		items = append(items, item)
	}
	return items
}

// CartTotal sums item prices scaled by quantity, accumulating units
// and nanos independently before normalizing. Items with a nil price
// are skipped. The currency code comes from the last item carrying
// one; mixed currencies are not validated (known limitation inherited
// from the backend contract, which never mixes them within a shop).
func CartTotal(items []CartItem) money.Money {
	var units, nanos int64
	var currency string
	for _, item := range items {
		if item.Price == nil {
			continue
		}
		if item.Price.CurrencyCode != "" {
			currency = item.Price.CurrencyCode
		}
		units += item.Price.Units * item.Quantity
		nanos += int64(item.Price.Nanos) * item.Quantity
	}
	return money.Normalized(currency, units, nanos)
}

// CartCount is the badge count: the sum of item quantities.
func CartCount(items []CartItem) int64 {
	var n int64
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

// cartNeedsAddress reports whether any cart item resolves to a
// physical product.
func cartNeedsAddress(items []CartItem, cache catalog.Cache) bool {
	for _, item := range items {
		if catalog.RequiresAddress(cache.ProductOfVariant(item.VariantID)) {
			return true
		}
	}
	return false
}
