package catalog

import "github.com/antinvestor/shop-widget/commerce"

// Classify returns the fulfilment type of a product; a nil product
// classifies as unspecified.
func Classify(p *commerce.Product) commerce.FulfilmentType {
	if p == nil {
		return commerce.FulfilmentTypeUnspecified
	}
	return p.FulfilmentType
}

// RequiresAddress reports whether buying the product needs a delivery
// address. Only physical fulfilment does.
func RequiresAddress(p *commerce.Product) bool {
	return Classify(p) == commerce.FulfilmentTypePhysical
}

// IsImmediatePurchase reports whether the product skips the cart
// entirely: no quantity stepper, single-click purchase.
func IsImmediatePurchase(p *commerce.Product) bool {
	return Classify(p) == commerce.FulfilmentTypeNone
}

// IsOutOfStock reports whether a variant cannot be bought. A missing
// variant counts as out of stock.
func IsOutOfStock(v *commerce.ProductVariant) bool {
	return v == nil || v.StockQuantity <= 0
}
