// Package catalog holds the widget's in-memory view of the shop
// catalog and the fulfilment policy derived from it.
package catalog

import "github.com/antinvestor/shop-widget/commerce"

// Cache maps product ids to products and to their ordered variant
// lists. It is held by value inside the application state snapshot:
// mutations clone the affected map and leave prior snapshots untouched.
type Cache struct {
	Products map[string]*commerce.Product
	Variants map[string][]*commerce.ProductVariant
}

// NewCache returns an empty cache with initialised maps.
func NewCache() Cache {
	return Cache{
		Products: map[string]*commerce.Product{},
		Variants: map[string][]*commerce.ProductVariant{},
	}
}

// Product returns the cached product for id, or nil.
func (c Cache) Product(id string) *commerce.Product {
	return c.Products[id]
}

// VariantsOf returns the cached variant list for a product, in backend
// order. Nil when the product's variants were never fetched.
func (c Cache) VariantsOf(productID string) []*commerce.ProductVariant {
	return c.Variants[productID]
}

// FindVariant resolves a variant id by scanning every cached variant
// list. A cart can reference variants across several products loaded
// in the same session, so the lookup is cross-product.
func (c Cache) FindVariant(variantID string) *commerce.ProductVariant {
	for _, list := range c.Variants {
		for _, v := range list {
			if v.ID == variantID {
				return v
			}
		}
	}
	return nil
}

// ProductOfVariant resolves the product a variant belongs to, or nil
// when either the variant or its product is not cached.
func (c Cache) ProductOfVariant(variantID string) *commerce.Product {
	v := c.FindVariant(variantID)
	if v == nil {
		return nil
	}
	return c.Products[v.ProductID]
}

// WithProduct returns a cache whose product map is a clone of c's with
// p inserted. The variant map is shared unchanged.
func (c Cache) WithProduct(p *commerce.Product) Cache {
	products := make(map[string]*commerce.Product, len(c.Products)+1)
	for id, cached := range c.Products {
		products[id] = cached
	}
	products[p.ID] = p
	return Cache{Products: products, Variants: c.Variants}
}

// WithProducts returns a cache whose product map holds exactly ps,
// replacing whatever was cached before. The variant map is shared
// unchanged.
func (c Cache) WithProducts(ps []*commerce.Product) Cache {
	products := make(map[string]*commerce.Product, len(ps))
	for _, p := range ps {
		if p != nil {
			products[p.ID] = p
		}
	}
	return Cache{Products: products, Variants: c.Variants}
}

// WithVariantList returns a cache whose variant map is a clone of c's
// with the product's list replaced wholesale.
func (c Cache) WithVariantList(productID string, list []*commerce.ProductVariant) Cache {
	variants := make(map[string][]*commerce.ProductVariant, len(c.Variants)+1)
	for id, cached := range c.Variants {
		variants[id] = cached
	}
	variants[productID] = list
	return Cache{Products: c.Products, Variants: variants}
}
