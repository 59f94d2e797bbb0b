package catalog

import (
	"testing"

	"github.com/antinvestor/shop-widget/commerce"
)

func physicalProduct(id string) *commerce.Product {
	return &commerce.Product{ID: id, Name: "p-" + id, FulfilmentType: commerce.FulfilmentTypePhysical}
}

func variant(id, productID string, stock int64) *commerce.ProductVariant {
	return &commerce.ProductVariant{ID: id, ProductID: productID, Name: "v-" + id, StockQuantity: commerce.Int64(stock)}
}

func TestFindVariantScansAcrossProducts(t *testing.T) {
	c := NewCache().
		WithProduct(physicalProduct("p1")).
		WithProduct(physicalProduct("p2")).
		WithVariantList("p1", []*commerce.ProductVariant{variant("v1", "p1", 5)}).
		WithVariantList("p2", []*commerce.ProductVariant{variant("v2", "p2", 3), variant("v3", "p2", 0)})

	if got := c.FindVariant("v3"); got == nil || got.ProductID != "p2" {
		t.Fatalf("FindVariant(v3) = %+v", got)
	}
	if got := c.FindVariant("nope"); got != nil {
		t.Errorf("FindVariant(nope) = %+v, want nil", got)
	}
	if got := c.ProductOfVariant("v1"); got == nil || got.ID != "p1" {
		t.Errorf("ProductOfVariant(v1) = %+v", got)
	}
	if got := c.ProductOfVariant("nope"); got != nil {
		t.Errorf("ProductOfVariant(nope) = %+v, want nil", got)
	}
}

func TestWithProductDoesNotMutateReceiver(t *testing.T) {
	base := NewCache().WithProduct(physicalProduct("p1"))
	grown := base.WithProduct(physicalProduct("p2"))

	if len(base.Products) != 1 {
		t.Errorf("receiver grew: %d products", len(base.Products))
	}
	if len(grown.Products) != 2 {
		t.Errorf("result has %d products, want 2", len(grown.Products))
	}
}

func TestWithProductsReplacesWholesale(t *testing.T) {
	base := NewCache().WithProduct(physicalProduct("old"))
	next := base.WithProducts([]*commerce.Product{physicalProduct("p1"), physicalProduct("p2")})

	if next.Product("old") != nil {
		t.Error("expected old product to be dropped")
	}
	if next.Product("p1") == nil || next.Product("p2") == nil {
		t.Error("expected replacement products present")
	}
}

func TestClassifyNilProduct(t *testing.T) {
	if got := Classify(nil); got != commerce.FulfilmentTypeUnspecified {
		t.Errorf("Classify(nil) = %v", got)
	}
}

func TestRequiresAddressOnlyForPhysical(t *testing.T) {
	cases := []struct {
		ft   commerce.FulfilmentType
		want bool
	}{
		{commerce.FulfilmentTypeUnspecified, false},
		{commerce.FulfilmentTypePhysical, true},
		{commerce.FulfilmentTypeDigital, false},
		{commerce.FulfilmentTypeNone, false},
	}
	for _, c := range cases {
		p := &commerce.Product{FulfilmentType: c.ft}
		if got := RequiresAddress(p); got != c.want {
			t.Errorf("RequiresAddress(%v) = %v, want %v", c.ft, got, c.want)
		}
	}
}

func TestIsImmediatePurchase(t *testing.T) {
	if !IsImmediatePurchase(&commerce.Product{FulfilmentType: commerce.FulfilmentTypeNone}) {
		t.Error("NONE fulfilment should be immediate purchase")
	}
	if IsImmediatePurchase(&commerce.Product{FulfilmentType: commerce.FulfilmentTypeDigital}) {
		t.Error("DIGITAL fulfilment should not be immediate purchase")
	}
	if IsImmediatePurchase(nil) {
		t.Error("nil product should not be immediate purchase")
	}
}

func TestIsOutOfStock(t *testing.T) {
	if !IsOutOfStock(nil) {
		t.Error("nil variant should be out of stock")
	}
	if !IsOutOfStock(variant("v", "p", 0)) {
		t.Error("zero stock should be out of stock")
	}
	if !IsOutOfStock(variant("v", "p", -2)) {
		t.Error("negative stock should be out of stock")
	}
	if IsOutOfStock(variant("v", "p", 1)) {
		t.Error("positive stock should not be out of stock")
	}
}
