// Package commerce holds the wire types and client contracts for the
// commerce.v1 and profile.v1 services the storefront widget talks to.
package commerce

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/antinvestor/shop-widget/money"
)

// Int64 decodes protojson int64 fields, which arrive as quoted decimal
// strings from Connect backends and as bare numbers from other encoders.
type Int64 int64

func (i *Int64) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*i = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*i = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*i = Int64(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*i = Int64(n)
	return nil
}

func (i Int64) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(i), 10))
}

// FulfilmentType classifies how a product reaches the buyer.
type FulfilmentType int32

const (
	FulfilmentTypeUnspecified FulfilmentType = iota
	FulfilmentTypePhysical
	FulfilmentTypeDigital
	FulfilmentTypeNone
)

func (t FulfilmentType) String() string {
	switch t {
	case FulfilmentTypePhysical:
		return "FULFILMENT_TYPE_PHYSICAL"
	case FulfilmentTypeDigital:
		return "FULFILMENT_TYPE_DIGITAL"
	case FulfilmentTypeNone:
		return "FULFILMENT_TYPE_NONE"
	default:
		return "FULFILMENT_TYPE_UNSPECIFIED"
	}
}

// UnmarshalJSON accepts all three shapes the backends emit for the
// enum: the enum name, a digit string, or a bare number. Anything
// unrecognised decodes as unspecified.
func (t *FulfilmentType) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = FulfilmentTypeUnspecified
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = fulfilmentTypeFromString(s)
		return nil
	}
	var n int32
	if err := json.Unmarshal(b, &n); err != nil {
		*t = FulfilmentTypeUnspecified
		return nil
	}
	*t = clampFulfilmentType(n)
	return nil
}

func (t FulfilmentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func fulfilmentTypeFromString(s string) FulfilmentType {
	switch s {
	case "FULFILMENT_TYPE_PHYSICAL", "1":
		return FulfilmentTypePhysical
	case "FULFILMENT_TYPE_DIGITAL", "2":
		return FulfilmentTypeDigital
	case "FULFILMENT_TYPE_NONE", "3":
		return FulfilmentTypeNone
	default:
		return FulfilmentTypeUnspecified
	}
}

func clampFulfilmentType(n int32) FulfilmentType {
	if n < int32(FulfilmentTypeUnspecified) || n > int32(FulfilmentTypeNone) {
		return FulfilmentTypeUnspecified
	}
	return FulfilmentType(n)
}

// Product is a catalog item. Immutable once fetched; the widget caches
// it by id and never mutates it.
type Product struct {
	ID             string         `json:"id"`
	ShopID         string         `json:"shopId"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	MediaIDs       []string       `json:"mediaIds"`
	FulfilmentType FulfilmentType `json:"fulfilmentType"`
}

// ProductVariant is one purchasable variant of a product. The backend
// returns variants in display order; the first is the default selection.
type ProductVariant struct {
	ID            string       `json:"id"`
	ProductID     string       `json:"productId"`
	SKU           string       `json:"sku"`
	Name          string       `json:"name"`
	Price         *money.Money `json:"price"`
	StockQuantity Int64        `json:"stockQuantity"`
}

// Cart is server-owned; the widget never edits lines locally, it
// replaces the whole cart with the server's response after mutations.
type Cart struct {
	ID        string      `json:"id"`
	ShopID    string      `json:"shopId"`
	ProfileID string      `json:"profileId"`
	Lines     []*CartLine `json:"lines"`
}

// CartLine is one chosen variant and quantity within a cart.
type CartLine struct {
	ID               string `json:"id"`
	ProductVariantID string `json:"productVariantId"`
	Quantity         Int64  `json:"quantity"`
}

// Order is a placed order as returned by the commerce service.
type Order struct {
	ID          string       `json:"id"`
	OrderNumber string       `json:"orderNumber"`
	Total       *money.Money `json:"total"`
}

// OrderLineInput is one line of a direct order creation request.
type OrderLineInput struct {
	VariantID string `json:"variantId"`
	Quantity  Int64  `json:"quantity"`
}

// Address is a delivery address on a profile. Name, Country and City
// are required on submission; everything else is free text.
type Address struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Area        string `json:"area,omitempty"`
	Street      string `json:"street,omitempty"`
	HouseNumber string `json:"houseNumber,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
	Extra       string `json:"extra,omitempty"`
}

// Profile is the buyer profile holding saved addresses.
type Profile struct {
	ID        string    `json:"id"`
	Addresses []Address `json:"addresses"`
}
