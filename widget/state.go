// Package widget implements the storefront widget's application core:
// a copy-on-write state snapshot, the closed action set, and the
// dispatcher state machine that reconciles backend responses into the
// snapshot.
package widget

import (
	"github.com/antinvestor/shop-widget/catalog"
	"github.com/antinvestor/shop-widget/commerce"
)

// Screen names the view the widget is showing.
type Screen string

const (
	ScreenLoading  Screen = "loading"
	ScreenGrid     Screen = "grid"
	ScreenDetail   Screen = "detail"
	ScreenCheckout Screen = "checkout"
	ScreenError    Screen = "error"
)

// ToastType classifies a transient notification.
type ToastType string

const (
	ToastError   ToastType = "error"
	ToastSuccess ToastType = "success"
)

// State is one immutable snapshot of the whole widget. Every mutation
// replaces the snapshot wholesale; handlers never edit a snapshot's
// maps or slices in place, they build new ones.
type State struct {
	Screen Screen

	Catalog catalog.Cache

	SelectedProduct *commerce.Product
	SelectedVariant *commerce.ProductVariant
	Quantity        int64

	Cart      *commerce.Cart
	CartItems []CartItem
	CartOpen  bool

	Profile           *commerce.Profile
	Addresses         []commerce.Address
	SelectedAddressID string
	ShowAddressForm   bool
	AddressErrors     map[string]string

	ErrorMessage string

	ToastMessage string
	ToastType    ToastType
}

// NewState returns the snapshot the widget starts from.
func NewState() State {
	return State{
		Screen:        ScreenLoading,
		Catalog:       catalog.NewCache(),
		Quantity:      1,
		AddressErrors: map[string]string{},
		ToastType:     ToastError,
	}
}
