package widget

import "github.com/antinvestor/shop-widget/commerce"

// Action is the closed set of inputs the dispatcher understands. One
// variant per user intent, each carrying only the fields that intent
// needs; the dispatcher switches over them exhaustively.
type Action interface {
	actionName() string
}

// Init (re-)bootstraps the widget from its configuration. Re-entrant:
// RETRY and a completed order both funnel back through it.
type Init struct{}

// SelectProduct loads a product and its variants and shows the detail
// screen.
type SelectProduct struct {
	ProductID string
}

// SelectVariant switches the selected variant on the detail screen.
type SelectVariant struct {
	Variant *commerce.ProductVariant
}

// SetQuantity requests a quantity, clamped to the selected variant's
// stock.
type SetQuantity struct {
	Quantity int64
}

// AddToCart adds the selected variant and quantity to the cart,
// creating the cart first when none exists.
type AddToCart struct{}

// RemoveFromCart removes one cart line server-side.
type RemoveFromCart struct {
	CartLineID string
}

// ToggleCart flips the cart sidebar.
type ToggleCart struct{}

// StartCheckout moves from the cart to the checkout screen, fetching
// delivery addresses when the cart holds physical goods.
type StartCheckout struct{}

// SelectAddress picks a delivery address and closes the address form.
type SelectAddress struct {
	AddressID string
}

// ShowAddressForm opens the new-address form.
type ShowAddressForm struct{}

// AddAddress validates and submits a new delivery address.
type AddAddress struct {
	Address commerce.Address
}

// PlaceOrder converts the cart into an order.
type PlaceOrder struct{}

// ImmediateOrder places a single-line order for the selected variant,
// bypassing the cart (NONE-fulfilment path).
type ImmediateOrder struct{}

// BackToGrid clears the selection and returns to the product grid.
type BackToGrid struct{}

// Retry re-runs Init after a load failure.
type Retry struct{}

func (Init) actionName() string            { return "INIT" }
func (SelectProduct) actionName() string   { return "SELECT_PRODUCT" }
func (SelectVariant) actionName() string   { return "SELECT_VARIANT" }
func (SetQuantity) actionName() string     { return "SET_QUANTITY" }
func (AddToCart) actionName() string       { return "ADD_TO_CART" }
func (RemoveFromCart) actionName() string  { return "REMOVE_FROM_CART" }
func (ToggleCart) actionName() string      { return "TOGGLE_CART" }
func (StartCheckout) actionName() string   { return "START_CHECKOUT" }
func (SelectAddress) actionName() string   { return "SELECT_ADDRESS" }
func (ShowAddressForm) actionName() string { return "SHOW_ADDRESS_FORM" }
func (AddAddress) actionName() string      { return "ADD_ADDRESS" }
func (PlaceOrder) actionName() string      { return "PLACE_ORDER" }
func (ImmediateOrder) actionName() string  { return "IMMEDIATE_ORDER" }
func (BackToGrid) actionName() string      { return "BACK_TO_GRID" }
func (Retry) actionName() string           { return "RETRY" }
