package commerce

import "context"

// CommerceClient is the widget's contract with the commerce service.
// Implementations return *Error for RPC failures so callers can
// surface the server message and branch on the canonical code.
type CommerceClient interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, shopID string) ([]*Product, error)
	ListProductVariants(ctx context.Context, productID string) ([]*ProductVariant, error)
	CreateCart(ctx context.Context, shopID, profileID string) (*Cart, error)
	AddCartLine(ctx context.Context, cartID, variantID string, quantity int64) (*Cart, error)
	RemoveCartLine(ctx context.Context, cartID, cartLineID string) (*Cart, error)
	CreateOrder(ctx context.Context, shopID, profileID string, lines []OrderLineInput) (*Order, error)
	CreateOrderFromCart(ctx context.Context, cartID, profileID, addressID string) (*Order, error)
}

// ProfileClient is the widget's contract with the profile service.
type ProfileClient interface {
	GetByID(ctx context.Context, id string) (*Profile, error)
	AddAddress(ctx context.Context, profileID string, address Address) (*Address, error)
}
