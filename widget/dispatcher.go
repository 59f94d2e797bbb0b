package widget

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/antinvestor/shop-widget/commerce"
)

// toastDuration is how long a transient notification stays visible.
const toastDuration = 4 * time.Second

// Fallback messages when a failure carries no message of its own.
const (
	msgLoadProductsFailed = "Failed to load products"
	msgLoadProductFailed  = "Failed to load product"
	msgAddToCartFailed    = "Failed to add to cart"
	msgRemoveItemFailed   = "Failed to remove item"
	msgSaveAddressFailed  = "Failed to save address"
	msgPlaceOrderFailed   = "Failed to place order"
	msgNoConfig           = "No shop ID or product IDs provided"
	msgNoProfileService   = "Profile service not configured"
	msgSelectAddress      = "Please select a delivery address"
	msgAddedToCart        = "Added to cart"
	msgAddressSaved       = "Address saved"
	msgOrderPlaced        = "Order placed successfully!"
	msgFieldRequired      = "Required"
)

// Dispatcher is the widget's state machine. It receives Actions, runs
// the business logic against the current snapshot, calls the commerce
// and profile collaborators, and writes results back through the
// store. An action runs to completion on the caller's goroutine,
// including its RPCs; responses apply whenever they land, with no
// cancellation of superseded work.
type Dispatcher struct {
	store    *Store
	commerce commerce.CommerceClient
	profile  commerce.ProfileClient // nil when unconfigured
	cfg      Config
	log      *zap.Logger

	profileID string

	// Navigate receives the payment redirect URL after a successful
	// order when a payment URL is configured. Nil means log only.
	Navigate func(url string)

	toastTTL   time.Duration
	toastMu    sync.Mutex
	toastTimer *time.Timer
}

// NewDispatcher wires the state machine to its collaborators. profile
// may be nil when no profile service is configured.
func NewDispatcher(store *Store, api commerce.CommerceClient, profileAPI commerce.ProfileClient, cfg Config, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		store:     store,
		commerce:  api,
		profile:   profileAPI,
		cfg:       cfg,
		log:       log,
		profileID: cfg.ResolveProfileID(),
		toastTTL:  toastDuration,
	}
}

// Store exposes the dispatcher's store so renderers can subscribe.
func (d *Dispatcher) Store() *Store {
	return d.store
}

// Dispatch runs one action against the current state.
func (d *Dispatcher) Dispatch(ctx context.Context, action Action) {
	d.log.Info("dispatching action", zap.String("action", action.actionName()))

	switch a := action.(type) {
	case Init:
		d.handleInit(ctx)
	case SelectProduct:
		d.handleSelectProduct(ctx, a.ProductID)
	case SelectVariant:
		d.handleSelectVariant(a.Variant)
	case SetQuantity:
		d.handleSetQuantity(a.Quantity)
	case AddToCart:
		d.handleAddToCart(ctx)
	case RemoveFromCart:
		d.handleRemoveFromCart(ctx, a.CartLineID)
	case ToggleCart:
		d.store.Set(func(st *State) { st.CartOpen = !st.CartOpen })
	case StartCheckout:
		d.handleStartCheckout(ctx)
	case SelectAddress:
		d.store.Set(func(st *State) {
			st.SelectedAddressID = a.AddressID
			st.ShowAddressForm = false
		})
	case ShowAddressForm:
		d.store.Set(func(st *State) {
			st.ShowAddressForm = true
			st.AddressErrors = map[string]string{}
		})
	case AddAddress:
		d.handleAddAddress(ctx, a.Address)
	case PlaceOrder:
		d.handlePlaceOrder(ctx)
	case ImmediateOrder:
		d.handleImmediateOrder(ctx)
	case BackToGrid:
		d.store.Set(func(st *State) {
			st.SelectedProduct = nil
			st.SelectedVariant = nil
			st.Quantity = 1
			st.Screen = ScreenGrid
		})
	case Retry:
		d.handleInit(ctx)
	default:
		d.log.Warn("unhandled action", zap.String("action", action.actionName()))
	}
}

// ============================================================================
// Bootstrap and catalog loading
// ============================================================================

func (d *Dispatcher) handleInit(ctx context.Context) {
	ids := d.cfg.ProductIDList()

	switch {
	case len(ids) == 1:
		d.handleSelectProduct(ctx, ids[0])

	case len(ids) > 1:
		d.store.Set(func(st *State) { st.Screen = ScreenLoading })

		products := make([]*commerce.Product, len(ids))
		g, gctx := errgroup.WithContext(ctx)
		for i, id := range ids {
			i, id := i, id
			g.Go(func() error {
				p, err := d.commerce.GetProduct(gctx, id)
				if err != nil {
					return err
				}
				products[i] = p
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			d.failScreen(err, msgLoadProductsFailed)
			return
		}
		d.store.Set(func(st *State) {
			st.Catalog = st.Catalog.WithProducts(products)
			st.Screen = ScreenGrid
		})

	case d.cfg.ShopID != "":
		d.store.Set(func(st *State) { st.Screen = ScreenLoading })

		listed, err := d.commerce.ListProducts(ctx, d.cfg.ShopID)
		if err != nil {
			d.failScreen(err, msgLoadProductsFailed)
			return
		}
		d.store.Set(func(st *State) {
			st.Catalog = st.Catalog.WithProducts(listed)
		})
		// A shop that resolves to exactly one product skips the grid:
		// the visitor lands straight on the detail screen.
		if len(d.store.Get().Catalog.Products) == 1 {
			d.handleSelectProduct(ctx, firstProductID(listed))
			return
		}
		d.store.Set(func(st *State) { st.Screen = ScreenGrid })

	default:
		d.store.Set(func(st *State) {
			st.Screen = ScreenError
			st.ErrorMessage = msgNoConfig
		})
	}
}

func (d *Dispatcher) handleSelectProduct(ctx context.Context, productID string) {
	d.store.Set(func(st *State) { st.Screen = ScreenLoading })
	d.log.Info("selecting product", zap.String("product_id", productID))

	product := d.store.Get().Catalog.Product(productID)
	if product == nil {
		fetched, err := d.commerce.GetProduct(ctx, productID)
		if err != nil || fetched == nil {
			d.failScreen(err, msgLoadProductFailed)
			return
		}
		product = fetched
	}
	d.store.Set(func(st *State) {
		st.Catalog = st.Catalog.WithProduct(product)
		st.SelectedProduct = product
	})

	// Variants are refetched on every selection; only products cache
	// across selections.
	variants, err := d.commerce.ListProductVariants(ctx, product.ID)
	if err != nil {
		d.failScreen(err, msgLoadProductFailed)
		return
	}
	var selected *commerce.ProductVariant
	if len(variants) > 0 {
		selected = variants[0]
	}
	d.store.Set(func(st *State) {
		st.Catalog = st.Catalog.WithVariantList(product.ID, variants)
		st.SelectedVariant = selected
		st.Quantity = 1
		st.Screen = ScreenDetail
	})
}

func (d *Dispatcher) handleSelectVariant(v *commerce.ProductVariant) {
	d.store.Set(func(st *State) {
		st.SelectedVariant = v
		st.Quantity = 1
	})
}

func (d *Dispatcher) handleSetQuantity(requested int64) {
	s := d.store.Get()
	max := int64(1)
	if s.SelectedVariant != nil {
		max = int64(s.SelectedVariant.StockQuantity)
	}
	q := requested
	if q > max {
		q = max
	}
	if q < 1 {
		q = 1
	}
	d.store.Set(func(st *State) { st.Quantity = q })
}

// ============================================================================
// Cart mutations
// ============================================================================

func (d *Dispatcher) handleAddToCart(ctx context.Context) {
	s := d.store.Get()
	if s.SelectedVariant == nil {
		return
	}
	variant := s.SelectedVariant

	cart := s.Cart
	if cart == nil || cart.ID == "" {
		created, err := d.commerce.CreateCart(ctx, d.cfg.ShopID, d.profileID)
		if err != nil {
			d.log.Warn("cart create failed", zap.Error(err))
			d.showToast(errMessage(err, msgAddToCartFailed), ToastError)
			return
		}
		cart = created
	}
	d.store.Set(func(st *State) { st.Cart = cart })

	updated, err := d.commerce.AddCartLine(ctx, cart.ID, variant.ID, s.Quantity)
	if err != nil {
		d.log.Warn("cart line add failed", zap.String("variant_id", variant.ID), zap.Error(err))
		d.showToast(errMessage(err, msgAddToCartFailed), ToastError)
		return
	}
	d.store.Set(func(st *State) {
		st.Cart = updated
		st.CartOpen = true
	})
	d.refreshCartItems()
	d.showToast(msgAddedToCart, ToastSuccess)
}

func (d *Dispatcher) handleRemoveFromCart(ctx context.Context, cartLineID string) {
	s := d.store.Get()
	if s.Cart == nil {
		return
	}
	updated, err := d.commerce.RemoveCartLine(ctx, s.Cart.ID, cartLineID)
	if err != nil {
		d.log.Warn("cart line remove failed", zap.String("cart_line_id", cartLineID), zap.Error(err))
		d.showToast(errMessage(err, msgRemoveItemFailed), ToastError)
		return
	}
	d.store.Set(func(st *State) { st.Cart = updated })
	d.refreshCartItems()
}

// refreshCartItems re-runs enrichment over the current snapshot.
// Called after every cart mutation and any catalog fetch that could
// resolve a previously-unresolved line.
func (d *Dispatcher) refreshCartItems() {
	s := d.store.Get()
	items := EnrichCartItems(s.Cart, s.Catalog)
	d.store.Set(func(st *State) { st.CartItems = items })
}

// ============================================================================
// Checkout and ordering
// ============================================================================

func (d *Dispatcher) handleStartCheckout(ctx context.Context) {
	s := d.store.Get()
	if s.Cart == nil || len(s.CartItems) == 0 {
		return
	}
	d.store.Set(func(st *State) { st.Screen = ScreenLoading })

	if cartNeedsAddress(s.CartItems, s.Catalog) && d.profile != nil && d.profileID != "" {
		profile, err := d.profile.GetByID(ctx, d.profileID)
		if err != nil {
			// Checkout must not be blocked by a profile outage: carry
			// on with no saved addresses and the form open.
			d.log.Warn("profile fetch failed", zap.Error(err))
			d.store.Set(func(st *State) {
				st.Addresses = nil
				st.ShowAddressForm = true
				st.CartOpen = false
				st.Screen = ScreenCheckout
			})
			return
		}
		addresses := profile.Addresses
		d.store.Set(func(st *State) {
			st.Profile = profile
			st.Addresses = addresses
			if len(addresses) > 0 {
				st.SelectedAddressID = addresses[0].ID
			} else {
				st.SelectedAddressID = ""
			}
			st.ShowAddressForm = len(addresses) == 0
			st.CartOpen = false
			st.Screen = ScreenCheckout
		})
		return
	}

	d.store.Set(func(st *State) {
		st.CartOpen = false
		st.Screen = ScreenCheckout
	})
}

func (d *Dispatcher) handleAddAddress(ctx context.Context, addr commerce.Address) {
	if d.profile == nil || d.profileID == "" {
		d.showToast(msgNoProfileService, ToastError)
		return
	}

	errs := map[string]string{}
	if addr.Name == "" {
		errs["name"] = msgFieldRequired
	}
	if addr.Country == "" {
		errs["country"] = msgFieldRequired
	}
	if addr.City == "" {
		errs["city"] = msgFieldRequired
	}
	if len(errs) > 0 {
		d.store.Set(func(st *State) { st.AddressErrors = errs })
		return
	}
	d.store.Set(func(st *State) { st.AddressErrors = map[string]string{} })

	s := d.store.Get()
	saved, err := d.profile.AddAddress(ctx, d.profileID, addr)
	if err != nil {
		d.log.Warn("address save failed", zap.Error(err))
		d.showToast(errMessage(err, msgSaveAddressFailed), ToastError)
		return
	}
	addresses := append(append([]commerce.Address(nil), s.Addresses...), *saved)
	d.store.Set(func(st *State) {
		st.Addresses = addresses
		st.SelectedAddressID = saved.ID
		st.ShowAddressForm = false
	})
	d.showToast(msgAddressSaved, ToastSuccess)
}

func (d *Dispatcher) handlePlaceOrder(ctx context.Context) {
	s := d.store.Get()
	if s.Cart == nil {
		return
	}

	if cartNeedsAddress(s.CartItems, s.Catalog) && s.SelectedAddressID == "" {
		d.showToast(msgSelectAddress, ToastError)
		return
	}

	d.store.Set(func(st *State) { st.Screen = ScreenLoading })

	order, err := d.commerce.CreateOrderFromCart(ctx, s.Cart.ID, d.profileID, s.SelectedAddressID)
	if err != nil {
		d.log.Warn("order placement failed", zap.String("cart_id", s.Cart.ID), zap.Error(err))
		d.store.Set(func(st *State) { st.Screen = ScreenCheckout })
		d.showToast(errMessage(err, msgPlaceOrderFailed), ToastError)
		return
	}

	d.store.Set(func(st *State) {
		st.Cart = nil
		st.CartItems = nil
		st.CartOpen = false
	})
	d.finishOrder(ctx, order)
}

func (d *Dispatcher) handleImmediateOrder(ctx context.Context) {
	s := d.store.Get()
	if s.SelectedVariant == nil || s.SelectedProduct == nil {
		return
	}

	d.store.Set(func(st *State) { st.Screen = ScreenLoading })

	lines := []commerce.OrderLineInput{{
		VariantID: s.SelectedVariant.ID,
		Quantity:  commerce.Int64(s.Quantity),
	}}
	order, err := d.commerce.CreateOrder(ctx, d.cfg.ShopID, d.profileID, lines)
	if err != nil {
		d.log.Warn("immediate order failed", zap.String("variant_id", s.SelectedVariant.ID), zap.Error(err))
		d.store.Set(func(st *State) { st.Screen = ScreenDetail })
		d.showToast(errMessage(err, msgPlaceOrderFailed), ToastError)
		return
	}
	d.finishOrder(ctx, order)
}

// finishOrder hands off to the payment page when one is configured,
// otherwise celebrates and restarts browsing from a fresh Init.
func (d *Dispatcher) finishOrder(ctx context.Context, order *commerce.Order) {
	if d.cfg.PaymentURL != "" && order != nil {
		redirect := PaymentRedirectURL(d.cfg.PaymentURL, order)
		d.log.Info("redirecting to payment",
			zap.String("order_id", order.ID),
			zap.String("order_number", order.OrderNumber))
		if d.Navigate != nil {
			d.Navigate(redirect)
		}
		return
	}
	d.showToast(msgOrderPlaced, ToastSuccess)
	d.handleInit(ctx)
}

// ============================================================================
// Notifications and failures
// ============================================================================

// showToast surfaces a transient notification. A newer toast replaces
// the older one's content and timer, so the older dismissal never
// clears the newer message.
func (d *Dispatcher) showToast(message string, typ ToastType) {
	d.store.Set(func(st *State) {
		st.ToastMessage = message
		st.ToastType = typ
	})

	d.toastMu.Lock()
	if d.toastTimer != nil {
		d.toastTimer.Stop()
	}
	d.toastTimer = time.AfterFunc(d.toastTTL, func() {
		d.store.Set(func(st *State) { st.ToastMessage = "" })
	})
	d.toastMu.Unlock()
}

// failScreen records a fatal load failure: the current screen is torn
// down and only an explicit Retry recovers.
func (d *Dispatcher) failScreen(err error, fallback string) {
	d.log.Error("load failed", zap.Error(err))
	msg := errMessage(err, fallback)
	d.store.Set(func(st *State) {
		st.Screen = ScreenError
		st.ErrorMessage = msg
	})
}

// errMessage prefers the server's message, falling back to a canned
// one when the failure carries none.
func errMessage(err error, fallback string) string {
	var cerr *commerce.Error
	if errors.As(err, &cerr) && cerr.Message != "" {
		return cerr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

func firstProductID(products []*commerce.Product) string {
	for _, p := range products {
		if p != nil {
			return p.ID
		}
	}
	return ""
}
