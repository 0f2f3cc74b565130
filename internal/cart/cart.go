// internal/cart/cart.go
package cart

import (
	"errors"
	"math"

	"github.com/google/uuid"
)

// Flat-rate checkout constants for estimating totals before the server-side
// reconciliation. Prices are in INR major units.
const (
	TaxRate               = 0.12
	ShippingFlatRate      = 199.0
	FreeShippingThreshold = 1999.0
)

var ErrItemNotFound = errors.New("item not in cart")

// Item is one cart line. Qty is always clamped to [1, Stock].
type Item struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Qty       int       `json:"qty"`
	Image     string    `json:"image,omitempty"`
	Stock     int       `json:"stock"`
}

type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// State is the persisted snapshot of a cart session.
type State struct {
	Items           []Item           `json:"items"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
}

// Totals is a client-side estimate; the checkout verifier recomputes all
// monetary values from the catalog and never trusts these.
type Totals struct {
	ItemsPrice    float64 `json:"itemsPrice"`
	TaxPrice      float64 `json:"taxPrice"`
	ShippingPrice float64 `json:"shippingPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

// Cart is an explicit session-scoped state container. Every mutation is
// written through the injected Store.
type Cart struct {
	store Store
	state State
}

func New(store Store) (*Cart, error) {
	state, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Cart{store: store, state: state}, nil
}

// Add merges the item into the cart, clamping the quantity to the known
// stock. Re-adding an existing product accumulates quantity and refreshes
// the stock snapshot.
func (c *Cart) Add(item Item) error {
	for i, existing := range c.state.Items {
		if existing.ProductID == item.ProductID {
			c.state.Items[i].Qty = clampQty(existing.Qty+item.Qty, item.Stock)
			c.state.Items[i].Stock = item.Stock
			c.state.Items[i].Price = item.Price
			return c.persist()
		}
	}

	item.Qty = clampQty(item.Qty, item.Stock)
	c.state.Items = append(c.state.Items, item)
	return c.persist()
}

func (c *Cart) UpdateQuantity(productID uuid.UUID, qty int) error {
	for i, item := range c.state.Items {
		if item.ProductID == productID {
			c.state.Items[i].Qty = clampQty(qty, item.Stock)
			return c.persist()
		}
	}
	return ErrItemNotFound
}

func (c *Cart) Remove(productID uuid.UUID) error {
	for i, item := range c.state.Items {
		if item.ProductID == productID {
			c.state.Items = append(c.state.Items[:i], c.state.Items[i+1:]...)
			return c.persist()
		}
	}
	return ErrItemNotFound
}

func (c *Cart) Clear() error {
	c.state.Items = nil
	return c.persist()
}

func (c *Cart) SaveShippingAddress(addr ShippingAddress) error {
	c.state.ShippingAddress = &addr
	return c.persist()
}

func (c *Cart) ShippingAddress() *ShippingAddress {
	if c.state.ShippingAddress == nil {
		return nil
	}
	addr := *c.state.ShippingAddress
	return &addr
}

func (c *Cart) Items() []Item {
	items := make([]Item, len(c.state.Items))
	copy(items, c.state.Items)
	return items
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.state.Items {
		total += item.Qty
	}
	return total
}

func (c *Cart) Subtotal() float64 {
	subtotal := 0.0
	for _, item := range c.state.Items {
		subtotal += item.Price * float64(item.Qty)
	}
	return subtotal
}

// EstimateTotals mirrors the storefront's checkout summary: 12% flat tax and
// free shipping above the threshold.
func (c *Cart) EstimateTotals() Totals {
	subtotal := c.Subtotal()

	shipping := 0.0
	if len(c.state.Items) > 0 && subtotal <= FreeShippingThreshold {
		shipping = ShippingFlatRate
	}

	tax := round2(subtotal * TaxRate)

	return Totals{
		ItemsPrice:    round2(subtotal),
		TaxPrice:      tax,
		ShippingPrice: shipping,
		TotalPrice:    round2(subtotal + tax + shipping),
	}
}

func (c *Cart) persist() error {
	return c.store.Save(c.state)
}

func clampQty(qty, stock int) int {
	if qty < 1 {
		qty = 1
	}
	if stock > 0 && qty > stock {
		qty = stock
	}
	return qty
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
