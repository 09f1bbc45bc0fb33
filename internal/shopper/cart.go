package shopper

import (
	"sync"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const cartKey = "cart"

// CartItem is one cart line, unique per product. Title, price, image
// and affiliate URL are a snapshot taken when the product was first
// added; later product edits do not refresh them.
type CartItem struct {
	ProductID    string          `json:"productId"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image"`
	AffiliateURL string          `json:"affiliateUrl"`
	Quantity     int             `json:"quantity"`
}

// Cart is the shopper's cart, hydrated from storage at startup and
// mirrored back on every mutation.
type Cart struct {
	mu      sync.Mutex
	storage Storage
	logger  *zap.Logger
	items   []CartItem
}

// NewCart hydrates a cart from storage.
func NewCart(storage Storage, logger *zap.Logger) *Cart {
	c := &Cart{storage: storage, logger: logger}
	loadState(storage, cartKey, &c.items, logger)
	if c.items == nil {
		c.items = []CartItem{}
	}
	return c
}

// Add increments the quantity of an existing line for the same product,
// keeping its original snapshot, or appends a new line with quantity 1.
func (c *Cart) Add(item CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity++
			c.save()
			return
		}
	}

	item.Quantity = 1
	c.items = append(c.items, item)
	c.save()
}

// Remove deletes the line for the product. A missing id is a no-op.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
	c.save()
}

// SetQuantity sets the line's quantity to exactly n. A quantity of zero
// or below removes the line.
func (c *Cart) SetQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(productID)
		c.save()
		return
	}

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			break
		}
	}
	c.save()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = []CartItem{}
	c.save()
}

// Items returns the cart lines in the order they were first added.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CartItem(nil), c.items...)
}

// TotalPrice sums snapshot price times quantity over all lines using
// decimal arithmetic, so 2x10.00 + 1x5.50 is exactly 25.50.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// TotalItemCount sums the quantities across all lines.
func (c *Cart) TotalItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// FormattedTotal renders the total for display. Conversion to a display
// string happens only here, at the boundary.
func (c *Cart) FormattedTotal() string {
	ac := accounting.Accounting{Symbol: "EGP ", Precision: 2}
	return ac.FormatMoneyDecimal(c.TotalPrice())
}

func (c *Cart) removeLocked(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Cart) save() {
	saveState(c.storage, cartKey, c.items, c.logger)
}
