package cart

import (
	"encoding/json"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one saree in the cart. Quantity is implicitly one.
type Item struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image,omitempty"`
	Category  string    `json:"category,omitempty"`
}

// Cart holds each product at most once, in the order it was added.
type Cart struct {
	items []Item
}

func New(items ...Item) *Cart {
	c := &Cart{}
	for _, it := range items {
		c.Add(it)
	}
	return c
}

// Add appends it unless the product is already present, in which case the
// cart is unchanged and false is returned.
func (c *Cart) Add(it Item) bool {
	if c.Contains(it.ProductID) {
		return false
	}
	c.items = append(c.items, it)
	return true
}

func (c *Cart) Remove(productID uuid.UUID) bool {
	before := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(it Item) bool { return it.ProductID == productID })
	return len(c.items) != before
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Contains(productID uuid.UUID) bool {
	return slices.ContainsFunc(c.items, func(it Item) bool { return it.ProductID == productID })
}

func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Count() int {
	return len(c.items)
}

func (c *Cart) Subtotal() float64 {
	sum := decimal.Zero
	for _, it := range c.items {
		sum = sum.Add(decimal.NewFromFloat(it.Price))
	}
	return sum.Round(2).InexactFloat64()
}

// MarshalJSON writes the cart as a bare array of items.
func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Items())
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*c = *New(items...)
	return nil
}

// Decode rebuilds a cart from its stored form. Anything that is not an array
// of items with product ids yields an empty cart; old shapes are not migrated.
func Decode(data []byte) *Cart {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return New()
	}
	for _, it := range items {
		if it.ProductID == uuid.Nil {
			return New()
		}
	}
	return New(items...)
}
