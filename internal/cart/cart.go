// Package cart implements the shopping-cart state machine: an ordered list
// of entries plus a last-modified timestamp, mutated through operations
// that enforce the stock and subscription invariants. Operations never
// fail; misuse (removing a missing item, exceeding stock) degrades to a
// no-op or a clamp. Business-rule validation (required fields, custom
// rules) is the caller's job before an add reaches the cart.
package cart

import (
	"time"

	"gamestore/internal/domain"
	"gamestore/internal/pricing"
)

// TTL is how long a cart survives without modification before it is
// considered expired.
const TTL = 12 * time.Hour

// Cart is a single session's cart. Not safe for concurrent use; callers
// serialize access per session.
type Cart struct {
	now          func() time.Time
	items        []domain.CartEntry
	lastModified time.Time
}

// New returns an empty cart.
func New() *Cart {
	c := &Cart{now: time.Now}
	c.lastModified = c.now()
	return c
}

func (c *Cart) touch() {
	c.lastModified = c.now()
}

// Items returns a copy of the entry list in insertion order.
func (c *Cart) Items() []domain.CartEntry {
	out := make([]domain.CartEntry, len(c.items))
	copy(out, c.items)
	return out
}

// LastModified reports when the cart was last mutated.
func (c *Cart) LastModified() time.Time {
	return c.lastModified
}

// AddItem adds quantity units of product to the cart.
//
// The quantity is clamped against the remaining stock headroom counted
// across every entry of this product; with no headroom the add degrades to
// a timestamp touch. Adding a recurring subscription atomically replaces
// the whole cart with that single entry. Adding a non-subscription product
// to a cart holding a recurring entry purges the recurring entries first.
// Otherwise the add merges into the entry with the same identity or
// appends a new one.
func (c *Cart) AddItem(product domain.Product, quantity int, customFields map[string]any, subscriptionType domain.SubscriptionType) {
	if quantity <= 0 {
		quantity = 1
	}
	defer c.touch()

	if product.Stock != nil {
		inCart := 0
		for _, e := range c.items {
			if e.Product.ID == product.ID {
				inCart += e.Quantity
			}
		}
		if inCart+quantity > *product.Stock {
			quantity = *product.Stock - inCart
			if quantity <= 0 {
				return
			}
		}
	}

	if product.Subscription && subscriptionType == domain.SubscriptionRecurring {
		c.items = []domain.CartEntry{{
			Product:          product,
			Quantity:         quantity,
			CustomFields:     customFields,
			SubscriptionType: subscriptionType,
		}}
		return
	}

	if !product.Subscription {
		kept := c.items[:0]
		for _, e := range c.items {
			if e.SubscriptionType != domain.SubscriptionRecurring {
				kept = append(kept, e)
			}
		}
		c.items = kept
	}

	for i, e := range c.items {
		if sameEntry(e, product.ID, customFields) {
			c.items[i].Quantity += quantity
			if subscriptionType != "" {
				c.items[i].SubscriptionType = subscriptionType
			}
			return
		}
	}

	c.items = append(c.items, domain.CartEntry{
		Product:          product,
		Quantity:         quantity,
		CustomFields:     customFields,
		SubscriptionType: subscriptionType,
	})
}

// RemoveItem removes entries of productID. Without custom fields it removes
// every entry of that product that carries none; with custom fields only
// the structurally matching entry goes.
func (c *Cart) RemoveItem(productID int, customFields map[string]any) {
	kept := c.items[:0]
	for _, e := range c.items {
		if !matchesSelector(e, productID, customFields) {
			kept = append(kept, e)
		}
	}
	c.items = kept
	c.touch()
}

// RemoveItemByIndex removes the entry at index; out-of-range is a no-op.
func (c *Cart) RemoveItemByIndex(index int) {
	if index < 0 || index >= len(c.items) {
		return
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	c.touch()
}

// UpdateQuantity sets the quantity on the matching entry. Zero or negative
// delegates to RemoveItem. No stock clamping happens here; that guard sits
// on the add path.
func (c *Cart) UpdateQuantity(productID, quantity int, customFields map[string]any) {
	if quantity <= 0 {
		c.RemoveItem(productID, customFields)
		return
	}
	c.update(productID, customFields, func(e *domain.CartEntry) {
		e.Quantity = quantity
	})
}

// UpdateCustomFields replaces the custom-field map on the entry matching
// the old selection.
func (c *Cart) UpdateCustomFields(productID int, fields, customFields map[string]any) {
	c.update(productID, customFields, func(e *domain.CartEntry) {
		e.CustomFields = fields
	})
}

// UpdateServerSelection sets the target game server on the matching entry.
func (c *Cart) UpdateServerSelection(productID, serverID int, customFields map[string]any) {
	c.update(productID, customFields, func(e *domain.CartEntry) {
		id := serverID
		e.ServerSelection = &id
	})
}

// UpdateDonationAmount sets the pledged amount on the first matching entry
// that has none yet (each donation stays its own line).
func (c *Cart) UpdateDonationAmount(productID int, amount float64, customFields map[string]any) {
	for i := range c.items {
		e := &c.items[i]
		if e.Product.ID != productID {
			continue
		}
		if len(customFields) == 0 {
			if len(e.CustomFields) == 0 && e.DonationAmount == nil {
				v := amount
				e.DonationAmount = &v
				break
			}
			continue
		}
		if fieldsEqual(e.CustomFields, customFields) {
			v := amount
			e.DonationAmount = &v
			break
		}
	}
	c.touch()
}

// UpdateSubscriptionType switches the matching entry between one-time and
// recurring purchase.
func (c *Cart) UpdateSubscriptionType(productID int, subscriptionType domain.SubscriptionType, customFields map[string]any) {
	c.update(productID, customFields, func(e *domain.CartEntry) {
		e.SubscriptionType = subscriptionType
	})
}

// update applies fn to the first entry matching the selector. A miss is a
// silent no-op by contract.
func (c *Cart) update(productID int, customFields map[string]any, fn func(*domain.CartEntry)) {
	for i := range c.items {
		if matchesSelector(c.items[i], productID, customFields) {
			fn(&c.items[i])
			break
		}
	}
	c.touch()
}

// Clear empties the cart. The timestamp moves forward, so a cleared cart
// is a fresh empty cart rather than a resurrected expired one.
func (c *Cart) Clear() {
	c.items = nil
	c.touch()
}

// Total sums line totals across all entries.
func (c *Cart) Total() float64 {
	return pricing.Total(c.items)
}

// ItemCount sums quantities across all entries. Donation semantics do not
// affect the count; it is always unit-based.
func (c *Cart) ItemCount() int {
	count := 0
	for _, e := range c.items {
		count += e.Quantity
	}
	return count
}

// IsExpired reports whether more than the cart TTL has elapsed since the
// last modification.
func (c *Cart) IsExpired() bool {
	return c.now().Sub(c.lastModified) > TTL
}

// ClearIfExpired empties the cart when it has expired and reports whether
// it did.
func (c *Cart) ClearIfExpired() bool {
	if !c.IsExpired() {
		return false
	}
	c.Clear()
	return true
}
