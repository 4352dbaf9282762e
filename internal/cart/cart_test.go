package cart

import (
	"testing"
	"time"

	"gamestore/internal/domain"
)

func intPtr(v int) *int { return &v }

func testClock(at time.Time) *Cart {
	c := New()
	c.now = func() time.Time { return at }
	c.lastModified = at
	return c
}

func product(id int, price float64) domain.Product {
	return domain.Product{ID: id, Price: price, Status: true}
}

func subscriptionProduct(id int, price float64) domain.Product {
	p := product(id, price)
	p.Subscription = true
	return p
}

func TestAddItem_MergeByIdentity(t *testing.T) {
	c := New()
	p := product(1, 10)

	c.AddItem(p, 1, map[string]any{"5": "red"}, "")
	c.AddItem(p, 2, map[string]any{"5": "red"}, "")

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}

	// A different selection is a distinct line, not a quantity merge.
	c.AddItem(p, 1, map[string]any{"5": "blue"}, "")
	items = c.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(items))
	}
	if items[1].Quantity != 1 {
		t.Fatalf("expected quantity 1 on new entry, got %d", items[1].Quantity)
	}
}

func TestAddItem_MergeIsKeyOrderIndependent(t *testing.T) {
	c := New()
	p := product(1, 10)

	c.AddItem(p, 1, map[string]any{"1": "a", "2": float64(5)}, "")
	// Same selection, numeric value serialized as a string this time.
	c.AddItem(p, 1, map[string]any{"2": "5", "1": "a"}, "")

	if items := c.Items(); len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected one merged entry with quantity 2, got %+v", items)
	}
}

func TestAddItem_StockClamping(t *testing.T) {
	c := New()
	p := product(1, 10)
	p.Stock = intPtr(5)

	c.AddItem(p, 3, nil, "")
	c.AddItem(p, 4, map[string]any{"9": "x"}, "")

	// Aggregate across all entries of the product never exceeds stock.
	if got := c.ItemCount(); got != 5 {
		t.Fatalf("expected aggregate 5, got %d", got)
	}
	items := c.Items()
	if len(items) != 2 || items[0].Quantity != 3 || items[1].Quantity != 2 {
		t.Fatalf("unexpected entries %+v", items)
	}

	// Zero headroom: the add is a no-op.
	c.AddItem(p, 1, nil, "")
	if got := c.ItemCount(); got != 5 {
		t.Fatalf("expected aggregate to stay 5, got %d", got)
	}
	if len(c.Items()) != 2 {
		t.Fatalf("expected no new entry at zero headroom")
	}
}

func TestAddItem_StockClampingRepeated(t *testing.T) {
	c := New()
	p := product(1, 1)
	p.Stock = intPtr(4)

	for i := 0; i < 10; i++ {
		c.AddItem(p, 3, nil, "")
	}
	if got := c.ItemCount(); got != 4 {
		t.Fatalf("expected aggregate 4 after repeated adds, got %d", got)
	}
}

func TestAddItem_RecurringReplacesCart(t *testing.T) {
	c := New()
	c.AddItem(product(1, 10), 2, nil, "")
	c.AddItem(product(2, 5), 1, map[string]any{"3": true}, "")

	sub := subscriptionProduct(9, 20)
	c.AddItem(sub, 1, nil, domain.SubscriptionRecurring)

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected cart replaced by single entry, got %d", len(items))
	}
	if items[0].Product.ID != 9 || items[0].SubscriptionType != domain.SubscriptionRecurring {
		t.Fatalf("unexpected surviving entry %+v", items[0])
	}
}

func TestAddItem_NonSubscriptionPurgesRecurring(t *testing.T) {
	c := New()
	c.AddItem(subscriptionProduct(9, 20), 1, nil, domain.SubscriptionRecurring)

	c.AddItem(product(1, 10), 1, nil, "")

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(items))
	}
	if items[0].Product.ID != 1 {
		t.Fatalf("expected recurring entry purged, got %+v", items[0])
	}
}

func TestAddItem_OnetimeSubscriptionKeepsCart(t *testing.T) {
	c := New()
	c.AddItem(product(1, 10), 1, nil, "")

	// A one-time purchase of a subscription product is an ordinary add.
	c.AddItem(subscriptionProduct(9, 20), 1, nil, domain.SubscriptionOnetime)

	if len(c.Items()) != 2 {
		t.Fatalf("expected both entries to coexist, got %+v", c.Items())
	}
}

func TestAddItem_DonationLinesNeverMerge(t *testing.T) {
	c := New()
	p := product(3, 0)
	p.Donation = true

	c.AddItem(p, 1, nil, "")
	c.UpdateDonationAmount(3, 10, nil)
	c.AddItem(p, 1, nil, "")

	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected donation lines to stay separate, got %d", len(items))
	}
	if items[0].DonationAmount == nil || *items[0].DonationAmount != 10 {
		t.Fatalf("expected first line to keep its pledge, got %+v", items[0])
	}
	if items[1].DonationAmount != nil {
		t.Fatalf("expected second line without a pledge, got %+v", items[1])
	}
}

func TestAddItem_TrustsCallerValidation(t *testing.T) {
	// The engine accepts an add with missing required fields by contract:
	// required-field and rule validation happens in the caller before the
	// cart is touched. Documented here because the split is deliberate.
	c := New()
	p := product(1, 10)
	p.CustomFields = []domain.CustomField{{ID: 1, Type: domain.FieldText, Required: true}}

	c.AddItem(p, 1, nil, "")
	if len(c.Items()) != 1 {
		t.Fatalf("expected the unvalidated add to be accepted")
	}
}

func TestRemoveItem(t *testing.T) {
	c := New()
	p := product(1, 10)
	c.AddItem(p, 1, nil, "")
	c.AddItem(p, 1, map[string]any{"2": "a"}, "")
	c.AddItem(product(2, 5), 1, nil, "")

	// Without custom fields: removes the field-less entries of that product.
	c.RemoveItem(1, nil)
	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(items))
	}
	if items[0].CustomFields == nil || items[1].Product.ID != 2 {
		t.Fatalf("unexpected entries %+v", items)
	}

	// With custom fields: removes only the structurally matching entry.
	c.RemoveItem(1, map[string]any{"2": "a"})
	if len(c.Items()) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(c.Items()))
	}

	// Removing a non-existent item is a silent no-op.
	c.RemoveItem(42, nil)
	if len(c.Items()) != 1 {
		t.Fatalf("expected no-op remove, got %+v", c.Items())
	}
}

func TestRemoveItemByIndex(t *testing.T) {
	c := New()
	c.AddItem(product(1, 1), 1, nil, "")
	c.AddItem(product(2, 2), 1, nil, "")

	c.RemoveItemByIndex(5)
	if len(c.Items()) != 2 {
		t.Fatalf("expected out-of-range removal to no-op")
	}

	c.RemoveItemByIndex(0)
	items := c.Items()
	if len(items) != 1 || items[0].Product.ID != 2 {
		t.Fatalf("unexpected entries %+v", items)
	}
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	p := product(1, 10)
	c.AddItem(p, 1, nil, "")
	c.AddItem(p, 1, map[string]any{"2": "a"}, "")

	c.UpdateQuantity(1, 4, map[string]any{"2": "a"})
	items := c.Items()
	if items[0].Quantity != 1 || items[1].Quantity != 4 {
		t.Fatalf("unexpected quantities %+v", items)
	}

	// No selector: targets the entry without custom fields.
	c.UpdateQuantity(1, 7, nil)
	items = c.Items()
	if items[0].Quantity != 7 {
		t.Fatalf("expected field-less entry updated, got %+v", items)
	}

	// Quantity <= 0 delegates to removal.
	c.UpdateQuantity(1, 0, nil)
	if len(c.Items()) != 1 {
		t.Fatalf("expected removal via zero quantity, got %+v", c.Items())
	}
}

func TestUpdateCustomFieldsAndServerSelection(t *testing.T) {
	c := New()
	p := product(1, 10)
	c.AddItem(p, 1, map[string]any{"2": "a"}, "")

	c.UpdateCustomFields(1, map[string]any{"2": "b"}, map[string]any{"2": "a"})
	items := c.Items()
	if items[0].CustomFields["2"] != "b" {
		t.Fatalf("expected custom fields replaced, got %+v", items[0])
	}

	c.UpdateServerSelection(1, 77, map[string]any{"2": "b"})
	items = c.Items()
	if items[0].ServerSelection == nil || *items[0].ServerSelection != 77 {
		t.Fatalf("expected server selection 77, got %+v", items[0])
	}

	// Miss: silent no-op.
	c.UpdateServerSelection(1, 88, map[string]any{"2": "zzz"})
	items = c.Items()
	if *items[0].ServerSelection != 77 {
		t.Fatalf("expected unchanged selection, got %+v", items[0])
	}
}

func TestUpdateSubscriptionType(t *testing.T) {
	c := New()
	c.AddItem(subscriptionProduct(9, 20), 1, nil, domain.SubscriptionOnetime)

	c.UpdateSubscriptionType(9, domain.SubscriptionRecurring, nil)
	if got := c.Items()[0].SubscriptionType; got != domain.SubscriptionRecurring {
		t.Fatalf("expected recurring, got %q", got)
	}
}

func TestTotalAndItemCount(t *testing.T) {
	c := New()
	c.AddItem(product(1, 10), 2, nil, "")

	donation := product(2, 0)
	donation.Donation = true
	c.AddItem(donation, 3, nil, "")
	c.UpdateDonationAmount(2, 25, nil)

	// Donation contributes the pledge once, not per unit.
	if got := c.Total(); got != 45 {
		t.Fatalf("expected total 45, got %v", got)
	}
	// The count stays unit-based regardless of donation semantics.
	if got := c.ItemCount(); got != 5 {
		t.Fatalf("expected count 5, got %d", got)
	}
}

func TestExpiry(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := testClock(at)
	c.AddItem(product(1, 10), 1, nil, "")

	// 11 hours later: still fresh.
	c.now = func() time.Time { return at.Add(11 * time.Hour) }
	if c.IsExpired() {
		t.Fatalf("expected cart to still be fresh")
	}
	if c.ClearIfExpired() {
		t.Fatalf("expected no clear on fresh cart")
	}

	// 13 hours later: expired and cleared.
	c.now = func() time.Time { return at.Add(13 * time.Hour) }
	if !c.IsExpired() {
		t.Fatalf("expected cart to be expired")
	}
	if !c.ClearIfExpired() {
		t.Fatalf("expected clear on expired cart")
	}
	if len(c.Items()) != 0 {
		t.Fatalf("expected empty cart, got %+v", c.Items())
	}
	// The clear refreshed the timestamp; the empty cart is fresh again.
	if c.IsExpired() {
		t.Fatalf("expected cleared cart to be fresh")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := testClock(at)
	c.AddItem(product(1, 10), 2, map[string]any{"3": "red"}, "")
	c.AddItem(subscriptionProduct(2, 5), 1, nil, domain.SubscriptionOnetime)
	c.UpdateServerSelection(1, 7, map[string]any{"3": "red"})

	snap := c.Snapshot()
	if snap.Version != domain.CartSnapshotVersion {
		t.Fatalf("expected version %d, got %d", domain.CartSnapshotVersion, snap.Version)
	}
	if snap.LastModified != at.UnixMilli() {
		t.Fatalf("expected lastModified %d, got %d", at.UnixMilli(), snap.LastModified)
	}

	restored := FromSnapshot(snap)
	items := restored.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(items))
	}
	if items[0].Product.ID != 1 || items[0].Quantity != 2 || items[0].CustomFields["3"] != "red" {
		t.Fatalf("unexpected first entry %+v", items[0])
	}
	if items[0].ServerSelection == nil || *items[0].ServerSelection != 7 {
		t.Fatalf("expected server selection preserved, got %+v", items[0])
	}
	if !restored.LastModified().Equal(time.UnixMilli(at.UnixMilli())) {
		t.Fatalf("expected lastModified preserved, got %v", restored.LastModified())
	}
}

func TestFromSnapshot_UnknownVersion(t *testing.T) {
	snap := domain.CartSnapshot{
		Version:      domain.CartSnapshotVersion + 1,
		Items:        []domain.CartEntry{{Product: product(1, 1), Quantity: 1}},
		LastModified: time.Now().UnixMilli(),
	}
	if items := FromSnapshot(snap).Items(); len(items) != 0 {
		t.Fatalf("expected fresh cart for unknown version, got %+v", items)
	}
}
