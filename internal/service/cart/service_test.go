package cart

import (
	"context"
	"testing"
	"time"

	"gamestore/internal/domain"
)

type stubRepo struct {
	snaps map[string]domain.CartSnapshot
	saves int
}

func newStubRepo() *stubRepo {
	return &stubRepo{snaps: map[string]domain.CartSnapshot{}}
}

func (r *stubRepo) Get(_ context.Context, sessionID string) (*domain.CartSnapshot, error) {
	snap, ok := r.snaps[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &snap, nil
}

func (r *stubRepo) Save(_ context.Context, sessionID string, snap domain.CartSnapshot) error {
	r.saves++
	r.snaps[sessionID] = snap
	return nil
}

func (r *stubRepo) Delete(_ context.Context, sessionID string) error {
	delete(r.snaps, sessionID)
	return nil
}

func testProduct(id int, price float64) domain.Product {
	return domain.Product{ID: id, Name: "Test", Price: price}
}

func TestGetUnknownSessionReturnsEmptyCart(t *testing.T) {
	svc := New(newStubRepo())

	v, err := svc.Get(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(v.Items) != 0 || v.Total != 0 || v.ItemCount != 0 {
		t.Fatalf("expected empty cart, got %+v", v)
	}
}

func TestAddItemPersistsAndReprices(t *testing.T) {
	repo := newStubRepo()
	svc := New(repo)

	ctx := context.Background()
	v, err := svc.AddItem(ctx, "s1", testProduct(1, 9.99), 2, nil, "")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if v.ItemCount != 2 {
		t.Fatalf("item count = %d, want 2", v.ItemCount)
	}
	if v.Total != 19.98 {
		t.Fatalf("total = %v, want 19.98", v.Total)
	}
	if repo.saves != 1 {
		t.Fatalf("saves = %d, want 1", repo.saves)
	}

	// A second read must see the persisted state.
	v, err = svc.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(v.Items) != 1 || v.Items[0].Quantity != 2 {
		t.Fatalf("persisted cart = %+v", v.Items)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	svc := New(newStubRepo())

	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "alice", testProduct(1, 5), 1, nil, ""); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	v, err := svc.Get(ctx, "bob")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(v.Items) != 0 {
		t.Fatalf("bob sees alice's cart: %+v", v.Items)
	}
}

func TestGetDropsExpiredCart(t *testing.T) {
	repo := newStubRepo()
	svc := New(repo)

	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "s1", testProduct(1, 5), 1, nil, ""); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	// Age the stored snapshot past the cart lifetime.
	snap := repo.snaps["s1"]
	snap.LastModified = time.Now().Add(-13 * time.Hour).UnixMilli()
	repo.snaps["s1"] = snap

	v, err := svc.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(v.Items) != 0 {
		t.Fatalf("expired cart still has items: %+v", v.Items)
	}
	if repo.saves != 2 {
		t.Fatalf("expiry should write back, saves = %d", repo.saves)
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	svc := New(newStubRepo())

	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "s1", testProduct(1, 5), 3, nil, ""); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	v, err := svc.UpdateQuantity(ctx, "s1", 1, 0, nil)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if len(v.Items) != 0 {
		t.Fatalf("zero quantity should remove entry, got %+v", v.Items)
	}
}

func TestClear(t *testing.T) {
	svc := New(newStubRepo())

	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "s1", testProduct(1, 5), 1, nil, ""); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	v, err := svc.Clear(ctx, "s1")
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(v.Items) != 0 {
		t.Fatalf("cart not cleared: %+v", v.Items)
	}
}

func TestDonationFlow(t *testing.T) {
	svc := New(newStubRepo())

	p := testProduct(9, 50)
	p.Donation = true

	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "s1", p, 1, nil, ""); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	v, err := svc.UpdateDonationAmount(ctx, "s1", 9, 25, nil)
	if err != nil {
		t.Fatalf("UpdateDonationAmount: %v", err)
	}
	if v.Total != 25 {
		t.Fatalf("donation total = %v, want 25", v.Total)
	}
}
