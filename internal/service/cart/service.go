// Package cart persists per-session carts and applies cart mutations through
// the in-memory cart engine.
package cart

import (
	"context"
	"errors"

	"gamestore/internal/cart"
	"gamestore/internal/domain"
	cartrepo "gamestore/internal/repository/cart"
)

type Service struct {
	repo cartrepo.Repository
}

func New(repo cartrepo.Repository) *Service {
	return &Service{repo: repo}
}

// View is the cart shape returned to HTTP handlers.
type View struct {
	Items        []domain.CartEntry `json:"items"`
	Total        float64            `json:"total"`
	ItemCount    int                `json:"item_count"`
	LastModified int64              `json:"last_modified"`
}

// Get loads the session cart, dropping it first if it sat idle past its
// lifetime. The expiry write-back is persisted so every node agrees.
func (s *Service) Get(ctx context.Context, sessionID string) (View, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	if c.ClearIfExpired() {
		if err := s.repo.Save(ctx, sessionID, c.Snapshot()); err != nil {
			return View{}, err
		}
	}
	return view(c), nil
}

// AddItem puts quantity units of product into the session cart.
func (s *Service) AddItem(ctx context.Context, sessionID string, product domain.Product, quantity int, customFields map[string]any, subscriptionType domain.SubscriptionType) (View, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) {
		c.AddItem(product, quantity, customFields, subscriptionType)
	})
}

// RemoveItem removes every entry of productID matching the custom-field
// selector.
func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID int, customFields map[string]any) (View, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) {
		c.RemoveItem(productID, customFields)
	})
}

// RemoveItemByIndex removes the entry at the given position.
func (s *Service) RemoveItemByIndex(ctx context.Context, sessionID string, index int) (View, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) {
		c.RemoveItemByIndex(index)
	})
}

// UpdateQuantity sets the quantity of the matching entry. Zero or negative
// removes it.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID, quantity int, customFields map[string]any) (View, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) {
		c.UpdateQuantity(productID, quantity, customFields)
	})
}

// UpdateCustomFields replaces the custom-field values of the matching entry.
func (s *Service) UpdateCustomFields(ctx context.Context, sessionID string, productID int, fields, customFields map[string]any) (View, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) {
		c.UpdateCustomFields(productID, fields, customFields)
	})
}

// UpdateServerSelection sets the game server the matching entry targets.
func (s *Service) UpdateServerSelection(ctx context.Context, sessionID string, productID, serverID int, customFields map[string]any) (View, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) {
		c.UpdateServerSelection(productID, serverID, customFields)
	})
}

// UpdateDonationAmount sets the donation amount on the matching entry.
func (s *Service) UpdateDonationAmount(ctx context.Context, sessionID string, productID int, amount float64, customFields map[string]any) (View, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) {
		c.UpdateDonationAmount(productID, amount, customFields)
	})
}

// UpdateSubscriptionType switches the matching entry between one-time and
// recurring billing.
func (s *Service) UpdateSubscriptionType(ctx context.Context, sessionID string, productID int, subscriptionType domain.SubscriptionType, customFields map[string]any) (View, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) {
		c.UpdateSubscriptionType(productID, subscriptionType, customFields)
	})
}

// Clear empties the session cart.
func (s *Service) Clear(ctx context.Context, sessionID string) (View, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) {
		c.Clear()
	})
}

// Entries returns the raw cart entries, for checkout assembly.
func (s *Service) Entries(ctx context.Context, sessionID string) ([]domain.CartEntry, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.ClearIfExpired()
	return c.Items(), nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, op func(*cart.Cart)) (View, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	c.ClearIfExpired()
	op(c)
	if err := s.repo.Save(ctx, sessionID, c.Snapshot()); err != nil {
		return View{}, err
	}
	return view(c), nil
}

func (s *Service) load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	snap, err := s.repo.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return cart.New(), nil
	}
	if err != nil {
		return nil, err
	}
	return cart.FromSnapshot(*snap), nil
}

func view(c *cart.Cart) View {
	return View{
		Items:        c.Items(),
		Total:        c.Total(),
		ItemCount:    c.ItemCount(),
		LastModified: c.LastModified().UnixMilli(),
	}
}
