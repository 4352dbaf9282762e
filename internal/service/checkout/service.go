// Package checkout assembles provider checkout requests from session carts.
package checkout

import (
	"context"
	"strings"

	"gamestore/internal/domain"
)

// Provider is the slice of the upstream client checkout needs.
type Provider interface {
	Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutResponse, error)
	Identifiers(ctx context.Context, productIDs []int) (*domain.CheckoutIdentifiersResponse, error)
}

type Service struct {
	provider      Provider
	publicBaseURL string
}

func New(provider Provider, publicBaseURL string) *Service {
	return &Service{provider: provider, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// BuildRequest converts cart entries plus the buyer identity into the
// provider checkout payload.
func (s *Service) BuildRequest(entries []domain.CartEntry, user domain.CheckoutUser) domain.CheckoutRequest {
	products := make([]domain.CheckoutProduct, 0, len(entries))
	for _, e := range entries {
		p := domain.CheckoutProduct{
			ProductID: e.Product.ID,
			Type:      domain.CheckoutTypeAddToCart,
			Quantity:  e.Quantity,
		}
		if e.Product.Subscription && e.SubscriptionType == domain.SubscriptionRecurring {
			p.Type = domain.CheckoutTypeSubscribe
		}
		if len(e.CustomFields) > 0 {
			p.CustomFields = e.CustomFields
		}
		if e.ServerSelection != nil {
			p.ServerSelection = e.ServerSelection
		}
		if e.DonationAmount != nil && *e.DonationAmount > 0 {
			p.DonationAmount = e.DonationAmount
		}
		products = append(products, p)
	}
	return domain.CheckoutRequest{
		Products:                 products,
		User:                     user,
		RedirectSuccessCheckout:  s.publicBaseURL + "/checkout/success",
		RedirectCanceledCheckout: s.publicBaseURL + "/checkout/canceled",
		RedirectPendingCheckout:  s.publicBaseURL + "/checkout/pending",
	}
}

// Checkout starts a hosted checkout for the given cart entries and returns
// the redirect URL.
func (s *Service) Checkout(ctx context.Context, entries []domain.CartEntry, user domain.CheckoutUser) (*domain.CheckoutResponse, error) {
	return s.provider.Checkout(ctx, s.BuildRequest(entries, user))
}

// Identifiers asks the provider which platform identifiers the checkout form
// must collect for the given cart entries.
func (s *Service) Identifiers(ctx context.Context, entries []domain.CartEntry) (*domain.CheckoutIdentifiersResponse, error) {
	ids := make([]int, 0, len(entries))
	seen := make(map[int]bool, len(entries))
	for _, e := range entries {
		if !seen[e.Product.ID] {
			seen[e.Product.ID] = true
			ids = append(ids, e.Product.ID)
		}
	}
	return s.provider.Identifiers(ctx, ids)
}
