// Package store serves catalog and storefront data from the commerce
// provider, fronted by a short-lived in-process cache.
package store

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"gamestore/internal/cache"
	"gamestore/internal/domain"
)

// Provider is the slice of the upstream client the catalog needs.
type Provider interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
}

type Service struct {
	provider Provider
	cache    *cache.Cache[any]
	storeID  string
}

func New(provider Provider, c *cache.Cache[any], storeID string) *Service {
	return &Service{provider: provider, cache: c, storeID: storeID}
}

// ProductsQuery narrows the product listing. Zero values fall back to the
// storefront defaults.
type ProductsQuery struct {
	Page        int
	MaxPage     int
	Category    string
	Details     bool
	OnlyEnabled *bool
}

// CategoriesQuery narrows the category listing.
type CategoriesQuery struct {
	Page    int
	MaxPage int
	Parent  string
}

// CustomersQuery narrows the best-customers leaderboard.
type CustomersQuery struct {
	Page       int
	MaxPage    int
	Sort       string
	DateFilter string
}

// Whoami returns the store identity and settings.
func (s *Service) Whoami(ctx context.Context) (*domain.StoreInfo, error) {
	key := "store:whoami"
	if v, ok := s.cache.Get(key); ok {
		return v.(*domain.StoreInfo), nil
	}
	var info domain.StoreInfo
	if err := s.provider.GetJSON(ctx, "/store/whoami", s.baseQuery(), &info); err != nil {
		return nil, err
	}
	s.cache.Set(key, &info)
	return &info, nil
}

// Theme returns the storefront theme configuration.
func (s *Service) Theme(ctx context.Context) (*domain.Theme, error) {
	key := "store:theme"
	if v, ok := s.cache.Get(key); ok {
		return v.(*domain.Theme), nil
	}
	var theme domain.Theme
	if err := s.provider.GetJSON(ctx, "/store/theme", s.baseQuery(), &theme); err != nil {
		return nil, err
	}
	s.cache.Set(key, &theme)
	return &theme, nil
}

// Categories lists store categories.
func (s *Service) Categories(ctx context.Context, q CategoriesQuery) (*domain.CategoriesResponse, error) {
	query := s.baseQuery()
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.MaxPage > 0 {
		query.Set("max_page", strconv.Itoa(q.MaxPage))
	}
	if q.Parent != "" {
		query.Set("parent", q.Parent)
	}

	key := "store:categories:" + query.Encode()
	if v, ok := s.cache.Get(key); ok {
		return v.(*domain.CategoriesResponse), nil
	}
	var out domain.CategoriesResponse
	if err := s.provider.GetJSON(ctx, "/store/categories", query, &out); err != nil {
		return nil, err
	}
	s.cache.Set(key, &out)
	return &out, nil
}

// Products lists store products.
func (s *Service) Products(ctx context.Context, q ProductsQuery) (*domain.ProductsResponse, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.MaxPage <= 0 {
		q.MaxPage = 50
	}
	onlyEnabled := true
	if q.OnlyEnabled != nil {
		onlyEnabled = *q.OnlyEnabled
	}

	query := s.baseQuery()
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("max_page", strconv.Itoa(q.MaxPage))
	query.Set("details", strconv.FormatBool(q.Details))
	query.Set("only_enabled", strconv.FormatBool(onlyEnabled))
	if q.Category != "" {
		query.Set("category", q.Category)
	}

	key := "store:products:" + query.Encode()
	if v, ok := s.cache.Get(key); ok {
		return v.(*domain.ProductsResponse), nil
	}
	var out domain.ProductsResponse
	if err := s.provider.GetJSON(ctx, "/store/products", query, &out); err != nil {
		return nil, err
	}
	s.cache.Set(key, &out)
	return &out, nil
}

// Product fetches a single product. With details set the provider expands
// custom fields, rules and server options.
func (s *Service) Product(ctx context.Context, id int, details bool) (*domain.Product, error) {
	query := s.baseQuery()
	query.Set("details", strconv.FormatBool(details))

	key := fmt.Sprintf("store:product:%d:details=%t", id, details)
	if v, ok := s.cache.Get(key); ok {
		return v.(*domain.Product), nil
	}
	var out domain.Product
	if err := s.provider.GetJSON(ctx, "/store/products/"+strconv.Itoa(id), query, &out); err != nil {
		return nil, err
	}
	s.cache.Set(key, &out)
	return &out, nil
}

// Customers lists the best-customers leaderboard.
func (s *Service) Customers(ctx context.Context, q CustomersQuery) (*domain.CustomersResponse, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.MaxPage <= 0 {
		q.MaxPage = 10
	}
	if q.Sort == "" {
		q.Sort = "revenue"
	}

	query := s.baseQuery()
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("max_page", strconv.Itoa(q.MaxPage))
	query.Set("sort", q.Sort)
	if q.DateFilter != "" {
		query.Set("date_filter", q.DateFilter)
	}

	key := "store:customers:" + query.Encode()
	if v, ok := s.cache.Get(key); ok {
		return v.(*domain.CustomersResponse), nil
	}
	var out domain.CustomersResponse
	if err := s.provider.GetJSON(ctx, "/store/customers", query, &out); err != nil {
		return nil, err
	}
	s.cache.Set(key, &out)
	return &out, nil
}

func (s *Service) baseQuery() url.Values {
	q := url.Values{}
	q.Set("store", s.storeID)
	return q
}
