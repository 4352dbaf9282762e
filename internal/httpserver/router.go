package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"gamestore/internal/domain"
	cartsvc "gamestore/internal/service/cart"
	storesvc "gamestore/internal/service/store"
)

// StoreService serves catalog and storefront data.
type StoreService interface {
	Whoami(ctx context.Context) (*domain.StoreInfo, error)
	Theme(ctx context.Context) (*domain.Theme, error)
	Categories(ctx context.Context, q storesvc.CategoriesQuery) (*domain.CategoriesResponse, error)
	Products(ctx context.Context, q storesvc.ProductsQuery) (*domain.ProductsResponse, error)
	Product(ctx context.Context, id int, details bool) (*domain.Product, error)
	Customers(ctx context.Context, q storesvc.CustomersQuery) (*domain.CustomersResponse, error)
}

// CartService manages the per-session cart.
type CartService interface {
	Get(ctx context.Context, sessionID string) (cartsvc.View, error)
	AddItem(ctx context.Context, sessionID string, product domain.Product, quantity int, customFields map[string]any, subscriptionType domain.SubscriptionType) (cartsvc.View, error)
	RemoveItem(ctx context.Context, sessionID string, productID int, customFields map[string]any) (cartsvc.View, error)
	RemoveItemByIndex(ctx context.Context, sessionID string, index int) (cartsvc.View, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID, quantity int, customFields map[string]any) (cartsvc.View, error)
	UpdateCustomFields(ctx context.Context, sessionID string, productID int, fields, customFields map[string]any) (cartsvc.View, error)
	UpdateServerSelection(ctx context.Context, sessionID string, productID, serverID int, customFields map[string]any) (cartsvc.View, error)
	UpdateDonationAmount(ctx context.Context, sessionID string, productID int, amount float64, customFields map[string]any) (cartsvc.View, error)
	UpdateSubscriptionType(ctx context.Context, sessionID string, productID int, subscriptionType domain.SubscriptionType, customFields map[string]any) (cartsvc.View, error)
	Clear(ctx context.Context, sessionID string) (cartsvc.View, error)
	Entries(ctx context.Context, sessionID string) ([]domain.CartEntry, error)
}

// CheckoutService starts hosted checkouts at the commerce provider.
type CheckoutService interface {
	Checkout(ctx context.Context, entries []domain.CartEntry, user domain.CheckoutUser) (*domain.CheckoutResponse, error)
	Identifiers(ctx context.Context, entries []domain.CartEntry) (*domain.CheckoutIdentifiersResponse, error)
}

// Deps bundles the services the router serves.
type Deps struct {
	StoreSvc    StoreService
	CartSvc     CartService
	CheckoutSvc CheckoutService
	Sessions    SessionIssuer

	// CookieSecure marks the session cookie HTTPS-only.
	CookieSecure bool
}

func (d Deps) validate() error {
	if d.StoreSvc == nil {
		return errors.New("httpserver: StoreSvc is required")
	}
	if d.CartSvc == nil {
		return errors.New("httpserver: CartSvc is required")
	}
	if d.CheckoutSvc == nil {
		return errors.New("httpserver: CheckoutSvc is required")
	}
	if d.Sessions == nil {
		return errors.New("httpserver: Sessions is required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(corsOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.Use(sessionMiddleware(deps.Sessions, deps.CookieSecure))

	store := api.Group("/store")
	store.GET("/whoami", whoamiHandler(deps.StoreSvc))
	store.GET("/theme", themeHandler(deps.StoreSvc))
	store.GET("/categories", categoriesHandler(deps.StoreSvc))
	store.GET("/products", productsHandler(deps.StoreSvc))
	store.GET("/products/:id", productHandler(deps.StoreSvc))
	store.GET("/customers", customersHandler(deps.StoreSvc))

	cart := api.Group("/cart")
	cart.GET("", getCartHandler(deps.CartSvc))
	cart.DELETE("", clearCartHandler(deps.CartSvc))
	cart.POST("/items", addItemHandler(deps.StoreSvc, deps.CartSvc))
	cart.DELETE("/items", removeItemHandler(deps.CartSvc))
	cart.DELETE("/items/:index", removeItemByIndexHandler(deps.CartSvc))
	cart.PUT("/items/quantity", updateQuantityHandler(deps.CartSvc))
	cart.PUT("/items/custom-fields", updateCustomFieldsHandler(deps.CartSvc))
	cart.PUT("/items/server-selection", updateServerSelectionHandler(deps.CartSvc))
	cart.PUT("/items/donation", updateDonationHandler(deps.CartSvc))
	cart.PUT("/items/subscription-type", updateSubscriptionTypeHandler(deps.CartSvc))

	checkout := api.Group("/checkout")
	checkout.GET("/identifiers", checkoutIdentifiersHandler(deps.CartSvc, deps.CheckoutSvc))
	checkout.POST("", checkoutHandler(deps.CartSvc, deps.CheckoutSvc))

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	cfg.AllowCredentials = true
	cfg.MaxAge = 12 * time.Hour
	if len(origins) == 1 && origins[0] == "*" {
		// Credentials cannot be combined with the wildcard origin, so echo
		// whatever origin the browser sent.
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
