package handlers

import (
	"kriya/internal/cart"
	"kriya/internal/config"
	"kriya/internal/repos"
	"kriya/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Config config.Config
	Auth   *services.AuthService
	// Carts is exposed so callers can subscribe to cart events.
	Carts *services.CartService

	AuthHandler    *AuthHandler
	CatalogHandler *CatalogHandler
	CartHandler    *CartHandler
	AddressHandler *AddressHandler
	OrderHandler   *OrderHandler
	AdminHandler   *AdminHandler
}

// NewDeps wires repositories and services. Carts are kept in store.
func NewDeps(db *sqlx.DB, store cart.Store, cfg config.Config) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	userRepo := repos.NewUserRepo(db)
	addrRepo := repos.NewAddressRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	pricing := services.DefaultPricing()
	if cfg.FlatShippingFee > 0 || cfg.FreeShippingThreshold > 0 {
		pricing.Shipping = cart.Shipping{FlatFee: cfg.FlatShippingFee, Threshold: cfg.FreeShippingThreshold}
	}
	if len(cfg.PromoCodes) > 0 {
		pricing.PromoCodes = cfg.PromoCodes
	}

	authSvc := &services.AuthService{Users: userRepo}
	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	cartSvc := services.NewCartService(store, prodRepo, pricing)
	addrSvc := services.NewAddressService(addrRepo)
	orderSvc := services.NewOrderService(cartSvc, prodRepo, addrRepo, orderRepo)

	return &Deps{
		Config:         cfg,
		Auth:           authSvc,
		Carts:          cartSvc,
		AuthHandler:    &AuthHandler{Auth: authSvc},
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		AddressHandler: &AddressHandler{Addrs: addrSvc},
		OrderHandler:   &OrderHandler{Order: orderSvc},
		AdminHandler:   &AdminHandler{Order: orderSvc},
	}
}
