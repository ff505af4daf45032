package services

import (
	"sync"

	"kriya/internal/cart"
	"kriya/internal/repos"
)

// Pricing is the shipping rule and promo table shared by carts and checkout.
type Pricing struct {
	Shipping   cart.Shipping
	PromoCodes map[string]float64
}

func DefaultPricing() Pricing {
	return Pricing{Shipping: cart.DefaultShipping, PromoCodes: cart.DefaultPromoCodes}
}

// CartService scopes a cart.Manager to each session. Managers are built per
// call over the shared store, so two concurrent requests for one session
// resolve as last writer wins.
type CartService struct {
	Store   cart.Store
	Prods   *repos.ProductRepo
	Pricing Pricing

	mu        sync.RWMutex
	listeners []func(cart.Event)
}

func NewCartService(store cart.Store, prods *repos.ProductRepo, pricing Pricing) *CartService {
	return &CartService{Store: store, Prods: prods, Pricing: pricing}
}

// OnChange registers fn on every session cart.
func (s *CartService) OnChange(fn func(cart.Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// For returns the cart of sessionID.
func (s *CartService) For(sessionID string) *cart.Manager {
	m := cart.New(s.Store, cart.KeyFor(sessionID),
		cart.WithShipping(s.Pricing.Shipping),
		cart.WithPromoCodes(s.Pricing.PromoCodes))
	s.mu.RLock()
	for _, fn := range s.listeners {
		m.Subscribe(fn)
	}
	s.mu.RUnlock()
	return m
}

// Add copies the catalog's current name, image and price into the cart.
func (s *CartService) Add(sessionID, productID string, qty int, size, color string) ([]cart.LineItem, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		return nil, err
	}
	ref := cart.ProductRef{ID: p.ID, Name: p.Title, Image: p.Image, Price: p.Price}
	return s.For(sessionID).AddItem(ref, qty, size, color), nil
}

// SetQuantity removes the product when qty is zero or below and otherwise
// sets it on every line of the product.
func (s *CartService) SetQuantity(sessionID, productID string, qty int) []cart.LineItem {
	m := s.For(sessionID)
	if qty <= 0 {
		return m.RemoveItem(productID)
	}
	return m.UpdateQuantity(productID, qty)
}

func (s *CartService) Remove(sessionID, productID string) []cart.LineItem {
	return s.For(sessionID).RemoveItem(productID)
}

func (s *CartService) Clear(sessionID string) []cart.LineItem {
	return s.For(sessionID).Clear()
}

type CartView struct {
	Items   []cart.LineItem `json:"items"`
	Summary cart.Summary    `json:"summary"`
}

func (s *CartService) View(sessionID string) CartView {
	items := s.For(sessionID).Items()
	return CartView{Items: items, Summary: cart.Summarize(items, s.Pricing.Shipping)}
}

func (s *CartService) ApplyPromo(sessionID, code string) cart.PromoResult {
	return s.For(sessionID).ApplyPromoCode(code)
}
