package services

import (
	"errors"
	"fmt"
	"strings"

	"kriya/internal/cart"
	"kriya/internal/domain"
	"kriya/internal/repos"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderService struct {
	Carts  *CartService
	Prods  *repos.ProductRepo
	Addrs  *repos.AddressRepo
	Orders *repos.OrderRepo
}

func NewOrderService(carts *CartService, prods *repos.ProductRepo, addrs *repos.AddressRepo, orders *repos.OrderRepo) *OrderService {
	return &OrderService{Carts: carts, Prods: prods, Addrs: addrs, Orders: orders}
}

type Receipt struct {
	Order    repos.OrderRow       `json:"order"`
	Items    []repos.OrderItemRow `json:"items"`
	Repriced bool                 `json:"repriced"` // a catalog price changed since the item was carted
}

// Checkout turns the session cart into an order shipped to one of the user's
// addresses. Prices come from the catalog, not from the cart. The cart is
// cleared once the order is stored.
func (s *OrderService) Checkout(sessionID string, u *domain.User, addressID, promoCode string) (Receipt, error) {
	if u == nil {
		return Receipt{}, domain.ErrForbidden
	}
	addr, err := s.Addrs.Get(u.ID, addressID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Receipt{}, invalid(map[string]string{"addressId": "Please choose one of your saved addresses"})
		}
		return Receipt{}, err
	}

	m := s.Carts.For(sessionID)
	items := m.Items()
	if len(items) == 0 {
		return Receipt{}, domain.ErrEmptyCart
	}

	repriced := false
	lines := make([]cart.LineItem, 0, len(items))
	for _, it := range items {
		p, err := s.Prods.Get(it.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return Receipt{}, invalid(map[string]string{"items": fmt.Sprintf("%s is no longer available", it.Name)})
			}
			return Receipt{}, err
		}
		if p.Price != it.Price {
			repriced = true
		}
		it.Name = p.Title
		it.Price = p.Price
		lines = append(lines, it)
	}

	pricing := s.Carts.Pricing
	sum := cart.Summarize(lines, pricing.Shipping)
	code := strings.ToUpper(strings.TrimSpace(promoCode))
	if code != "" {
		res := cart.ApplyPromo(sum.Subtotal, code, cart.NormalizePromoCodes(pricing.PromoCodes))
		if !res.Success {
			return Receipt{}, invalid(map[string]string{"promoCode": res.Message})
		}
		sum.Discount = res.Discount
		sum.Total = decimal.NewFromFloat(sum.Subtotal).
			Add(decimal.NewFromFloat(sum.Shipping)).
			Sub(decimal.NewFromFloat(sum.Discount)).
			InexactFloat64()
	}

	order := repos.OrderRow{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserID:    u.ID,
		Recipient: addr.Recipient,
		Phone:     addr.Phone,
		ShipTo:    fmt.Sprintf("%s, %s %s", addr.Street, addr.City, addr.PostalCode),
		PromoCode: code,
		Subtotal:  sum.Subtotal,
		Shipping:  sum.Shipping,
		Discount:  sum.Discount,
		Total:     sum.Total,
		Status:    domain.OrderPlaced,
	}
	rows := make([]repos.OrderItemRow, 0, len(lines))
	for _, it := range lines {
		rows = append(rows, repos.OrderItemRow{
			ProductID: it.ID,
			Title:     it.Name,
			Size:      it.Size,
			Color:     it.Color,
			Qty:       it.Quantity,
			Price:     it.Price,
			Subtotal:  decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))).InexactFloat64(),
		})
	}
	if err := s.Orders.Create(order, rows); err != nil {
		return Receipt{}, err
	}
	m.Clear()
	return Receipt{Order: order, Items: rows, Repriced: repriced}, nil
}

// Get returns an order visible to the caller: the session that placed it, its
// user, or an admin. Anyone else gets domain.ErrNotFound.
func (s *OrderService) Get(orderID, sessionID string, u *domain.User) (repos.OrderRow, []repos.OrderItemRow, error) {
	o, items, err := s.Orders.Get(orderID)
	if err != nil {
		return repos.OrderRow{}, nil, err
	}
	owner := (sessionID != "" && sessionID == o.SessionID) || (u != nil && u.ID == o.UserID)
	if !owner && !u.IsAdmin() {
		return repos.OrderRow{}, nil, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
	}
	return o, items, nil
}

// History lists the user's orders, falling back to orders placed by the
// current session.
func (s *OrderService) History(u *domain.User, sessionID string) ([]repos.OrderSummary, error) {
	orders, err := s.Orders.ListByUser(u.ID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 && sessionID != "" {
		return s.Orders.ListBySession(sessionID)
	}
	return orders, nil
}

func (s *OrderService) Latest(limit int) ([]repos.OrderSummary, error) {
	return s.Orders.ListLatest(limit)
}

func (s *OrderService) UpdateStatus(orderID, status string) error {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !domain.ValidOrderStatus(status) {
		return invalid(map[string]string{"status": "Unknown order status"})
	}
	return s.Orders.UpdateStatus(orderID, status)
}
