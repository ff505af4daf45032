package cart

import (
	"encoding/json"
	"sync"

	applog "kriya/internal/log"
)

type Option func(*Manager)

func WithShipping(s Shipping) Option {
	return func(m *Manager) { m.shipping = s }
}

// WithPromoCodes replaces the promo table. Codes are matched case-insensitively.
func WithPromoCodes(codes map[string]float64) Option {
	return func(m *Manager) { m.promos = NormalizePromoCodes(codes) }
}

type listener struct {
	id int
	fn func(Event)
}

// Manager owns the cart stored under one key. Operations on a Manager are
// serialized; listeners run while the cart is locked and must not call back
// into the same Manager.
type Manager struct {
	mu       sync.Mutex
	store    Store
	key      string
	shipping Shipping
	promos   map[string]float64

	lmu       sync.Mutex
	listeners []listener
	nextID    int
}

func New(store Store, key string, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		key:      key,
		shipping: DefaultShipping,
		promos:   DefaultPromoCodes,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Manager) Key() string { return m.key }

// Subscribe registers fn for change events and returns a func that removes it.
// Listeners are called in registration order.
func (m *Manager) Subscribe(fn func(Event)) func() {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, listener{id: id, fn: fn})
	return func() {
		m.lmu.Lock()
		defer m.lmu.Unlock()
		for i, l := range m.listeners {
			if l.id == id {
				m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

// Items returns the stored cart, or an empty cart when it is missing or unreadable.
func (m *Manager) Items() []LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}

// AddItem merges p into the line with the same id, size and color, or appends
// a new line. quantity below 1 counts as 1; empty size and color take the
// defaults. A product without an id changes nothing.
func (m *Manager) AddItem(p ProductRef, quantity int, size, color string) []LineItem {
	if p.ID == "" {
		return m.Items()
	}
	if quantity < 1 {
		quantity = 1
	}
	if size == "" {
		size = DefaultSize
	}
	if color == "" {
		color = DefaultColor
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.load()
	next := cloneItems(cur)
	for i := range next {
		if next[i].sameLine(p.ID, size, color) {
			next[i].Quantity += quantity
			return m.commit(cur, next)
		}
	}
	next = append(next, LineItem{
		ID:       p.ID,
		Name:     p.Name,
		Image:    p.Image,
		Price:    p.Price,
		Quantity: quantity,
		Size:     size,
		Color:    color,
	})
	return m.commit(cur, next)
}

// UpdateQuantity sets the quantity of every line with id. A quantity below 1
// changes nothing; removing a line is RemoveItem's job.
func (m *Manager) UpdateQuantity(id string, quantity int) []LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.load()
	if quantity < 1 {
		return cur
	}
	next := cloneItems(cur)
	changed := false
	for i := range next {
		if next[i].ID == id {
			next[i].Quantity = quantity
			changed = true
		}
	}
	if !changed {
		return cur
	}
	return m.commit(cur, next)
}

// RemoveItem drops every line with id regardless of size and color.
func (m *Manager) RemoveItem(id string) []LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := m.load()
	next := make([]LineItem, 0, len(cur))
	for _, it := range cur {
		if it.ID != id {
			next = append(next, it)
		}
	}
	if len(next) == len(cur) {
		return cur
	}
	return m.commit(cur, next)
}

// Clear deletes the stored cart rather than storing an empty one.
func (m *Manager) Clear() []LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Remove(m.key); err != nil {
		applog.Error(nil, "cart.clear_failed", err, map[string]any{"key": m.key})
		return m.load()
	}
	m.notify([]LineItem{})
	return []LineItem{}
}

func (m *Manager) Summary() Summary {
	return Summarize(m.Items(), m.shipping)
}

// ApplyPromoCode prices code against the current subtotal. The cart is not
// changed.
func (m *Manager) ApplyPromoCode(code string) PromoResult {
	sum := m.Summary()
	return ApplyPromo(sum.Subtotal, code, m.promos)
}

func (m *Manager) load() []LineItem {
	raw, ok, err := m.store.Get(m.key)
	if err != nil {
		applog.Error(nil, "cart.load_failed", err, map[string]any{"key": m.key})
		return []LineItem{}
	}
	if !ok || raw == "" {
		return []LineItem{}
	}
	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		applog.Error(nil, "cart.decode_failed", err, map[string]any{"key": m.key})
		return []LineItem{}
	}
	out := items[:0]
	for _, it := range items {
		if it.ID == "" || it.Quantity < 1 {
			continue
		}
		if it.Size == "" {
			it.Size = DefaultSize
		}
		if it.Color == "" {
			it.Color = DefaultColor
		}
		out = append(out, it)
	}
	if out == nil {
		return []LineItem{}
	}
	return out
}

// commit stores next and notifies listeners. On a failed write the previous
// cart is returned and nobody is notified.
func (m *Manager) commit(prev, next []LineItem) []LineItem {
	b, err := json.Marshal(next)
	if err == nil {
		err = m.store.Set(m.key, string(b))
	}
	if err != nil {
		applog.Error(nil, "cart.save_failed", err, map[string]any{"key": m.key})
		return prev
	}
	m.notify(next)
	return cloneItems(next)
}

func (m *Manager) notify(items []LineItem) {
	m.lmu.Lock()
	ls := append([]listener(nil), m.listeners...)
	m.lmu.Unlock()
	for _, l := range ls {
		l.fn(Event{Name: EventUpdated, Key: m.key, Items: cloneItems(items)})
	}
}
