// Package cart owns a shopping cart persisted as one JSON array under a single
// key of an injected Store.
//
// Every operation degrades instead of failing: an unreadable cart reads as
// empty and a failed write leaves the cart as it was. Failures are logged.
package cart

import (
	"strings"
)

const (
	DefaultSize  = "M"
	DefaultColor = "Black"

	// EventUpdated names the event sent after every successful mutation.
	EventUpdated = "cartUpdated"
)

// Store is a string key/value store. Get reports ok=false for a missing key.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// ProductRef is the part of a product a cart line copies when it is added.
type ProductRef struct {
	ID    string
	Name  string
	Image string
	Price float64
}

type LineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
}

func (li LineItem) sameLine(id, size, color string) bool {
	return li.ID == id && li.Size == size && li.Color == color
}

type Summary struct {
	Subtotal  float64 `json:"subtotal"`
	Shipping  float64 `json:"shipping"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}

type PromoResult struct {
	Success  bool    `json:"success"`
	Discount float64 `json:"discount"`
	Message  string  `json:"message"`
}

// Event is delivered to listeners. Items is the cart after the mutation and
// belongs to the listener.
type Event struct {
	Name  string     `json:"event"`
	Key   string     `json:"key"`
	Items []LineItem `json:"items"`
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}

// KeyPrefix namespaces session carts in a shared store.
const KeyPrefix = "cart:"

func KeyFor(sessionID string) string { return KeyPrefix + sessionID }
