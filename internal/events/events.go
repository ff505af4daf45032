// Package events forwards cart change events to Redis pub/sub or Kafka.
// Delivery is fire-and-forget: failures are logged and dropped.
package events

import (
	"encoding/json"
	"strings"
	"time"

	"kriya/internal/cart"
)

// Message is the wire form of a cart event.
type Message struct {
	Event   string          `json:"event"`
	Session string          `json:"session"`
	Items   []cart.LineItem `json:"items"`
	At      time.Time       `json:"at"`
}

func encode(e cart.Event, now time.Time) (session string, payload []byte, err error) {
	session = strings.TrimPrefix(e.Key, cart.KeyPrefix)
	items := e.Items
	if items == nil {
		items = []cart.LineItem{}
	}
	payload, err = json.Marshal(Message{Event: e.Name, Session: session, Items: items, At: now.UTC()})
	return session, payload, err
}
