package repos

import (
	"fmt"

	"kriya/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// ---------- Admin list summary ----------
type OrderSummary struct {
	ID        string  `db:"id" json:"id"`
	SessionID string  `db:"session_id" json:"-"`
	UserID    string  `db:"user_id" json:"userId,omitempty"`
	Recipient string  `db:"recipient" json:"recipient"`
	Total     float64 `db:"total" json:"total"`
	Status    string  `db:"status" json:"status"`
	CreatedAt string  `db:"created_at" json:"createdAt"`
}

// ---------- Order detail ----------
type OrderRow struct {
	ID        string  `db:"id" json:"id"`
	SessionID string  `db:"session_id" json:"-"`
	UserID    string  `db:"user_id" json:"userId,omitempty"`
	Recipient string  `db:"recipient" json:"recipient"`
	Phone     string  `db:"phone" json:"phone"`
	ShipTo    string  `db:"ship_to" json:"shipTo"`
	PromoCode string  `db:"promo_code" json:"promoCode,omitempty"`
	Subtotal  float64 `db:"subtotal" json:"subtotal"`
	Shipping  float64 `db:"shipping" json:"shipping"`
	Discount  float64 `db:"discount" json:"discount"`
	Total     float64 `db:"total" json:"total"`
	Status    string  `db:"status" json:"status"`
	CreatedAt string  `db:"created_at" json:"createdAt"`
}

type OrderItemRow struct {
	ProductID string  `db:"product_id" json:"productId"`
	Title     string  `db:"title" json:"title"`
	Size      string  `db:"size" json:"size"`
	Color     string  `db:"color" json:"color"`
	Qty       int     `db:"qty" json:"quantity"`
	Price     float64 `db:"price" json:"price"`
	Subtotal  float64 `db:"subtotal" json:"subtotal"`
}

// Create writes the order header and its lines in one transaction.
func (r *OrderRepo) Create(o OrderRow, items []OrderItemRow) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	status := o.Status
	if status == "" {
		status = domain.OrderPlaced
	}
	if _, err := tx.Exec(`
	  INSERT INTO orders
	    (id, session_id, user_id, recipient, phone, ship_to, promo_code, subtotal, shipping, discount, total, status, created_at)
	  VALUES
	    (?,  ?,          NULLIF(?,''), ?,     ?,     ?,       ?,          ?,        ?,        ?,        ?,     ?,      CURRENT_TIMESTAMP)
	`, o.ID, o.SessionID, o.UserID, o.Recipient, o.Phone, o.ShipTo, o.PromoCode,
		o.Subtotal, o.Shipping, o.Discount, o.Total, status); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, title, size, color, qty, price)
		  VALUES(?, ?, ?, ?, ?, ?, ?)
		`, o.ID, it.ProductID, it.Title, it.Size, it.Color, it.Qty, it.Price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *OrderRepo) Get(orderID string) (OrderRow, []OrderItemRow, error) {
	var o OrderRow
	if err := r.db.Get(&o, `
		SELECT id, COALESCE(session_id,'') AS session_id, COALESCE(user_id,'') AS user_id,
		       recipient, phone, ship_to, promo_code, subtotal, shipping, discount, total, status,
		       COALESCE(created_at,'') AS created_at
		FROM orders
		WHERE id = ?
	`, orderID); err != nil {
		return OrderRow{}, nil, notFound(err, "order")
	}

	items := []OrderItemRow{}
	if err := r.db.Select(&items, `
		SELECT product_id, title, size, color, qty, price, (qty * price) AS subtotal
		FROM order_items
		WHERE order_id = ?
		ORDER BY title, size, color
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	return o, items, nil
}

const summaryCols = `id, COALESCE(session_id,'') AS session_id, COALESCE(user_id,'') AS user_id,
		       recipient, total, status, COALESCE(created_at,'') AS created_at`

func (r *OrderRepo) ListLatest(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []OrderSummary{}
	err := r.db.Select(&out, `
		SELECT `+summaryCols+`
		FROM orders
		ORDER BY datetime(created_at) DESC, id
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) ListByUser(userID string) ([]OrderSummary, error) {
	out := []OrderSummary{}
	err := r.db.Select(&out, `
		SELECT `+summaryCols+`
		FROM orders
		WHERE user_id = ?
		ORDER BY datetime(created_at) DESC, id
	`, userID)
	return out, err
}

// ListBySession returns orders tied to a given session id (anonymous checkouts).
func (r *OrderRepo) ListBySession(sessionID string) ([]OrderSummary, error) {
	out := []OrderSummary{}
	err := r.db.Select(&out, `
		SELECT `+summaryCols+`
		FROM orders
		WHERE session_id = ?
		ORDER BY datetime(created_at) DESC, id
	`, sessionID)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	res, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
