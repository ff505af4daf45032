package domain

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Products  int    `db:"products" json:"products"` // active products only
	CreatedAt string `db:"created_at" json:"-"`
	UpdatedAt string `db:"updated_at" json:"-"`
}

type Product struct {
	ID          string  `db:"id" json:"id"`
	CategoryID  string  `db:"category_id" json:"categoryId"`
	Title       string  `db:"title" json:"title"`
	Description string  `db:"description" json:"description"`
	Artisan     string  `db:"artisan" json:"artisan"`
	Price       float64 `db:"price" json:"price"` // whole Rupiah
	Image       string  `db:"image" json:"image"`
	Active      bool    `db:"active" json:"-"`
	CreatedAt   string  `db:"created_at" json:"-"`
	UpdatedAt   string  `db:"updated_at" json:"-"`
}

type Address struct {
	ID         string `db:"id" json:"id"`
	UserID     string `db:"user_id" json:"-"`
	Recipient  string `db:"recipient" json:"recipient"`
	Phone      string `db:"phone" json:"phone"`
	Street     string `db:"street" json:"street"`
	City       string `db:"city" json:"city"`
	PostalCode string `db:"postal_code" json:"postalCode"`
	CreatedAt  string `db:"created_at" json:"-"`
}

// Order statuses, in the order an order normally moves through them.
const (
	OrderPlaced    = "PLACED"
	OrderPaid      = "PAID"
	OrderShipped   = "SHIPPED"
	OrderDelivered = "DELIVERED"
	OrderCanceled  = "CANCELED"
)

var OrderStatuses = []string{OrderPlaced, OrderPaid, OrderShipped, OrderDelivered, OrderCanceled}

func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}
