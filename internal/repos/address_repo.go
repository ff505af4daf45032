package repos

import (
	"fmt"

	"kriya/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AddressRepo struct{ db *sqlx.DB }

func NewAddressRepo(db *sqlx.DB) *AddressRepo { return &AddressRepo{db: db} }

const addressCols = `id,user_id,recipient,phone,street,city,postal_code,COALESCE(created_at,'') AS created_at`

func (r *AddressRepo) Create(a domain.Address) error {
	_, err := r.db.Exec(`
	  INSERT INTO addresses(id,user_id,recipient,phone,street,city,postal_code,created_at)
	  VALUES(?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, a.ID, a.UserID, a.Recipient, a.Phone, a.Street, a.City, a.PostalCode)
	return err
}

func (r *AddressRepo) ListByUser(userID string) ([]domain.Address, error) {
	out := []domain.Address{}
	err := r.db.Select(&out, `SELECT `+addressCols+` FROM addresses WHERE user_id=? ORDER BY created_at, id`, userID)
	return out, err
}

// Get returns the address only when it belongs to userID.
func (r *AddressRepo) Get(userID, id string) (domain.Address, error) {
	var a domain.Address
	err := r.db.Get(&a, `SELECT `+addressCols+` FROM addresses WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return a, notFound(err, "address")
	}
	return a, nil
}

func (r *AddressRepo) Delete(userID, id string) error {
	res, err := r.db.Exec(`DELETE FROM addresses WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("address %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
