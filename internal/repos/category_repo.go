package repos

import (
	"fmt"

	"kriya/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categorySelect = `
  SELECT c.id, c.name, COUNT(p.id) AS products,
         COALESCE(c.created_at,'') AS created_at, COALESCE(c.updated_at,'') AS updated_at
  FROM categories c
  LEFT JOIN products p ON p.category_id = c.id AND p.active = 1`

// List returns every category with its count of active products.
func (r *CategoryRepo) List() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, categorySelect+` GROUP BY c.id ORDER BY c.name`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	if err := r.db.Get(&c, categorySelect+` WHERE c.id = ? GROUP BY c.id`, id); err != nil {
		return c, notFound(err, fmt.Sprintf("category %s", id))
	}
	return c, nil
}
