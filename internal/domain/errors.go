package domain

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("already exists")
	ErrEmptyCart = errors.New("cart is empty")
	ErrForbidden = errors.New("forbidden")
)
