package handlers

import (
	applog "kriya/internal/log"
	"kriya/internal/services"
	"kriya/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AddressHandler struct {
	Addrs *services.AddressService
}

type addressRequest struct {
	Recipient  string `json:"recipient" form:"recipient" validate:"max=100"`
	Phone      string `json:"phone" form:"phone" validate:"max=20"`
	Street     string `json:"street" form:"street" validate:"max=200"`
	City       string `json:"city" form:"city" validate:"max=100"`
	PostalCode string `json:"postalCode" form:"postalCode" validate:"max=10"`
}

// GET /api/v1/addresses
func (h *AddressHandler) List(c *fiber.Ctx) error {
	list, err := h.Addrs.List(currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"addresses": list})
}

// POST /api/v1/addresses
func (h *AddressHandler) Create(c *fiber.Ctx) error {
	var req addressRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	a, err := h.Addrs.Add(currentUser(c).ID, services.AddressInput{
		Recipient:  req.Recipient,
		Phone:      req.Phone,
		Street:     req.Street,
		City:       req.City,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "address.create", map[string]any{"address_id": a.ID})
	return c.Status(fiber.StatusCreated).JSON(a)
}

// DELETE /api/v1/addresses/:id
func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if err := h.Addrs.Delete(currentUser(c).ID, id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "address.delete", map[string]any{"address_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
