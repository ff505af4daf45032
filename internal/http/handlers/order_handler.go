package handlers

import (
	"kriya/internal/currency"
	applog "kriya/internal/log"
	"kriya/internal/services"
	"kriya/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Order *services.OrderService
}

type checkoutRequest struct {
	AddressID string `json:"addressId" form:"addressId" validate:"required,resid"`
	PromoCode string `json:"promoCode" form:"promoCode" validate:"omitempty,max=32,alphanum"`
}

// POST /api/v1/checkout
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	sid := ensureSID(c)
	r, err := h.Order.Checkout(sid, currentUser(c), req.AddressID, req.PromoCode)
	if err != nil {
		applog.Security(c, "order.place.fail", map[string]any{"sid": sid, "error": err.Error()})
		return fail(c, err)
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": r.Order.ID,
		"total":    r.Order.Total,
		"repriced": r.Repriced,
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order":     r.Order,
		"items":     r.Items,
		"repriced":  r.Repriced,
		"totalText": currency.Format(r.Order.Total),
	})
}

// GET /api/v1/orders/:id
func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}
	o, items, err := h.Order.Get(oid, c.Cookies(sidCookie), currentUser(c))
	if err != nil {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}
	return c.JSON(fiber.Map{"order": o, "items": items, "totalText": currency.Format(o.Total)})
}

// GET /api/v1/orders
func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Order.History(currentUser(c), c.Cookies(sidCookie))
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return err
	}
	return c.JSON(fiber.Map{"orders": orders})
}
