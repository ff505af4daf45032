package handlers

import (
	applog "kriya/internal/log"
	"kriya/internal/services"
	"kriya/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Order *services.OrderService
}

type statusRequest struct {
	Status string `json:"status" form:"status" validate:"required,max=20"`
}

// GET /admin/orders
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	ords, err := h.Order.Latest(c.QueryInt("limit", 100))
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return err
	}
	return c.JSON(fiber.Map{"orders": ords})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	var req statusRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	if err := h.Order.UpdateStatus(id, req.Status); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return fail(c, err)
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": req.Status})
	return c.SendStatus(fiber.StatusNoContent)
}
